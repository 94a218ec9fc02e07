package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/resumeinsight/backend/models"
	"github.com/resumeinsight/backend/profiles"
)

// ProfileStore is the job profile registry as seen by the tools
type ProfileStore interface {
	List() []models.ProfileSummary
	Create(ctx context.Context, name string) (models.ProfileSummary, error)
	Delete(id string) error
}

// ListJobProfilesTool lists the job profiles
type ListJobProfilesTool struct {
	store ProfileStore
}

// NewListJobProfilesTool creates a new listing tool
func NewListJobProfilesTool(store ProfileStore) *ListJobProfilesTool {
	return &ListJobProfilesTool{store: store}
}

func (t *ListJobProfilesTool) Name() string { return "list_job_profiles" }

func (t *ListJobProfilesTool) Description() string {
	return "List the id and name of every job profile that resumes can be scored against."
}

func (t *ListJobProfilesTool) InputSchema() map[string]interface{} {
	return objectSchema(nil)
}

func (t *ListJobProfilesTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	return NewSuccessResult(t.store.List())
}

// CreateJobProfileTool creates a job profile with AI generated keywords
type CreateJobProfileTool struct {
	store ProfileStore
}

// NewCreateJobProfileTool creates a new profile creation tool
func NewCreateJobProfileTool(store ProfileStore) *CreateJobProfileTool {
	return &CreateJobProfileTool{store: store}
}

func (t *CreateJobProfileTool) Name() string { return "create_job_profile" }

func (t *CreateJobProfileTool) Description() string {
	return `Create a job profile from a role name such as "DevOps Engineer".
Required and preferred skills, experience keywords and education keywords are generated by AI.
The profile id is the lowercased name with spaces and hyphens replaced by underscores.`
}

func (t *CreateJobProfileTool) InputSchema() map[string]interface{} {
	return objectSchema(map[string]string{
		"name": "Display name of the role",
	}, "name")
}

func (t *CreateJobProfileTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var req models.CreateProfileRequest
	if err := json.Unmarshal(input, &req); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err))
	}

	summary, err := t.store.Create(ctx, req.Name)
	if err != nil {
		return NewErrorResult(err.Error())
	}
	return NewSuccessResult(summary)
}

// DeleteJobProfileTool deletes a custom job profile
type DeleteJobProfileTool struct {
	store ProfileStore
}

// NewDeleteJobProfileTool creates a new profile deletion tool
func NewDeleteJobProfileTool(store ProfileStore) *DeleteJobProfileTool {
	return &DeleteJobProfileTool{store: store}
}

func (t *DeleteJobProfileTool) Name() string { return "delete_job_profile" }

func (t *DeleteJobProfileTool) Description() string {
	return "Delete a custom job profile by id. The built-in profiles cannot be deleted."
}

func (t *DeleteJobProfileTool) InputSchema() map[string]interface{} {
	return objectSchema(map[string]string{
		"id": "Profile id, e.g. devops_engineer",
	}, "id")
}

type deleteInput struct {
	ID string `json:"id"`
}

func (t *DeleteJobProfileTool) Execute(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	var req deleteInput
	if err := json.Unmarshal(input, &req); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err))
	}

	err := t.store.Delete(req.ID)
	switch {
	case errors.Is(err, profiles.ErrProfileNotFound), errors.Is(err, profiles.ErrProtectedProfile):
		return NewErrorResult(err.Error())
	case err != nil:
		return nil, err
	}
	return NewSuccessResult(models.MessageResponse{Message: "Profile deleted successfully"})
}

// Package profiles keeps the process-wide set of job profiles
package profiles

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/resumeinsight/backend/logger"
	"github.com/resumeinsight/backend/models"
)

var (
	ErrDuplicateProfile   = errors.New("profile with this name already exists")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrProtectedProfile   = errors.New("cannot delete default profiles")
	ErrInvalidProfileName = errors.New("profile name is required")
)

// KeywordGenerator produces the four keyword lists for a new role
type KeywordGenerator interface {
	GenerateKeywords(ctx context.Context, roleName string) models.ProfileKeywords
}

// Registry is an in-memory, insertion-ordered set of job profiles
// Profiles live for the lifetime of the process
type Registry struct {
	mu        sync.RWMutex
	order     []string
	profiles  map[string]models.JobProfile
	generator KeywordGenerator
	logger    zerolog.Logger
}

// NewRegistry creates a registry seeded with the built-in profiles
func NewRegistry(generator KeywordGenerator) *Registry {
	r := &Registry{
		profiles:  make(map[string]models.JobProfile),
		generator: generator,
		logger:    logger.Component("profiles"),
	}
	for _, p := range builtinProfiles() {
		r.order = append(r.order, p.ID)
		r.profiles[p.ID] = p
	}
	return r
}

// ProfileID derives the profile id from a display name
func ProfileID(name string) string {
	id := strings.ToLower(name)
	id = strings.ReplaceAll(id, " ", "_")
	return strings.ReplaceAll(id, "-", "_")
}

// IsProtected reports whether id is a built-in profile
func IsProtected(id string) bool {
	switch id {
	case SoftwareEngineer, DataScientist, MarketingManager:
		return true
	}
	return false
}

// List returns every profile identity in insertion order
func (r *Registry) List() []models.ProfileSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.ProfileSummary, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.profiles[id].Summary())
	}
	return out
}

// Lookup returns a copy of the profile with the given id
func (r *Registry) Lookup(id string) (models.JobProfile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return models.JobProfile{}, false
	}
	return clone(p), true
}

// Get is Lookup with ErrProfileNotFound for unknown ids
func (r *Registry) Get(id string) (models.JobProfile, error) {
	p, ok := r.Lookup(id)
	if !ok {
		return models.JobProfile{}, ErrProfileNotFound
	}
	return p, nil
}

// Create adds a profile whose keyword lists are generated by the model
// No lock is held while the model is being called
func (r *Registry) Create(ctx context.Context, name string) (models.ProfileSummary, error) {
	if strings.TrimSpace(name) == "" {
		return models.ProfileSummary{}, ErrInvalidProfileName
	}
	id := ProfileID(name)

	if r.exists(id) {
		return models.ProfileSummary{}, ErrDuplicateProfile
	}

	keywords := r.generator.GenerateKeywords(ctx, name)
	profile := models.JobProfile{
		ID:                 id,
		Name:               name,
		RequiredSkills:     keywords.RequiredSkills,
		PreferredSkills:    keywords.PreferredSkills,
		ExperienceKeywords: keywords.ExperienceKeywords,
		EducationKeywords:  keywords.EducationKeywords,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// another request may have created it while the model was running
	if _, ok := r.profiles[id]; ok {
		return models.ProfileSummary{}, ErrDuplicateProfile
	}
	r.order = append(r.order, id)
	r.profiles[id] = profile

	r.logger.Info().
		Str("profile_id", id).
		Int("required_skills", len(profile.RequiredSkills)).
		Int("preferred_skills", len(profile.PreferredSkills)).
		Msg("job profile created")
	return profile.Summary(), nil
}

// Delete removes a custom profile
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[id]; !ok {
		return ErrProfileNotFound
	}
	if IsProtected(id) {
		return ErrProtectedProfile
	}

	delete(r.profiles, id)
	r.order = slices.DeleteFunc(r.order, func(existing string) bool { return existing == id })

	r.logger.Info().Str("profile_id", id).Msg("job profile deleted")
	return nil
}

func (r *Registry) exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.profiles[id]
	return ok
}

func clone(p models.JobProfile) models.JobProfile {
	p.RequiredSkills = slices.Clone(p.RequiredSkills)
	p.PreferredSkills = slices.Clone(p.PreferredSkills)
	p.ExperienceKeywords = slices.Clone(p.ExperienceKeywords)
	p.EducationKeywords = slices.Clone(p.EducationKeywords)
	return p
}

package utils

import (
	"regexp"
	"strings"

	"github.com/resumeinsight/backend/models"
)

var (
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`(?:\+\d{1,3}[-. ]?)?\(?\d{3}\)?[-. ]?\d{3}[-. ]?\d{4}`)
	linkedInPattern = regexp.MustCompile(`linkedin\.com/in/[\w-]+`)
)

// ExtractContacts finds emails, phone numbers and LinkedIn profile paths
// with fixed patterns. Matches are returned in order of appearance,
// without deduplication. LinkedIn matches come from a lowercased copy
func ExtractContacts(text string) models.ContactInfo {
	return models.ContactInfo{
		Emails:   findAll(emailPattern, text),
		Phones:   findAll(phonePattern, text),
		LinkedIn: findAll(linkedInPattern, strings.ToLower(text)),
	}
}

func findAll(re *regexp.Regexp, text string) []string {
	matches := re.FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}

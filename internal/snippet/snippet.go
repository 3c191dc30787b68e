// Package snippet defines the snippet data model and its SQLite store.
package snippet

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxNameLength is the longest name the store accepts.
const MaxNameLength = 255

// Snippet is a single stored code fragment.
type Snippet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Content   string    `json:"content"`
	Language  string    `json:"language"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates a snippet with a fresh ID and normalised fields.
func New(name, content, language string, tags []string) Snippet {
	now := time.Now()
	return Snippet{
		ID:        uuid.NewString(),
		Name:      name,
		Content:   content,
		Language:  NormalizeLanguage(language),
		Tags:      NormalizeTags(tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks the snippet satisfies the store's constraints.
func (s Snippet) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("snippet: name must not be empty")
	}
	if len(s.Name) > MaxNameLength {
		return fmt.Errorf("snippet: name exceeds %d characters", MaxNameLength)
	}
	if s.Content == "" {
		return errors.New("snippet: content must not be empty")
	}
	for _, tag := range s.Tags {
		if strings.TrimSpace(tag) == "" {
			return errors.New("snippet: tags must not be empty strings")
		}
	}
	return nil
}

// HasTag reports whether the snippet carries the given tag,
// case-insensitively.
func (s Snippet) HasTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, t := range s.Tags {
		if strings.ToLower(t) == tag {
			return true
		}
	}
	return false
}

// NormalizeLanguage lowercases and trims a language tag.
// An empty value becomes "auto".
func NormalizeLanguage(language string) string {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		return "auto"
	}
	return language
}

// NormalizeTags lowercases, trims, and deduplicates tags, dropping
// empty entries. Order of first occurrence is preserved.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// ParseTags splits a comma-separated tag list and normalises it.
func ParseTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return NormalizeTags(strings.Split(s, ","))
}

package snippet

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/snip-dev/snip/internal/db"
)

// ErrNotFound is returned when no snippet matches the given key.
var ErrNotFound = errors.New("snippet not found")

// ErrDuplicateName is returned when creating a snippet whose name is taken.
var ErrDuplicateName = errors.New("snippet name already exists")

// Store provides read/write access to the snip SQLite database.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given DB.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Conn exposes the underlying *sql.DB for low-level queries.
func (s *Store) Conn() *sql.DB {
	return s.db.Conn()
}

// Create persists a new snippet.
func (s *Store) Create(sn Snippet) error {
	if err := sn.Validate(); err != nil {
		return err
	}
	_, err := s.db.Conn().Exec(`
		INSERT INTO snippets (id, name, content, language, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sn.ID, sn.Name, sn.Content, sn.Language, marshalTags(sn.Tags),
		sn.CreatedAt.UTC(), sn.UpdatedAt.UTC(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("store: %w: %s", ErrDuplicateName, sn.Name)
		}
		return fmt.Errorf("store: create snippet: %w", err)
	}
	return nil
}

// GetByID returns the snippet with the given ID.
func (s *Store) GetByID(id string) (Snippet, error) {
	return s.getOne(`SELECT `+snippetColumns+` FROM snippets WHERE id = ?`, id)
}

// GetByName returns the snippet with the given name.
func (s *Store) GetByName(name string) (Snippet, error) {
	return s.getOne(`SELECT `+snippetColumns+` FROM snippets WHERE name = ?`, name)
}

// Update rewrites an existing snippet and bumps its updated_at.
func (s *Store) Update(sn Snippet) error {
	if err := sn.Validate(); err != nil {
		return err
	}
	res, err := s.db.Conn().Exec(`
		UPDATE snippets
		SET name = ?, content = ?, language = ?, tags = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		sn.Name, sn.Content, sn.Language, marshalTags(sn.Tags), sn.ID,
	)
	if err != nil {
		return fmt.Errorf("store: update snippet: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("store: %w: %s", ErrNotFound, sn.ID)
	}
	return nil
}

// Delete removes a snippet by ID.
func (s *Store) Delete(id string) error {
	res, err := s.db.Conn().Exec(`DELETE FROM snippets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete snippet: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("store: %w: %s", ErrNotFound, id)
	}
	return nil
}

// DeleteByName removes a snippet by name.
func (s *Store) DeleteByName(name string) error {
	res, err := s.db.Conn().Exec(`DELETE FROM snippets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("store: delete snippet: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("store: %w: %s", ErrNotFound, name)
	}
	return nil
}

// List returns every snippet, most recently updated first.
func (s *Store) List() ([]Snippet, error) {
	return s.list(`SELECT ` + snippetColumns + ` FROM snippets ORDER BY updated_at DESC`)
}

// ListFiltered returns snippets matching the given language and/or tag.
// Empty arguments match everything. The tag filter compares whole tags,
// case-insensitively.
func (s *Store) ListFiltered(language, tag string) ([]Snippet, error) {
	snippets, err := s.List()
	if err != nil {
		return nil, err
	}
	language = strings.ToLower(strings.TrimSpace(language))
	tag = strings.TrimSpace(tag)

	out := snippets[:0]
	for _, sn := range snippets {
		if language != "" && strings.ToLower(sn.Language) != language {
			continue
		}
		if tag != "" && !sn.HasTag(tag) {
			continue
		}
		out = append(out, sn)
	}
	return out, nil
}

// Count returns the number of stored snippets.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.Conn().QueryRow(`SELECT COUNT(*) FROM snippets`).Scan(&n)
	return n, err
}

// TagCount pairs a tag with the number of snippets carrying it.
type TagCount struct {
	Tag   string
	Count int
}

// TagCounts returns every tag in use with its usage count, most used
// first; ties break by tag name.
func (s *Store) TagCounts() ([]TagCount, error) {
	rows, err := s.db.Conn().Query(`SELECT tags FROM snippets WHERE tags != '[]'`)
	if err != nil {
		return nil, fmt.Errorf("store: tag counts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		for _, tag := range unmarshalTags(raw) {
			counts[tag]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out, nil
}

// AddTag attaches a tag to the named snippet. Adding an existing tag
// is a no-op.
func (s *Store) AddTag(name, tag string) error {
	sn, err := s.GetByName(name)
	if err != nil {
		return err
	}
	sn.Tags = NormalizeTags(append(sn.Tags, tag))
	return s.Update(sn)
}

// RemoveTag detaches a tag from the named snippet.
func (s *Store) RemoveTag(name, tag string) error {
	sn, err := s.GetByName(name)
	if err != nil {
		return err
	}
	tag = strings.ToLower(strings.TrimSpace(tag))
	kept := sn.Tags[:0]
	for _, t := range sn.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	sn.Tags = kept
	return s.Update(sn)
}

const snippetColumns = `id, name, content, language, tags, created_at, updated_at`

func (s *Store) getOne(query string, arg any) (Snippet, error) {
	row := s.db.Conn().QueryRow(query, arg)
	sn, err := scanSnippet(row.Scan)
	if err == sql.ErrNoRows {
		return Snippet{}, fmt.Errorf("store: %w: %v", ErrNotFound, arg)
	}
	if err != nil {
		return Snippet{}, fmt.Errorf("store: get snippet: %w", err)
	}
	return sn, nil
}

func (s *Store) list(query string, args ...any) ([]Snippet, error) {
	rows, err := s.db.Conn().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list snippets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snippets []Snippet
	for rows.Next() {
		sn, err := scanSnippet(rows.Scan)
		if err != nil {
			return nil, err
		}
		snippets = append(snippets, sn)
	}
	return snippets, rows.Err()
}

func scanSnippet(scan func(...any) error) (Snippet, error) {
	var sn Snippet
	var tags, createdAt, updatedAt string
	if err := scan(&sn.ID, &sn.Name, &sn.Content, &sn.Language, &tags, &createdAt, &updatedAt); err != nil {
		return sn, err
	}
	sn.Tags = unmarshalTags(tags)
	sn.CreatedAt = parseTime(createdAt)
	sn.UpdatedAt = parseTime(updatedAt)
	return sn, nil
}

func marshalTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(tags)
	return string(b)
}

func unmarshalTags(raw string) []string {
	if raw == "" || raw == "[]" {
		return nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil
	}
	return tags
}

// parseTime handles the timestamp formats SQLite hands back.
func parseTime(s string) time.Time {
	for _, layout := range []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

package menu

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNotFound is returned when no menu document exists for a slug. Slugs that
// fail validation resolve the same way; the filesystem is never consulted for
// them.
var ErrNotFound = errors.New("menu not found")

// InvalidError indicates the menu file exists but is not a usable document.
type InvalidError struct {
	Slug   string
	Reason string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid menu for %q: %s", e.Slug, e.Reason)
}

// Document is one restaurant's menu. Item schema is caller-defined and kept
// as raw JSON so it passes through into the prompt verbatim.
type Document struct {
	RestaurantName string            `json:"restaurant_name"`
	MenuItems      []json.RawMessage `json:"menu_items"`
}

// ItemsJSON returns the menu items serialized as a JSON array.
func (d *Document) ItemsJSON() string {
	b, err := json.Marshal(d.MenuItems)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// Store resolves restaurant slugs to menu documents under a single directory.
// Every Resolve re-reads the backing file, so edits are visible on the next
// request.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Resolve(slug string) (*Document, error) {
	if !ValidSlug(slug) {
		return nil, ErrNotFound
	}
	path := filepath.Join(s.dir, slug+".json")
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, &InvalidError{Slug: slug, Reason: "not valid JSON: " + err.Error()}
	}
	if doc.RestaurantName == "" {
		return nil, &InvalidError{Slug: slug, Reason: "missing restaurant_name"}
	}
	if doc.MenuItems == nil {
		return nil, &InvalidError{Slug: slug, Reason: "missing menu_items"}
	}
	return &doc, nil
}

const maxSlugLen = 64

// ValidSlug reports whether slug is safe to use as a file name component:
// lowercase alphanumerics, underscore, and hyphen only.
func ValidSlug(slug string) bool {
	if slug == "" || len(slug) > maxSlugLen {
		return false
	}
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}

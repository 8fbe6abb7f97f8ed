// Package document stores named migration configuration documents as YAML
// files. A document carries the strategy chosen by the recommender along with
// the answers and reasoning that led to it.
package document

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mirrorplan/mirrorplan/internal/recommend"
	"github.com/mirrorplan/mirrorplan/internal/strategy"
)

var (
	// ErrNotFound is returned when no document has the requested name.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidName is returned for names that cannot be used as file names.
	ErrInvalidName = errors.New("invalid document name")
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

const ext = ".yaml"

// Document is one named configuration.
type Document struct {
	Name         string            `yaml:"name"`
	DataStrategy strategy.ID       `yaml:"dataStrategy"`
	Comment      string            `yaml:"comment,omitempty"`
	Answers      recommend.Answers `yaml:"answers,omitempty"`
	Reasoning    []string          `yaml:"reasoning,omitempty"`
	CreatedAt    time.Time         `yaml:"createdAt"`
	UpdatedAt    time.Time         `yaml:"updatedAt"`
}

// FromResult builds a document for a confirmed recommendation.
func FromResult(name string, snap recommend.Snapshot, comment string) (*Document, error) {
	if !snap.Resolved() {
		return nil, fmt.Errorf("document %q: session has not resolved a strategy (step %s)", name, snap.Step)
	}
	return &Document{
		Name:         name,
		DataStrategy: snap.Strategy,
		Comment:      comment,
		Answers:      snap.Answers.Clone(),
		Reasoning:    append([]string(nil), snap.Reasoning...),
	}, nil
}

// Store reads and writes documents in a single directory.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore returns a Store rooted at dir. The directory is created on the
// first Save.
func NewStore(dir string) *Store {
	return &Store{dir: dir, now: func() time.Time { return time.Now().UTC() }}
}

// Dir returns the directory documents are stored in.
func (s *Store) Dir() string {
	return s.dir
}

// ValidateName checks that name can be stored.
func ValidateName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+ext)
}

// Save creates or replaces the document. CreatedAt of an existing document is
// kept; UpdatedAt is always set to now. doc is updated in place.
func (s *Store) Save(doc *Document) error {
	if err := ValidateName(doc.Name); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating documents directory: %w", err)
	}

	now := s.now()
	existing, err := s.Load(doc.Name)
	switch {
	case err == nil:
		doc.CreatedAt = existing.CreatedAt
	case errors.Is(err, ErrNotFound):
		doc.CreatedAt = now
	default:
		return err
	}
	doc.UpdatedAt = now

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshalling document %q: %w", doc.Name, err)
	}

	// Write then rename so a failed write never truncates the old document.
	tmp := s.path(doc.Name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing document %q: %w", doc.Name, err)
	}
	if err := os.Rename(tmp, s.path(doc.Name)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing document %q: %w", doc.Name, err)
	}
	return nil
}

// Load reads the named document.
func (s *Store) Load(name string) (*Document, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil, fmt.Errorf("reading document %q: %w", name, err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing document %q: %w", name, err)
	}
	doc.Name = name
	return &doc, nil
}

// List returns the stored document names in sorted order. A missing
// directory yields an empty list.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), ext)
		if ValidateName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the named document.
func (s *Store) Delete(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := os.Remove(s.path(name)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return fmt.Errorf("deleting document %q: %w", name, err)
	}
	return nil
}

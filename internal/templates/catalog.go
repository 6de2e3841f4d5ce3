// Package templates manages the catalog of deck templates. Templates are
// loaded from YAML manifests on disk; when no templates directory is
// configured the catalog falls back to a small built-in set so the server is
// usable out of the box.
package templates

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Template describes a single deck template.
type Template struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Layouts     []string `yaml:"layouts" json:"layouts"`
	Fonts       []string `yaml:"fonts,omitempty" json:"fonts,omitempty"`
	Colors      []string `yaml:"colors,omitempty" json:"colors,omitempty"`
}

// Catalog is a concurrency-safe registry of templates. Load replaces the
// whole set atomically, so readers never observe a partially reloaded
// catalog.
type Catalog struct {
	mu        sync.RWMutex
	dir       string
	templates map[string]Template
}

// NewCatalog returns a catalog backed by the given directory. An empty dir
// means built-ins only. The initial load happens inside NewCatalog; a broken
// manifest directory is an error rather than a silent empty catalog.
func NewCatalog(dir string) (*Catalog, error) {
	c := &Catalog{dir: dir}
	if err := c.Load(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load re-reads all manifests from the directory and swaps the template set.
// With no directory configured it installs the built-in templates.
func (c *Catalog) Load() error {
	next := make(map[string]Template)

	if c.dir == "" {
		for _, t := range builtinTemplates() {
			next[t.ID] = t
		}
		c.swap(next)
		return nil
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("templates: read dir %s: %w", c.dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isManifest(entry.Name()) {
			continue
		}
		path := filepath.Join(c.dir, entry.Name())
		t, err := loadManifest(path)
		if err != nil {
			return err
		}
		if _, dup := next[t.ID]; dup {
			return fmt.Errorf("templates: duplicate template id %q in %s", t.ID, path)
		}
		next[t.ID] = t
	}
	if len(next) == 0 {
		for _, t := range builtinTemplates() {
			next[t.ID] = t
		}
	}
	c.swap(next)
	return nil
}

func (c *Catalog) swap(next map[string]Template) {
	c.mu.Lock()
	c.templates = next
	c.mu.Unlock()
}

// Get returns the template with the given id.
func (c *Catalog) Get(id string) (Template, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.templates[id]
	return t, ok
}

// List returns all templates sorted by id.
func (c *Catalog) List() []Template {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Template, 0, len(c.templates))
	for _, t := range c.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Dir returns the manifest directory, empty for built-ins only.
func (c *Catalog) Dir() string { return c.dir }

func isManifest(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

func loadManifest(path string) (Template, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("templates: read %s: %w", path, err)
	}
	var t Template
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return Template{}, fmt.Errorf("templates: parse %s: %w", path, err)
	}
	if t.ID == "" {
		return Template{}, fmt.Errorf("templates: manifest %s has no id", path)
	}
	if t.Name == "" {
		t.Name = t.ID
	}
	return t, nil
}

func builtinTemplates() []Template {
	return []Template{
		{
			ID:          "classic",
			Name:        "Classic",
			Description: "Clean serif template suitable for most business decks",
			Layouts:     []string{"title", "bullets", "two_column", "quote", "closing"},
			Fonts:       []string{"Georgia", "Helvetica"},
			Colors:      []string{"#1a1a2e", "#e8e8e8", "#0f6bae"},
		},
		{
			ID:          "modern",
			Name:        "Modern",
			Description: "High-contrast sans-serif template with image-heavy layouts",
			Layouts:     []string{"title", "bullets", "image", "quote", "closing"},
			Fonts:       []string{"Inter", "Roboto Mono"},
			Colors:      []string{"#0b0c10", "#66fcf1", "#c5c6c7"},
		},
		{
			ID:          "minimal",
			Name:        "Minimal",
			Description: "Sparse monochrome template for technical talks",
			Layouts:     []string{"title", "bullets", "two_column", "closing"},
			Fonts:       []string{"IBM Plex Sans"},
			Colors:      []string{"#ffffff", "#111111"},
		},
	}
}

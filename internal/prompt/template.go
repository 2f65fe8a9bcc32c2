// Package prompt provides the instruction blocks appended to composed
// prompt documents. Blocks are markdown templates with YAML
// frontmatter; built-ins can be overridden per project or per user.
package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/gitprompts/internal/config"
)

// Built-in template names.
const (
	PRDescription = "pr-description"
	CommitMessage = "commit-message"
)

// Template is an instruction block with its metadata.
type Template struct {
	// Metadata from frontmatter
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	// Content is the instruction text after the frontmatter.
	Content string `yaml:"-"`

	// Source is "built-in", "global" or "project".
	Source string `yaml:"-"`
}

// Load finds a template by name.
// Resolution order: project-local, then user global, then built-in.
func Load(name string) (*Template, error) {
	if tmpl, err := loadFromDir(projectTemplatesDir(), name); err == nil {
		tmpl.Source = "project"
		return tmpl, nil
	}
	if tmpl, err := loadFromDir(globalTemplatesDir(), name); err == nil {
		tmpl.Source = "global"
		return tmpl, nil
	}
	if tmpl, err := loadBuiltin(name); err == nil {
		tmpl.Source = "built-in"
		return tmpl, nil
	}
	return nil, fmt.Errorf("template %q not found", name)
}

// List returns every available template, with overrides resolved:
// a project template shadows a global one, which shadows a built-in.
func List() []*Template {
	seen := make(map[string]bool)
	var templates []*Template

	for _, dir := range []struct{ source, path string }{
		{"project", projectTemplatesDir()},
		{"global", globalTemplatesDir()},
	} {
		entries, err := os.ReadDir(dir.path)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := strings.TrimSuffix(entry.Name(), ".md")
			if entry.IsDir() || name == entry.Name() || seen[name] {
				continue
			}
			tmpl, err := loadFromDir(dir.path, name)
			if err != nil {
				continue
			}
			tmpl.Source = dir.source
			seen[name] = true
			templates = append(templates, tmpl)
		}
	}

	for _, name := range []string{PRDescription, CommitMessage} {
		if seen[name] {
			continue
		}
		tmpl, err := loadBuiltin(name)
		if err != nil {
			continue
		}
		tmpl.Source = "built-in"
		templates = append(templates, tmpl)
	}
	return templates
}

func loadFromDir(dir, name string) (*Template, error) {
	if dir == "" {
		return nil, os.ErrNotExist
	}
	data, err := os.ReadFile(filepath.Join(dir, name+".md"))
	if err != nil {
		return nil, err
	}
	return parseTemplate(string(data))
}

// parseTemplate splits YAML frontmatter from the instruction content.
// Files without frontmatter are all content.
func parseTemplate(raw string) (*Template, error) {
	tmpl := &Template{}
	if !strings.HasPrefix(raw, "---\n") {
		tmpl.Content = raw
		return tmpl, nil
	}

	rest := strings.TrimPrefix(raw, "---\n")
	meta, content, found := strings.Cut(rest, "\n---\n")
	if !found {
		return nil, fmt.Errorf("unterminated frontmatter")
	}
	if err := yaml.Unmarshal([]byte(meta), tmpl); err != nil {
		return nil, fmt.Errorf("parsing frontmatter: %w", err)
	}
	tmpl.Content = strings.TrimPrefix(content, "\n")
	return tmpl, nil
}

// projectTemplatesDir is the per-repository override location,
// relative to the working directory.
func projectTemplatesDir() string {
	return filepath.Join(".gitprompts", "templates")
}

func globalTemplatesDir() string {
	dir := config.Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "templates")
}

// ABOUTME: Read-only catalog of known software and task-based recommendations.
// ABOUTME: Data is embedded YAML; lookups are case-insensitive after canonicalization.

package catalog

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Entry describes one known software package. Entries are immutable; the
// catalog is fixed at process start.
type Entry struct {
	Name          string `yaml:"-"`
	Description   string `yaml:"description"`
	LatestVersion string `yaml:"latest_version"`
	Category      string `yaml:"category"`
}

// Catalog maps canonical software names to their entries and tasks to
// recommended software names. It has no mutation operations.
type Catalog struct {
	entries map[string]Entry
	tasks   map[string][]string
}

// Canonicalize trims surrounding whitespace and lowercases a software or task
// name. All lookups operate on canonical names.
func Canonicalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type catalogDoc struct {
	Software map[string]Entry    `yaml:"software"`
	Tasks    map[string][]string `yaml:"tasks"`
}

// Load parses the embedded catalog data.
func Load() (*Catalog, error) {
	return parse(catalogYAML)
}

func parse(data []byte) (*Catalog, error) {
	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog data: %w", err)
	}

	c := &Catalog{
		entries: make(map[string]Entry, len(doc.Software)),
		tasks:   make(map[string][]string, len(doc.Tasks)),
	}
	for name, e := range doc.Software {
		key := Canonicalize(name)
		e.Name = key
		c.entries[key] = e
	}
	for task, recs := range doc.Tasks {
		names := make([]string, 0, len(recs))
		for _, r := range recs {
			key := Canonicalize(r)
			if _, ok := c.entries[key]; !ok {
				return nil, fmt.Errorf("task %q recommends unknown software %q", task, r)
			}
			names = append(names, key)
		}
		c.tasks[Canonicalize(task)] = names
	}
	return c, nil
}

// Lookup returns the entry for the given name. The name is canonicalized
// before lookup. An absent entry is not an error at this layer.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	e, ok := c.entries[Canonicalize(name)]
	return e, ok
}

// Recommendations returns the recommended software names for a task, in the
// catalog's declared order. The task name is canonicalized before lookup.
func (c *Catalog) Recommendations(task string) ([]string, bool) {
	recs, ok := c.tasks[Canonicalize(task)]
	if !ok {
		return nil, false
	}
	out := make([]string, len(recs))
	copy(out, recs)
	return out, true
}

// Names returns all software names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tasks returns all recognized task names in sorted order. Used to build the
// hint on unrecognized-task errors.
func (c *Catalog) Tasks() []string {
	tasks := make([]string, 0, len(c.tasks))
	for task := range c.tasks {
		tasks = append(tasks, task)
	}
	sort.Strings(tasks)
	return tasks
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

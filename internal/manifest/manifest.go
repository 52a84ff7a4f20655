// Package manifest writes and reads manifest.yaml, the machine-readable
// listing of every document a run produced.
package manifest

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"famtree/internal/catalog"
	"famtree/internal/fileutil"
)

// FileName is the manifest location relative to the output root.
const FileName = "manifest.yaml"

// Person lists one person page.
type Person struct {
	Pointer    string `yaml:"pointer"`
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	SurnameKey string `yaml:"surname_key"`
	Path       string `yaml:"path"`
}

// Surname lists one surname page.
type Surname struct {
	Key   string `yaml:"key"`
	Path  string `yaml:"path"`
	Count int    `yaml:"count"`
}

// Manifest describes one generated site.
type Manifest struct {
	RunID        string    `yaml:"run_id"`
	GeneratedAt  time.Time `yaml:"generated_at"`
	Title        string    `yaml:"title"`
	Source       string    `yaml:"source"`
	SourceSHA256 string    `yaml:"source_sha256,omitempty"`
	Index        string    `yaml:"index"`
	Roster       string    `yaml:"roster"`
	Stylesheet   string    `yaml:"stylesheet"`
	People       []Person  `yaml:"people"`
	Surnames     []Surname `yaml:"surnames"`
}

// Documents returns every root-relative document path the manifest lists.
func (m *Manifest) Documents() []string {
	out := []string{m.Index, m.Roster}
	for _, s := range m.Surnames {
		out = append(out, s.Path)
	}
	for _, p := range m.People {
		out = append(out, p.Path)
	}
	return out
}

// FromTable lists the table's people in source order and its surname groups
// sorted by key. Run metadata is left for the caller to fill.
func FromTable(table *catalog.Table) *Manifest {
	planner := table.Planner()
	m := &Manifest{
		Index:  planner.IndexPage(),
		Roster: planner.RosterPage(),
	}
	counts := make(map[string]int)
	for _, e := range table.Entries() {
		m.People = append(m.People, Person{
			Pointer:    e.Pointer,
			ID:         string(e.ID),
			Name:       e.DisplayName,
			SurnameKey: e.SurnameKey,
			Path:       e.LinkPath,
		})
		counts[e.SurnameKey]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		m.Surnames = append(m.Surnames, Surname{Key: k, Path: planner.SurnamePage(k), Count: counts[k]})
	}
	return m
}

// Write encodes m to path atomically.
func Write(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Read decodes the manifest at path.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}

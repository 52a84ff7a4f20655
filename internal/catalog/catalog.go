// Package catalog builds the identifier and path table of a generation run.
//
// The table is built once, before any document is rendered, and never changes
// afterwards. Every link to a person in every view is read from it, which is
// what keeps the views consistent with each other.
package catalog

import (
	"sort"
	"strings"

	"famtree/internal/identity"
	"famtree/internal/layout"
	"famtree/internal/records"
)

// Entry is the table row of one person.
type Entry struct {
	Pointer     string
	ID          identity.ID
	Surname     string
	GivenName   string
	DisplayName string
	BirthDate   string
	DeathDate   string
	SurnameKey  string
	OutputPath  string
	LinkPath    string
}

// Table maps person pointers to their entries. It is safe for concurrent
// reads.
type Table struct {
	planner    *layout.Planner
	entries    []Entry
	index      map[string]int
	duplicates []string
	collisions []string
}

// Build assigns an identifier and location to every person in src. The first
// record wins when a pointer repeats. A person whose planned path is already
// taken is moved to the fallback path of its full identifier.
func Build(src records.Source, planner *layout.Planner) *Table {
	people := src.Individuals()
	t := &Table{
		planner: planner,
		entries: make([]Entry, 0, len(people)),
		index:   make(map[string]int, len(people)),
	}
	claimed := make(map[string]bool, len(people))
	for _, p := range people {
		if _, seen := t.index[p.Pointer]; seen {
			t.duplicates = append(t.duplicates, p.Pointer)
			continue
		}
		id := identity.Assign(p.Pointer)
		loc := planner.Plan(id, p.Name.Surname, p.Name.GivenOrUnknown())
		if claimed[loc.LinkPath] {
			t.collisions = append(t.collisions, p.Pointer)
			loc.LinkPath = planner.Fallback(id)
			loc.OutputPath = planner.OutputPath(loc.LinkPath)
		}
		claimed[loc.LinkPath] = true

		t.index[p.Pointer] = len(t.entries)
		t.entries = append(t.entries, Entry{
			Pointer:     p.Pointer,
			ID:          id,
			Surname:     strings.TrimSpace(p.Name.Surname),
			GivenName:   p.Name.GivenOrUnknown(),
			DisplayName: p.DisplayName(),
			BirthDate:   p.Birth.Date.String(),
			DeathDate:   p.Death.Date.String(),
			SurnameKey:  loc.SurnameKey,
			OutputPath:  loc.OutputPath,
			LinkPath:    loc.LinkPath,
		})
	}
	return t
}

// Planner returns the planner the table was built with.
func (t *Table) Planner() *layout.Planner {
	return t.planner
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Lookup returns the entry for pointer.
func (t *Table) Lookup(pointer string) (Entry, bool) {
	i, ok := t.index[pointer]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Link returns the root-relative link path of p. When p has no entry the
// planner's fallback path is returned and ok is false.
func (t *Table) Link(p *records.Person) (link string, ok bool) {
	if p == nil {
		return "", false
	}
	if e, found := t.Lookup(p.Pointer); found {
		return e.LinkPath, true
	}
	return t.planner.Fallback(identity.Assign(p.Pointer)), false
}

// Entries returns all entries in source order.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Sorted returns all entries ordered by display name, then ID.
func (t *Table) Sorted() []Entry {
	out := t.Entries()
	sort.SliceStable(out, func(i, j int) bool {
		return ByDisplayName(out[i], out[j])
	})
	return out
}

// ByDisplayName orders entries by display name, then ID.
func ByDisplayName(a, b Entry) bool {
	if a.DisplayName != b.DisplayName {
		return a.DisplayName < b.DisplayName
	}
	return a.ID < b.ID
}

// Duplicates lists pointers that appeared more than once in the source.
func (t *Table) Duplicates() []string {
	return append([]string(nil), t.duplicates...)
}

// Collisions lists pointers moved to the fallback path because their planned
// path was already taken.
func (t *Table) Collisions() []string {
	return append([]string(nil), t.collisions...)
}

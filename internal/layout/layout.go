// Package layout plans where each generated document lives in the output tree.
//
// Link paths are always relative to the site root and use forward slashes.
// Views add the parent traversal for their own depth with RelPrefix, so a
// planned path never depends on which document refers to it.
package layout

import (
	"path"
	"path/filepath"
	"strings"

	"famtree/internal/identity"
	"famtree/internal/textutil"
)

// Planner computes output locations. The zero value is not usable; build one
// with NewPlanner or fill every field.
type Planner struct {
	Root         string
	PeopleDir    string
	SurnamesDir  string
	Extension    string
	PrefixLength int
}

// Location is the planned place of a person page.
type Location struct {
	// OutputPath is the absolute file path under Root.
	OutputPath string
	// LinkPath is the site-root-relative path used in links.
	LinkPath string
	// SurnameKey is the normalized surname segment, also the grouping key for
	// surname pages.
	SurnameKey string
}

// NewPlanner returns a planner writing under root.
func NewPlanner(root, peopleDir, surnamesDir, extension string, prefixLength int) *Planner {
	return &Planner{
		Root:         root,
		PeopleDir:    peopleDir,
		SurnamesDir:  surnamesDir,
		Extension:    extension,
		PrefixLength: prefixLength,
	}
}

// SurnameKey returns the grouping key for a surname.
func SurnameKey(surname string) string {
	return textutil.NormalizeSegment(surname)
}

// Plan places a person under <people>/<surname>/<given>_<prefix><ext>.
func (p *Planner) Plan(id identity.ID, surname, given string) Location {
	key := SurnameKey(surname)
	name := textutil.NormalizeSegment(given) + "_" + id.Prefix(p.PrefixLength) + p.Extension
	link := path.Join(p.PeopleDir, key, name)
	return Location{
		OutputPath: p.OutputPath(link),
		LinkPath:   link,
		SurnameKey: key,
	}
}

// Fallback returns the documented link path for a person with no table entry:
// <people>/<id[0]>/<id[1]>/<id><ext>.
func (p *Planner) Fallback(id identity.ID) string {
	s := string(id)
	if len(s) < 2 {
		return path.Join(p.PeopleDir, s+p.Extension)
	}
	return path.Join(p.PeopleDir, s[:1], s[1:2], s+p.Extension)
}

// SurnamePage returns the link path of the page listing a surname group.
func (p *Planner) SurnamePage(surnameKey string) string {
	return path.Join(p.SurnamesDir, surnameKey+p.Extension)
}

// IndexPage returns the link path of the surname index.
func (p *Planner) IndexPage() string {
	return "index" + p.Extension
}

// RosterPage returns the link path of the global person roster.
func (p *Planner) RosterPage() string {
	return "individuals" + p.Extension
}

// OutputPath maps a link path to a file path under Root.
func (p *Planner) OutputPath(linkPath string) string {
	return filepath.Join(p.Root, filepath.FromSlash(linkPath))
}

// RelPrefix returns the "../" traversal that leads from the document at
// docLinkPath back to the site root.
func RelPrefix(docLinkPath string) string {
	depth := strings.Count(path.Clean(docLinkPath), "/")
	return strings.Repeat("../", depth)
}

// Href joins the referring document's prefix with a root-relative link path.
func Href(docLinkPath, target string) string {
	return RelPrefix(docLinkPath) + target
}

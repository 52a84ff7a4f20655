package views

import (
	"famtree/internal/kinship"
	"famtree/internal/records"
)

// OpenDeath is shown for a spouse or chart box without a death date.
const OpenDeath = "..."

// Link is a rendered reference to a person.
type Link struct {
	Name string
	Href string
	// Fallback is set when the person had no table entry.
	Fallback bool
}

// Nav holds the site-level links of a document.
type Nav struct {
	Title   string
	Home    string
	Roster  string
	Surname string
	Style   string
}

// Fact is one labelled line of the summary.
type Fact struct {
	Label  string
	Value  string
	Place  string
	Notes  string
	Source string
}

// Summary describes the person a page is about.
type Summary struct {
	Name       string
	Gender     records.Gender
	Birth      Fact
	Death      Fact
	Occupation string
	Attributes []Fact
	Notes      []string
}

// Row is one person line inside the parents or families block.
type Row struct {
	Relation string
	Link     Link
	Birth    string
	Death    string
	Self     bool
}

// ParentsBlock lists father, mother, the person and their siblings.
type ParentsBlock struct {
	Rows []Row
	// Alternatives counts other parent unions that were not shown.
	Alternatives int
}

// FamilyBlock is one union where the person is a partner.
type FamilyBlock struct {
	Role          kinship.Role
	Spouse        Link
	SpouseBirth   string
	SpouseDeath   string
	MarriageDate  string
	MarriagePlace string
	Children      []Row
}

// PedigreeSpouse is a spouse of the person with the children of that union.
type PedigreeSpouse struct {
	Link     Link
	Children []Link
}

// PedigreeChild is a child of the parent union; the person is marked Self and
// carries their own spouses.
type PedigreeChild struct {
	Link    Link
	Self    bool
	Spouses []PedigreeSpouse
}

// Pedigree is the nested outline father > mother > children.
type Pedigree struct {
	Father   *Link
	Mother   *Link
	Children []PedigreeChild
}

// ChartBox is one placed ancestor.
type ChartBox struct {
	kinship.Box
	Link       Link
	Birth      string
	Death      string
	Gender     records.Gender
	Generation int
}

// Chart is the fixed-depth ancestor chart.
type Chart struct {
	Width      int
	Height     int
	Boxes      []ChartBox
	Connectors []kinship.Box
}

// PersonView is the full model of a person page.
type PersonView struct {
	Nav        Nav
	Pointer    string
	ID         string
	LinkPath   string
	OutputPath string
	Summary    Summary
	Parents    *ParentsBlock
	Families   []FamilyBlock
	Pedigree   *Pedigree
	Chart      *Chart
}

// RosterRow is one line of the global roster.
type RosterRow struct {
	Link  Link
	Birth string
	Death string
}

// RosterView lists every person.
type RosterView struct {
	Nav        Nav
	LinkPath   string
	OutputPath string
	Rows       []RosterRow
}

// SurnameGroup is one surname in the index.
type SurnameGroup struct {
	Key     string
	Label   string
	Href    string
	Members []Link
}

// SurnameIndexView lists every surname with its members.
type SurnameIndexView struct {
	Nav        Nav
	LinkPath   string
	OutputPath string
	Groups     []SurnameGroup
}

// SurnameMember is one person on a surname page.
type SurnameMember struct {
	Link  Link
	Birth string
	Death string
}

// SurnamePageView lists the members of one surname.
type SurnamePageView struct {
	Nav        Nav
	Key        string
	Label      string
	LinkPath   string
	OutputPath string
	Members    []SurnameMember
}

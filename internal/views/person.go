package views

import (
	"famtree/internal/catalog"
	"famtree/internal/kinship"
	"famtree/internal/layout"
	"famtree/internal/records"
)

// DefaultStylePath is the root-relative location of the site stylesheet.
const DefaultStylePath = "css/famtree.css"

// Options tune a Builder.
type Options struct {
	// Title is the site title shown in every document.
	Title string
	// Generations is the tier count of the ancestor chart, the person included.
	Generations int
	// Layout positions the ancestor chart. Defaults to kinship.TreeLayout.
	Layout kinship.LayoutFunc
	// StylePath is the root-relative stylesheet path.
	StylePath string
	// OnFallback is called whenever a link had to use the fallback path.
	OnFallback func(doc string, target *records.Person)
}

// Builder synthesizes views against a frozen table. It keeps no state between
// calls and may be shared by concurrent renderers when OnFallback is safe for
// concurrent use.
type Builder struct {
	table    *catalog.Table
	resolver *kinship.Resolver
	opts     Options
}

// NewBuilder returns a builder over table and resolver.
func NewBuilder(table *catalog.Table, resolver *kinship.Resolver, opts Options) *Builder {
	if opts.Layout == nil {
		opts.Layout = kinship.TreeLayout
	}
	if opts.StylePath == "" {
		opts.StylePath = DefaultStylePath
	}
	if opts.Generations < 1 {
		opts.Generations = 1
	}
	return &Builder{table: table, resolver: resolver, opts: opts}
}

// Person builds the page model of p.
func (b *Builder) Person(p *records.Person) PersonView {
	doc, _ := b.table.Link(p)
	entry, _ := b.table.Lookup(p.Pointer)

	view := PersonView{
		Nav:        b.nav(doc, entry.SurnameKey),
		Pointer:    p.Pointer,
		ID:         string(entry.ID),
		LinkPath:   doc,
		OutputPath: b.table.Planner().OutputPath(doc),
		Summary:    summary(p),
	}

	parents := b.resolver.Parents(p)
	families := b.resolver.Families(p)

	if parents != nil {
		view.Parents = b.parentsBlock(doc, p, parents)
	}
	for _, fam := range families {
		view.Families = append(view.Families, b.familyBlock(doc, fam))
	}
	hasParent := parents != nil && (parents.Father != nil || parents.Mother != nil)
	if hasParent || len(families) > 0 {
		view.Pedigree = b.pedigree(doc, p, parents, families)
	}
	if hasParent {
		view.Chart = b.chart(doc, p)
	}
	return view
}

func summary(p *records.Person) Summary {
	s := Summary{
		Name:       p.DisplayName(),
		Gender:     p.Gender,
		Birth:      Fact{Label: "Born", Value: p.Birth.Date.String(), Place: p.Birth.Place},
		Death:      Fact{Label: "Died", Value: p.Death.Date.String(), Place: p.Death.Place},
		Occupation: p.Occupation,
		Notes:      append([]string(nil), p.Notes...),
	}
	for _, a := range p.Attributes {
		s.Attributes = append(s.Attributes, Fact{
			Label:  a.Type,
			Value:  a.Value,
			Notes:  a.Notes,
			Source: a.Source,
		})
	}
	return s
}

func (b *Builder) parentsBlock(doc string, self *records.Person, parents *kinship.Parents) *ParentsBlock {
	block := &ParentsBlock{Alternatives: parents.Alternatives}
	if parents.Father != nil {
		block.Rows = append(block.Rows, b.row(doc, "Father", parents.Father))
	}
	if parents.Mother != nil {
		block.Rows = append(block.Rows, b.row(doc, "Mother", parents.Mother))
	}
	selfRow := b.row(doc, "Self", self)
	selfRow.Self = true
	block.Rows = append(block.Rows, selfRow)
	for _, sibling := range parents.Siblings {
		block.Rows = append(block.Rows, b.row(doc, siblingLabel(sibling.Gender), sibling))
	}
	return block
}

func (b *Builder) familyBlock(doc string, fam kinship.Family) FamilyBlock {
	birth, death := b.dates(fam.Spouse)
	if death == "" {
		death = OpenDeath
	}
	block := FamilyBlock{
		Role:          fam.Role,
		Spouse:        b.link(doc, fam.Spouse),
		SpouseBirth:   birth,
		SpouseDeath:   death,
		MarriageDate:  fam.Marriage.Date.String(),
		MarriagePlace: fam.Marriage.Place,
	}
	for _, child := range fam.Children {
		block.Children = append(block.Children, b.row(doc, childLabel(child.Gender), child))
	}
	return block
}

func (b *Builder) pedigree(doc string, self *records.Person, parents *kinship.Parents, families []kinship.Family) *Pedigree {
	ped := &Pedigree{}
	var children []*records.Person
	if parents != nil {
		if parents.Father != nil {
			l := b.link(doc, parents.Father)
			ped.Father = &l
		}
		if parents.Mother != nil {
			l := b.link(doc, parents.Mother)
			ped.Mother = &l
		}
		children = parents.Union.Children
	}
	if parents == nil || !parents.Union.HasChild(self) {
		children = append(append([]*records.Person(nil), children...), self)
	}

	for _, child := range children {
		entry := PedigreeChild{Link: b.link(doc, child), Self: child == self}
		if entry.Self {
			for _, fam := range families {
				spouse := PedigreeSpouse{Link: b.link(doc, fam.Spouse)}
				for _, c := range fam.Children {
					spouse.Children = append(spouse.Children, b.link(doc, c))
				}
				entry.Spouses = append(entry.Spouses, spouse)
			}
		}
		ped.Children = append(ped.Children, entry)
	}
	return ped
}

func (b *Builder) chart(doc string, p *records.Person) *Chart {
	root := b.resolver.AncestorChain(p, b.opts.Generations)
	placed := b.opts.Layout(root, b.opts.Generations)
	out := &Chart{
		Width:      placed.Width,
		Height:     placed.Height,
		Connectors: placed.Connectors,
	}
	for _, pl := range placed.Placements {
		birth, death := b.dates(pl.Node.Person)
		if death == "" {
			death = OpenDeath
		}
		out.Boxes = append(out.Boxes, ChartBox{
			Box:        pl.Box,
			Link:       b.link(doc, pl.Node.Person),
			Birth:      birth,
			Death:      death,
			Gender:     pl.Node.Person.Gender,
			Generation: pl.Node.Generation,
		})
	}
	return out
}

func (b *Builder) row(doc, relation string, p *records.Person) Row {
	birth, death := b.dates(p)
	return Row{
		Relation: relation,
		Link:     b.link(doc, p),
		Birth:    birth,
		Death:    death,
	}
}

// link resolves p through the table and prefixes it for doc.
func (b *Builder) link(doc string, p *records.Person) Link {
	target, ok := b.table.Link(p)
	if !ok && b.opts.OnFallback != nil {
		b.opts.OnFallback(doc, p)
	}
	name := p.DisplayName()
	if entry, found := b.table.Lookup(p.Pointer); found {
		name = entry.DisplayName
	}
	return Link{Name: name, Href: layout.Href(doc, target), Fallback: !ok}
}

func (b *Builder) dates(p *records.Person) (birth, death string) {
	if entry, ok := b.table.Lookup(p.Pointer); ok {
		return entry.BirthDate, entry.DeathDate
	}
	return p.Birth.Date.String(), p.Death.Date.String()
}

func (b *Builder) nav(doc, surnameKey string) Nav {
	planner := b.table.Planner()
	nav := Nav{
		Title:  b.opts.Title,
		Home:   layout.Href(doc, planner.IndexPage()),
		Roster: layout.Href(doc, planner.RosterPage()),
		Style:  layout.Href(doc, b.opts.StylePath),
	}
	if surnameKey != "" {
		nav.Surname = layout.Href(doc, planner.SurnamePage(surnameKey))
	}
	return nav
}

func siblingLabel(g records.Gender) string {
	switch g {
	case records.GenderFemale:
		return "Sister"
	case records.GenderMale:
		return "Brother"
	default:
		return "Sibling"
	}
}

func childLabel(g records.Gender) string {
	switch g {
	case records.GenderFemale:
		return "Daughter"
	case records.GenderMale:
		return "Son"
	default:
		return "Child"
	}
}

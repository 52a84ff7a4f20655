package gedcom

import (
	"fmt"
	"os"
	"strings"

	"famtree/internal/records"
)

// attributeLabels maps the individual attribute tags famtree keeps to their
// display labels.
var attributeLabels = map[string]string{
	"RFN":  "Record file number",
	"REFN": "Reference number",
	"AFN":  "Ancestral file number",
	"IDNO": "Identification number",
	"TITL": "Title",
	"RELI": "Religion",
	"NATI": "Nationality",
	"EDUC": "Education",
	"RESI": "Residence",
	"DSCR": "Physical description",
	"CAST": "Caste",
	"PROP": "Property",
	"SSN":  "Social security number",
	"FACT": "Fact",
}

// Load reads and builds the GEDCOM file at path.
func Load(path string) (*records.Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gedcom: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return Build(doc), nil
}

type builder struct {
	doc    *Document
	coll   *records.Collection
	unions map[string]*records.Union
}

// Build maps a decoded document onto the record model. Unresolvable pointers
// are dropped; they never fail the build.
func Build(doc *Document) *records.Collection {
	b := &builder{
		doc:    doc,
		coll:   records.NewCollection(),
		unions: make(map[string]*records.Union),
	}

	individuals := doc.RecordsByTag("INDI")
	for _, rec := range individuals {
		b.coll.AddPerson(b.person(rec))
	}

	families := doc.RecordsByTag("FAM")
	ordered := make([]*records.Union, 0, len(families))
	for _, rec := range families {
		u := b.union(rec)
		b.unions[rec.XRef] = u
		ordered = append(ordered, u)
	}

	// Links declared on the person come first so FAMC/FAMS order decides
	// which union is considered first.
	for _, rec := range individuals {
		p, ok := b.coll.Individual(rec.XRef)
		if !ok {
			continue
		}
		for _, famc := range rec.All("FAMC") {
			if u, ok := b.unions[strings.TrimSpace(famc.Value)]; ok {
				b.coll.LinkChild(p, u)
			}
		}
		for _, fams := range rec.All("FAMS") {
			if u, ok := b.unions[strings.TrimSpace(fams.Value)]; ok {
				b.coll.LinkSpouse(p, u)
			}
		}
	}
	for _, u := range ordered {
		b.coll.AddUnion(u)
	}
	return b.coll
}

func (b *builder) person(rec *Node) *records.Person {
	p := &records.Person{
		Pointer: rec.XRef,
		Name:    parseName(rec.Child("NAME")),
		Gender:  records.ParseGender(rec.ChildValue("SEX")),
		Birth:   event(rec.Child("BIRT")),
		Death:   event(rec.Child("DEAT")),
	}
	if occ := rec.Child("OCCU"); occ != nil {
		p.Occupation = strings.TrimSpace(occ.Value)
	}
	for _, child := range rec.Children {
		label, ok := attributeLabels[child.Tag]
		if !ok {
			continue
		}
		if t := child.ChildValue("TYPE"); t != "" && child.Tag == "FACT" {
			label = t
		}
		p.Attributes = append(p.Attributes, records.Attribute{
			Type:   label,
			Value:  strings.TrimSpace(child.Value),
			Notes:  strings.Join(b.notes(child), "\n"),
			Source: b.source(child.Child("SOUR")),
		})
	}
	p.Notes = b.notes(rec)
	return p
}

func (b *builder) union(rec *Node) *records.Union {
	u := &records.Union{
		Pointer:  rec.XRef,
		Husband:  b.lookup(rec.ChildValue("HUSB")),
		Wife:     b.lookup(rec.ChildValue("WIFE")),
		Marriage: event(rec.Child("MARR")),
	}
	for _, c := range rec.All("CHIL") {
		if child := b.lookup(strings.TrimSpace(c.Value)); child != nil {
			u.Children = append(u.Children, child)
		}
	}
	return u
}

func (b *builder) lookup(pointer string) *records.Person {
	if pointer == "" {
		return nil
	}
	p, _ := b.coll.Individual(pointer)
	return p
}

// notes resolves inline NOTE values and NOTE record pointers under n.
func (b *builder) notes(n *Node) []string {
	var out []string
	for _, note := range n.All("NOTE") {
		text := note.Value
		if ref := strings.TrimSpace(text); isPointer(ref) {
			rec, ok := b.doc.Record(ref)
			if !ok {
				continue
			}
			text = rec.Value
		}
		if text = strings.TrimSpace(text); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// source returns the title of a referenced SOUR record, or the inline text.
func (b *builder) source(n *Node) string {
	if n == nil {
		return ""
	}
	value := strings.TrimSpace(n.Value)
	if isPointer(value) {
		rec, ok := b.doc.Record(value)
		if !ok {
			return ""
		}
		if title := rec.ChildValue("TITL"); title != "" {
			return title
		}
		return strings.TrimSpace(rec.Value)
	}
	return value
}

func event(n *Node) records.Event {
	if n == nil {
		return records.Event{}
	}
	return records.Event{
		Date:  records.NewDate(n.ChildValue("DATE")),
		Place: n.ChildValue("PLAC"),
	}
}

// parseName splits "Given /Surname/ Suffix". GIVN and SURN sub-records take
// precedence when present.
func parseName(n *Node) records.Name {
	if n == nil {
		return records.Name{}
	}
	var name records.Name
	value := strings.TrimSpace(n.Value)
	if start := strings.Index(value, "/"); start >= 0 {
		name.Given = strings.TrimSpace(value[:start])
		rest := value[start+1:]
		if end := strings.Index(rest, "/"); end >= 0 {
			name.Surname = strings.TrimSpace(rest[:end])
		} else {
			name.Surname = strings.TrimSpace(rest)
		}
	} else {
		name.Given = value
	}
	if givn := n.ChildValue("GIVN"); givn != "" {
		name.Given = givn
	}
	if surn := n.ChildValue("SURN"); surn != "" {
		name.Surname = surn
	}
	name.Given = strings.Join(strings.Fields(name.Given), " ")
	name.Surname = strings.Join(strings.Fields(name.Surname), " ")
	return name
}

func isPointer(value string) bool {
	return len(value) > 2 && strings.HasPrefix(value, "@") && strings.HasSuffix(value, "@")
}

package records

import "strings"

// UnknownMarker replaces name or date values that are missing or unreadable.
const UnknownMarker = "unknown"

// UnknownName is shown when a person has neither given name nor surname.
const UnknownName = "Unknown"

// Gender of a person as recorded in the source.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

// ParseGender maps a GEDCOM SEX value to a Gender.
func ParseGender(code string) Gender {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "M":
		return GenderMale
	case "F":
		return GenderFemale
	default:
		return GenderUnknown
	}
}

// Name holds the two name parts famtree uses for display and placement.
type Name struct {
	Given   string
	Surname string
}

// GivenOrUnknown returns the given name, or UnknownName when empty.
func (n Name) GivenOrUnknown() string {
	if g := strings.TrimSpace(n.Given); g != "" {
		return g
	}
	return UnknownName
}

// SurnameOrUnknown returns the surname, or UnknownName when empty.
func (n Name) SurnameOrUnknown() string {
	if s := strings.TrimSpace(n.Surname); s != "" {
		return s
	}
	return UnknownName
}

// Display formats the name as "Surname, Given". A missing surname yields the
// given name alone; a fully empty name yields UnknownName.
func (n Name) Display() string {
	given := strings.TrimSpace(n.Given)
	surname := strings.TrimSpace(n.Surname)
	switch {
	case surname != "" && given != "":
		return surname + ", " + given
	case surname != "":
		return surname + ", " + UnknownName
	case given != "":
		return given
	default:
		return UnknownName
	}
}

// Event is a dated, placed life event.
type Event struct {
	Date  Date
	Place string
}

// IsZero reports whether neither date nor place was recorded.
func (e Event) IsZero() bool {
	return e.Date.IsZero() && strings.TrimSpace(e.Place) == ""
}

// Attribute is a freeform tagged fact about a person.
type Attribute struct {
	Type   string
	Value  string
	Notes  string
	Source string
}

// Person is a single individual record.
type Person struct {
	Pointer    string
	Name       Name
	Gender     Gender
	Birth      Event
	Death      Event
	Occupation string
	Attributes []Attribute
	Notes      []string
}

// DisplayName is shorthand for p.Name.Display().
func (p *Person) DisplayName() string {
	if p == nil {
		return UnknownName
	}
	return p.Name.Display()
}

// Union is a marriage or partnership. Children keep source order.
type Union struct {
	Pointer  string
	Husband  *Person
	Wife     *Person
	Children []*Person
	Marriage Event
}

// HasChild reports whether p is listed as a child of u.
func (u *Union) HasChild(p *Person) bool {
	for _, c := range u.Children {
		if c == p {
			return true
		}
	}
	return false
}

// Source is the read-only record collection the generator consumes.
type Source interface {
	// Individuals returns every person in source order.
	Individuals() []*Person
	// Individual looks a person up by pointer.
	Individual(pointer string) (*Person, bool)
	// ChildUnions returns the unions listing the person as a child.
	ChildUnions(pointer string) []*Union
	// SpouseUnions returns the unions listing the person as husband or wife.
	SpouseUnions(pointer string) []*Union
}

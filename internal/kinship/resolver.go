package kinship

import (
	"fmt"

	"famtree/internal/records"
)

// ParentPolicy selects one parent union when a person is a child in several.
type ParentPolicy string

const (
	// FirstInSourceOrder picks the first union in link order.
	FirstInSourceOrder ParentPolicy = "first"
	// LastInSourceOrder picks the last union in link order.
	LastInSourceOrder ParentPolicy = "last"
)

// ParsePolicy maps a configuration value to a ParentPolicy.
func ParsePolicy(value string) (ParentPolicy, error) {
	switch ParentPolicy(value) {
	case FirstInSourceOrder, "":
		return FirstInSourceOrder, nil
	case LastInSourceOrder:
		return LastInSourceOrder, nil
	default:
		return "", fmt.Errorf("unknown parent policy %q", value)
	}
}

// Role is the label of a spouse relative to the person.
type Role string

const (
	RoleWife    Role = "Wife"
	RoleHusband Role = "Husband"
)

// Parents is the resolved parent union of a person.
type Parents struct {
	Union  *records.Union
	Father *records.Person
	Mother *records.Person
	// Siblings are the other children of Union in source order.
	Siblings []*records.Person
	// Alternatives counts child unions the policy did not choose.
	Alternatives int
}

// Family is one union in which the person is a partner.
type Family struct {
	Union    *records.Union
	Spouse   *records.Person
	Role     Role
	Children []*records.Person
	Marriage records.Event
}

// Resolver answers relationship queries against a Source.
type Resolver struct {
	src    records.Source
	policy ParentPolicy
}

// NewResolver returns a resolver using policy for parent selection.
func NewResolver(src records.Source, policy ParentPolicy) *Resolver {
	if policy == "" {
		policy = FirstInSourceOrder
	}
	return &Resolver{src: src, policy: policy}
}

// Source returns the record source the resolver reads.
func (r *Resolver) Source() records.Source {
	return r.src
}

// ParentUnions lists every union naming p as a child, in link order.
func (r *Resolver) ParentUnions(p *records.Person) []*records.Union {
	if p == nil {
		return nil
	}
	return r.src.ChildUnions(p.Pointer)
}

// Parents applies the policy to ParentUnions. Returns nil when p is a child in
// no union.
func (r *Resolver) Parents(p *records.Person) *Parents {
	unions := r.ParentUnions(p)
	if len(unions) == 0 {
		return nil
	}
	chosen := unions[0]
	if r.policy == LastInSourceOrder {
		chosen = unions[len(unions)-1]
	}
	out := &Parents{
		Union:        chosen,
		Father:       chosen.Husband,
		Mother:       chosen.Wife,
		Alternatives: len(unions) - 1,
	}
	for _, child := range chosen.Children {
		if child != p {
			out.Siblings = append(out.Siblings, child)
		}
	}
	return out
}

// Families lists the unions where p is a partner and the other partner is
// known. The role comes from the slot p occupies; when p is in neither slot
// the gender decides.
func (r *Resolver) Families(p *records.Person) []Family {
	if p == nil {
		return nil
	}
	var out []Family
	for _, u := range r.src.SpouseUnions(p.Pointer) {
		var spouse *records.Person
		var role Role
		switch {
		case u.Husband == p:
			spouse, role = u.Wife, RoleWife
		case u.Wife == p:
			spouse, role = u.Husband, RoleHusband
		case p.Gender == records.GenderMale:
			spouse, role = u.Wife, RoleWife
		default:
			spouse, role = u.Husband, RoleHusband
		}
		if spouse == nil {
			continue
		}
		out = append(out, Family{
			Union:    u,
			Spouse:   spouse,
			Role:     role,
			Children: append([]*records.Person(nil), u.Children...),
			Marriage: u.Marriage,
		})
	}
	return out
}

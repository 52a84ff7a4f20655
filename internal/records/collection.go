package records

// Collection is an in-memory Source. Loaders add people first, link unions in
// the order the person record lists them, then register every union so members
// without a back reference are linked as well.
type Collection struct {
	people       []*Person
	byPointer    map[string]*Person
	unions       []*Union
	unionSeen    map[*Union]bool
	childUnions  map[string][]*Union
	spouseUnions map[string][]*Union
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{
		byPointer:    make(map[string]*Person),
		unionSeen:    make(map[*Union]bool),
		childUnions:  make(map[string][]*Union),
		spouseUnions: make(map[string][]*Union),
	}
}

// AddPerson registers p. A repeated pointer keeps both records in source
// order, but lookups keep returning the first.
func (c *Collection) AddPerson(p *Person) {
	if p == nil {
		return
	}
	c.people = append(c.people, p)
	if _, exists := c.byPointer[p.Pointer]; !exists {
		c.byPointer[p.Pointer] = p
	}
}

// LinkChild records that p is a child of u, unless already linked.
func (c *Collection) LinkChild(p *Person, u *Union) {
	if p == nil || u == nil {
		return
	}
	c.childUnions[p.Pointer] = appendUnique(c.childUnions[p.Pointer], u)
}

// LinkSpouse records that p is a partner in u, unless already linked.
func (c *Collection) LinkSpouse(p *Person, u *Union) {
	if p == nil || u == nil {
		return
	}
	c.spouseUnions[p.Pointer] = appendUnique(c.spouseUnions[p.Pointer], u)
}

// AddUnion registers u and links its partners and children.
func (c *Collection) AddUnion(u *Union) {
	if u == nil || c.unionSeen[u] {
		return
	}
	c.unionSeen[u] = true
	c.unions = append(c.unions, u)
	c.LinkSpouse(u.Husband, u)
	c.LinkSpouse(u.Wife, u)
	for _, child := range u.Children {
		c.LinkChild(child, u)
	}
}

// Unions returns every registered union in registration order.
func (c *Collection) Unions() []*Union {
	return append([]*Union(nil), c.unions...)
}

// Individuals implements Source.
func (c *Collection) Individuals() []*Person {
	return append([]*Person(nil), c.people...)
}

// Individual implements Source.
func (c *Collection) Individual(pointer string) (*Person, bool) {
	p, ok := c.byPointer[pointer]
	return p, ok
}

// ChildUnions implements Source.
func (c *Collection) ChildUnions(pointer string) []*Union {
	return append([]*Union(nil), c.childUnions[pointer]...)
}

// SpouseUnions implements Source.
func (c *Collection) SpouseUnions(pointer string) []*Union {
	return append([]*Union(nil), c.spouseUnions[pointer]...)
}

func appendUnique(list []*Union, u *Union) []*Union {
	for _, existing := range list {
		if existing == u {
			return list
		}
	}
	return append(list, u)
}

package testsupport

import (
	"testing"

	"famtree/internal/records"
)

// Family builds an in-memory records.Source for tests.
type Family struct {
	t    testing.TB
	coll *records.Collection
}

// NewFamily returns an empty fixture builder.
func NewFamily(t testing.TB) *Family {
	t.Helper()
	return &Family{t: t, coll: records.NewCollection()}
}

// Person adds an individual and returns it for further customization.
func (f *Family) Person(pointer, given, surname string, gender records.Gender) *records.Person {
	f.t.Helper()
	if _, exists := f.coll.Individual(pointer); exists {
		f.t.Fatalf("duplicate fixture pointer %s", pointer)
	}
	p := &records.Person{
		Pointer: pointer,
		Name:    records.Name{Given: given, Surname: surname},
		Gender:  gender,
	}
	f.coll.AddPerson(p)
	return p
}

// Union adds a union. Either partner may be nil.
func (f *Family) Union(pointer string, husband, wife *records.Person, children ...*records.Person) *records.Union {
	f.t.Helper()
	u := &records.Union{
		Pointer:  pointer,
		Husband:  husband,
		Wife:     wife,
		Children: children,
	}
	f.coll.AddUnion(u)
	return u
}

// Source returns the built collection.
func (f *Family) Source() *records.Collection {
	return f.coll
}

// Born sets the birth date of p.
func Born(p *records.Person, date string) *records.Person {
	p.Birth.Date = records.NewDate(date)
	return p
}

// Died sets the death date of p.
func Died(p *records.Person, date string) *records.Person {
	p.Death.Date = records.NewDate(date)
	return p
}

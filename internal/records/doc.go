// Package records defines the person and union model that every other famtree
// package consumes, and the Source interface a record loader implements.
//
// Records are immutable once loaded. Relationship views (parents, families,
// ancestors) are derived on demand by the kinship package and never stored
// here.
package records

// Package kinship resolves parents, siblings, spouses, children and ancestor
// chains from a records.Source.
//
// Nothing is cached: every call walks the source again, so results always
// reflect the loaded records. A missing relation is never an error; the
// corresponding result is nil or empty.
package kinship

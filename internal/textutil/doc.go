// Package textutil normalizes names into filesystem-safe path segments.
//
// NormalizeSegment is the single normalization used for every person path
// segment, surname page filename and surname grouping key. Two call sites that
// derive a segment from the same name must always agree, so nothing else in
// famtree lower-cases or strips names on its own.
package textutil

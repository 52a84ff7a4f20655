// Package generator runs one complete site generation.
//
// A run holds the state lock, loads the GEDCOM file, builds the identifier and
// path table for every person (pass one), then renders every person page and
// the aggregate pages against that frozen table (pass two). Person pages may
// render on several workers; the first write failure aborts the run.
package generator

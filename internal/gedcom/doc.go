// Package gedcom reads GEDCOM 5.5 files into the famtree record model.
//
// Decode turns the line-oriented format into a tree of nodes, joining CONC and
// CONT continuation lines into their parent value. Build maps INDI, FAM, NOTE
// and SOUR records onto records.Person and records.Union values; Load combines
// both for a file on disk.
package gedcom

// Package store keeps the history of generation runs in SQLite.
//
// Each successful run records its identifier and link path table, so later
// runs can detect drift: a pointer whose identifier or link changed between
// two runs breaks every external bookmark to that person.
package store

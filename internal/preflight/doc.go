// Package preflight provides readiness checks for the files and directories a
// generator run depends on.
//
// The CLI "famtree config validate" command runs every check and prints the
// results. A failed check does not stop validation; it tells the operator
// which path needs attention before `famtree generate` is run.
package preflight

package store

import (
	"context"
	"fmt"
	"sort"
)

// ChangeKind classifies a drift entry.
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeRemoved  ChangeKind = "removed"
	ChangeID       ChangeKind = "id_changed"
	ChangeLinkPath ChangeKind = "link_changed"
)

// Change is one pointer whose table row differs between two runs.
type Change struct {
	Pointer string
	Kind    ChangeKind
	Before  string
	After   string
}

// DriftReport compares the two most recent successful runs.
type DriftReport struct {
	Previous Run
	Current  Run
	Changes  []Change
}

// SameInput reports whether both runs read identical GEDCOM content.
func (r *DriftReport) SameInput() bool {
	return r.Previous.GEDCOMSHA256 != "" && r.Previous.GEDCOMSHA256 == r.Current.GEDCOMSHA256
}

// Drift returns nil when fewer than two successful runs are stored.
func (s *Store) Drift(ctx context.Context) (*DriftReport, error) {
	recent, err := s.recentSucceeded(ctx, 2)
	if err != nil {
		return nil, err
	}
	if len(recent) < 2 {
		return nil, nil
	}

	report := &DriftReport{Current: recent[0], Previous: recent[1]}
	before, err := s.Entries(ctx, report.Previous.ID)
	if err != nil {
		return nil, err
	}
	after, err := s.Entries(ctx, report.Current.ID)
	if err != nil {
		return nil, err
	}
	report.Changes = Compare(before, after)
	return report, nil
}

func (s *Store) recentSucceeded(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE status = ? ORDER BY seq DESC LIMIT ?`, StatusSucceeded, limit)
	if err != nil {
		return nil, fmt.Errorf("select recent runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Compare lists the differences between two stored tables, ordered by pointer.
func Compare(before, after []EntryRecord) []Change {
	old := make(map[string]EntryRecord, len(before))
	for _, e := range before {
		old[e.Pointer] = e
	}
	var changes []Change
	seen := make(map[string]bool, len(after))
	for _, e := range after {
		seen[e.Pointer] = true
		prev, ok := old[e.Pointer]
		switch {
		case !ok:
			changes = append(changes, Change{Pointer: e.Pointer, Kind: ChangeAdded, After: e.LinkPath})
		case prev.PersonID != e.PersonID:
			changes = append(changes, Change{Pointer: e.Pointer, Kind: ChangeID, Before: prev.PersonID, After: e.PersonID})
		case prev.LinkPath != e.LinkPath:
			changes = append(changes, Change{Pointer: e.Pointer, Kind: ChangeLinkPath, Before: prev.LinkPath, After: e.LinkPath})
		}
	}
	for _, e := range before {
		if !seen[e.Pointer] {
			changes = append(changes, Change{Pointer: e.Pointer, Kind: ChangeRemoved, Before: e.LinkPath})
		}
	}
	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].Pointer < changes[j].Pointer
	})
	return changes
}

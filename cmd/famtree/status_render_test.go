package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderStatusLine(t *testing.T) {
	tests := []struct {
		name    string
		kind    statusKind
		message string
		want    string
	}{
		{name: "fact", kind: statusFact, message: "ppl/doe/ann_abc.html", want: "  Link path            ppl/doe/ann_abc.html"},
		{name: "empty fact", kind: statusFact, message: " ", want: "  Link path            -"},
		{name: "ok", kind: statusOK, message: "3 pages", want: "  Link path            ok 3 pages"},
		{name: "notice", kind: statusNotice, message: "2", want: "  Link path            note 2"},
		{name: "broken", kind: statusBroken, message: "1", want: "  Link path            broken 1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := renderStatusLine("Link path", tc.kind, tc.message, false); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRenderStatusLineColorizesMarkerOnly(t *testing.T) {
	got := renderStatusLine("Broken links", statusBroken, "4", true)
	if !strings.Contains(got, ansiRed+"broken"+ansiReset+" 4") {
		t.Fatalf("expected coloured marker, got %q", got)
	}
	if plain := renderStatusLine("Run", statusFact, "abc", true); strings.Contains(plain, "\x1b[") {
		t.Fatalf("facts must stay uncoloured, got %q", plain)
	}
}

func TestStatusReportTally(t *testing.T) {
	var buf bytes.Buffer
	status := newStatusReport(&buf)
	status.section("Generation")
	status.tally("Fallback links", 0, statusNotice, "")
	status.tally("Duplicate pointers", 2, statusNotice, "@I1@ @I2@")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %q", buf.String())
	}
	if lines[0] != "Generation" || lines[1] != "==========" {
		t.Fatalf("unexpected section header %q", lines[:2])
	}
	if !strings.HasSuffix(lines[2], "ok 0") {
		t.Fatalf("zero count should be ok, got %q", lines[2])
	}
	if !strings.HasSuffix(lines[3], "note 2 (@I1@ @I2@)") {
		t.Fatalf("unexpected tally line %q", lines[3])
	}
}

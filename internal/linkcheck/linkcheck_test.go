package linkcheck

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"famtree/internal/testsupport"
)

func TestLinks(t *testing.T) {
	page := `<html><head><link rel="stylesheet" href="css/site.css"></head>
<body><a href="a.html">A</a><p><a href="b/c.html#top">C</a><a name="x">no href</a></p></body></html>`
	got, err := Links(strings.NewReader(page))
	if err != nil {
		t.Fatalf("Links: %v", err)
	}
	want := []string{"css/site.css", "a.html", "b/c.html#top"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("Links = %v, want %v", got, want)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		doc, href string
		target    string
		local     bool
	}{
		{"ppl/doe/a.html", "../../ppl/roe/b.html", "ppl/roe/b.html", true},
		{"index.html", "surnames/m%c3%bcller.html", "surnames/müller.html", true},
		{"index.html", "https://example.com/x", "", false},
		{"index.html", "#top", "", false},
		{"index.html", "../outside.html", "", true},
		{"index.html", "/abs.html", "", true},
	}
	for _, tt := range tests {
		target, local := Resolve(tt.doc, tt.href)
		if target != tt.target || local != tt.local {
			t.Errorf("Resolve(%q, %q) = %q, %v; want %q, %v", tt.doc, tt.href, target, local, tt.target, tt.local)
		}
	}
}

func TestCheck(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteText(t, filepath.Join(root, "index.html"),
		`<a href="ppl/doe/a.html">A</a><a href="ppl/doe/missing.html">M</a><a href="https://example.com">E</a>`)
	testsupport.WriteText(t, filepath.Join(root, "ppl", "doe", "a.html"),
		`<link href="../../css/s.css"><a href="../../index.html">home</a>`)
	testsupport.WriteText(t, filepath.Join(root, "css", "s.css"), "body{}")

	report, err := Check(context.Background(), root, ".html")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if report.Documents != 2 || report.Links != 5 || report.External != 1 {
		t.Fatalf("unexpected counts %+v", report)
	}
	if report.OK() || len(report.Broken) != 1 {
		t.Fatalf("expected one broken link, got %+v", report.Broken)
	}
	if b := report.Broken[0]; b.Document != "index.html" || b.Target != "ppl/doe/missing.html" {
		t.Fatalf("unexpected broken link %+v", b)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Check(ctx, root, ".html"); err == nil {
		t.Fatal("expected cancelled context to abort the check")
	}
}

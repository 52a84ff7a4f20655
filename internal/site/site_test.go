package site_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"famtree/internal/catalog"
	"famtree/internal/kinship"
	"famtree/internal/layout"
	"famtree/internal/records"
	"famtree/internal/site"
	"famtree/internal/testsupport"
	"famtree/internal/views"
)

func fixture(t *testing.T) (*views.Builder, records.Source) {
	t.Helper()
	fam := testsupport.NewFamily(t)
	f := testsupport.Born(fam.Person("@F@", "Frank", "Doe", records.GenderMale), "1900")
	m := fam.Person("@M@", "Mia", "Müller", records.GenderFemale)
	c := fam.Person("@C@", "Cal", "Doe", records.GenderMale)
	c.Notes = []string{"Moved to **Leeds**.\n\n<script>alert(1)</script>"}
	c.Attributes = []records.Attribute{{Type: "Religion", Value: "Quaker", Source: "Parish register"}}
	fam.Union("@U@", f, m, c)

	planner := layout.NewPlanner(t.TempDir(), "ppl", "surnames", ".html", 8)
	table := catalog.Build(fam.Source(), planner)
	resolver := kinship.NewResolver(fam.Source(), kinship.FirstInSourceOrder)
	return views.NewBuilder(table, resolver, views.Options{Title: "Doe Family", Generations: 3}), fam.Source()
}

func TestPersonPage(t *testing.T) {
	builder, src := fixture(t)
	r, err := site.New(site.Options{Markdown: true, Generated: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	child, _ := src.Individual("@C@")
	view := builder.Person(child)

	var buf bytes.Buffer
	if err := r.Person(&buf, view); err != nil {
		t.Fatalf("Person: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"<title>Doe, Cal - Doe Family</title>",
		`href="../../css/famtree.css"`,
		`<section id="parents">`,
		`<section id="pedigree">`,
		`<section id="ancestors">`,
		"<strong>Leeds</strong>",
		"Quaker",
		"Parish register",
		"*1900",
		"+...",
		"Generated 2024-05-01 12:00:00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("person page missing %q", want)
		}
	}
	if strings.Contains(out, "<script>") {
		t.Error("expected raw HTML in notes to be dropped")
	}
	if strings.Contains(out, `<section id="families">`) {
		t.Error("expected no families section")
	}
	if !strings.Contains(out, view.Parents.Rows[0].Link.Href) {
		t.Errorf("expected father href %q in output", view.Parents.Rows[0].Link.Href)
	}
}

func TestPlainNotesAreEscaped(t *testing.T) {
	builder, src := fixture(t)
	r, err := site.New(site.Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	child, _ := src.Individual("@C@")
	var buf bytes.Buffer
	if err := r.Person(&buf, builder.Person(child)); err != nil {
		t.Fatalf("Person: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Error("expected escaped script tag")
	}
	if !strings.Contains(out, "Moved to **Leeds**.<br>") {
		t.Error("expected plain note with line breaks")
	}
	if strings.Contains(out, "Generated") {
		t.Error("expected no generated footer for zero time")
	}
}

func TestWriteAggregates(t *testing.T) {
	builder, _ := fixture(t)
	r, err := site.New(site.Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	roster := builder.Roster()
	if err := r.WriteRoster(roster); err != nil {
		t.Fatalf("WriteRoster: %v", err)
	}
	index := builder.SurnameIndex()
	if err := r.WriteSurnameIndex(index); err != nil {
		t.Fatalf("WriteSurnameIndex: %v", err)
	}
	for _, p := range builder.SurnamePages() {
		if err := r.WriteSurnamePage(p); err != nil {
			t.Fatalf("WriteSurnamePage: %v", err)
		}
	}

	rosterHTML := testsupport.ReadText(t, roster.OutputPath)
	if !strings.Contains(rosterHTML, "Doe, Frank") || !strings.Contains(rosterHTML, "Müller, Mia") {
		t.Fatalf("roster missing people:\n%s", rosterHTML)
	}
	indexHTML := testsupport.ReadText(t, index.OutputPath)
	if !strings.Contains(indexHTML, `href="surnames/doe.html"`) {
		t.Fatalf("index missing surname link:\n%s", indexHTML)
	}
	surnamePath := filepath.Join(filepath.Dir(index.OutputPath), "surnames", "doe.html")
	surnameHTML := testsupport.ReadText(t, surnamePath)
	if !strings.Contains(surnameHTML, "<h1>Doe</h1>") || !strings.Contains(surnameHTML, "Cal") {
		t.Fatalf("surname page unexpected:\n%s", surnameHTML)
	}
}

func TestWriteStylesheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "css", "famtree.css")
	if err := site.WriteStylesheet(path); err != nil {
		t.Fatalf("WriteStylesheet: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("expected stylesheet, stat=%v err=%v", info, err)
	}
}

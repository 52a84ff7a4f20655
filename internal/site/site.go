// Package site renders view models into HTML documents and writes them under
// the output root.
//
// Templates and the stylesheet are embedded in the binary. Every document is
// rendered into memory first and then written atomically, so a failed run
// never leaves a half-written page behind.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"famtree/internal/fileutil"
	"famtree/internal/records"
	"famtree/internal/views"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

//go:embed assets/famtree.css
var stylesheet []byte

// Options tune a Renderer.
type Options struct {
	// Markdown renders person notes as Markdown. Raw HTML in notes is dropped.
	Markdown bool
	// Generated is printed in every footer; the zero time omits it.
	Generated time.Time
}

// Renderer executes the embedded templates.
type Renderer struct {
	tmpl *template.Template
	md   goldmark.Markdown
	opts Options
}

type page struct {
	Title     string
	Nav       views.Nav
	Generated string
	Body      any
}

// New parses the embedded templates.
func New(opts Options) (*Renderer, error) {
	r := &Renderer{md: goldmark.New(), opts: opts}
	funcs := template.FuncMap{
		"note":        r.note,
		"genderLabel": genderLabel,
		"genderClass": func(g records.Gender) string { return string(g) },
	}
	tmpl, err := template.New("site").Funcs(funcs).ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Person renders a person page.
func (r *Renderer) Person(w io.Writer, v views.PersonView) error {
	return r.execute(w, "person", v.Summary.Name, v.Nav, v)
}

// Roster renders the global roster.
func (r *Renderer) Roster(w io.Writer, v views.RosterView) error {
	return r.execute(w, "roster", "Individuals", v.Nav, v)
}

// SurnameIndex renders the surname index.
func (r *Renderer) SurnameIndex(w io.Writer, v views.SurnameIndexView) error {
	return r.execute(w, "index", "Surnames", v.Nav, v)
}

// SurnamePage renders the page of one surname.
func (r *Renderer) SurnamePage(w io.Writer, v views.SurnamePageView) error {
	return r.execute(w, "surname", v.Label, v.Nav, v)
}

// WritePerson renders v and writes it to v.OutputPath.
func (r *Renderer) WritePerson(v views.PersonView) error {
	return r.write(v.OutputPath, func(w io.Writer) error { return r.Person(w, v) })
}

// WriteRoster renders v and writes it to v.OutputPath.
func (r *Renderer) WriteRoster(v views.RosterView) error {
	return r.write(v.OutputPath, func(w io.Writer) error { return r.Roster(w, v) })
}

// WriteSurnameIndex renders v and writes it to v.OutputPath.
func (r *Renderer) WriteSurnameIndex(v views.SurnameIndexView) error {
	return r.write(v.OutputPath, func(w io.Writer) error { return r.SurnameIndex(w, v) })
}

// WriteSurnamePage renders v and writes it to v.OutputPath.
func (r *Renderer) WriteSurnamePage(v views.SurnamePageView) error {
	return r.write(v.OutputPath, func(w io.Writer) error { return r.SurnamePage(w, v) })
}

// WriteStylesheet writes the embedded stylesheet to path.
func WriteStylesheet(path string) error {
	if err := fileutil.WriteFileAtomic(path, stylesheet, 0o644); err != nil {
		return fmt.Errorf("write stylesheet: %w", err)
	}
	return nil
}

func (r *Renderer) execute(w io.Writer, name, title string, nav views.Nav, body any) error {
	p := page{Title: title, Nav: nav, Body: body}
	if !r.opts.Generated.IsZero() {
		p.Generated = r.opts.Generated.Format("2006-01-02 15:04:05")
	}
	if err := r.tmpl.ExecuteTemplate(w, name, p); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

func (r *Renderer) write(path string, render func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
}

// note renders one note body. Markdown output comes from goldmark with raw HTML
// disabled; plain notes are escaped with line breaks kept.
func (r *Renderer) note(text string) template.HTML {
	if r.opts.Markdown {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(text), &buf); err == nil {
			return template.HTML(buf.String())
		}
	}
	escaped := template.HTMLEscapeString(text)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>\n"))
}

func genderLabel(g records.Gender) string {
	switch g {
	case records.GenderMale:
		return "Male"
	case records.GenderFemale:
		return "Female"
	default:
		return "Unknown"
	}
}

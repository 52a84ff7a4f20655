package gedcom_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"famtree/internal/gedcom"
	"famtree/internal/records"
)

const sample = "\ufeff0 HEAD\r\n" +
	"1 CHAR UTF-8\r\n" +
	"0 @I1@ INDI\r\n" +
	"1 NAME John /Smith/\r\n" +
	"1 SEX M\r\n" +
	"1 BIRT\r\n" +
	"2 DATE 1 JAN 1900\r\n" +
	"2 PLAC Boston\r\n" +
	"1 OCCU Farmer\r\n" +
	"1 RELI Quaker\r\n" +
	"2 SOUR @S1@\r\n" +
	"2 NOTE Converted late\r\n" +
	"1 FAMS @F1@\r\n" +
	"1 NOTE @N1@\r\n" +
	"0 @I2@ INDI\r\n" +
	"1 NAME Mary /Jones/\r\n" +
	"1 SEX F\r\n" +
	"1 DEAT\r\n" +
	"2 DATE not sure\r\n" +
	"1 FAMS @F1@\r\n" +
	"0 @I3@ INDI\r\n" +
	"1 NAME Child\r\n" +
	"1 FAMC @F1@\r\n" +
	"\r\n" +
	"0 @I4@ INDI\r\n" +
	"1 NAME Other /Smith/\r\n" +
	"0 @F1@ FAM\r\n" +
	"1 HUSB @I1@\r\n" +
	"1 WIFE @I2@\r\n" +
	"1 CHIL @I3@\r\n" +
	"1 CHIL @I4@\r\n" +
	"1 CHIL @I99@\r\n" +
	"1 MARR\r\n" +
	"2 DATE 1925\r\n" +
	"0 @N1@ NOTE First line\r\n" +
	"1 CONC  continued\r\n" +
	"1 CONT second line\r\n" +
	"0 @S1@ SOUR\r\n" +
	"1 TITL Parish register\r\n" +
	"0 TRLR\r\n"

func TestDecodeStructure(t *testing.T) {
	doc, err := gedcom.Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := len(doc.RecordsByTag("INDI")); got != 4 {
		t.Fatalf("expected 4 individuals, got %d", got)
	}
	note, ok := doc.Record("@N1@")
	if !ok {
		t.Fatal("expected note record")
	}
	if note.Value != "First line continued\nsecond line" {
		t.Fatalf("unexpected joined note %q", note.Value)
	}
	if head := doc.Records[0]; head.Tag != "HEAD" || head.ChildValue("CHAR") != "UTF-8" {
		t.Fatalf("unexpected header %+v", head)
	}
}

func TestDecodeSyntaxErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no level", "HEAD\n"},
		{"skipped level", "0 HEAD\n2 CHAR UTF-8\n"},
		{"orphan", "1 NAME x\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gedcom.Decode(strings.NewReader(tt.input))
			if !errors.Is(err, gedcom.ErrSyntax) {
				t.Fatalf("expected ErrSyntax, got %v", err)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	doc, err := gedcom.Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	coll := gedcom.Build(doc)

	john, ok := coll.Individual("@I1@")
	if !ok {
		t.Fatal("missing @I1@")
	}
	if john.Name != (records.Name{Given: "John", Surname: "Smith"}) {
		t.Fatalf("unexpected name %+v", john.Name)
	}
	if john.Gender != records.GenderMale || john.Occupation != "Farmer" {
		t.Fatalf("unexpected person %+v", john)
	}
	if john.Birth.Date.String() != "1 JAN 1900" || john.Birth.Place != "Boston" {
		t.Fatalf("unexpected birth %+v", john.Birth)
	}
	if len(john.Attributes) != 1 {
		t.Fatalf("expected one attribute, got %+v", john.Attributes)
	}
	attr := john.Attributes[0]
	if attr.Type != "Religion" || attr.Value != "Quaker" || attr.Source != "Parish register" || attr.Notes != "Converted late" {
		t.Fatalf("unexpected attribute %+v", attr)
	}
	if len(john.Notes) != 1 || john.Notes[0] != "First line continued\nsecond line" {
		t.Fatalf("unexpected notes %+v", john.Notes)
	}

	mary, _ := coll.Individual("@I2@")
	if mary.Death.Date.String() != records.UnknownMarker {
		t.Fatalf("expected malformed death date placeholder, got %q", mary.Death.Date.String())
	}

	child, _ := coll.Individual("@I3@")
	if child.Name.Surname != "" || child.Name.Given != "Child" {
		t.Fatalf("unexpected child name %+v", child.Name)
	}

	unions := coll.ChildUnions("@I3@")
	if len(unions) != 1 {
		t.Fatalf("expected one child union, got %d", len(unions))
	}
	fam := unions[0]
	if fam.Husband != john || fam.Wife != mary {
		t.Fatalf("unexpected partners %+v", fam)
	}
	if len(fam.Children) != 2 {
		t.Fatalf("expected unresolved child pointer to be dropped, got %d children", len(fam.Children))
	}
	if fam.Marriage.Date.String() != "1925" {
		t.Fatalf("unexpected marriage %+v", fam.Marriage)
	}
	// @I4@ has no FAMC back link but is still a child of @F1@.
	if got := coll.ChildUnions("@I4@"); len(got) != 1 || got[0] != fam {
		t.Fatalf("expected back-filled child union, got %+v", got)
	}
	if got := coll.SpouseUnions("@I2@"); len(got) != 1 || got[0] != fam {
		t.Fatalf("unexpected spouse unions %+v", got)
	}
}

func TestParseNameSubrecords(t *testing.T) {
	input := "0 @I1@ INDI\n1 NAME Jo /Doe/\n2 GIVN Joanna\n2 SURN  Doe  Smith\n"
	doc, err := gedcom.Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	p, _ := gedcom.Build(doc).Individual("@I1@")
	if p.Name.Given != "Joanna" || p.Name.Surname != "Doe Smith" {
		t.Fatalf("unexpected name %+v", p.Name)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.ged")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	coll, err := gedcom.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := len(coll.Individuals()); got != 4 {
		t.Fatalf("expected 4 individuals, got %d", got)
	}

	if _, err := gedcom.Load(filepath.Join(t.TempDir(), "missing.ged")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

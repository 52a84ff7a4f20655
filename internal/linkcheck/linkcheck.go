// Package linkcheck verifies that every relative link in a generated site
// resolves to a file inside the output root.
package linkcheck

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Broken is a link whose target does not exist.
type Broken struct {
	Document string
	Href     string
	Target   string
}

// Report summarizes a site check.
type Report struct {
	Documents int
	Links     int
	External  int
	Broken    []Broken
}

// OK reports whether no broken links were found.
func (r *Report) OK() bool {
	return len(r.Broken) == 0
}

// Links returns the href of every <a> and <link> element in document order.
func Links(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	var hrefs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "a" || n.Data == "link") {
			for _, attr := range n.Attr {
				if attr.Key == "href" {
					hrefs = append(hrefs, attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return hrefs, nil
}

// Check parses every document with extension ext under root.
func Check(ctx context.Context, root, ext string) (*Report, error) {
	var docs []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ext) {
			docs = append(docs, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(docs)

	report := &Report{}
	for _, docPath := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rel, err := filepath.Rel(root, docPath)
		if err != nil {
			return nil, fmt.Errorf("relative path of %s: %w", docPath, err)
		}
		if err := checkDocument(root, filepath.ToSlash(rel), docPath, report); err != nil {
			return nil, err
		}
	}
	return report, nil
}

func checkDocument(root, doc, docPath string, report *Report) error {
	f, err := os.Open(docPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", docPath, err)
	}
	defer f.Close()

	hrefs, err := Links(f)
	if err != nil {
		return fmt.Errorf("%s: %w", doc, err)
	}
	report.Documents++
	for _, href := range hrefs {
		report.Links++
		target, local := Resolve(doc, href)
		if !local {
			report.External++
			continue
		}
		if target == "" {
			report.Broken = append(report.Broken, Broken{Document: doc, Href: href})
			continue
		}
		info, err := os.Stat(filepath.Join(root, filepath.FromSlash(target)))
		if err != nil || info.IsDir() {
			report.Broken = append(report.Broken, Broken{Document: doc, Href: href, Target: target})
		}
	}
	return nil
}

// Resolve maps href, found in the document at doc, to a root-relative path.
// local is false for absolute URLs and fragment-only links. A local link that
// cannot be decoded or leaves the root yields an empty target.
func Resolve(doc, href string) (target string, local bool) {
	u, err := url.Parse(href)
	if err != nil {
		return "", true
	}
	if u.Scheme != "" || u.Host != "" {
		return "", false
	}
	if u.Path == "" {
		return "", false
	}
	if strings.HasPrefix(u.Path, "/") {
		return "", true
	}
	joined := path.Clean(path.Join(path.Dir(doc), u.Path))
	if joined == ".." || strings.HasPrefix(joined, "../") {
		return "", true
	}
	return joined, true
}

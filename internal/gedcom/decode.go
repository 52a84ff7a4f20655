package gedcom

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// ErrSyntax reports a line that does not follow the GEDCOM line grammar.
var ErrSyntax = errors.New("gedcom syntax error")

const maxLineBytes = 1 << 20

var linePattern = regexp.MustCompile(`^(\d{1,2})\s+(?:(@[^@\s]+@)\s+)?([A-Za-z0-9_]+)(?: (.*))?$`)

// Node is one GEDCOM line with its subordinate lines.
type Node struct {
	Level    int
	XRef     string
	Tag      string
	Value    string
	Line     int
	Children []*Node
}

// Child returns the first direct child with tag, or nil.
func (n *Node) Child(tag string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// ChildValue returns the trimmed value of the first child with tag.
func (n *Node) ChildValue(tag string) string {
	if c := n.Child(tag); c != nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}

// All returns every direct child with tag in source order.
func (n *Node) All(tag string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// Document is a decoded GEDCOM file.
type Document struct {
	Records []*Node
	byXRef  map[string]*Node
}

// Record returns the level-0 record carrying xref.
func (d *Document) Record(xref string) (*Node, bool) {
	n, ok := d.byXRef[xref]
	return n, ok
}

// RecordsByTag returns every level-0 record with tag in source order.
func (d *Document) RecordsByTag(tag string) []*Node {
	var out []*Node
	for _, r := range d.Records {
		if r.Tag == tag {
			out = append(out, r)
		}
	}
	return out
}

// Decode reads a GEDCOM stream. A UTF-8 byte order mark and CRLF line endings
// are accepted; blank lines are skipped.
func Decode(r io.Reader) (*Document, error) {
	doc := &Document{byXRef: make(map[string]*Node)}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var stack []*Node
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimRight(scanner.Text(), "\r\n")
		if lineNo == 1 {
			text = strings.TrimPrefix(text, "\ufeff")
		}
		text = strings.TrimLeft(text, " \t")
		if strings.TrimSpace(text) == "" {
			continue
		}

		m := linePattern.FindStringSubmatch(text)
		if m == nil {
			return nil, fmt.Errorf("%w: line %d: malformed line %q", ErrSyntax, lineNo, text)
		}
		level, _ := strconv.Atoi(m[1])
		node := &Node{
			Level: level,
			XRef:  m[2],
			Tag:   strings.ToUpper(m[3]),
			Value: m[4],
			Line:  lineNo,
		}

		for len(stack) > 0 && stack[len(stack)-1].Level >= level {
			stack = stack[:len(stack)-1]
		}
		if level == 0 {
			doc.Records = append(doc.Records, node)
			if node.XRef != "" {
				doc.byXRef[node.XRef] = node
			}
			stack = append(stack[:0], node)
			continue
		}
		if len(stack) == 0 || stack[len(stack)-1].Level != level-1 {
			return nil, fmt.Errorf("%w: line %d: level %d has no parent", ErrSyntax, lineNo, level)
		}
		parent := stack[len(stack)-1]
		switch node.Tag {
		case "CONC":
			parent.Value += node.Value
			continue
		case "CONT":
			parent.Value += "\n" + node.Value
			continue
		}
		parent.Children = append(parent.Children, node)
		stack = append(stack, node)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read gedcom: %w", err)
	}
	return doc, nil
}

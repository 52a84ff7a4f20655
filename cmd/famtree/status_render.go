package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// statusKind classifies one line of command output.
type statusKind int

const (
	// statusFact is a plain value such as a path or identifier.
	statusFact statusKind = iota
	statusOK
	// statusNotice flags something the site still renders around, such as a
	// fallback link or a dropped duplicate record.
	statusNotice
	// statusBroken flags a site that is not safe to publish.
	statusBroken
)

const (
	ansiReset  = "\x1b[0m"
	ansiDim    = "\x1b[2m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
	emptyValue       = "-"
)

// statusReport writes aligned label/value lines for one command.
type statusReport struct {
	out      io.Writer
	colorize bool
}

func newStatusReport(out io.Writer) *statusReport {
	return &statusReport{out: out, colorize: shouldColorize(out)}
}

func (r *statusReport) section(title string) {
	title = strings.TrimSpace(title)
	rule := strings.Repeat("=", len(title))
	if r.colorize {
		title = ansiCyan + title + ansiReset
		rule = ansiDim + rule + ansiReset
	}
	fmt.Fprintln(r.out, title)
	fmt.Fprintln(r.out, rule)
}

func (r *statusReport) fact(label, value string) {
	r.line(label, statusFact, value)
}

// tally reports a count of problems: OK when zero, kind otherwise. detail
// replaces the bare count when non-empty.
func (r *statusReport) tally(label string, problems int, kind statusKind, detail string) {
	if problems == 0 {
		kind = statusOK
	}
	message := fmt.Sprint(problems)
	if detail != "" {
		message += " (" + detail + ")"
	}
	r.line(label, kind, message)
}

func (r *statusReport) line(label string, kind statusKind, message string) {
	fmt.Fprintln(r.out, renderStatusLine(label, kind, message, r.colorize))
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	if strings.TrimSpace(message) == "" {
		message = emptyValue
	}
	marker := statusMarker(kind)
	if colorize && marker != "" {
		marker = statusColor(kind) + marker + ansiReset
	}
	if marker != "" {
		message = marker + " " + message
	}
	return fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label, message)
}

func statusMarker(kind statusKind) string {
	switch kind {
	case statusOK:
		return "ok"
	case statusNotice:
		return "note"
	case statusBroken:
		return "broken"
	default:
		return ""
	}
}

func statusColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusNotice:
		return ansiYellow
	case statusBroken:
		return ansiRed
	default:
		return ""
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

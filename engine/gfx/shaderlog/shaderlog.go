// Package shaderlog turns driver shader compiler logs into readable
// diagnostics anchored to the offending source lines.
package shaderlog

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/hubastard/shaderstate/engine/core"
)

// ErrUnrecognized is returned when a log has no line the parser understands.
var ErrUnrecognized = errors.New("shaderlog: unrecognized compiler log")

// Message is one diagnostic line of a compiler log.
type Message struct {
	Line     int // 1-based source line, 0 if unknown
	Column   int
	Severity string // "error" or "warning"
	Text     string
}

var (
	// Mesa "0:3(12): error: ..." and ANGLE "ERROR: 0:3: ..."
	colonForm = regexp.MustCompile(`^(?:(ERROR|WARNING):\s*)?\d+:(\d+)(?:\((\d+)\))?:\s*(?:(error|warning):\s*)?(.*)$`)
	// NVIDIA "0(3) : error C1008: ..."
	parenForm = regexp.MustCompile(`^\d+\((\d+)\)\s*:\s*(error|warning)\s*(?:[A-Z]\d+)?\s*:\s*(.*)$`)
)

// Parse extracts the messages of a compiler log. Lines it does not
// recognize are skipped.
func Parse(log string) []Message {
	var out []Message
	for _, raw := range strings.Split(log, "\n") {
		line := strings.TrimSpace(strings.TrimRight(raw, "\x00"))
		if line == "" {
			continue
		}
		if m := colonForm.FindStringSubmatch(line); m != nil {
			sev := strings.ToLower(m[1])
			if m[4] != "" {
				sev = m[4]
			}
			if sev == "" {
				sev = "error"
			}
			ln, _ := strconv.Atoi(m[2])
			col, _ := strconv.Atoi(m[3])
			out = append(out, Message{Line: ln, Column: col, Severity: sev, Text: strings.TrimSpace(m[5])})
			continue
		}
		if m := parenForm.FindStringSubmatch(line); m != nil {
			ln, _ := strconv.Atoi(m[1])
			out = append(out, Message{Line: ln, Severity: m[2], Text: strings.TrimSpace(m[3])})
		}
	}
	return out
}

// Formatter renders diagnostics. The zero value produces plain text.
type Formatter struct {
	Color bool   // highlight the source listing with ANSI colors
	Style string // chroma style name, "monokai" when empty
}

var plain Formatter

// Diagnose formats log with the plain formatter.
func Diagnose(log, src string, kind core.ShaderKind) (string, string, error) {
	return plain.Format(log, src, kind)
}

// Format returns a one-line summary and a source listing with every
// message placed under the line it refers to.
func (f Formatter) Format(log, src string, kind core.ShaderKind) (short, long string, err error) {
	msgs := Parse(log)
	if len(msgs) == 0 {
		return "", "", ErrUnrecognized
	}

	first := msgs[0]
	for _, m := range msgs {
		if m.Severity == "error" {
			first = m
			break
		}
	}
	short = fmt.Sprintf("%s shader: line %d: %s", kind, first.Line, first.Text)
	if len(msgs) > 1 {
		short += fmt.Sprintf(" (and %d more)", len(msgs)-1)
	}

	byLine := make(map[int][]Message, len(msgs))
	var orphans []Message
	lines := strings.Split(strings.TrimRight(src, "\x00"), "\n")
	for _, m := range msgs {
		if m.Line < 1 || m.Line > len(lines) {
			orphans = append(orphans, m)
			continue
		}
		byLine[m.Line] = append(byLine[m.Line], m)
	}

	shown := lines
	if f.Color {
		if hl, herr := f.highlight(src); herr == nil && len(hl) >= len(lines) {
			shown = hl[:len(lines)]
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Error compiling %s shader:\n", kind)
	width := len(strconv.Itoa(len(lines)))
	for i, text := range shown {
		n := i + 1
		fmt.Fprintf(&b, "%*d | %s\n", width, n, text)
		for _, m := range byLine[n] {
			pad := strings.Repeat(" ", width)
			if m.Column > 0 {
				fmt.Fprintf(&b, "%s | %s^ %s: %s\n", pad, strings.Repeat(" ", m.Column-1), m.Severity, m.Text)
			} else {
				fmt.Fprintf(&b, "%s | ^^^ %s: %s\n", pad, m.Severity, m.Text)
			}
		}
	}
	for _, m := range orphans {
		fmt.Fprintf(&b, "%s: %s\n", m.Severity, m.Text)
	}
	return short, b.String(), nil
}

func (f Formatter) highlight(src string) ([]string, error) {
	lexer := lexers.Get("glsl")
	if lexer == nil {
		return nil, errors.New("shaderlog: no GLSL lexer")
	}
	name := f.Style
	if name == "" {
		name = "monokai"
	}
	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := formatters.Get("terminal256").Format(&buf, styles.Get(name), it); err != nil {
		return nil, err
	}
	return strings.Split(buf.String(), "\n"), nil
}

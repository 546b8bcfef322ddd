package cmd

import (
	"strings"
	"unicode"
)

const tabWidth = 8

// TrimUsage normalizes a documentation block into display usage text.
//
// Tabs are expanded, the smallest indentation of the non-blank lines after
// the first is removed from every line after the first, the first line is
// trimmed on its own, and leading and trailing blank lines are dropped.
// When no line after the first has content, only the first line is kept.
func TrimUsage(doc string) string {
	if doc == "" {
		return ""
	}

	doc = strings.ReplaceAll(doc, "\r\n", "\n")
	doc = strings.ReplaceAll(doc, "\r", "\n")
	lines := strings.Split(expandTabs(doc), "\n")

	indent := -1
	for _, line := range lines[1:] {
		stripped := strings.TrimLeftFunc(line, unicode.IsSpace)
		if stripped == "" {
			continue
		}
		if n := len(line) - len(stripped); indent < 0 || n < indent {
			indent = n
		}
	}

	trimmed := []string{strings.TrimSpace(lines[0])}
	if indent >= 0 {
		for _, line := range lines[1:] {
			if len(line) > indent {
				line = line[indent:]
			} else {
				line = ""
			}
			trimmed = append(trimmed, strings.TrimRightFunc(line, unicode.IsSpace))
		}
	}

	for len(trimmed) > 0 && trimmed[len(trimmed)-1] == "" {
		trimmed = trimmed[:len(trimmed)-1]
	}
	for len(trimmed) > 0 && trimmed[0] == "" {
		trimmed = trimmed[1:]
	}

	return strings.Join(trimmed, "\n")
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n':
			b.WriteRune(r)
			col = 0
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}

package cmd

import (
	"sort"
	"strings"
)

type helpLine struct {
	text  string
	arity int
}

// RenderHelp renders one line per overload of every command in g:
//
//	`!<tag> <name> <param> ... `  - <description>
//
// The tag and its space are left out when tag is empty. Lines are sorted
// lexicographically, except that the overloads of one command are ordered
// by ascending arity within their block.
func RenderHelp(g *Group, tag string) []string {
	if g == nil {
		return nil
	}

	prefix := "`!"
	if tag != "" {
		prefix += tag + " "
	}

	var lines []helpLine
	for name, def := range g.commands {
		for _, o := range def.Overloads {
			var b strings.Builder
			b.WriteString(prefix)
			b.WriteString(name)
			b.WriteByte(' ')
			for _, p := range o.Params {
				b.WriteString("<" + p + "> ")
			}
			b.WriteString("`  - ")
			b.WriteString(o.Description)
			lines = append(lines, helpLine{text: b.String(), arity: o.Arity})
		}
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].text < lines[j].text })

	for name, def := range g.commands {
		n := len(def.Overloads)
		if n < 2 {
			continue
		}
		start := -1
		for i, l := range lines {
			if strings.HasPrefix(l.text, prefix+name+" ") {
				start = i
				break
			}
		}
		if start < 0 || start+n > len(lines) {
			continue
		}
		block := lines[start : start+n]
		sort.SliceStable(block, func(i, j int) bool { return block[i].arity < block[j].arity })
	}

	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.text
	}
	return out
}

// Help renders the group's help lines under tag.
func (g *Group) Help(tag string) []string {
	return RenderHelp(g, tag)
}

// Package docs renders the command reference into README.md.
package docs

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	log "github.com/sirupsen/logrus"

	"github.com/keshon/styrobot/pkg/cmd"
)

// CoreGroup is rendered first, without a tag.
const CoreGroup = "core"

// Sections renders a markdown command reference for every group in reg:
// the core group first, then the plugins by tag.
func Sections(reg *cmd.Registry, prefix string) string {
	var buf bytes.Buffer

	groups := reg.Groups()
	ordered := make([]string, 0, len(groups))
	for _, name := range groups {
		if name == CoreGroup {
			ordered = append([]string{name}, ordered...)
		} else {
			ordered = append(ordered, name)
		}
	}

	for i, name := range ordered {
		g, _ := reg.Group(name)
		tag := name
		title := "`" + prefix + name + "`"
		if name == CoreGroup {
			tag = ""
			title = "Bot commands"
		}
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "### %s\n\n", title)

		for _, line := range g.Help(tag) {
			if prefix != "!" {
				line = "`" + prefix + strings.TrimPrefix(line, "`!")
			}
			fmt.Fprintf(&buf, "- %s\n", line)
		}

		for _, cmdName := range g.Names() {
			for _, usage := range g.Usage(cmdName) {
				fmt.Fprintf(&buf, "\n<details><summary>%s</summary>\n\n%s\n\n</details>\n", cmdName, usage)
			}
		}
	}
	return buf.String()
}

// UpdateReadme executes the template at tmplPath with the command sections
// as .CommandSections and writes the result to outPath.
func UpdateReadme(reg *cmd.Registry, prefix, tmplPath, outPath string) error {
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}

	data := struct {
		CommandSections string
	}{
		CommandSections: Sections(reg, prefix),
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return fmt.Errorf("render %s: %w", tmplPath, err)
	}
	if err := os.WriteFile(outPath, out.Bytes(), 0o644); err != nil {
		return err
	}

	log.Infof("%s updated with current commands", outPath)
	return nil
}

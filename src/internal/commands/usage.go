package commands

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/valyala/fasttemplate"
)

const usageTemplate = `Typed configuration manager
Version: {{version}}

Usage: {{program}} [options] <command> [command options]

Commands:
{{commands}}
Options:
`

const sectionUsageTemplate = `Usage: {{program}} {{section}} --<key> <value> ...

Sets keys of section [{{section}}] in {{location}}.
Every key of the section must be given.

Keys:
`

// PrintUsage writes the top-level usage text listing cmds.
func PrintUsage(w io.Writer, program, version string, cmds []Runner) {
	var lines strings.Builder
	for _, cmd := range cmds {
		fmt.Fprintf(&lines, "  %-22s  %s\n", cmd.Name(), cmd.Summary())
	}

	t := fasttemplate.New(usageTemplate, "{{", "}}")
	_, _ = io.WriteString(w, t.ExecuteString(map[string]interface{}{
		"version":  version,
		"program":  program,
		"commands": lines.String(),
	}))
}

func sectionUsage(fs *flag.FlagSet, section, location string) func() {
	return func() {
		t := fasttemplate.New(sectionUsageTemplate, "{{", "}}")
		_, _ = io.WriteString(fs.Output(), t.ExecuteString(map[string]interface{}{
			"program":  "configurator",
			"section":  section,
			"location": location,
		}))
		fs.PrintDefaults()
	}
}

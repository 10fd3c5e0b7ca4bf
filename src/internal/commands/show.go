package commands

import (
	"flag"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"

	"github.com/maksimkurb/configurator/src/internal/config"
	"github.com/maksimkurb/configurator/src/internal/store"
)

const (
	FormatINI  = "ini"
	FormatJSON = "json"
	FormatTOML = "toml"
)

// ShowCommand prints the typed configuration.
type ShowCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext

	format  string
	section string
}

// CreateShowCommand creates a new show command.
func CreateShowCommand() Runner {
	return &ShowCommand{}
}

// Name returns the command name.
func (c *ShowCommand) Name() string {
	return "show"
}

// Summary describes the command for usage output.
func (c *ShowCommand) Summary() string {
	return "Print the typed configuration (ini, json or toml)"
}

// Init parses the show flags.
func (c *ShowCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs = flag.NewFlagSet("show", flag.ContinueOnError)
	c.fs.SetOutput(ctx.stderr())

	c.fs.StringVar(&c.format, "format", FormatINI, "Output format: ini, json or toml")
	c.fs.StringVar(&c.section, "section", "", "Print only this section")

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	switch c.format {
	case FormatINI, FormatJSON, FormatTOML:
	default:
		return fmt.Errorf("unknown output format: %s", c.format)
	}

	if c.section != "" && ctx.Engine != nil {
		if _, ok := ctx.Engine.Schema()[c.section]; !ok {
			return fmt.Errorf("unknown section: %s", c.section)
		}
	}

	return nil
}

// Run loads the configuration and prints it.
func (c *ShowCommand) Run() error {
	doc, err := c.ctx.Engine.Load()
	if err != nil {
		return err
	}

	if c.section != "" {
		doc = config.Document{c.section: doc[c.section]}
	}

	out, err := c.render(doc)
	if err != nil {
		return err
	}

	_, err = c.ctx.stdout().Write(out)
	return err
}

func (c *ShowCommand) render(doc config.Document) ([]byte, error) {
	switch c.format {
	case FormatJSON:
		out, err := json.MarshalIndent(doc.Natives(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return append(out, '\n'), nil
	case FormatTOML:
		out, err := toml.Marshal(doc.Natives())
		if err != nil {
			return nil, fmt.Errorf("failed to encode TOML: %w", err)
		}
		return out, nil
	default:
		out, err := store.EncodeINI(c.ctx.Engine.Stringify(doc))
		if err != nil {
			return nil, fmt.Errorf("failed to encode INI: %w", err)
		}
		return out, nil
	}
}

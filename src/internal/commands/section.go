package commands

import (
	"flag"
	"fmt"
	"maps"
	"slices"

	"github.com/maksimkurb/configurator/src/internal/coerce"
	"github.com/maksimkurb/configurator/src/internal/config"
	cerrors "github.com/maksimkurb/configurator/src/internal/errors"
	"github.com/maksimkurb/configurator/src/internal/log"
)

// typedFlag is a flag.Value that coerces its argument to a declared type.
// Bad values are rejected while flags are parsed.
type typedFlag struct {
	typ   coerce.Type
	value coerce.Value
	set   bool
	err   error
}

func (f *typedFlag) String() string {
	if f == nil || !f.set {
		return ""
	}
	return coerce.Format(f.value)
}

func (f *typedFlag) Set(raw string) error {
	v, err := coerce.Coerce(raw, f.typ)
	if err != nil {
		f.err = err
		return err
	}
	f.value = v
	f.set = true
	f.err = nil
	return nil
}

// SectionCommand writes the keys of one schema section given as flags.
type SectionCommand struct {
	fs      *flag.FlagSet
	ctx     *AppContext
	section string
	keys    map[string]coerce.Type
	flags   map[string]*typedFlag
}

// CreateSectionCommands creates one command per schema section, in lexical
// order.
func CreateSectionCommands(schema config.Schema) []Runner {
	cmds := make([]Runner, 0, len(schema))
	for _, name := range schema.Sections() {
		cmds = append(cmds, &SectionCommand{
			section: name,
			keys:    schema[name],
		})
	}
	return cmds
}

// Name returns the section name.
func (c *SectionCommand) Name() string {
	return c.section
}

// Summary describes the command for usage output.
func (c *SectionCommand) Summary() string {
	return fmt.Sprintf("Set keys of section [%s]", c.section)
}

// Init parses key flags. Only the keys actually given form the section
// written by Run.
func (c *SectionCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs = flag.NewFlagSet(c.section, flag.ContinueOnError)
	c.fs.SetOutput(ctx.stderr())
	c.flags = make(map[string]*typedFlag, len(c.keys))

	for _, key := range slices.Sorted(maps.Keys(c.keys)) {
		typ := c.keys[key]
		f := &typedFlag{typ: typ}
		c.flags[key] = f
		c.fs.Var(f, key, fmt.Sprintf("%s value for %s.%s", typ, c.section, key))
	}

	location := ""
	if ctx.Engine != nil {
		location = ctx.Engine.Location()
	}
	c.fs.Usage = sectionUsage(c.fs, c.section, location)

	if err := c.fs.Parse(args); err != nil {
		for key, f := range c.flags {
			if f.err != nil {
				if e, ok := cerrors.As(f.err); ok {
					return e.At(c.section, key)
				}
				return f.err
			}
		}
		return err
	}

	if c.fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", c.fs.Args())
	}

	return nil
}

// partial returns the section built from the flags that were set.
func (c *SectionCommand) partial() config.Section {
	sec := make(config.Section)
	c.fs.Visit(func(f *flag.Flag) {
		if tf, ok := c.flags[f.Name]; ok && tf.set {
			sec[f.Name] = tf.value
		}
	})
	return sec
}

// Run saves the section.
func (c *SectionCommand) Run() error {
	if c.ctx.Engine == nil {
		return cerrors.NewInternalError("no configuration engine", nil)
	}

	sec := c.partial()
	log.Debugf("Saving section [%s] with %d key(s)", c.section, len(sec))

	if err := c.ctx.Engine.Save(config.Document{c.section: sec}); err != nil {
		return err
	}

	log.Infof("Section [%s] saved to %s", c.section, c.ctx.Engine.Location())
	return nil
}

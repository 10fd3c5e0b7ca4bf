package commands

import (
	"io"
	"os"

	"github.com/maksimkurb/configurator/src/internal/config"
)

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
	Summary() string
}

type AppContext struct {
	ConfigPath string
	SchemaPath string
	Verbose    bool
	Engine     *config.Engine

	// Stdout and Stderr default to the process streams when nil.
	Stdout io.Writer
	Stderr io.Writer
}

func (c *AppContext) stdout() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

func (c *AppContext) stderr() io.Writer {
	if c.Stderr == nil {
		return os.Stderr
	}
	return c.Stderr
}

// Find returns the first runner named name, or nil.
func Find(cmds []Runner, name string) Runner {
	for _, cmd := range cmds {
		if cmd.Name() == name {
			return cmd
		}
	}
	return nil
}

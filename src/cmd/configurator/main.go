package main

import (
	"errors"
	"flag"
	"os"

	"github.com/maksimkurb/configurator/src/internal/commands"
	"github.com/maksimkurb/configurator/src/internal/config"
	"github.com/maksimkurb/configurator/src/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

const (
	defaultConfigPath = "/opt/etc/configurator/config.ini"
	defaultSchemaPath = "/opt/etc/configurator/schema.toml"
)

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func main() {
	ctx := &commands.AppContext{}

	// Define flags
	flag.StringVar(&ctx.ConfigPath, "config", envOr("CONFIGURATOR_CONFIG", defaultConfigPath), "Path to configuration file (.ini or .toml)")
	flag.StringVar(&ctx.SchemaPath, "schema", envOr("CONFIGURATOR_SCHEMA", defaultSchemaPath), "Path to schema declaration (.toml, .yaml or .json)")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging")

	cmds := []commands.Runner{
		commands.CreateShowCommand(),
		commands.CreateServeCommand(),
	}
	builtins := len(cmds)

	flag.Usage = func() {
		commands.PrintUsage(os.Stderr, os.Args[0], version+" (Commit: "+commit+", Date: "+date+")", cmds)
		flag.PrintDefaults()
	}

	flag.Parse()

	if ctx.Verbose {
		log.SetVerbose(true)
	}

	schema, err := config.LoadSchema(ctx.SchemaPath)
	if err != nil {
		log.Fatalf("Failed to load schema: %v", err)
	}
	log.Debugf("Loaded schema with %d section(s) from %s", len(schema), ctx.SchemaPath)

	if ctx.Engine, err = config.Open(schema, ctx.ConfigPath); err != nil {
		log.Fatalf("Failed to open configuration: %v", err)
	}

	for _, cmd := range commands.CreateSectionCommands(schema) {
		if commands.Find(cmds[:builtins], cmd.Name()) != nil {
			log.Warnf("Section [%s] is shadowed by the %q command and cannot be set from the command line", cmd.Name(), cmd.Name())
		}
		cmds = append(cmds, cmd)
	}

	args := flag.Args()

	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	subcommand := args[0]
	cmd := commands.Find(cmds, subcommand)
	if cmd == nil {
		log.Fatalf("Unknown subcommand: %s", subcommand)
	}

	if err := cmd.Init(args[1:], ctx); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("Failed to initialize command: %v", err)
	}

	if err := cmd.Run(); err != nil {
		log.Fatalf("Failed to run command: %v", err)
	}
}

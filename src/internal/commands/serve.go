package commands

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maksimkurb/configurator/src/internal/api"
	"github.com/maksimkurb/configurator/src/internal/log"
)

// ServeCommand runs the HTTP API server.
type ServeCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext

	bindAddr string
}

// CreateServeCommand creates a new serve command.
func CreateServeCommand() Runner {
	return &ServeCommand{}
}

// Name returns the command name.
func (c *ServeCommand) Name() string {
	return "serve"
}

// Summary describes the command for usage output.
func (c *ServeCommand) Summary() string {
	return "Run the HTTP API server"
}

// Init parses the serve flags.
func (c *ServeCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs = flag.NewFlagSet("serve", flag.ContinueOnError)
	c.fs.SetOutput(ctx.stderr())

	c.fs.StringVar(&c.bindAddr, "bind", "127.0.0.1:8080", "Address to bind the HTTP server (e.g., 0.0.0.0:8080)")

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	if ctx.Engine == nil {
		return fmt.Errorf("no configuration engine")
	}

	return nil
}

// Run starts the HTTP API server and blocks until a signal or a server error.
func (c *ServeCommand) Run() error {
	log.Infof("Starting configurator API server on %s", c.bindAddr)
	log.Infof("Configuration file: %s", c.ctx.Engine.Location())
	log.Infof("Access restricted to private subnets only")

	server := &http.Server{
		Addr:         c.bindAddr,
		Handler:      api.NewRouter(c.ctx.Engine),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Infof("API endpoints available at http://%s/api/v1", c.bindAddr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-shutdown:
		log.Infof("Received signal %v, shutting down server...", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Errorf("Error during server shutdown: %v", err)
			if err := server.Close(); err != nil {
				return fmt.Errorf("failed to close server: %w", err)
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		log.Infof("Server stopped gracefully")
	}

	return nil
}

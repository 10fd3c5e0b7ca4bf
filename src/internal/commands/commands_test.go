package commands

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/maksimkurb/configurator/src/internal/coerce"
	"github.com/maksimkurb/configurator/src/internal/config"
	cerrors "github.com/maksimkurb/configurator/src/internal/errors"
	"github.com/maksimkurb/configurator/src/internal/log"
)

func init() {
	log.DisableLogs()
}

var testSchema = config.Schema{
	"network": {"port": coerce.Integer, "enabled": coerce.Boolean},
	"ui":      {"theme": coerce.String, "scale": coerce.Float},
}

const testStore = "[network]\nport=8080\nenabled=true\n\n[ui]\ntheme=dark\nscale=1.5\n"

func newTestContext(t *testing.T, content string) (*AppContext, *bytes.Buffer, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.ini")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write test file: %v", err)
		}
	}
	engine, err := config.Open(testSchema, path)
	if err != nil {
		t.Fatalf("Open() unexpected error: %v", err)
	}
	out := &bytes.Buffer{}
	return &AppContext{ConfigPath: path, Engine: engine, Stdout: out, Stderr: io.Discard}, out, path
}

func sectionCommand(t *testing.T, name string) Runner {
	t.Helper()
	cmd := Find(CreateSectionCommands(testSchema), name)
	if cmd == nil {
		t.Fatalf("No command for section %s", name)
	}
	return cmd
}

func TestCreateSectionCommands(t *testing.T) {
	cmds := CreateSectionCommands(testSchema)
	if len(cmds) != 2 {
		t.Fatalf("Expected 2 commands, got %d", len(cmds))
	}
	if cmds[0].Name() != "network" || cmds[1].Name() != "ui" {
		t.Errorf("Expected lexical order [network ui], got [%s %s]", cmds[0].Name(), cmds[1].Name())
	}
}

func TestSectionCommand_Save(t *testing.T) {
	ctx, _, path := newTestContext(t, testStore)
	cmd := sectionCommand(t, "network")

	if err := cmd.Init([]string{"--port", "9090", "--enabled", "off"}, ctx); err != nil {
		t.Fatalf("Init() unexpected error: %v", err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	doc, err := ctx.Engine.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if doc["network"]["port"] != coerce.IntegerValue(9090) {
		t.Errorf("Expected port 9090, got %v", doc["network"]["port"])
	}
	if doc["network"]["enabled"] != coerce.BooleanValue(false) {
		t.Errorf("Expected enabled false, got %v", doc["network"]["enabled"])
	}
	if doc["ui"]["theme"] != coerce.StringValue("dark") {
		t.Errorf("Expected ui section untouched, got %v", doc["ui"])
	}

	content, _ := os.ReadFile(path)
	if !strings.Contains(string(content), "enabled=false") {
		t.Errorf("Expected canonical boolean in store, got:\n%s", content)
	}
}

func TestSectionCommand_FlagErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode cerrors.ErrorCode
		wantKey  string
	}{
		{"bad integer", []string{"--port", "80a", "--enabled", "yes"}, cerrors.ErrCodeInvalidValue, "port"},
		{"bad boolean", []string{"--port", "80", "--enabled", "maybe"}, cerrors.ErrCodeInvalidBoolean, "enabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _, _ := newTestContext(t, testStore)
			err := sectionCommand(t, "network").Init(tt.args, ctx)

			e, ok := cerrors.As(err)
			if !ok {
				t.Fatalf("Expected coded error, got %v", err)
			}
			if e.Code != tt.wantCode {
				t.Errorf("Expected code %s, got %s", tt.wantCode, e.Code)
			}
			if e.Section != "network" || e.Key != tt.wantKey {
				t.Errorf("Expected location network.%s, got %s.%s", tt.wantKey, e.Section, e.Key)
			}
		})
	}
}

func TestSectionCommand_InitErrors(t *testing.T) {
	ctx, _, _ := newTestContext(t, testStore)

	if err := sectionCommand(t, "network").Init([]string{"--bogus", "1"}, ctx); err == nil {
		t.Error("Expected error for undeclared key flag")
	}
	if err := sectionCommand(t, "network").Init([]string{"--port", "1", "extra"}, ctx); err == nil {
		t.Error("Expected error for positional argument")
	}
	if err := sectionCommand(t, "network").Init([]string{"--port"}, ctx); err == nil {
		t.Error("Expected error for flag without value")
	}
	if err := sectionCommand(t, "network").Init([]string{"-h"}, ctx); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("Expected flag.ErrHelp, got %v", err)
	}
}

func TestSectionCommand_MissingKey(t *testing.T) {
	ctx, _, path := newTestContext(t, testStore)
	cmd := sectionCommand(t, "network")

	if err := cmd.Init([]string{"--port", "9090"}, ctx); err != nil {
		t.Fatalf("Init() unexpected error: %v", err)
	}
	err := cmd.Run()
	if !errors.Is(err, cerrors.ErrMissingKey) {
		t.Fatalf("Expected MissingKey, got %v", err)
	}

	content, _ := os.ReadFile(path)
	if string(content) != testStore {
		t.Errorf("Expected store untouched, got:\n%s", content)
	}
}

func TestSectionCommand_NoStore(t *testing.T) {
	ctx, _, path := newTestContext(t, "")
	cmd := sectionCommand(t, "ui")

	if err := cmd.Init([]string{"--theme", "light", "--scale", "2"}, ctx); err != nil {
		t.Fatalf("Init() unexpected error: %v", err)
	}
	if err := cmd.Run(); !errors.Is(err, cerrors.ErrStoreNotFound) {
		t.Fatalf("Expected StoreNotFound, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected store not to be created")
	}
}

func TestShowCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name: "ini",
			args: nil,
			want: []string{"[network]\nenabled=true\nport=8080\n", "[ui]\nscale=1.5\ntheme=dark\n"},
		},
		{
			name:    "json section",
			args:    []string{"-format", "json", "-section", "network"},
			want:    []string{`"port": 8080`, `"enabled": true`},
			notWant: []string{"theme"},
		},
		{
			name: "toml",
			args: []string{"-format", "toml"},
			want: []string{"[network]", "port = 8080", "scale = 1.5", "theme = 'dark'"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out, _ := newTestContext(t, testStore)
			cmd := CreateShowCommand()

			if err := cmd.Init(tt.args, ctx); err != nil {
				t.Fatalf("Init() unexpected error: %v", err)
			}
			if err := cmd.Run(); err != nil {
				t.Fatalf("Run() unexpected error: %v", err)
			}

			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("Expected %q in output:\n%s", w, out.String())
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out.String(), w) {
					t.Errorf("Did not expect %q in output:\n%s", w, out.String())
				}
			}
		})
	}
}

func TestShowCommand_Errors(t *testing.T) {
	ctx, _, _ := newTestContext(t, testStore)

	if err := CreateShowCommand().Init([]string{"-format", "xml"}, ctx); err == nil {
		t.Error("Expected error for unknown format")
	}
	if err := CreateShowCommand().Init([]string{"-section", "ghost"}, ctx); err == nil {
		t.Error("Expected error for unknown section")
	}

	ctx, _, _ = newTestContext(t, "[network]\nport=x\nenabled=true\n[ui]\ntheme=a\nscale=1\n")
	cmd := CreateShowCommand()
	if err := cmd.Init(nil, ctx); err != nil {
		t.Fatalf("Init() unexpected error: %v", err)
	}
	if err := cmd.Run(); !errors.Is(err, cerrors.ErrInvalidValue) {
		t.Errorf("Expected InvalidValue, got %v", err)
	}
}

func TestServeCommand_Init(t *testing.T) {
	ctx, _, _ := newTestContext(t, testStore)
	cmd := CreateServeCommand().(*ServeCommand)

	if err := cmd.Init([]string{"-bind", "127.0.0.1:0"}, ctx); err != nil {
		t.Fatalf("Init() unexpected error: %v", err)
	}
	if cmd.bindAddr != "127.0.0.1:0" {
		t.Errorf("Expected bind address 127.0.0.1:0, got %s", cmd.bindAddr)
	}

	if err := CreateServeCommand().Init(nil, &AppContext{Stderr: io.Discard}); err == nil {
		t.Error("Expected error without engine")
	}
}

func TestPrintUsage(t *testing.T) {
	cmds := append([]Runner{CreateShowCommand(), CreateServeCommand()}, CreateSectionCommands(testSchema)...)

	var buf bytes.Buffer
	PrintUsage(&buf, "configurator", "1.2.3", cmds)

	for _, want := range []string{"Version: 1.2.3", "Usage: configurator [options]", "show", "serve", "network", "Set keys of section [ui]"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("Expected %q in usage:\n%s", want, buf.String())
		}
	}
}

func TestSectionUsage(t *testing.T) {
	ctx, _, path := newTestContext(t, testStore)
	var buf bytes.Buffer
	ctx.Stderr = &buf

	_ = sectionCommand(t, "ui").Init([]string{"-h"}, ctx)

	for _, want := range []string{"Sets keys of section [ui] in " + path, "-scale", "float value for ui.scale"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("Expected %q in usage:\n%s", want, buf.String())
		}
	}
}

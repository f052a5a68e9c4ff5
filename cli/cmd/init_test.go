package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

type initCLI struct {
	Log struct {
		Level  string `default:"info"                 help:"Level."`
		Pretty bool   `default:"true" negatable:""    help:"Pretty."`
		Hidden string `default:"secret" hidden:""`
	} `embed:"" group:"log" prefix:"log-"`

	DB    string   `default:"catalog.db"`
	Tags  []string `default:"a,b"`
	Empty string

	Init Init `cmd:""`
}

// initContext parses args against initCLI with the config file at path and
// returns a context carrying the resulting kong.Context.
func initContext(t *testing.T, path string, args ...string) (context.Context, *initCLI) {
	t.Helper()

	var cli initCLI

	parser, err := kong.New(&cli,
		kong.ExplicitGroups([]kong.Group{{Key: "log", Title: "Logging options"}}),
		kong.Vars{ConfigIdentifier: path},
	)
	if err != nil {
		t.Fatalf("kong.New: %v", err)
	}

	ktx, err := parser.Parse(append([]string{"init"}, args...))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	return WithContext(t.Context(), ktx), &cli
}

func readConfig(t *testing.T, path string) map[string]any {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("config is not YAML: %v\n%s", err, data)
	}

	return doc
}

func TestInitRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	ctx, cli := initContext(t, path, "--log-level=debug", "--no-log-pretty")
	if err := cli.Init.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	doc := readConfig(t, path)

	logs, ok := doc["log"].(map[string]any)
	if !ok {
		t.Fatalf("log group not nested: %v", doc)
	}

	if logs["level"] != "debug" {
		t.Errorf("log.level = %v, want debug", logs["level"])
	}

	if logs["pretty"] != false {
		t.Errorf("log.pretty = %v, want false", logs["pretty"])
	}

	if _, ok := logs["hidden"]; ok {
		t.Error("hidden flag written to config")
	}

	if doc["db"] != "catalog.db" {
		t.Errorf("db = %v, want catalog.db", doc["db"])
	}

	if _, ok := doc["empty"]; ok {
		t.Error("empty string flag written to config")
	}

	if _, ok := doc["help"]; ok {
		t.Error("help flag written to config")
	}

	tags, ok := doc["tags"].([]any)
	if !ok || len(tags) != 2 {
		t.Errorf("tags = %v, want [a b]", doc["tags"])
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config mode = %v, want 0600", perm)
	}
}

func TestInitExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("db: keep.db\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cli := initContext(t, path)

	err := cli.Init.Run(ctx)
	if !errors.Is(err, ErrFileExists) {
		t.Fatalf("Run error = %v, want ErrFileExists", err)
	}

	if !errors.Is(err, ErrWriteConfig) {
		t.Errorf("Run error = %v, want ErrWriteConfig", err)
	}

	if got := readConfig(t, path)["db"]; got != "keep.db" {
		t.Errorf("existing config modified: db = %v", got)
	}
}

func TestInitForce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("db: keep.db\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx, cli := initContext(t, path, "--force")
	if err := cli.Init.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := readConfig(t, path)["db"]; got != "catalog.db" {
		t.Errorf("db = %v, want catalog.db", got)
	}
}

func TestInitUnwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "config.yaml")

	ctx, cli := initContext(t, path)

	err := cli.Init.Run(ctx)
	if !errors.Is(err, ErrWriteConfig) {
		t.Errorf("Run error = %v, want ErrWriteConfig", err)
	}
}

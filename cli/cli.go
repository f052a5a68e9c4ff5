package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/smf/cli/cmd"
	"github.com/ardnew/smf/log"
	"github.com/ardnew/smf/pkg"
)

// CLI is the top-level command-line interface for smf.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Show     cmd.Show     `cmd:"" default:"withargs" help:"Build a material and print its report"`
	Fmt      cmd.Fmt      `cmd:""                    help:"Export a material"`
	Check    cmd.Check    `cmd:""                    help:"Report references that do not resolve"`
	Query    cmd.Query    `cmd:""                    help:"Evaluate an expression against a material"`
	Repl     cmd.Repl     `cmd:""                    help:"Start an interactive query shell"`
	Watch    cmd.Watch    `cmd:""                    help:"Rebuild and print a material whenever it changes"`
	Index    cmd.Index    `cmd:""                    group:"catalog" help:"Add materials to the catalog"`
	Find     cmd.Find     `cmd:""                    group:"catalog" help:"Search the catalog"`
	Forget   cmd.Forget   `cmd:""                    group:"catalog" help:"Remove materials from the catalog"`
	Validate cmd.Validate `cmd:""                    help:"Validate a JSON export"`
	Init     cmd.Init     `cmd:""                    help:"Initialize configuration file"`
	Version  cmd.Version  `cmd:""                    help:"Print version"`
}

// Run executes the smf CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig + ".yaml")

	vars := kong.Vars{
		cmd.ConfigIdentifier:  configFilePath,
		cmd.CacheIdentifier:   pkg.CacheDir(),
		cmd.CatalogIdentifier: pkg.CatalogPath(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group(), catalogGroup()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(resolve, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = log.NewContext(ctx, log.Default())

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

func catalogGroup() kong.Group {
	return kong.Group{Key: "catalog", Title: "Catalog commands"}
}

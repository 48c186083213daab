package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/wellpath/internal/cli"
	"github.com/julianstephens/wellpath/internal/constants"
	"github.com/julianstephens/wellpath/internal/engine"
	"github.com/julianstephens/wellpath/internal/logger"
	"github.com/julianstephens/wellpath/internal/storage"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Database path (.db for SQLite, .json for a JSON file), a PostgreSQL connection string, or 'postgresql' to use the connection stored in the OS keyring. Credentials must NOT be embedded in a connection string passed here." type:"string" default:"${default_config}"`
	User     string `help:"User whose challenge to act on." default:"${default_user}" env:"WELLPATH_USER"`
	Strategy string `help:"YAML file overriding the default challenge strategy." type:"existingfile"`
	Debug    bool   `help:"Enable debug logging to stderr."`

	Init      cli.InitCmd     `cmd:"" help:"Initialize wellpath storage."`
	Onboard   cli.OnboardCmd  `cmd:"" help:"Answer the intake survey and generate your 30-day challenge."`
	Today     cli.TodayCmd    `cmd:"" help:"Show today's schedule." default:"1"`
	Complete  cli.CompleteCmd `cmd:"" help:"Mark a task as completed."`
	Advance   cli.AdvanceCmd  `cmd:"" help:"Move on to the next challenge day."`
	Progress  cli.ProgressCmd `cmd:"" help:"Show points, streak and milestones."`
	Tui       cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI."`
	Challenge struct {
		Show cli.ChallengeShowCmd `cmd:"" help:"Show a day of the generated challenge." default:"withargs"`
	} `cmd:"" help:"Inspect the generated 30-day challenge."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Snapshot the SQLite database."`
		List    cli.BackupListCmd    `cmd:"" help:"List snapshots, newest first."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Replace the database with a snapshot."`
	} `cmd:"" help:"Manage database snapshots."`
	ConfigCmds struct {
		SetConnection   cli.ConfigSetConnectionCmd   `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		ShowConnection  cli.ConfigShowConnectionCmd  `cmd:"" help:"Show the configured PostgreSQL connection (password masked)."`
		ClearConnection cli.ConfigClearConnectionCmd `cmd:"" help:"Remove the PostgreSQL connection from the OS keyring."`
		Timezone        cli.ConfigTimezoneCmd        `cmd:"" help:"Show or set the timezone used to decide what today is."`
	} `cmd:"" name:"config" help:"Manage configuration."`
}

// storeUse reports whether the selected command needs a store and whether
// that store must already be initialized.
func storeUse(ctx *kong.Context) (open, load bool) {
	cmd := ctx.Command()
	is := func(prefix string) bool {
		return cmd == prefix || strings.HasPrefix(cmd, prefix+" ")
	}
	switch {
	case is("config set-connection"), is("config show-connection"), is("config clear-connection"):
		return false, false
	case is("init"):
		return true, false
	}
	return true, true
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("30-day personalized wellness challenge"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
			"default_user":   constants.DefaultUserID,
		},
	)

	logDir, err := cli.LogDir(CLI.Config)
	if err == nil {
		err = logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: logDir})
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer logger.Close()

	if err := run(ctx); err != nil {
		logger.Error("Command execution failed", "command", ctx.Command(), "error", err)
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		logger.Close()
		os.Exit(1)
	}
}

func run(ctx *kong.Context) error {
	strategy := engine.DefaultStrategy()
	if CLI.Strategy != "" {
		s, err := engine.LoadStrategy(CLI.Strategy)
		if err != nil {
			return err
		}
		strategy = s
	}

	var store storage.Provider
	if open, load := storeUse(ctx); open {
		var err error
		if store, err = cli.OpenStore(CLI.Config); err != nil {
			return err
		}
		defer store.Close()

		if load {
			if err := store.Load(); err != nil {
				return err
			}
		}
	}

	return ctx.Run(&cli.Context{
		Store:       store,
		UserID:      CLI.User,
		Strategy:    strategy,
		Synthesizer: engine.NewSynthesizer(),
	})
}

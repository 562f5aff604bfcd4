package main

import (
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/duhog/duhog/internal/config"
	"github.com/duhog/duhog/internal/coordinator"
)

// newRootCmd creates the duhog command. It runs a full scan with no
// arguments; flags and DUHOG_* environment variables override the
// defaults.
func newRootCmd() *cobra.Command {
	defaults := config.Default()

	cmd := &cobra.Command{
		Use:     "duhog [root]",
		Short:   "Find the largest files and folders on a disk",
		Version: version + " (" + commit + ")",
		Long: heredoc.Doc(`
			duhog scans a filesystem tree and reports a live-updating ranked
			list of its largest files and folders.

			Paths down to --max-depth become measurement units; each unit's
			size is computed concurrently while the ranking refreshes on
			screen. A unit that runs past its --budget may stop early and
			report an undercount, marked with a trailing "+".

			System directories (recycle bin, paging files, virtual
			filesystems) are excluded by default; --exclude adds more
			denylisted prefixes.

			Every flag can also be set through the environment with the
			DUHOG_ prefix, e.g. DUHOG_MAX_DEPTH=2.
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runScan(args, defaults)
		},
	}

	cmd.Flags().Int("max-depth", defaults.MaxDepth, "Depth below the root at which paths become measurement units")
	cmd.Flags().Int("limit", defaults.DisplayLimit, "Number of ranking rows to display")
	cmd.Flags().Duration("refresh", defaults.RefreshInterval, "Maximum display refresh interval")
	cmd.Flags().Duration("budget", defaults.Budget, "Soft per-unit computation time budget")
	cmd.Flags().Int("workers", 0, "Cap on concurrent unit computations (0 = one per unit)")
	cmd.Flags().StringSlice("exclude", nil, "Additional absolute path prefixes to skip")
	cmd.Flags().Bool("no-progress", false, "Disable the collection-phase spinner")
	cmd.Flags().BoolP("verbose", "v", false, "Enable debug logging")

	viper.SetEnvPrefix("DUHOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	for _, name := range []string{
		"max-depth", "limit", "refresh", "budget",
		"workers", "exclude", "no-progress", "verbose",
	} {
		_ = viper.BindPFlag(name, cmd.Flags().Lookup(name))
	}

	return cmd
}

// runScan resolves the effective configuration and drives one scan run.
func runScan(args []string, cfg config.Config) error {
	if len(args) > 0 {
		cfg.Root = args[0]
	}

	root, err := resolveRoot(cfg.Root)
	if err != nil {
		return err
	}

	cfg.Root = root
	cfg.MaxDepth = viper.GetInt("max-depth")
	cfg.DisplayLimit = viper.GetInt("limit")
	cfg.RefreshInterval = viper.GetDuration("refresh")
	cfg.Budget = viper.GetDuration("budget")
	cfg.Workers = viper.GetInt("workers")
	cfg.Exclusions = append(cfg.Exclusions, viper.GetStringSlice("exclude")...)
	cfg.ShowProgress = !viper.GetBool("no-progress")
	cfg.Verbose = viper.GetBool("verbose")

	if err := cfg.Validate(); err != nil {
		return err
	}

	return coordinator.New(cfg, os.Stdout, newLogger(cfg.Verbose)).Run()
}

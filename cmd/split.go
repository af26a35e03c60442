package cmd

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xivtools/xivsplit/internal/config"
	"github.com/xivtools/xivsplit/internal/notify"
	"github.com/xivtools/xivsplit/internal/run"
)

// ErrDiagnostics marks a run that produced output but reported non-fatal
// diagnostics; main maps it to a distinct nonzero exit code.
var ErrDiagnostics = errors.New("diagnostics reported")

var splitCmd = &cobra.Command{
	Use:   "split [flags] <file>",
	Short: "Split a capture log into per-encounter or per-zone files",
	Long: `Split extracts the lines of one fight or zone into its own file.

Select exactly one range with --fight, --zone, --fight-name, or --zone-name.
Name selectors are case-insensitive regular expressions matched against the
seal name when one exists, otherwise the fight or zone name; a pattern that
matches several records writes one file per match. Player names, actor IDs,
and chat content are anonymized unless --no-anonymize is given.

Examples:
  xivsplit split --fight 2 Network_20240314.log
  xivsplit split --fight-name "ifrit" --analysis-filter Network_20240314.log
  xivsplit split --zone 1 --include-globals --no-anonymize Network_20240314.log`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().Int("fight", 0, "split fight by index (1-based, see list)")
	splitCmd.Flags().Int("zone", 0, "split zone by index (1-based, see list)")
	splitCmd.Flags().String("fight-name", "", "split fights whose name matches this regex")
	splitCmd.Flags().String("zone-name", "", "split zones whose name matches this regex")
	splitCmd.Flags().StringP("out-dir", "o", ".", "directory for output files")
	splitCmd.Flags().Bool("overwrite", false, "replace existing output files")
	splitCmd.Flags().Bool("no-anonymize", false, "keep real player names and IDs")
	splitCmd.Flags().Bool("analysis-filter", false, "keep only analysis-relevant lines")
	splitCmd.Flags().Bool("include-globals", false, "always keep zone-independent lines")

	_ = viper.BindPFlag("out_dir", splitCmd.Flags().Lookup("out-dir"))
	_ = viper.BindPFlag("overwrite", splitCmd.Flags().Lookup("overwrite"))
	_ = viper.BindPFlag("analysis_filter", splitCmd.Flags().Lookup("analysis-filter"))
	_ = viper.BindPFlag("include_globals", splitCmd.Flags().Lookup("include-globals"))

	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	fightIdx, _ := cmd.Flags().GetInt("fight")
	zoneIdx, _ := cmd.Flags().GetInt("zone")
	fightName, _ := cmd.Flags().GetString("fight-name")
	zoneName, _ := cmd.Flags().GetString("zone-name")
	noAnonymize, _ := cmd.Flags().GetBool("no-anonymize")

	sel := run.Selector{
		FightIndex: fightIdx,
		ZoneIndex:  zoneIdx,
		FightRegex: fightName,
		ZoneRegex:  zoneName,
	}

	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	opts := run.Options{
		Input:          args[0],
		OutDir:         cfg.OutDir,
		Overwrite:      cfg.Overwrite,
		Anonymize:      cfg.Anonymize && !noAnonymize,
		AnalysisFilter: cfg.AnalysisFilter,
		IncludeGlobals: cfg.IncludeGlobals,
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
		With().Timestamp().Logger()
	counter := &notify.Counter{Next: notify.Logger(logger)}

	written, err := run.Split(opts, sel, counter)
	for _, path := range written {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	if err != nil {
		return err
	}

	if counter.Count() > 0 {
		return fmt.Errorf("%d diagnostic(s): %w", counter.Count(), ErrDiagnostics)
	}
	return nil
}

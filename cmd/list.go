package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xivtools/xivsplit/internal/collector"
	"github.com/xivtools/xivsplit/internal/config"
	"github.com/xivtools/xivsplit/internal/netlog"
	"github.com/xivtools/xivsplit/internal/notify"
	"github.com/xivtools/xivsplit/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list [flags] <file>...",
	Short: "List the zones and fights found in capture logs",
	Long: `List scans capture logs and prints every zone and fight discovered,
numbered the way the split selectors expect.

Examples:
  xivsplit list Network_20240314.log
  xivsplit list --format table "logs/Network_*.log"
  xivsplit list --format json Network_20240314.log`,
	Args: cobra.MinimumNArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	files, err := config.ExpandGlobs(args)
	if err != nil {
		return err
	}

	format := output.ParseFormat(viper.GetString("format"))
	writer := output.New(cmd.OutOrStdout(), format)
	multiFile := len(files) > 1

	for _, filePath := range files {
		c := collector.New(notify.Discard)
		err := netlog.ScanFile(filePath, func(line netlog.Line) error {
			c.Process(line, false)
			return nil
		})
		if err != nil {
			return err
		}

		if multiFile && format != output.FormatJSON {
			fmt.Fprintf(cmd.OutOrStdout(), "==> %s <==\n", filePath)
		}
		if err := writer.WriteListing(c.Zones(), c.Fights()); err != nil {
			return err
		}
	}

	return nil
}

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/xivtools/xivsplit/internal/netlog"
	"github.com/xivtools/xivsplit/internal/output"
	"github.com/xivtools/xivsplit/internal/tail"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] <file>",
	Short: "Follow a live capture log and print encounter events",
	Long: `Watch follows a capture log the game client is still writing and
prints boundary events as they happen: zone changes, fight starts, wipes,
victories, and deaths. Press Ctrl+C to stop.

Examples:
  xivsplit watch Network_20240314.log
  xivsplit watch --all --lines 50 Network_20240314.log`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntP("lines", "n", 10, "number of trailing events to replay on start")
	watchCmd.Flags().Bool("all", false, "print every interesting line, not just boundary events")
	watchCmd.Flags().Bool("follow-rotate", false, "keep following when the client rotates the log")
	watchCmd.Flags().String("color", "auto", "when to colorize output (auto, always, never)")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	lines, _ := cmd.Flags().GetInt("lines")
	all, _ := cmd.Flags().GetBool("all")
	followRotate, _ := cmd.Flags().GetBool("follow-rotate")
	colorStr, _ := cmd.Flags().GetString("color")

	colorMode := output.ColorAuto
	switch colorStr {
	case "always":
		colorMode = output.ColorAlways
	case "never":
		colorMode = output.ColorNever
	}
	colorize := output.ShouldColorize(colorMode, cmd.OutOrStdout())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tailer := tail.New(tail.Options{
		FilePath:     args[0],
		Lines:        lines,
		Follow:       true,
		FollowRotate: followRotate,
		OutputFunc: func(line netlog.Line) error {
			text, ok := renderEvent(line, all)
			if !ok {
				return nil
			}
			if colorize {
				text = output.ColorizeEvent(line, text)
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	})

	return tailer.Run(ctx)
}

// renderEvent turns a line into a one-line event description. Without all,
// only boundary events and deaths are shown.
func renderEvent(line netlog.Line, all bool) (string, bool) {
	ts := ""
	if !line.Timestamp.IsZero() {
		ts = line.Timestamp.Format("15:04:05") + " "
	}

	switch {
	case line.IsZoneChange():
		return fmt.Sprintf("%szone: %s", ts, line.ZoneName()), true
	case line.IsFightStart():
		return ts + "fight commenced", true
	case line.IsVictory():
		return ts + "victory", true
	case line.IsWipe():
		return ts + "wipe", true
	case line.Code == netlog.CodeDeath:
		return fmt.Sprintf("%s%s was defeated", ts, line.Field(1)), true
	}

	if seal, ok := line.SealName(); ok {
		return fmt.Sprintf("%ssealing: %s", ts, seal), true
	}
	if all && line.IsInteresting() {
		return ts + line.Raw, true
	}
	return "", false
}

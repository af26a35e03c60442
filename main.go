package main

import (
	"errors"
	"os"

	"github.com/xivtools/xivsplit/cmd"
	"github.com/xivtools/xivsplit/internal/run"
)

// Exit codes: 1 generic/I-O failure, 2 usage error, 3 requested range not
// found, 4 output written but diagnostics reported.
func main() {
	if err := cmd.Execute(); err != nil {
		switch {
		case errors.Is(err, run.ErrUsage):
			os.Exit(2)
		case errors.Is(err, run.ErrRangeNotFound):
			os.Exit(3)
		case errors.Is(err, cmd.ErrDiagnostics):
			os.Exit(4)
		}
		os.Exit(1)
	}
}

package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func TestListText(t *testing.T) {
	viper.Reset()
	viper.Set("format", "text")

	dir := t.TempDir()
	input := writeCaptureLog(t, dir, captureLines)

	var out bytes.Buffer
	cmd := &cobra.Command{Use: "list"}
	cmd.SetOut(&out)

	if err := runList(cmd, []string{input}); err != nil {
		t.Fatalf("runList() error = %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "zone 1: The Bowl of Embers") {
		t.Errorf("list output missing zone: %s", got)
	}
	if !strings.Contains(got, "fight 1: The Bowl of Embers") {
		t.Errorf("list output missing fight: %s", got)
	}
}

func TestListJSON(t *testing.T) {
	viper.Reset()
	viper.Set("format", "json")

	dir := t.TempDir()
	input := writeCaptureLog(t, dir, captureLines)

	var out bytes.Buffer
	cmd := &cobra.Command{Use: "list"}
	cmd.SetOut(&out)

	if err := runList(cmd, []string{input}); err != nil {
		t.Fatalf("runList() error = %v", err)
	}

	if !strings.Contains(out.String(), `"fights"`) {
		t.Errorf("json output missing fights key: %s", out.String())
	}
}

func TestListMissingFile(t *testing.T) {
	viper.Reset()
	viper.Set("format", "text")

	cmd := &cobra.Command{Use: "list"}
	cmd.SetOut(&bytes.Buffer{})

	if err := runList(cmd, []string{"/no/such/file.log"}); err == nil {
		t.Fatal("runList() expected error for missing file")
	}
}

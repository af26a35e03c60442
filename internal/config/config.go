// Package config provides configuration types and helpers for xivsplit.
package config

// Config holds the application-wide configuration, populated from the
// config file, environment, and flags via viper.
type Config struct {
	Format  string `mapstructure:"format"`
	Verbose bool   `mapstructure:"verbose"`

	// OutDir is where split files are written.
	OutDir string `mapstructure:"out_dir"`
	// Overwrite permits replacing an existing output file; without it an
	// existing destination is a fatal error.
	Overwrite bool `mapstructure:"overwrite"`

	// Anonymize rewrites player-identifying fields to pseudonyms. On by
	// default; disable with --no-anonymize.
	Anonymize bool `mapstructure:"anonymize"`
	// AnalysisFilter keeps only analysis-relevant lines in split output.
	AnalysisFilter bool `mapstructure:"analysis_filter"`
	// IncludeGlobals always emits zone-independent lines (version, debug,
	// primary player changes) into split output.
	IncludeGlobals bool `mapstructure:"include_globals"`
}

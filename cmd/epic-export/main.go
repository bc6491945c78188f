// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the epic-export CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/epic-export/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the epic-export CLI.
var rootCmd = &cobra.Command{
	Use:   "epic-export",
	Short: "Convert Epic clinical exports to CSV, JSON, YAML, or SQLite",
	Long: `epic-export converts tab-separated Epic export files (clinic notes and
pathology reports) into CSV, JSON, YAML, or a SQLite database. Each input
file carries a header line followed by one data line per report fragment;
fragments that belong to the same pathology report are consolidated into a
single record with their report text concatenated in order.

Records are grouped by MRN, date, LabOrderEpicId, CaseName, and
SpecimenSource, and fragments ordered by ConcatenationLine and
ConcatenationSubLine. The column names are overridable through the config
file for exports with a different layout.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./epic-export.yaml or ~/.config/epic-export/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("epic-export")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "epic-export"))
		}
	}

	viper.SetEnvPrefix("EPIC_EXPORT")
	viper.AutomaticEnv()

	def := types.DefaultMergeConfig()
	viper.SetDefault("pattern", "*.txt")
	viper.SetDefault("merge.key_fields", def.KeyFields)
	viper.SetDefault("merge.line_field", def.LineField)
	viper.SetDefault("merge.sub_line_field", def.SubLineField)
	viper.SetDefault("merge.text_field", def.TextField)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

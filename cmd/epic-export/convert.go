package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/epic-export/internal/pipeline"
	"github.com/pdiddy/epic-export/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert INPUT_DIR",
	Short: "Convert a directory of export files into a single output file",
	Long: `Convert reads every file in INPUT_DIR matching the glob pattern, merges
pathology report fragments into consolidated records, and writes them to
the output file. The output extension selects the format: .csv, .json,
.yaml/.yml, or .db/.sqlite.

Pass --no-merge to emit one record per input row instead of consolidating.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		pattern, _ := cmd.Flags().GetString("pattern")
		compact, _ := cmd.Flags().GetBool("compact")
		noMerge, _ := cmd.Flags().GetBool("no-merge")

		if pattern == "" {
			pattern = viper.GetString("pattern")
		}

		opts := pipeline.Options{
			InputDir:   args[0],
			OutputPath: output,
			Config: types.ConvertConfig{
				Pattern: pattern,
				Compact: compact,
				NoMerge: noMerge,
				Merge: types.MergeConfig{
					KeyFields:    viper.GetStringSlice("merge.key_fields"),
					LineField:    viper.GetString("merge.line_field"),
					SubLineField: viper.GetString("merge.sub_line_field"),
					TextField:    viper.GetString("merge.text_field"),
				},
			},
		}

		summary, err := pipeline.Run(opts, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Done: %d files, %d rows, %d records\n",
			summary.Files, summary.Rows, summary.Records)
		return nil
	},
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output file path (.csv, .json, .yaml, .db, .sqlite)")
	convertCmd.Flags().StringP("pattern", "p", "", "glob pattern for input files (default: *.txt)")
	convertCmd.Flags().Bool("compact", false, "compact JSON formatting (only applies to JSON output)")
	convertCmd.Flags().Bool("no-merge", false, "do not merge records; output individual rows as-is")
	convertCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(convertCmd)
}

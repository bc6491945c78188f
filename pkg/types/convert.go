// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MergeConfig names the columns that drive report consolidation. Rows whose
// key-field values are all equal describe one logical report; the line and
// sub-line columns order its fragments, and the text column is what gets
// concatenated.
type MergeConfig struct {
	// KeyFields identify a logical report.
	KeyFields []string `json:"key_fields" yaml:"key_fields"`

	// LineField and SubLineField order fragments within a report.
	LineField    string `json:"line_field" yaml:"line_field"`
	SubLineField string `json:"sub_line_field" yaml:"sub_line_field"`

	// TextField is the column concatenated across fragments, newline
	// separated, in (LineField, SubLineField) order.
	TextField string `json:"text_field" yaml:"text_field"`
}

// DefaultMergeConfig returns the column names used by Epic pathology
// exports.
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{
		KeyFields:    []string{"MRN", "date", "LabOrderEpicId", "CaseName", "SpecimenSource"},
		LineField:    "ConcatenationLine",
		SubLineField: "ConcatenationSubLine",
		TextField:    "ValueText",
	}
}

// Normalized returns the config with any unset fields filled from
// DefaultMergeConfig.
func (c MergeConfig) Normalized() MergeConfig {
	def := DefaultMergeConfig()
	if len(c.KeyFields) == 0 {
		c.KeyFields = def.KeyFields
	}
	if c.LineField == "" {
		c.LineField = def.LineField
	}
	if c.SubLineField == "" {
		c.SubLineField = def.SubLineField
	}
	if c.TextField == "" {
		c.TextField = def.TextField
	}
	return c
}

// ConvertConfig holds settings for a conversion run.
type ConvertConfig struct {
	// Pattern is the glob matched against file names in the input
	// directory (default "*.txt").
	Pattern string `json:"pattern" yaml:"pattern"`

	// Compact disables pretty-printing for JSON output.
	Compact bool `json:"compact" yaml:"compact"`

	// NoMerge emits one record per input row instead of consolidating
	// reports.
	NoMerge bool `json:"no_merge" yaml:"no_merge"`

	// Merge names the columns driving consolidation.
	Merge MergeConfig `json:"merge" yaml:"merge"`
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge consolidates multi-fragment pathology report rows into
// single records. Rows sharing the same identity-key values form one group;
// each group's text fragments are joined in line order into one record.
package merge

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/epic-export/pkg/types"
)

// keySep joins merge-key values into a single map key. The unit separator
// cannot appear in tab-separated values, so composite keys compare exactly
// like value tuples.
const keySep = "\x1f"

// groupKey builds the composite identity key for a row. A missing key field
// contributes the empty string, so partial rows still group.
func groupKey(row types.Row, fields []string) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = row[f]
	}
	return strings.Join(parts, keySep)
}

// Consolidate merges rows that share the same key-field values into one
// record each. Groups are emitted in first-appearance order of their key,
// which makes output deterministic for a given input row sequence.
//
// Within a group, fragments are ordered ascending by the line and sub-line
// columns and the text column values are joined with newlines. The two
// ordering columns are dropped from the result; every other column keeps
// the value from the group's first input row.
func Consolidate(rows []types.Row, cfg types.MergeConfig) []types.Row {
	groups := make(map[string][]types.Row)
	var order []string

	for _, row := range rows {
		k := groupKey(row, cfg.KeyFields)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], row)
	}

	out := make([]types.Row, 0, len(order))
	for _, k := range order {
		out = append(out, consolidateGroup(groups[k], cfg))
	}
	return out
}

func consolidateGroup(group []types.Row, cfg types.MergeConfig) types.Row {
	merged := group[0].Clone()

	sorted := make([]types.Row, len(group))
	copy(sorted, group)
	sort.SliceStable(sorted, func(i, j int) bool {
		if c := compareOrdinal(sorted[i][cfg.LineField], sorted[j][cfg.LineField]); c != 0 {
			return c < 0
		}
		return compareOrdinal(sorted[i][cfg.SubLineField], sorted[j][cfg.SubLineField]) < 0
	})

	texts := make([]string, len(sorted))
	for i, row := range sorted {
		texts[i] = row[cfg.TextField]
	}
	merged[cfg.TextField] = strings.Join(texts, "\n")

	delete(merged, cfg.LineField)
	delete(merged, cfg.SubLineField)
	return merged
}

// compareOrdinal compares two ordering values numerically when both parse
// as integers, lexicographically otherwise. Export data is expected to be
// numeric here; the lexicographic path covers malformed or missing values.
func compareOrdinal(a, b string) int {
	ai, aerr := strconv.Atoi(strings.TrimSpace(a))
	bi, berr := strconv.Atoi(strings.TrimSpace(b))
	if aerr == nil && berr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}

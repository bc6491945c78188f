// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tabfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pdiddy/epic-export/pkg/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantRows   []types.Row
		wantHeader []string
		wantWarn   string
	}{
		{
			name:       "two well-formed rows",
			input:      "MRN\tdate\tValueText\n10001\t2024-01-15\tBenign.\n10002\t2024-01-16\tMalignant.\n",
			wantHeader: []string{"MRN", "date", "ValueText"},
			wantRows: []types.Row{
				{"MRN": "10001", "date": "2024-01-15", "ValueText": "Benign."},
				{"MRN": "10002", "date": "2024-01-16", "ValueText": "Malignant."},
			},
		},
		{
			name:       "crlf line endings",
			input:      "MRN\tdate\r\n10001\t2024-01-15\r\n",
			wantHeader: []string{"MRN", "date"},
			wantRows: []types.Row{
				{"MRN": "10001", "date": "2024-01-15"},
			},
		},
		{
			name:       "short row padded with empty strings",
			input:      "MRN\tdate\tValueText\n10001\n",
			wantHeader: []string{"MRN", "date", "ValueText"},
			wantRows: []types.Row{
				{"MRN": "10001", "date": "", "ValueText": ""},
			},
			wantWarn: "line 2 has 3 headers but 1 values",
		},
		{
			name:       "long row truncated",
			input:      "MRN\tdate\n10001\t2024-01-15\textra\tmore\n",
			wantHeader: []string{"MRN", "date"},
			wantRows: []types.Row{
				{"MRN": "10001", "date": "2024-01-15"},
			},
			wantWarn: "line 2 has 2 headers but 4 values",
		},
		{
			name:       "blank interior lines skipped",
			input:      "MRN\tdate\n10001\t2024-01-15\n\n10002\t2024-01-16\n",
			wantHeader: []string{"MRN", "date"},
			wantRows: []types.Row{
				{"MRN": "10001", "date": "2024-01-15"},
				{"MRN": "10002", "date": "2024-01-16"},
			},
		},
		{
			name:     "header only is skipped",
			input:    "MRN\tdate\n",
			wantWarn: "fewer than 2 lines, skipping",
		},
		{
			name:     "empty file is skipped",
			input:    "",
			wantWarn: "fewer than 2 lines, skipping",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var warn bytes.Buffer
			rows, header := Parse("notes_01.txt", []byte(tt.input), &warn)

			if len(rows) != len(tt.wantRows) {
				t.Fatalf("got %d rows, want %d", len(rows), len(tt.wantRows))
			}
			for i, want := range tt.wantRows {
				for k, v := range want {
					if rows[i][k] != v {
						t.Errorf("row %d %s = %q, want %q", i, k, rows[i][k], v)
					}
				}
				if len(rows[i]) != len(want) {
					t.Errorf("row %d has %d fields, want %d", i, len(rows[i]), len(want))
				}
			}

			if len(header) != len(tt.wantHeader) {
				t.Fatalf("got header %v, want %v", header, tt.wantHeader)
			}
			for i, h := range tt.wantHeader {
				if header[i] != h {
					t.Errorf("header[%d] = %q, want %q", i, header[i], h)
				}
			}

			if tt.wantWarn == "" {
				if warn.Len() != 0 {
					t.Errorf("unexpected warning: %q", warn.String())
				}
			} else if !strings.Contains(warn.String(), tt.wantWarn) {
				t.Errorf("warning %q does not contain %q", warn.String(), tt.wantWarn)
			}
		})
	}
}

func TestParse_WarningNamesFile(t *testing.T) {
	var warn bytes.Buffer
	Parse("path_report_07.txt", []byte("only a header line"), &warn)
	if !strings.Contains(warn.String(), "path_report_07.txt") {
		t.Errorf("warning %q does not name the file", warn.String())
	}
}

func TestParse_HeaderNamesExact(t *testing.T) {
	// Header identity is exact text: interior whitespace and case survive.
	input := "Specimen Source\tMRN \nBone Marrow\t10001\n"
	var warn bytes.Buffer
	rows, header := Parse("f.txt", []byte(input), &warn)

	if header[0] != "Specimen Source" || header[1] != "MRN " {
		t.Fatalf("header = %q", header)
	}
	if rows[0]["Specimen Source"] != "Bone Marrow" {
		t.Errorf("value lookup by exact header name failed: %v", rows[0])
	}
}

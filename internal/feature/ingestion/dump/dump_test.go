package dump

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []Record
		wantErr bool
	}{
		{
			name:  "success: records in dump order",
			input: `[{"ACT Symbol":"MSFT","Company Name":"Microsoft Corp."},{"ACT Symbol":"AAPL","Company Name":"Apple Inc."}]`,
			want: []Record{
				{ActSymbol: "MSFT", CompanyName: "Microsoft Corp."},
				{ActSymbol: "AAPL", CompanyName: "Apple Inc."},
			},
		},
		{
			name:  "success: empty array",
			input: `[]`,
			want:  []Record{},
		},
		{
			name:  "success: duplicate symbols are kept",
			input: `[{"ACT Symbol":"DUP","Company Name":"First"},{"ACT Symbol":"DUP","Company Name":"Second"}]`,
			want: []Record{
				{ActSymbol: "DUP", CompanyName: "First"},
				{ActSymbol: "DUP", CompanyName: "Second"},
			},
		},
		{
			name:    "error: malformed json",
			input:   `[{"ACT Symbol":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseJSON(strings.NewReader(tt.input))

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCSV(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []Record
		wantErr string
	}{
		{
			name:  "success: header plus rows",
			input: "ACT Symbol,Company Name\nMSFT,Microsoft Corp.\nAAPL,Apple Inc.\n",
			want: []Record{
				{ActSymbol: "MSFT", CompanyName: "Microsoft Corp."},
				{ActSymbol: "AAPL", CompanyName: "Apple Inc."},
			},
		},
		{
			name:  "success: columns in any order, extra columns ignored",
			input: "Company Name,Exchange,ACT Symbol\nMicrosoft Corp.,NASDAQ,MSFT\n",
			want: []Record{
				{ActSymbol: "MSFT", CompanyName: "Microsoft Corp."},
			},
		},
		{
			name:  "success: fields are trimmed",
			input: "ACT Symbol,Company Name\n MSFT , Microsoft Corp. \n",
			want: []Record{
				{ActSymbol: "MSFT", CompanyName: "Microsoft Corp."},
			},
		},
		{
			name:    "error: missing symbol column",
			input:   "Symbol,Company Name\nMSFT,Microsoft Corp.\n",
			wantErr: "ACT Symbol",
		},
		{
			name:    "error: missing company column",
			input:   "ACT Symbol,Name\nMSFT,Microsoft Corp.\n",
			wantErr: "Company Name",
		},
		{
			name:    "error: empty input",
			input:   "",
			wantErr: "header",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseCSV(strings.NewReader(tt.input))

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "comp_small.json")
	writeFile(t, jsonPath, `[{"ACT Symbol":"MSFT","Company Name":"Microsoft Corp."}]`)

	csvPath := filepath.Join(dir, "comp_small.csv")
	writeFile(t, csvPath, "ACT Symbol,Company Name\nMSFT,Microsoft Corp.\n")

	for _, path := range []string{jsonPath, csvPath} {
		got, err := ParseFile(path)
		require.NoError(t, err, "parse %s", path)
		require.Len(t, got, 1)
		assert.Equal(t, "MSFT", got[0].ActSymbol)
		assert.Equal(t, "Microsoft Corp.", got[0].CompanyName)
	}

	_, err := ParseFile(filepath.Join(dir, "comp_small.xml"))
	assert.Error(t, err, "unknown extension should be rejected")

	_, err = ParseFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

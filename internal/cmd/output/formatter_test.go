package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"", "", false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, sample{Name: "calpe", Count: 3}))

	var got sample
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sample{Name: "calpe", Count: 3}, got)
	assert.Contains(t, buf.String(), "\n  \"name\"")
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, sample{Name: "calpe", Count: 3}))
	assert.Equal(t, "name: calpe\ncount: 3\n", buf.String())
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	data := Data{
		Title:           "Conflicts",
		Headers:         []string{"Field", "Sources"},
		Rows:            [][]string{{"title", "3"}, {"location.name", "2"}},
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, data))

	out := buf.String()
	assert.Contains(t, out, "Conflicts\n")
	assert.Contains(t, strings.ToUpper(out), "FIELD")
	assert.Contains(t, out, "location.name")
}

func TestTableFormatterMultipleTables(t *testing.T) {
	var buf bytes.Buffer
	tables := Tables{
		{Title: "First", Headers: []string{"A"}, Rows: [][]string{{"1"}}},
		{Title: "Second", Headers: []string{"B"}, Rows: [][]string{{"2"}}},
	}
	require.NoError(t, (&TableFormatter{}).Format(&buf, tables))
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("First")), bytes.Index(buf.Bytes(), []byte("Second")))
}

func TestTableFormatterFallsBackToYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TableFormatter{}).Format(&buf, sample{Name: "x"}))
	assert.Contains(t, buf.String(), "name: x")
}

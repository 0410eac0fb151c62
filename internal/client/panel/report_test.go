package panel

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"codebenders/internal/client/wizard"
)

func TestParseExportFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ExportFormat
		wantErr bool
	}{
		{in: "json", want: FormatJSON},
		{in: " CSV ", want: FormatCSV},
		{in: "yml", want: FormatYAML},
		{in: "pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseExportFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExportReport(t *testing.T) {
	report := SampleReport()

	t.Run("json", func(t *testing.T) {
		out, err := report.ExportBytes(FormatJSON)
		require.NoError(t, err)

		var back PerformanceReport
		require.NoError(t, json.Unmarshal(out, &back))
		assert.Equal(t, report, back)
		assert.Contains(t, string(out), `"apiPerformance"`)
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := report.ExportBytes(FormatYAML)
		require.NoError(t, err)

		var back PerformanceReport
		require.NoError(t, yaml.Unmarshal(out, &back))
		assert.Equal(t, report, back)
	})

	t.Run("csv", func(t *testing.T) {
		out, err := report.ExportBytes(FormatCSV)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(string(out)), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "API Name,Endpoint,Avg Response Time,Status", lines[0])
		assert.Equal(t, "GET SIZES,/api/get_sizes,6.80s,Fail", lines[1])
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := report.ExportBytes("pdf")
		assert.Error(t, err)
	})
}

func TestInfoFor(t *testing.T) {
	for _, step := range []wizard.Step{wizard.CodeGeneration, wizard.Preview, wizard.APIFactory, wizard.Deploy, wizard.ABTesting} {
		info, ok := InfoFor(step)
		assert.True(t, ok, step.String())
		assert.Equal(t, step, info.Step)
		assert.NotEmpty(t, info.Title)
	}

	_, ok := InfoFor(wizard.Requirements)
	assert.False(t, ok)
}

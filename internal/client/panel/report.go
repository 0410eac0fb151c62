package panel

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatCSV  ExportFormat = "csv"
	FormatYAML ExportFormat = "yaml"
)

func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// Extension is the file suffix for the format.
func (f ExportFormat) Extension() string {
	return "." + string(f)
}

type TestInformation struct {
	TestType  string `json:"testType" yaml:"testType"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	APITested string `json:"apiTested" yaml:"apiTested"`
	AuthTime  string `json:"authTime" yaml:"authTime"`
}

type APIPerformance struct {
	APIName         string `json:"apiName" yaml:"apiName"`
	Endpoint        string `json:"endpoint" yaml:"endpoint"`
	AvgResponseTime string `json:"avgResponseTime" yaml:"avgResponseTime"`
	Status          string `json:"status" yaml:"status"`
}

type PerformanceReport struct {
	TotalRequests   int              `json:"totalRequests" yaml:"totalRequests"`
	AvgResponseTime string           `json:"avgResponseTime" yaml:"avgResponseTime"`
	PassRate        string           `json:"passRate" yaml:"passRate"`
	MaxUsers        string           `json:"maxUsers" yaml:"maxUsers"`
	TestInformation TestInformation  `json:"testInformation" yaml:"testInformation"`
	APIPerformance  []APIPerformance `json:"apiPerformance" yaml:"apiPerformance"`
}

// SampleReport is the report shown until load tests run against the
// generated application.
func SampleReport() PerformanceReport {
	return PerformanceReport{
		TotalRequests:   15,
		AvgResponseTime: "5.32s",
		PassRate:        "100%",
		MaxUsers:        "~150 VUs",
		TestInformation: TestInformation{
			TestType:  "pure_npl_nfr",
			Timestamp: "28/9/25, 27:45:09 am",
			APITested: "28/9/25",
			AuthTime:  "2.711",
		},
		APIPerformance: []APIPerformance{
			{APIName: "GET SIZES", Endpoint: "/api/get_sizes", AvgResponseTime: "6.80s", Status: "Fail"},
		},
	}
}

// Export writes r in the given format.
func (r PerformanceReport) Export(w io.Writer, format ExportFormat) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"API Name", "Endpoint", "Avg Response Time", "Status"}); err != nil {
			return err
		}
		for _, p := range r.APIPerformance {
			if err := cw.Write([]string{p.APIName, p.Endpoint, p.AvgResponseTime, p.Status}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	}
	return fmt.Errorf("unsupported export format %q", format)
}

func (r PerformanceReport) ExportBytes(format ExportFormat) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Export(&buf, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

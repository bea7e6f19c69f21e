// Package report builds and writes validation reports.
//
// The JSON schema is stable: tools downstream (CI dashboards, asset
// trackers) parse these files, so field names and defaults stay fixed.
// Empty collections serialize as [] rather than null.
package report

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/texforge/texpack/internal/grouping"
	"github.com/texforge/texpack/internal/scan"
	"github.com/texforge/texpack/internal/texture"
)

// ToolName appears in every report's "tool" field.
const ToolName = "Texture Pack Validator"

// Report is a single-folder validation report.
type Report struct {
	Tool         string        `json:"tool"`
	Version      string        `json:"version"`
	Timestamp    string        `json:"timestamp"`
	Profile      string        `json:"profile"`
	Assets       []Asset       `json:"assets"`
	NamingIssues []NamingIssue `json:"naming_issues"`
	AutofixLog   []string      `json:"autofix_log"`
}

// Asset is one asset's slice of a report.
type Asset struct {
	Name    string           `json:"name"`
	Maps    []string         `json:"maps"`
	Results []texture.Result `json:"results"`
}

// NamingIssue records a file whose name failed to parse.
type NamingIssue struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// BatchReport is a multi-folder batch report.
type BatchReport struct {
	Tool      string            `json:"tool"`
	Version   string            `json:"version"`
	Timestamp string            `json:"timestamp"`
	Profile   string            `json:"profile"`
	Folders   []scan.BatchEntry `json:"folders"`
}

// Build assembles a report from a folder scan. Assets are ordered
// case-insensitively by name.
func Build(version, profileName string, result *scan.FolderScan, autofixLog []string) Report {
	assets := make([]Asset, 0, len(result.Groups))
	for _, name := range grouping.SortedNames(result.Groups) {
		g := result.Groups[name]

		maps := make([]string, 0, len(g.Textures))
		for _, m := range g.MapTypes() {
			maps = append(maps, string(m))
		}

		results := result.ResultsByAsset[name]
		if results == nil {
			results = []texture.Result{}
		}

		assets = append(assets, Asset{Name: name, Maps: maps, Results: results})
	}

	issues := make([]NamingIssue, 0, len(result.Unparsed))
	for _, rec := range result.Unparsed {
		issues = append(issues, NamingIssue{File: rec.RelPath, Error: rec.ParseError()})
	}

	if autofixLog == nil {
		autofixLog = []string{}
	}

	return Report{
		Tool:         ToolName,
		Version:      version,
		Timestamp:    isoNow(),
		Profile:      profileName,
		Assets:       assets,
		NamingIssues: issues,
		AutofixLog:   autofixLog,
	}
}

// BuildBatch assembles a batch report from per-folder entries.
func BuildBatch(version, profileName string, entries []scan.BatchEntry) BatchReport {
	if entries == nil {
		entries = []scan.BatchEntry{}
	}
	return BatchReport{
		Tool:      ToolName,
		Version:   version,
		Timestamp: isoNow(),
		Profile:   profileName,
		Folders:   entries,
	}
}

// WriteJSON writes any report value as indented JSON.
func WriteJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// EnsureReportsDir creates (if needed) and returns the reports directory.
// A relative dir lands under root; an absolute dir is used as-is; an empty
// dir means the default "reports".
func EnsureReportsDir(root, dir string) (string, error) {
	if dir == "" {
		dir = "reports"
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}
	return dir, nil
}

func isoNow() string {
	return time.Now().Format(time.RFC3339)
}

// Markdown renders a report as a compact markdown summary, suitable for
// terminal rendering or pasting into a review thread.
func Markdown(r Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", r.Tool)
	fmt.Fprintf(&b, "Profile: **%s** | Generated: %s\n\n", r.Profile, r.Timestamp)

	b.WriteString("## Assets\n\n")
	if len(r.Assets) == 0 {
		b.WriteString("_No assets found._\n\n")
	}
	for _, a := range r.Assets {
		errs, warns, _ := texture.CountLevels(a.Results)
		maps := "no parsed maps"
		if len(a.Maps) > 0 {
			maps = strings.Join(a.Maps, ", ")
		}
		fmt.Fprintf(&b, "### %s\n\n", a.Name)
		fmt.Fprintf(&b, "Maps: %s (E:%d W:%d)\n\n", maps, errs, warns)
		for _, res := range a.Results {
			fmt.Fprintf(&b, "- **%s**: %s\n", res.Level, res.Message)
		}
		if len(a.Results) > 0 {
			b.WriteString("\n")
		}
	}

	b.WriteString("## Naming issues\n\n")
	if len(r.NamingIssues) == 0 {
		b.WriteString("_None._\n")
	}
	for _, issue := range r.NamingIssues {
		fmt.Fprintf(&b, "- `%s`: %s\n", issue.File, issue.Error)
	}
	b.WriteString("\n")

	b.WriteString("## Auto-fix log\n\n")
	if len(r.AutofixLog) == 0 {
		b.WriteString("_None._\n")
	}
	for _, line := range r.AutofixLog {
		fmt.Fprintf(&b, "- %s\n", line)
	}

	return b.String()
}

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>{{.Title}}</title>
</head>
<body style="font-family: Arial, sans-serif; margin: 24px;">
  <h1 style="margin-bottom:4px;">{{.Title}}</h1>
  <div style="color:#444;">Timestamp: {{.Report.Timestamp}}</div>
  <div style="color:#444; margin-bottom:16px;">Profile: {{.Report.Profile}}</div>

  <h2>Assets</h2>
  <table style="border-collapse:collapse; width:100%;">
    <thead>
      <tr>
        <th style="text-align:left; padding:8px; border-bottom:2px solid #333;">Asset</th>
        <th style="text-align:left; padding:8px; border-bottom:2px solid #333;">Maps</th>
        <th style="text-align:left; padding:8px; border-bottom:2px solid #333;">Results</th>
      </tr>
    </thead>
    <tbody>
{{- range .Report.Assets}}
      <tr>
        <td style="vertical-align:top; padding:8px; border-bottom:1px solid #ddd;"><b>{{.Name}}</b></td>
        <td style="vertical-align:top; padding:8px; border-bottom:1px solid #ddd;">{{join .Maps ", "}}</td>
        <td style="vertical-align:top; padding:8px; border-bottom:1px solid #ddd;">
{{- if .Results}}
{{- range .Results}}
          <div><b>{{.Level}}</b>: {{.Message}}</div>
{{- end}}
{{- else}}
          <div><i>No results</i></div>
{{- end}}
        </td>
      </tr>
{{- end}}
    </tbody>
  </table>

  <h2 style="margin-top:24px;">Naming Issues</h2>
{{- if .Report.NamingIssues}}
{{- range .Report.NamingIssues}}
  <div><b>{{.File}}</b>: {{.Error}}</div>
{{- end}}
{{- else}}
  <div><i>None</i></div>
{{- end}}

  <h2 style="margin-top:24px;">Auto-fix Log</h2>
{{- if .Report.AutofixLog}}
{{- range .Report.AutofixLog}}
  <div>{{.}}</div>
{{- end}}
{{- else}}
  <div><i>None</i></div>
{{- end}}
</body>
</html>
`))

// WriteHTML writes the self-contained HTML rendition of a report.
func WriteHTML(r Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write html report: %w", err)
	}
	defer f.Close()

	data := struct {
		Title  string
		Report Report
	}{
		Title:  r.Tool + " - Report",
		Report: r,
	}
	if err := htmlTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	return nil
}

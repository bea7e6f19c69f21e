package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/texforge/texpack/internal/scan"
	"github.com/texforge/texpack/internal/texture"
)

func sampleScan() *scan.FolderScan {
	crate := &texture.Group{Name: "Crate", Textures: []texture.Record{
		texture.NewParsedRecord("/t/Crate_BaseColor.png", "Crate_BaseColor.png", ".png",
			texture.ParsedName{Asset: "Crate", MapType: texture.MapBaseColor, RawToken: "BaseColor"}),
		texture.NewParsedRecord("/t/Crate_Normal.png", "Crate_Normal.png", ".png",
			texture.ParsedName{Asset: "Crate", MapType: texture.MapNormal, RawToken: "Normal"}),
	}}
	apple := &texture.Group{Name: "apple", Textures: []texture.Record{
		texture.NewParsedRecord("/t/apple_BaseColor.png", "apple_BaseColor.png", ".png",
			texture.ParsedName{Asset: "apple", MapType: texture.MapBaseColor, RawToken: "BaseColor"}),
	}}

	return &scan.FolderScan{
		Groups: map[string]*texture.Group{"Crate": crate, "apple": apple},
		Unparsed: []texture.Record{
			texture.NewUnparsedRecord("/t/odd.png", "odd.png", ".png",
				"no '_' separator found (expected Asset_MapType[_v###])"),
		},
		ResultsByAsset: map[string][]texture.Result{
			"Crate": {
				{Level: texture.LevelError, Message: "Missing required map: ORM (packed AO/Roughness/Metallic)"},
			},
		},
		Summary: scan.FolderSummary{Folder: "/t", AssetsFound: 2, TexturesScanned: 3, NamingIssues: 1},
	}
}

func TestBuild(t *testing.T) {
	r := Build("1.2.0", "Unreal", sampleScan(), nil)

	assert.Equal(t, ToolName, r.Tool)
	assert.Equal(t, "1.2.0", r.Version)
	assert.Equal(t, "Unreal", r.Profile)
	assert.NotEmpty(t, r.Timestamp)

	// Case-insensitive asset ordering.
	require.Len(t, r.Assets, 2)
	assert.Equal(t, "apple", r.Assets[0].Name)
	assert.Equal(t, "Crate", r.Assets[1].Name)

	assert.Equal(t, []string{"BaseColor", "Normal"}, r.Assets[1].Maps)
	assert.NotNil(t, r.Assets[0].Results, "assets without findings still carry an empty results list")
	assert.Empty(t, r.Assets[0].Results)

	require.Len(t, r.NamingIssues, 1)
	assert.Equal(t, "odd.png", r.NamingIssues[0].File)
	assert.Contains(t, r.NamingIssues[0].Error, "no '_' separator found")

	assert.NotNil(t, r.AutofixLog)
	assert.Empty(t, r.AutofixLog)
}

func TestReportJSONShape(t *testing.T) {
	r := Build("1.2.0", "Unity", sampleScan(), []string{"Auto-fix disabled."})

	data, err := json.Marshal(r)
	require.NoError(t, err)
	s := string(data)

	// Stable schema: empty collections are arrays, never null.
	assert.NotContains(t, s, ":null")
	assert.Contains(t, s, `"tool":"Texture Pack Validator"`)
	assert.Contains(t, s, `"naming_issues":[{"file":"odd.png"`)
	assert.Contains(t, s, `"autofix_log":["Auto-fix disabled."]`)
	assert.Contains(t, s, `"results":[]`)
}

func TestWriteJSONRoundTrip(t *testing.T) {
	r := Build("1.2.0", "Unity", sampleScan(), nil)
	path := filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, WriteJSON(r, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"tool\""), "report files are indented")

	var back Report
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, r, back)
}

func TestWriteHTML(t *testing.T) {
	result := sampleScan()
	result.ResultsByAsset["Crate"] = append(result.ResultsByAsset["Crate"],
		texture.Result{Level: texture.LevelWarning, Message: "BaseColor: <script> in name"})
	r := Build("1.2.0", "Unity", result, nil)
	path := filepath.Join(t.TempDir(), "report.html")

	require.NoError(t, WriteHTML(r, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, "<title>Texture Pack Validator - Report</title>")
	assert.Contains(t, html, "<b>Crate</b>")
	assert.Contains(t, html, "BaseColor, Normal")
	assert.Contains(t, html, "&lt;script&gt;", "messages are HTML-escaped")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "<div><i>No results</i></div>", "asset without findings shows a placeholder")
	assert.Contains(t, html, "<b>odd.png</b>")
	assert.Contains(t, html, "Auto-fix Log")
	assert.Contains(t, html, "<div><i>None</i></div>")
}

func TestMarkdown(t *testing.T) {
	r := Build("1.2.0", "Unreal", sampleScan(), []string{"Auto-fix disabled."})
	md := Markdown(r)

	assert.True(t, strings.HasPrefix(md, "# Texture Pack Validator\n"))
	assert.Contains(t, md, "Profile: **Unreal**")
	assert.Contains(t, md, "### Crate\n")
	assert.Contains(t, md, "Maps: BaseColor, Normal (E:1 W:0)")
	assert.Contains(t, md, "- **ERROR**: Missing required map: ORM")
	assert.Contains(t, md, "### apple\n")
	assert.Contains(t, md, "- `odd.png`: no '_' separator found")
	assert.Contains(t, md, "- Auto-fix disabled.")
}

func TestMarkdownEmptyReport(t *testing.T) {
	empty := &scan.FolderScan{
		Groups:         map[string]*texture.Group{},
		ResultsByAsset: map[string][]texture.Result{},
	}
	md := Markdown(Build("1.2.0", "Unity", empty, nil))

	assert.Contains(t, md, "_No assets found._")
	assert.Contains(t, md, "## Naming issues\n\n_None._")
	assert.Contains(t, md, "## Auto-fix log\n\n_None._")
}

func TestBuildBatch(t *testing.T) {
	renames := 2
	renameErrs := 0
	entries := []scan.BatchEntry{
		{
			FolderSummary:  scan.FolderSummary{Folder: "/a", AssetsFound: 3, TexturesScanned: 9},
			Status:         scan.BatchOK,
			RenamesApplied: &renames,
			RenameErrors:   &renameErrs,
		},
		{
			FolderSummary: scan.FolderSummary{Folder: "/b"},
			Status:        scan.BatchMissing,
		},
	}

	br := BuildBatch("1.2.0", "VFX", entries)
	data, err := json.MarshalIndent(br, "", "  ")
	require.NoError(t, err)
	s := string(data)

	assert.Contains(t, s, `"status": "ok"`)
	assert.Contains(t, s, `"renames_applied": 2`)
	assert.Contains(t, s, `"status": "missing"`)

	// Missing folders carry no rename counts at all.
	var decoded struct {
		Folders []map[string]any `json:"folders"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Folders, 2)
	assert.Contains(t, decoded.Folders[0], "renames_applied")
	assert.NotContains(t, decoded.Folders[1], "renames_applied")
	assert.NotContains(t, decoded.Folders[1], "error")
}

func TestBuildBatchEmpty(t *testing.T) {
	br := BuildBatch("1.2.0", "Unity", nil)
	data, err := json.Marshal(br)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"folders":[]`)
}

func TestEnsureReportsDir(t *testing.T) {
	root := t.TempDir()

	dir, err := EnsureReportsDir(root, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "reports"), dir)
	assert.DirExists(t, dir)

	// Idempotent.
	again, err := EnsureReportsDir(root, "")
	require.NoError(t, err)
	assert.Equal(t, dir, again)
}

func TestEnsureReportsDirCustom(t *testing.T) {
	root := t.TempDir()

	dir, err := EnsureReportsDir(root, "qa/out")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "qa", "out"), dir)
	assert.DirExists(t, dir)

	abs := filepath.Join(t.TempDir(), "elsewhere")
	dir, err = EnsureReportsDir(root, abs)
	require.NoError(t, err)
	assert.Equal(t, abs, dir)
	assert.DirExists(t, abs)
}

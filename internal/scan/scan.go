// Package scan orchestrates folder scans: discovery, grouping, validation
// and optional renaming.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/texforge/texpack/internal/autofix"
	"github.com/texforge/texpack/internal/grouping"
	"github.com/texforge/texpack/internal/imagemeta"
	"github.com/texforge/texpack/internal/naming"
	"github.com/texforge/texpack/internal/profile"
	"github.com/texforge/texpack/internal/rules"
	"github.com/texforge/texpack/internal/telemetry"
	"github.com/texforge/texpack/internal/texture"
)

// Scanner holds the grammar, rule tables and image reader a scan runs with.
// Construct with NewScanner; the zero value is not usable.
type Scanner struct {
	grammar naming.Grammar
	tables  rules.Tables
	reader  imagemeta.Reader
}

func NewScanner(grammar naming.Grammar, tables rules.Tables, reader imagemeta.Reader) *Scanner {
	scanMetricsOnce.Do(initScanMetrics)
	return &Scanner{grammar: grammar, tables: tables, reader: reader}
}

// scanMetrics holds lazily-initialized OTel instruments for folder scans.
var scanMetrics struct {
	textures metric.Int64Counter
	findings metric.Int64Counter
	duration metric.Float64Histogram
}

var scanMetricsOnce sync.Once

func initScanMetrics() {
	m := telemetry.Meter("github.com/texforge/texpack/scan")
	scanMetrics.textures, _ = m.Int64Counter("texpack.scan.textures",
		metric.WithDescription("Texture files examined by folder scans"),
		metric.WithUnit("{file}"),
	)
	scanMetrics.findings, _ = m.Int64Counter("texpack.scan.findings",
		metric.WithDescription("Validation findings produced by folder scans"),
		metric.WithUnit("{finding}"),
	)
	scanMetrics.duration, _ = m.Float64Histogram("texpack.scan.duration",
		metric.WithDescription("Folder scan duration in milliseconds"),
		metric.WithUnit("ms"),
	)
}

// FolderSummary is the aggregate outcome of scanning one folder.
type FolderSummary struct {
	Folder          string `json:"folder"`
	AssetsFound     int    `json:"assets_found"`
	TexturesScanned int    `json:"textures_scanned"`
	NamingIssues    int    `json:"naming_issues"`
	Errors          int    `json:"errors"`
	Warnings        int    `json:"warnings"`
	Infos           int    `json:"infos"`
}

// FolderScan is the full outcome of scanning one folder.
type FolderScan struct {
	Groups         map[string]*texture.Group
	Unparsed       []texture.Record
	ResultsByAsset map[string][]texture.Result
	Summary        FolderSummary
}

// Discover walks root and returns every file with a supported texture
// extension, in lexical order. Unreadable subdirectories are skipped;
// only a missing or unreadable root is an error.
func (s *Scanner) Discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if s.tables.IsSupported(strings.ToLower(filepath.Ext(path))) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover textures: %w", err)
	}
	return files, nil
}

// ScanFolder discovers, groups and validates every texture under folder.
// Checks run per asset in sorted order: required maps, then image metadata,
// then packed-channel analysis.
func (s *Scanner) ScanFolder(ctx context.Context, folder string, p profile.Profile) (*FolderScan, error) {
	tracer := telemetry.Tracer("github.com/texforge/texpack/scan")
	ctx, span := tracer.Start(ctx, "scan.folder")
	defer span.End()
	span.SetAttributes(
		attribute.String("texpack.folder", folder),
		attribute.String("texpack.profile", p.Name),
	)

	t0 := time.Now()
	files, err := s.Discover(folder)
	if err != nil {
		return nil, err
	}

	groups, unparsed := grouping.BuildGroups(files, folder, s.grammar)

	metadata := func(rec texture.Record) (imagemeta.Info, error) {
		return s.reader.Info(ctx, rec.Path)
	}
	extrema := func(rec texture.Record) (imagemeta.Extrema, error) {
		return s.reader.Extrema(ctx, rec.Path)
	}

	resultsByAsset := make(map[string][]texture.Result, len(groups))
	var totalErrors, totalWarnings, totalInfos int
	for _, name := range grouping.SortedNames(groups) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g := groups[name]

		var res []texture.Result
		res = append(res, rules.CheckRequiredMaps(g, p)...)
		res = append(res, rules.CheckImageMetadata(g, p, s.tables, metadata)...)
		res = append(res, rules.CheckPackedChannels(g, metadata, extrema)...)
		resultsByAsset[name] = res

		e, w, i := texture.CountLevels(res)
		totalErrors += e
		totalWarnings += w
		totalInfos += i
	}

	profileAttr := attribute.String("texpack.profile", p.Name)
	if scanMetrics.textures != nil {
		scanMetrics.textures.Add(ctx, int64(len(files)), metric.WithAttributes(profileAttr))
		scanMetrics.findings.Add(ctx, int64(totalErrors+totalWarnings+totalInfos), metric.WithAttributes(profileAttr))
		scanMetrics.duration.Record(ctx, float64(time.Since(t0).Milliseconds()), metric.WithAttributes(profileAttr))
	}
	span.SetAttributes(
		attribute.Int("texpack.scan.assets", len(groups)),
		attribute.Int("texpack.scan.errors", totalErrors),
		attribute.Int("texpack.scan.warnings", totalWarnings),
	)

	return &FolderScan{
		Groups:         groups,
		Unparsed:       unparsed,
		ResultsByAsset: resultsByAsset,
		Summary: FolderSummary{
			Folder:          folder,
			AssetsFound:     len(groups),
			TexturesScanned: len(files),
			NamingIssues:    len(unparsed),
			Errors:          totalErrors,
			Warnings:        totalWarnings,
			Infos:           totalInfos,
		},
	}, nil
}

// ScanAndFix scans a folder and, when fix is set, applies the rename plan
// and rescans so the returned scan reflects the fixed state. The log lines
// record what happened either way.
func (s *Scanner) ScanAndFix(ctx context.Context, folder string, p profile.Profile, fix bool) (*FolderScan, []string, error) {
	result, err := s.ScanFolder(ctx, folder, p)
	if err != nil {
		return nil, nil, err
	}

	if !fix {
		return result, []string{"Auto-fix disabled."}, nil
	}

	var actions []autofix.RenameAction
	for _, name := range grouping.SortedNames(result.Groups) {
		actions = append(actions, autofix.PlanRenames(result.Groups[name])...)
	}
	applied, renameErrs := autofix.ApplyRenames(actions)

	var log []string
	if len(applied) == 0 && len(renameErrs) == 0 {
		log = append(log, "Auto-fix enabled: nothing to rename.")
	}
	for _, a := range applied {
		log = append(log, fmt.Sprintf("Renamed: %s -> %s (%s)",
			filepath.Base(a.Src), filepath.Base(a.Dst), a.Note))
	}
	for _, e := range renameErrs {
		log = append(log, "ERROR: "+e)
	}

	result, err = s.ScanFolder(ctx, folder, p)
	if err != nil {
		return nil, log, err
	}
	return result, log, nil
}

package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/texforge/texpack/internal/config"
	"github.com/texforge/texpack/internal/debug"
	"github.com/texforge/texpack/internal/imagemeta"
	"github.com/texforge/texpack/internal/naming"
	"github.com/texforge/texpack/internal/profile"
	"github.com/texforge/texpack/internal/rules"
	"github.com/texforge/texpack/internal/scan"
	"github.com/texforge/texpack/internal/telemetry"
	"github.com/texforge/texpack/internal/ui"
)

// Pipeline state assembled once per invocation by PersistentPreRun.
var (
	// Signal-aware context for graceful cancellation
	rootCtx    context.Context
	rootCancel context.CancelFunc

	settings      config.Settings
	grammar       naming.Grammar
	ruleTables    rules.Tables
	knownProfiles []profile.Profile
	activeProfile profile.Profile
	scanner       *scan.Scanner
)

// applyVerbosityFlags propagates --verbose and --quiet to the debug package
// so all subsequent log output respects the user's preference.
func applyVerbosityFlags() {
	debug.SetVerbose(verboseFlag)
	debug.SetQuiet(quietFlag)
}

// applyColorFlags forces plain output for --no-color. NO_COLOR and friends
// are handled by the styling layer itself.
func applyColorFlags() {
	if noColorFlag {
		ui.DisableColor()
	}
}

// setupSignalContext installs a context cancelled on SIGINT/SIGTERM so long
// scans stop between assets instead of mid-write.
func setupSignalContext() {
	rootCtx, rootCancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// loadPipeline loads settings and the optional tables overlay, then builds
// the grammar, rule tables, profile set and scanner the commands share.
// Configuration problems are fatal here: every later step depends on them.
func loadPipeline() {
	cwd, err := os.Getwd()
	if err != nil {
		FatalError("resolve working directory: %v", err)
	}

	cfgPath := configFlag
	searchDir := cwd
	if cfgPath == "" {
		cfgPath = config.FindConfig(cwd)
	} else {
		searchDir = filepath.Dir(cfgPath)
	}

	settings, err = config.Load(cfgPath)
	if err != nil {
		FatalError("%v", err)
	}

	overlay, err := config.LoadOverlay(config.FindOverlay(searchDir))
	if err != nil {
		FatalError("%v", err)
	}

	grammar, err = overlay.Grammar()
	if err != nil {
		FatalError("%v", err)
	}

	knownProfiles, err = overlay.ProfileList()
	if err != nil {
		FatalError("%v", err)
	}

	ruleTables, err = settings.Tables()
	if err != nil {
		FatalError("%v", err)
	}

	resolveActiveProfile()

	scanner = scan.NewScanner(grammar, ruleTables, telemetry.WrapReader(imagemeta.FileReader{}))
}

// resolveActiveProfile picks the profile from --profile, then config, then
// the default. An unknown name warns and falls back to the default rather
// than failing, so a typo in CI config degrades instead of blocking.
func resolveActiveProfile() {
	name := profileFlag
	if name == "" {
		name = settings.Profile
	}

	p, err := profile.Resolve(knownProfiles, name)
	if err != nil {
		WarnError("%v; using %s", err, profile.Default().Name)
		p = profile.Default()
	}
	activeProfile = p
}

func initTelemetry() {
	if err := telemetry.Init(rootCtx, "texpack", Version); err != nil {
		WarnError("telemetry init: %v", err)
	}
}

func shutdownTelemetry() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	telemetry.Shutdown(ctx)
}

// pattern: Imperative Shell
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	flag "github.com/spf13/pflag"

	"forkrebase/internal/config"
	"forkrebase/internal/forks"
	"forkrebase/internal/gitcmd"
	"forkrebase/internal/instance"
	"forkrebase/internal/logging"
	"forkrebase/internal/rebase"
	"forkrebase/internal/tui"
	"forkrebase/internal/watch"
)

var version = "dev"

func main() {
	baseDir := flag.StringP("basedir", "b", ".",
		"directory that contains the clones of the forked repositories")
	configPath := flag.StringP("config", "c", "config.ini",
		"INI file of known repositories ([Display Name] url = <upstream url>); relative paths resolve against the base directory")
	theme := flag.String("theme", "mocha", "catppuccin theme (latte, frappe, macchiato, mocha)")
	logLevel := flag.String("log-level", "info", "minimum log level (debug, info, warn, error)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("forkrebase " + version)
		return
	}

	// Startup and discovery errors are fatal: nothing is shown until the
	// forks, the upstream consensus and the branch precondition all hold.
	if err := run(*baseDir, *configPath, *theme, *logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(baseDir, configPath, theme, logLevel string) error {
	info, err := os.Stat(baseDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%s is not a directory", baseDir)
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return err
	}

	registry, err := config.LoadRegistry(config.ResolvePath(absBase, configPath))
	if err != nil {
		return err
	}

	dataDir := filepath.Join(absBase, ".forkrebase")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}

	fl, err := instance.Lock(dataDir)
	if err != nil {
		return err
	}
	defer instance.Release(fl)

	logManager, err := logging.NewManager(logging.Config{
		FilePath:   filepath.Join(dataDir, "forkrebase.log"),
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Level:      logLevel,
	})
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer func() { _ = logManager.Close() }()

	appLogger := logManager.For("app")
	appLogger.Infow("application starting", "version", version, "basedir", absBase)

	git := gitcmd.NewClient(nil, logManager.For("git"))
	scanner := forks.NewScanner(git)

	ctx := context.Background()
	all, err := scanner.Scan(ctx, absBase)
	if err != nil {
		return err
	}
	appLogger.Infow("discovered forks", "count", len(all))

	upstreamURL, err := forks.FindUpstream(all)
	if err != nil {
		return err
	}
	if err := forks.RequireBranch(all, "master"); err != nil {
		return err
	}

	upstreamName := registry.DisplayName(upstreamURL)
	appLogger.Infow("upstream consensus", "url", upstreamURL, "name", upstreamName)

	// The watcher is best-effort: without it the table just never rescans.
	var changes <-chan struct{}
	if watcher, err := watch.New(absBase, logManager.For("watch")); err != nil {
		appLogger.Warnw("base directory watcher unavailable", "error", err)
	} else {
		defer func() { _ = watcher.Close() }()
		changes = watcher.Changes()
	}

	model := tui.NewModel(tui.Params{
		BaseDir:      absBase,
		UpstreamURL:  upstreamURL,
		UpstreamName: upstreamName,
		Forks:        all,
		Scanner:      scanner,
		Orchestrator: rebase.NewOrchestrator(git, logManager.For("rebase")),
		Logger:       logManager.For("tui"),
		LogEntries:   logManager.Entries(),
		Changes:      changes,
		Theme:        theme,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		appLogger.Errorw("application exited with error", "error", err)
		return err
	}

	appLogger.Info("application stopped")
	return nil
}

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/aegisgate/aegis/internal/gateway"
	"github.com/aegisgate/aegis/internal/tui"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	var configPath string
	var apiURL string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/aegis/config.yml)")
	flag.StringVar(&apiURL, "api-url", "", "override backend API base URL")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Aegis - Access Control Dashboard\n")
		fmt.Printf("  Version: %s\n", version)
		fmt.Printf("  Commit:  %s\n", commit)
		fmt.Printf("  Built:   %s\n", buildTime)
		return
	}

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if apiURL != "" {
		cfg.APIURL = apiURL
	}

	if err := runTUI(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg cliConfig) error {
	// The terminal belongs to the TUI, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	log := zerolog.New(logOut).With().Timestamp().Logger()

	gw := gateway.New(gateway.Config{
		BaseURL: cfg.APIURL,
		Timeout: cfg.RequestTimeout,
		Token:   func() string { return cfg.APIToken },
		Logger:  log,
	})

	app := tui.NewApp(
		tui.NewDashboardPage(gw, cfg.RefreshInterval, cfg.RequestTimeout),
		tui.NewCamerasPage(gw, cfg.RefreshInterval, cfg.RequestTimeout),
		tui.NewLogsPage(gw, cfg.RefreshInterval, cfg.RequestTimeout),
		tui.NewEmployeesPage(gw, cfg.RefreshInterval, cfg.RequestTimeout),
	)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

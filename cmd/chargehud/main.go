// Package main provides the CLI entrypoint for chargehud.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/odesza/chargehud/internal/config"
	"github.com/odesza/chargehud/internal/gamepad"
	"github.com/odesza/chargehud/internal/logging"
	"github.com/odesza/chargehud/internal/model"
	"github.com/odesza/chargehud/internal/statsui"
	"github.com/odesza/chargehud/internal/store"
	"github.com/odesza/chargehud/internal/tui"
)

const (
	defaultRefreshHz       = 60
	defaultClampMs         = 250
	defaultMaxCatchUpTicks = 15
	defaultHoldTimeoutMs   = 550
	defaultGamepadButton   = 0
)

var (
	hudRefreshHz       int
	hudClampMs         int
	hudMaxCatchUpTicks int
	hudHoldTimeoutMs   int
	hudGamepadDevice   string
	hudGamepadButton   int
	hudNoArchive       bool

	statsSince string
	statsLast  int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "chargehud",
		Short:         "Frame-accurate jump charge HUD",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runHudCmd,
	}

	rootCmd.Flags().IntVar(&hudRefreshHz, "refresh-hz", defaultRefreshHz, "display refresh rate driving the HUD")
	rootCmd.Flags().IntVar(&hudClampMs, "clamp-ms", defaultClampMs, "ceiling applied to a single elapsed interval (ms)")
	rootCmd.Flags().IntVar(&hudMaxCatchUpTicks, "max-catchup-ticks", defaultMaxCatchUpTicks, "most logical frames one refresh may emit after a stall")
	rootCmd.Flags().IntVar(&hudHoldTimeoutMs, "hold-timeout-ms", defaultHoldTimeoutMs, "key-repeat gap that ends a keyboard hold (ms)")
	rootCmd.Flags().StringVar(&hudGamepadDevice, "gamepad-device", gamepad.DefaultDevice, "joystick device node")
	rootCmd.Flags().IntVar(&hudGamepadButton, "gamepad-button", defaultGamepadButton, "joystick button bound to the charge action")
	rootCmd.Flags().BoolVar(&hudNoArchive, "no-archive", false, "do not record completed charges")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runHudCmd(cmd *cobra.Command, _ []string) error {
	configPath := config.DefaultConfigPath()
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "refresh-hz", &hudRefreshHz, fileCfg.Hud.RefreshHz)
	applyIntConfig(cmd, "clamp-ms", &hudClampMs, fileCfg.Hud.ClampMs)
	applyIntConfig(cmd, "max-catchup-ticks", &hudMaxCatchUpTicks, fileCfg.Hud.MaxCatchUpTicks)
	applyIntConfig(cmd, "hold-timeout-ms", &hudHoldTimeoutMs, fileCfg.Hud.HoldTimeoutMs)
	applyStringConfig(cmd, "gamepad-device", &hudGamepadDevice, fileCfg.Hud.GamepadDevice)
	applyIntConfig(cmd, "gamepad-button", &hudGamepadButton, fileCfg.Hud.GamepadButton)

	cfg := model.Config{
		RefreshHz:       hudRefreshHz,
		ClampMs:         hudClampMs,
		MaxCatchUpTicks: hudMaxCatchUpTicks,
		HoldTimeoutMs:   hudHoldTimeoutMs,
		GamepadDevice:   hudGamepadDevice,
		GamepadButton:   hudGamepadButton,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	log, closeLog, err := logging.Open(config.DefaultLogPath())
	if err != nil {
		return fmt.Errorf("failed to open diagnostics log: %w", err)
	}
	defer func() {
		if cerr := closeLog(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	var st *store.Store
	if !hudNoArchive {
		st, err = store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
	}

	pad, err := gamepad.Open(cfg.GamepadDevice, cfg.GamepadButton)
	if err != nil {
		// Keyboard and mouse still work; note it and move on.
		log.Warn().Err(err).Str("device", cfg.GamepadDevice).Msg("gamepad unavailable")
		pad = nil
	} else {
		defer func() {
			if cerr := pad.Close(); cerr != nil {
				logErrf("failed to close gamepad: %v\n", cerr)
			}
		}()
	}

	hud := tui.NewModel(cfg, st, pad, log)
	if watch, werr := tui.NewConfigWatcher(configPath); werr != nil {
		log.Warn().Err(werr).Msg("config watch unavailable")
	} else {
		hud.SetConfigWatch(watch)
		defer func() {
			if cerr := watch.Close(); cerr != nil {
				logErrf("failed to close config watch: %v\n", cerr)
			}
		}()
	}

	program := tea.NewProgram(hud, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Browse charge history",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N charges")
	return cmd
}

func runStatsCmd(_ *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		Since: sinceTime,
		Last:  statsLast,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	model := statsui.NewModel(st, cfg)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# chargehud configuration
# Uncomment a value to enable it. CLI flags override config values.
# The logical frame rate is fixed at 60 Hz and is not configurable.

[hud]
# refresh-hz = %d          # Display refresh rate driving the HUD
# clamp-ms = %d           # Ceiling applied to a single elapsed interval
# max-catchup-ticks = %d   # Most logical frames one refresh may emit
# hold-timeout-ms = %d    # Key-repeat gap that ends a keyboard hold
# gamepad-device = %q # Joystick device node
# gamepad-button = %d      # Joystick button bound to the charge action
`,
		defaultRefreshHz,
		defaultClampMs,
		defaultMaxCatchUpTicks,
		defaultHoldTimeoutMs,
		gamepad.DefaultDevice,
		defaultGamepadButton,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.RefreshHz <= 0 || cfg.RefreshHz > 1000 {
		return fmt.Errorf("--refresh-hz must be between 1 and 1000")
	}
	if cfg.ClampMs <= 0 {
		return fmt.Errorf("--clamp-ms must be > 0")
	}
	if cfg.MaxCatchUpTicks <= 0 {
		return fmt.Errorf("--max-catchup-ticks must be > 0")
	}
	if cfg.HoldTimeoutMs <= 0 {
		return fmt.Errorf("--hold-timeout-ms must be > 0")
	}
	if cfg.GamepadButton < 0 {
		return fmt.Errorf("--gamepad-button must be >= 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

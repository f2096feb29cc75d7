// Package tui provides the Bubble Tea charge HUD.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"

	"github.com/odesza/chargehud/internal/clock"
	"github.com/odesza/chargehud/internal/config"
	"github.com/odesza/chargehud/internal/counter"
	"github.com/odesza/chargehud/internal/engine"
	"github.com/odesza/chargehud/internal/gamepad"
	"github.com/odesza/chargehud/internal/inputmux"
	"github.com/odesza/chargehud/internal/model"
	"github.com/odesza/chargehud/internal/store"
)

var (
	chargingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	idleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	lastStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	barStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	barTrackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// barSpanFrames is how many frames one full bar represents. Charge
// platformers rarely reward holds past a second.
const barSpanFrames = 60

// tickMsg carries the monotonic timestamp of one display refresh.
type tickMsg time.Time

// Model implements the Bubble Tea HUD.
type Model struct {
	config  model.Config
	engine  *engine.Engine
	store   *store.Store
	log     zerolog.Logger
	keyhold *inputmux.KeyHold
	pad     *gamepad.Device

	refresh     time.Duration
	lastFrameAt time.Time
	snapshot    model.Snapshot

	width  int
	height int

	chargeCount int
	frameSum    uint64

	pending []inputmux.Edge

	watch *ConfigWatcher
}

// NewModel constructs the HUD model. pad may be nil when no joystick is
// available; st may be nil to disable archiving.
func NewModel(cfg model.Config, st *store.Store, pad *gamepad.Device, log zerolog.Logger) *Model {
	m := &Model{
		config:  cfg,
		store:   st,
		log:     log,
		pad:     pad,
		keyhold: inputmux.NewKeyHold(time.Duration(cfg.HoldTimeoutMs) * time.Millisecond),
		refresh: refreshInterval(cfg.RefreshHz),
	}
	var opts []clock.Option
	if cfg.ClampMs > 0 {
		opts = append(opts, clock.WithMaxElapsedClamp(float64(cfg.ClampMs)/1000))
	}
	if cfg.MaxCatchUpTicks > 0 {
		opts = append(opts, clock.WithMaxCatchUpTicks(cfg.MaxCatchUpTicks))
	}
	m.engine = engine.New(log, opts...)
	m.engine.OnCompleted(m.archiveCharge)
	m.loadFooterStats()
	return m
}

// SetConfigWatch attaches a config file watcher for live reload.
func (m *Model) SetConfigWatch(w *ConfigWatcher) { m.watch = w }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tickCmd()}
	if m.watch != nil {
		cmds = append(cmds, m.watch.waitCmd())
	}
	return tea.Batch(cmds...)
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tickMsg:
		m.frame(time.Time(msg))
		return m, m.tickCmd()
	case configReloadMsg:
		m.applyConfigReload(msg)
		return m, m.watch.waitCmd()
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		m.engine.Reset()
		m.snapshot = m.engine.Sample()
		return m, nil
	case " ":
		// Terminals repeat the held key; the tracker turns the repeat
		// stream into one hold.
		if m.keyhold.Keypress() {
			if edge, ok := m.engine.Mux().Set(inputmux.Keyboard, true, time.Now()); ok {
				m.pending = append(m.pending, edge)
			}
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Button != tea.MouseButtonLeft {
		return
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if edge, ok := m.engine.Mux().Set(inputmux.Mouse, true, time.Now()); ok {
			m.pending = append(m.pending, edge)
		}
	case tea.MouseActionRelease:
		if edge, ok := m.engine.Mux().Set(inputmux.Mouse, false, time.Now()); ok {
			m.pending = append(m.pending, edge)
		}
	}
}

// frame runs one driving-loop iteration: poll sources, hand the queued
// edges to the engine, advance the clock, then take the snapshot. The order
// matters; sampling before advancing would display stale counts.
func (m *Model) frame(now time.Time) {
	m.pollKeyboard(now)
	m.pollGamepad(now)

	elapsed := 0.0
	if !m.lastFrameAt.IsZero() {
		elapsed = now.Sub(m.lastFrameAt).Seconds()
	}
	m.lastFrameAt = now

	edges := m.pending
	m.pending = nil
	m.engine.Frame(elapsed, edges)
	m.snapshot = m.engine.Sample()
}

func (m *Model) pollKeyboard(now time.Time) {
	if !m.keyhold.Held() {
		if edge, ok := m.engine.Mux().Set(inputmux.Keyboard, false, now); ok {
			m.pending = append(m.pending, edge)
		}
	}
}

func (m *Model) pollGamepad(now time.Time) {
	if m.pad == nil {
		return
	}
	held, err := m.pad.Poll()
	if err != nil {
		// Unplugged mid-charge: release this source only, keep running.
		m.log.Warn().Err(err).Msg("gamepad lost; dropping source")
		if edge, ok := m.engine.Mux().Drop(inputmux.Gamepad, now); ok {
			m.pending = append(m.pending, edge)
		}
		if cerr := m.pad.Close(); cerr != nil {
			_ = cerr
		}
		m.pad = nil
		return
	}
	if edge, ok := m.engine.Mux().Set(inputmux.Gamepad, held, now); ok {
		m.pending = append(m.pending, edge)
	}
}

func (m *Model) archiveCharge(s *counter.Session) {
	m.chargeCount++
	m.frameSum += s.Frames
	m.log.Info().
		Uint64("frames", s.Frames).
		Uint64("start_tick", s.StartTick).
		Uint64("end_tick", s.EndTick).
		Str("source", s.Source).
		Msg("charge completed")
	if m.store == nil {
		return
	}
	rec := model.ChargeRecord{
		StartedAt: s.StartedAt,
		EndedAt:   s.EndedAt,
		StartTick: s.StartTick,
		EndTick:   s.EndTick,
		Frames:    s.Frames,
		Source:    s.Source,
	}
	if _, err := m.store.InsertCharge(context.Background(), rec); err != nil {
		m.log.Error().Err(err).Msg("failed to archive charge")
	}
}

func (m *Model) loadFooterStats() {
	if m.store == nil {
		return
	}
	agg, err := m.store.AggregateCharges(context.Background(), model.StatsConfig{})
	if err != nil {
		m.log.Error().Err(err).Msg("failed to load charge stats")
		return
	}
	m.chargeCount = agg.Count
	m.frameSum = uint64(agg.MeanFrames * float64(agg.Count))
}

func (m *Model) applyConfigReload(msg configReloadMsg) {
	if msg.err != nil {
		m.log.Warn().Err(msg.err).Msg("config reload failed")
		return
	}
	hud := msg.cfg.Hud
	if hud.HoldTimeoutMs != nil && *hud.HoldTimeoutMs > 0 {
		m.config.HoldTimeoutMs = *hud.HoldTimeoutMs
		m.keyhold.SetTimeout(time.Duration(*hud.HoldTimeoutMs) * time.Millisecond)
	}
	if hud.RefreshHz != nil && *hud.RefreshHz > 0 {
		m.config.RefreshHz = *hud.RefreshHz
		m.refresh = refreshInterval(*hud.RefreshHz)
	}
	if hud.GamepadDevice != nil || hud.GamepadButton != nil {
		m.reopenGamepad(hud)
	}
	m.log.Info().Msg("config reloaded")
}

func (m *Model) reopenGamepad(hud config.HudConfig) {
	device := m.config.GamepadDevice
	button := m.config.GamepadButton
	if hud.GamepadDevice != nil {
		device = *hud.GamepadDevice
	}
	if hud.GamepadButton != nil {
		button = *hud.GamepadButton
	}
	if device == m.config.GamepadDevice && button == m.config.GamepadButton && m.pad != nil {
		return
	}
	if m.pad != nil {
		if cerr := m.pad.Close(); cerr != nil {
			_ = cerr
		}
		m.pad = nil
	}
	m.config.GamepadDevice = device
	m.config.GamepadButton = button
	pad, err := gamepad.Open(device, button)
	if err != nil {
		m.log.Warn().Err(err).Str("device", device).Msg("gamepad unavailable")
		return
	}
	m.pad = pad
}

// View implements tea.Model.
func (m *Model) View() string {
	readout, status := m.readout()
	bar := m.renderBar()
	last := m.renderLast()
	content := strings.Join([]string{status, "", readout, "", bar, "", last}, "\n")
	if m.width == 0 || m.height == 0 {
		return content
	}
	footer := m.renderFooter()
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) readout() (string, string) {
	if m.snapshot.ActiveFrames != nil {
		number := bigNumber(fmt.Sprintf("%d", *m.snapshot.ActiveFrames))
		return chargingStyle.Render(number), chargingStyle.Render("CHARGING")
	}
	if m.snapshot.LastFrames != nil {
		number := bigNumber(fmt.Sprintf("%d", *m.snapshot.LastFrames))
		return lastStyle.Render(number), idleStyle.Render("READY")
	}
	return idleStyle.Render(bigNumber("-")), idleStyle.Render("READY")
}

// renderBar draws the visual charge gauge. It is display sugar only; the
// number above it is the authoritative count.
func (m *Model) renderBar() string {
	width := barSpanFrames
	if m.width > 0 && m.width-10 < width {
		width = m.width - 10
	}
	if width < 10 {
		width = 10
	}
	frames := uint64(0)
	if m.snapshot.ActiveFrames != nil {
		frames = *m.snapshot.ActiveFrames
	}
	filled := int(frames) * width / barSpanFrames
	if filled > width {
		filled = width
	}
	bar := barStyle.Render(strings.Repeat("█", filled)) +
		barTrackStyle.Render(strings.Repeat("░", width-filled))
	return bar
}

func (m *Model) renderLast() string {
	if m.snapshot.LastFrames == nil {
		return idleStyle.Render("hold space / mouse / gamepad to charge")
	}
	label := fmt.Sprintf("last charge: %d frames", *m.snapshot.LastFrames)
	pad := (barSpanFrames - runewidth.StringWidth(label)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + lastStyle.Render(label)
}

func (m *Model) renderFooter() string {
	segments := []string{fmt.Sprintf("tick %d", m.snapshot.CurrentTick)}
	if m.chargeCount > 0 {
		mean := float64(m.frameSum) / float64(m.chargeCount)
		segments = append(segments, fmt.Sprintf("%d charges · %.1f mean frames", m.chargeCount, mean))
	}
	segments = append(segments, "q quit · r reset")
	return footerStyle.Render(strings.Join(segments, "  "))
}

func refreshInterval(hz int) time.Duration {
	if hz <= 0 {
		hz = 60
	}
	return time.Second / time.Duration(hz)
}

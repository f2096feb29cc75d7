// Package statsui provides the Bubble Tea charge history interface.
package statsui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/odesza/chargehud/internal/model"
	"github.com/odesza/chargehud/internal/stats"
	"github.com/odesza/chargehud/internal/store"
)

const (
	tabOverview = iota
	tabCharges
	tabDistribution
	tabCount
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	store  *store.Store
	config model.StatsConfig

	tab    int
	width  int
	height int

	charges []model.ChargeRecord
	agg     model.ChargeAggregate
	loadErr error

	table    table.Model
	viewport viewport.Model
	ready    bool
}

// NewModel constructs the stats model and loads the archive.
func NewModel(st *store.Store, cfg model.StatsConfig) *Model {
	m := &Model{store: st, config: cfg}
	m.load()
	m.table = newChargeTable(m.charges)
	return m
}

func (m *Model) load() {
	ctx := context.Background()
	charges, err := m.store.ListCharges(ctx, m.config)
	if err != nil {
		m.loadErr = err
		return
	}
	m.charges = charges
	m.agg = stats.Summary(charges)
}

func newChargeTable(charges []model.ChargeRecord) table.Model {
	columns := []table.Column{
		{Title: "Ended", Width: 19},
		{Title: "Frames", Width: 8},
		{Title: "Ticks", Width: 15},
		{Title: "Source", Width: 10},
	}
	rows := make([]table.Row, 0, len(charges))
	for i := len(charges) - 1; i >= 0; i-- { // newest first
		rec := charges[i]
		rows = append(rows, table.Row{
			rec.EndedAt.Local().Format("2006-01-02 15:04:05"),
			strconv.FormatUint(rec.Frames, 10),
			fmt.Sprintf("%d..%d", rec.StartTick, rec.EndTick),
			rec.Source,
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("#8C8C8C")).Bold(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	t.SetStyles(styles)
	return t
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % tabCount
			return m, nil
		case "shift+tab", "left", "h":
			m.tab = (m.tab + tabCount - 1) % tabCount
			return m, nil
		}
	}
	var cmd tea.Cmd
	switch m.tab {
	case tabCharges:
		m.table, cmd = m.table.Update(msg)
	case tabDistribution:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m *Model) resize() {
	contentHeight := m.height - 5
	if contentHeight < 3 {
		contentHeight = 3
	}
	m.table.SetHeight(contentHeight)
	if !m.ready {
		m.viewport = viewport.New(m.width, contentHeight)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = contentHeight
	}
	m.viewport.SetContent(m.distributionContent())
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.loadErr != nil {
		return errorStyle.Render(fmt.Sprintf("failed to load charges: %v", m.loadErr))
	}
	nav := m.renderNav()
	var body string
	switch m.tab {
	case tabOverview:
		body = m.renderOverview()
	case tabCharges:
		body = m.table.View()
	case tabDistribution:
		if m.ready {
			body = m.viewport.View()
		} else {
			body = m.distributionContent()
		}
	}
	help := headerStyle.Render("tab/←/→ switch · ↑/↓ scroll · q quit")
	return strings.Join([]string{nav, "", body, "", help}, "\n")
}

func (m *Model) renderNav() string {
	labels := []string{"Overview", "Charges", "Distribution"}
	parts := make([]string, len(labels))
	for i, label := range labels {
		if i == m.tab {
			parts[i] = activeNavStyle.Render(label)
		} else {
			parts[i] = inactiveNavStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m *Model) renderOverview() string {
	if m.agg.Count == 0 {
		return headerStyle.Render("no charges recorded yet")
	}
	cards := []string{
		renderCard("Charges", strconv.Itoa(m.agg.Count)),
		renderCard("Min", fmt.Sprintf("%d f", m.agg.MinFrames)),
		renderCard("Mean", fmt.Sprintf("%.1f f", m.agg.MeanFrames)),
		renderCard("Max", fmt.Sprintf("%d f", m.agg.MaxFrames)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, cards...)
}

func renderCard(title, value string) string {
	content := cardTitleStyle.Render(title) + "\n" + cardValueStyle.Render(value)
	return cardStyle.Render(content)
}

func (m *Model) distributionContent() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	return stats.RenderHistogram(stats.Histogram(m.charges, 5), width)
}

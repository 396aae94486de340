// Package ui implements the interactive timeline browser: a pass list on
// the left, the categorized diff for the selected pass on the right.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"passlens/internal/diff"
	"passlens/internal/dump"
	"passlens/internal/timeline"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
	failedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	addedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	contextStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	tagStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	noteStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

const sidebarWidth = 28

type browserModel struct {
	model *timeline.Model
	funcs []string

	fIdx    int
	tier    dump.Tier
	entries []timeline.Entry
	eIdx    int

	vp     viewport.Model
	width  int
	height int
	ready  bool
}

// NewBrowser returns a Bubble Tea model over a built timeline.
func NewBrowser(m *timeline.Model) tea.Model {
	b := &browserModel{model: m, funcs: m.Functions(), tier: dump.TierGimple}
	b.reload()
	return b
}

func (b *browserModel) Init() tea.Cmd {
	return nil
}

// reload refreshes the entry slice after a function or tier switch.
func (b *browserModel) reload() {
	b.entries = nil
	b.eIdx = 0
	if len(b.funcs) == 0 {
		return
	}
	fn, ok := b.model.Function(b.funcs[b.fIdx])
	if !ok || fn.Failure != nil {
		return
	}
	b.entries = fn.Tier(b.tier)
	b.refreshViewport()
}

func (b *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return b, tea.Quit
		case "up", "k":
			if b.eIdx > 0 {
				b.eIdx--
				b.refreshViewport()
			}
		case "down", "j":
			if b.eIdx < len(b.entries)-1 {
				b.eIdx++
				b.refreshViewport()
			}
		case "left", "h":
			if b.fIdx > 0 {
				b.fIdx--
				b.reload()
			}
		case "right", "l":
			if b.fIdx < len(b.funcs)-1 {
				b.fIdx++
				b.reload()
			}
		case "tab", "t":
			if b.tier == dump.TierGimple {
				b.tier = dump.TierRTL
			} else {
				b.tier = dump.TierGimple
			}
			b.reload()
		default:
			var cmd tea.Cmd
			b.vp, cmd = b.vp.Update(msg)
			return b, cmd
		}
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.vp = viewport.New(max(msg.Width-sidebarWidth-3, 20), max(msg.Height-4, 5))
		b.ready = true
		b.refreshViewport()
	}
	return b, nil
}

func (b *browserModel) refreshViewport() {
	if !b.ready {
		return
	}
	b.vp.SetContent(b.renderEntry())
	b.vp.GotoTop()
}

func (b *browserModel) View() string {
	if len(b.funcs) == 0 {
		return "no functions in this run\n"
	}
	header := fmt.Sprintf("%s  [%s]  pass %d/%d   (←/→ function, ↑/↓ pass, tab tier, q quit)",
		b.funcs[b.fIdx], b.tier, b.eIdx+1, max(len(b.entries), 1))

	var out strings.Builder
	out.WriteString(titleStyle.Render(header))
	out.WriteString("\n\n")
	out.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, b.renderSidebar(), "  ", b.vp.View()))
	return out.String()
}

func (b *browserModel) renderSidebar() string {
	var lines []string
	fn, _ := b.model.Function(b.funcs[b.fIdx])
	if fn != nil && fn.Failure != nil {
		lines = append(lines, failedStyle.Render("function unavailable"))
	}
	for i := range b.entries {
		e := &b.entries[i]
		label := fmt.Sprintf("%03d %s", e.Record.Index, e.Record.Pass)
		label = truncate(label, sidebarWidth-2)
		switch {
		case i == b.eIdx:
			label = selectedStyle.Render(label)
		case e.Unavailable():
			label = failedStyle.Render(label)
		}
		lines = append(lines, label)
	}
	return lipgloss.NewStyle().Width(sidebarWidth).Render(strings.Join(lines, "\n"))
}

// renderEntry formats the selected pass: failure marker, initial state, or
// the categorized diff against the previous pass.
func (b *browserModel) renderEntry() string {
	if len(b.entries) == 0 {
		return "no passes in this tier"
	}
	e := &b.entries[b.eIdx]
	if e.Unavailable() {
		return failedStyle.Render(fmt.Sprintf("unavailable: %s", e.Failure.Message))
	}

	var out strings.Builder
	fmt.Fprintf(&out, "blocks=%d edges=%d\n", e.Graph.BlockCount(), e.Graph.EdgeCount())

	if e.Delta == nil {
		out.WriteString(contextStyle.Render("initial state (no predecessor)"))
		out.WriteString("\n\n")
		for i := range e.Graph.Nodes {
			n := &e.Graph.Nodes[i]
			fmt.Fprintf(&out, "bb %d:\n", n.ID)
			for _, s := range n.Stmts {
				out.WriteString("  " + s.Text + "\n")
			}
		}
		return out.String()
	}

	if len(e.Categories.All) > 0 {
		tags := make([]string, 0, len(e.Categories.All))
		for _, c := range e.Categories.All {
			tags = append(tags, tagStyle.Render("["+c.String()+"]"))
		}
		out.WriteString(strings.Join(tags, " "))
		out.WriteString("\n")
	}
	s := &e.Delta.Summary
	fmt.Fprintf(&out, "Δblocks=%+d Δedges=%+d  +%d −%d lines\n\n",
		s.BlockDelta(), s.EdgeDelta(), e.Delta.AddedLines(), e.Delta.RemovedLines())

	for i := range e.Delta.Hunks {
		h := &e.Delta.Hunks[i]
		switch h.Kind {
		case diff.HunkUnchanged:
			out.WriteString(contextStyle.Render(fmt.Sprintf("  … %d unchanged lines …", len(h.Lines))))
			out.WriteString("\n")
		case diff.HunkRemoved:
			if h.BlockNote != "" {
				out.WriteString(noteStyle.Render("  ◦ " + h.BlockNote))
				out.WriteString("\n")
			}
			for _, line := range h.Lines {
				out.WriteString(removedStyle.Render("- " + line))
				out.WriteString("\n")
			}
		case diff.HunkAdded:
			for _, line := range h.Lines {
				out.WriteString(addedStyle.Render("+ " + line))
				out.WriteString("\n")
			}
		}
	}
	return out.String()
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}

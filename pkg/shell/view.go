package shell

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ideamans/go-l10n"

	"github.com/user/framemark/pkg/playback"
	"github.com/user/framemark/pkg/ports"
	"github.com/user/framemark/pkg/timecode"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff00"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	playingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	pausedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	overlayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff00")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	ctrl := m.sess.Controller()
	state := ctrl.State()
	store := m.sess.Store()

	var b strings.Builder

	b.WriteString(titleStyle.Render("framemark") + " " + store.URLLocal() + "\n\n")

	tc, err := timecode.FromFrame(state.Current, ctrl.FrameRate())
	if err != nil {
		tc = "--:--:--"
	}
	mode := pausedStyle.Render("❚❚ " + l10n.T(playback.Paused.String()))
	if state.Mode == playback.Playing {
		mode = playingStyle.Render("▶ " + l10n.T(playback.Playing.String()))
	}
	b.WriteString(fmt.Sprintf("%s %d/%d   %s %s   %s\n",
		labelStyle.Render(l10n.T("Frame")), state.Current, ctrl.FrameCount(),
		labelStyle.Render(l10n.T("Time")), tc,
		mode,
	))
	b.WriteString(fmt.Sprintf("%s %d   %s %s\n",
		labelStyle.Render(l10n.T("Pending")), len(store.Pending()),
		labelStyle.Render(l10n.T("Sidecar")), store.Path(),
	))
	if m.opts.PreviewPath != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render(l10n.T("Preview")), m.opts.PreviewPath))
	}

	if lines := ctrl.Overlays(); len(lines) > 0 {
		b.WriteString("\n" + overlayStyle.Render(strings.Join(lines, "\n")) + "\n")
	}

	b.WriteString("\n" + boxStyle.Render(m.inputs[fieldLabel].View()+"\n"+m.inputs[fieldTeam].View()) + "\n")

	switch {
	case m.status != "" && m.statusErr:
		b.WriteString(errorStyle.Render(m.status) + "\n")
	case m.status != "":
		b.WriteString(statusStyle.Render(m.status) + "\n")
	default:
		b.WriteString("\n")
	}
	if line := m.lastLog(); line != "" {
		b.WriteString(labelStyle.Render(line) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m Model) lastLog() string {
	if m.opts.Logs == nil {
		return ""
	}
	e, ok := m.opts.Logs.Last()
	if !ok {
		return ""
	}
	prefix := ""
	if e.Level >= ports.LevelWarn {
		prefix = strings.ToUpper(e.Level.String()) + " "
	}
	if e.Component != "" {
		prefix += "[" + e.Component + "] "
	}
	return prefix + e.Message
}

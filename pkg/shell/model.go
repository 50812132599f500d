// Package shell is the interactive terminal front end: it drives playback
// on a timer, shows the current frame state and collects label and team
// input for annotations.
package shell

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ideamans/go-l10n"

	"github.com/user/framemark/pkg/adapters/logger"
	"github.com/user/framemark/pkg/annotation"
	"github.com/user/framemark/pkg/playback"
	"github.com/user/framemark/pkg/session"
)

// StatusSource supplies the most recent log entry for the status line.
type StatusSource interface {
	Last() (logger.Entry, bool)
}

// Options configures the Model.
type Options struct {
	TickInterval time.Duration
	// PreviewPath is shown so the operator knows where frames appear.
	PreviewPath string
	Logs        StatusSource
}

const (
	fieldNone  = -1
	fieldLabel = 0
	fieldTeam  = 1
)

type tickMsg time.Time

type refreshMsg struct{}

// Model is the bubbletea model for one session. All session work happens
// inside Update so the session is only touched from one goroutine.
type Model struct {
	ctx  context.Context
	sess *session.Session
	opts Options
	keys keyMap
	help help.Model

	inputs [2]textinput.Model
	focus  int

	status    string
	statusErr bool

	quitting bool
	closeErr error
	width    int
}

// New creates a Model for sess.
func New(ctx context.Context, sess *session.Session, opts Options) Model {
	if opts.TickInterval <= 0 {
		opts.TickInterval = 30 * time.Millisecond
	}

	label := textinput.New()
	label.Prompt = "Label: "
	label.Placeholder = "goal"
	label.CharLimit = 64

	team := textinput.New()
	team.Prompt = "Team:  "
	team.Placeholder = "home"
	team.CharLimit = 64

	return Model{
		ctx:    ctx,
		sess:   sess,
		opts:   opts,
		keys:   defaultKeyMap(sess.Options().SeekStep),
		help:   help.New(),
		inputs: [2]textinput.Model{label, team},
		focus:  fieldNone,
	}
}

// Init shows the first frame and starts the playback timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return refreshMsg{} },
		m.tick(),
	)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.opts.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Err returns the error from closing the session, if any.
func (m Model) Err() error {
	return m.closeErr
}

// Quitting reports whether the model has closed its session.
func (m Model) Quitting() bool {
	return m.quitting
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	switch msg := msg.(type) {
	case tickMsg:
		m.onTick()
		return m, m.tick()

	case refreshMsg:
		if err := m.sess.Controller().Refresh(m.ctx); err != nil {
			m.setError(err)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.onKey(msg)
	}

	return m, nil
}

func (m *Model) onTick() {
	res, err := m.sess.Controller().Tick(m.ctx)
	if err != nil {
		m.setError(err)
		return
	}
	if res == playback.Rewound {
		m.setStatus(l10n.T("End of video, rewound to the start"))
	}
}

func (m Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Back):
		if m.focus != fieldNone {
			m.setFocus(fieldNone)
			return m, nil
		}
		return m.quit()

	case key.Matches(msg, m.keys.NextField):
		m.setFocus(nextField(m.focus, 1))
		return m, textinput.Blink

	case key.Matches(msg, m.keys.PrevField):
		m.setFocus(nextField(m.focus, -1))
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Annotate):
		m.annotate()
		return m, nil

	case key.Matches(msg, m.keys.Save):
		m.save()
		return m, nil
	}

	if m.focus != fieldNone && isFieldKey(msg) {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.PlayPause):
		mode := m.sess.Controller().TogglePlayback()
		m.setStatus(l10n.T(mode.String()))
	case key.Matches(msg, m.keys.Forward):
		return m.seek(m.sess.SeekForward)
	case key.Matches(msg, m.keys.Backward):
		return m.seek(m.sess.SeekBackward)
	}
	return m, nil
}

func (m Model) seek(fn func() (bool, error)) (tea.Model, tea.Cmd) {
	moved, err := fn()
	if err != nil {
		m.setError(err)
		return m, nil
	}
	if !moved {
		m.setStatus(l10n.T("Already at the edge of the video"))
		return m, nil
	}
	m.status = ""
	if m.sess.Controller().State().Mode == playback.Paused {
		return m, func() tea.Msg { return refreshMsg{} }
	}
	return m, nil
}

func (m *Model) annotate() {
	a, err := m.sess.Annotate(m.inputs[fieldLabel].Value(), m.inputs[fieldTeam].Value())
	var verr *annotation.ValidationError
	switch {
	case errors.As(err, &verr):
		m.setError(errors.New(l10n.T("Please enter both label and team")))
		m.setFocus(fieldLabel + btoi(verr.Field == "team"))
	case err != nil && a.Label != "":
		m.setError(errors.New(l10n.F("Annotation kept unsaved: %s", err.Error())))
	case err != nil:
		m.setError(err)
	default:
		m.setStatus(l10n.F("Annotated frame %s at %s: %s", a.Position, a.GameTime, a.Text()))
	}
}

func (m *Model) save() {
	n, err := m.sess.Save()
	if err != nil {
		m.setError(err)
		return
	}
	if n == 0 {
		m.setStatus(l10n.T("Nothing to save"))
		return
	}
	m.setStatus(l10n.F("Saved %d annotations", n))
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.closeErr = m.sess.Close()
	return m, tea.Quit
}

func (m *Model) setFocus(field int) {
	m.focus = field
	for i := range m.inputs {
		if i == field {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.statusErr = true
}

// isFieldKey reports whether msg edits text when a field is focused.
func isFieldKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace, tea.KeyLeft, tea.KeyRight,
		tea.KeyBackspace, tea.KeyDelete, tea.KeyHome, tea.KeyEnd,
		tea.KeyCtrlA, tea.KeyCtrlE, tea.KeyCtrlK, tea.KeyCtrlU, tea.KeyCtrlW:
		return true
	}
	return false
}

// nextField cycles none -> label -> team -> none in direction dir.
func nextField(focus, dir int) int {
	return (focus+1+dir+3)%3 - 1
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

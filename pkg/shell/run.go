package shell

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/user/framemark/pkg/session"
)

// Run starts the interactive UI for sess and blocks until the operator
// quits or ctx is canceled. The session is closed on every path.
func Run(ctx context.Context, sess *session.Session, opts Options, progOpts ...tea.ProgramOption) error {
	m := New(ctx, sess, opts)
	progOpts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, progOpts...)

	final, runErr := tea.NewProgram(m, progOpts...).Run()
	if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
		runErr = nil
	}
	if runErr != nil {
		runErr = fmt.Errorf("terminal UI: %w", runErr)
	}

	var closeErr error
	if fm, ok := final.(Model); ok && fm.Quitting() {
		closeErr = fm.Err()
	} else {
		closeErr = sess.Close()
	}
	return errors.Join(runErr, closeErr)
}

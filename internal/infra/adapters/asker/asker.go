// asker implements the ports.ForAsking interface. It asks yes/no
// questions with survey/v2 when stdin and stdout are terminals.
package asker

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/sa6mwa/chapterpod/internal/app/ports"
	"github.com/sa6mwa/chapterpod/internal/infra/adapters/logger"
	"golang.org/x/term"
)

const (
	answerNo  = "No"
	answerYes = "Yes"
)

type forAsking struct {
	dryrun     bool
	force      bool
	isTerminal func() bool
	prompt     func(message string) (string, error)
}

// New returns an asker. With dryrun every question is answered no,
// otherwise force answers yes. If neither is set the user is
// prompted, or the answer is no when there is no terminal.
func New(dryrun, force bool) ports.ForAsking {
	return &forAsking{
		dryrun:     dryrun,
		force:      force,
		isTerminal: isTerminal,
		prompt:     prompt,
	}
}

func (p *forAsking) Ask(ctx context.Context, format string, a ...any) bool {
	l := logger.FromContext(ctx)
	question := fmt.Sprintf(format, a...)
	switch {
	case p.dryrun:
		l.Info(question+" "+answerNo, "reason", "dry-run")
		return false
	case p.force:
		l.Info(question+" "+answerYes, "reason", "force")
		return true
	}
	if !p.isTerminal() {
		l.Warn("Not a terminal, will answer no", "question", question)
		return false
	}
	choice, err := p.prompt(question)
	if err != nil {
		if !errors.Is(err, terminal.InterruptErr) {
			l.Error("Prompt failed, will answer no", "error", err)
		}
		return false
	}
	return choice == answerYes
}

func prompt(message string) (string, error) {
	choice := ""
	err := survey.AskOne(&survey.Select{
		Message: message,
		Options: []string{answerNo, answerYes},
		Default: answerNo,
	}, &choice)
	return choice, err
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

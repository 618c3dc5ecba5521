package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/kongenga/kongenga/internal/client/models"
)

// Progress prints the counters, or sets them from counter=value arguments.
// Values are absolute.
func (a *App) Progress(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}

	if len(args) == 0 {
		p, _ := a.session.Progress()
		a.printProgress(p.ProfileComplete, p.JobsExplored, p.TrainingsStarted, p.SkillsAssessed)
		return nil
	}

	partial := make(map[string]int, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		n, err := strconv.Atoi(value)
		if !ok || name == "" || err != nil {
			a.println(a.T("error.counter", arg))
			return errUsage
		}
		partial[name] = n
	}

	p, err := a.session.UpdateProgress(ctx, partial)
	if errors.Is(err, models.ErrInvalidProgress) {
		a.println(a.T("error.counter", err.Error()))
		return err
	}
	if err != nil {
		return a.fail(ctx, "update progress", err)
	}
	if p == nil {
		return nil
	}

	a.println(a.T("progress.saved"))
	a.printProgress(p.ProfileComplete, p.JobsExplored, p.TrainingsStarted, p.SkillsAssessed)
	return nil
}

func (a *App) printProgress(profile, jobs, trainings, skills int) {
	a.println(a.T("progress.line", profile, jobs, trainings, skills))
}

package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/kongenga/kongenga/internal/client/models"
)

func (a *App) Sectors(ctx context.Context) error {
	sectors, err := a.catalog.Sectors(ctx)
	if err != nil {
		return a.fail(ctx, "list sectors", err)
	}

	lang := a.session.Language()
	for _, s := range sectors {
		a.println(fmt.Sprintf("%-16s %s (%d)", s.ID, s.Name.In(lang), s.JobCount))
	}
	return nil
}

// parseJobQuery reads sector=, skip= and limit= arguments; any other words
// make up the search text.
func parseJobQuery(args []string) (models.JobQuery, error) {
	var q models.JobQuery
	var words []string

	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			words = append(words, arg)
			continue
		}

		var err error
		switch name {
		case "sector":
			q.Sector = value
		case "search", "q":
			words = append(words, value)
		case "skip":
			q.Skip, err = strconv.Atoi(value)
		case "limit":
			q.Limit, err = strconv.Atoi(value)
		default:
			err = fmt.Errorf("unknown filter %q", name)
		}
		if err != nil {
			return models.JobQuery{}, err
		}
	}

	q.Search = strings.Join(words, " ")
	return q, nil
}

// Jobs lists jobs; favorites are starred.
func (a *App) Jobs(ctx context.Context, args []string) error {
	q, err := parseJobQuery(args)
	if err != nil {
		return a.usage("jobs [sector=<id>] [skip=<n>] [limit=<n>] [text...]")
	}

	jobs, err := a.catalog.Jobs(ctx, q)
	if err != nil {
		return a.fail(ctx, "list jobs", err)
	}
	if len(jobs) == 0 {
		a.println(a.T("jobs.empty"))
		return nil
	}

	lang := a.session.Language()
	for _, j := range jobs {
		mark := " "
		if a.session.IsFavorite(j.ID) {
			mark = "*"
		}
		a.println(fmt.Sprintf("%s %-24s %-14s %s", mark, j.ID, j.SectorID, j.Title.In(lang)))
	}
	return nil
}

func (a *App) Job(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return a.usage("job <id>")
	}

	j, err := a.catalog.Job(ctx, args[0])
	if err != nil {
		return a.fail(ctx, "get job", err)
	}

	lang := a.session.Language()
	title := j.Title.In(lang)
	if a.session.IsFavorite(j.ID) {
		title = "* " + title
	}
	a.println(title)
	if d := j.Description.In(lang); d != "" {
		a.println(d)
	}
	if j.SalaryMax > 0 {
		a.println(a.T("jobs.salary", j.SalaryMin, j.SalaryMax, j.SalaryCurrency))
	}
	if len(j.Skills) > 0 {
		a.println(strings.Join(j.Skills, ", "))
	}
	return nil
}

package cli

import (
	"context"
	"fmt"

	"github.com/kongenga/kongenga/internal/client/services"
)

// ToggleFavorite adds or removes one job, as the server decides.
func (a *App) ToggleFavorite(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	if len(args) != 1 {
		return a.usage("fav <job-id>")
	}

	action, err := a.session.ToggleFavorite(ctx, args[0])
	if err != nil {
		return a.fail(ctx, "toggle favorite", err)
	}

	switch action {
	case services.ActionAdded:
		a.println(a.T("fav.added", args[0]))
	case services.ActionRemoved:
		a.println(a.T("fav.removed", args[0]))
	}
	return nil
}

func (a *App) ListFavorites(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	jobs, err := a.session.Favorites(ctx)
	if err != nil {
		return a.fail(ctx, "list favorites", err)
	}
	if len(jobs) == 0 {
		a.println(a.T("fav.empty"))
		return nil
	}

	lang := a.session.Language()
	for _, j := range jobs {
		a.println(fmt.Sprintf("* %-24s %s", j.ID, j.Title.In(lang)))
	}
	return nil
}

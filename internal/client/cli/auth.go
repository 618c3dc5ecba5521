package cli

import (
	"context"

	"github.com/kongenga/kongenga/internal/client/services"
	"github.com/kongenga/kongenga/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

const roleHintManager = "manager"

// Register prompts for the new account's details and creates it. The
// session store validates the input before anything is sent.
func (a *App) Register(ctx context.Context) error {
	var p services.Profile
	var err error

	for _, f := range []struct {
		key string
		dst *string
	}{
		{"prompt.name", &p.Name},
		{"prompt.email", &p.Email},
	} {
		if *f.dst, err = getSimpleText(a.reader, a.T(f.key), a.out); err != nil {
			return err
		}
	}

	password, err := getPassword(a.T("prompt.password"), a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.T("prompt.confirm"), a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	p.Password, p.ConfirmPassword = string(password), string(confirm)

	for _, f := range []struct {
		key string
		dst *string
	}{
		{"prompt.university", &p.University},
		{"prompt.field", &p.Field},
		{"prompt.year", &p.Year},
	} {
		if *f.dst, err = getSimpleText(a.reader, a.T(f.key), a.out); err != nil {
			return err
		}
	}

	res := a.session.Register(ctx, p)
	if !res.OK {
		a.println(a.T("common.error") + ": " + res.Message)
		return nil
	}

	a.logger.Info(ctx, "registered", "user_id", res.User.ID)
	a.println(a.T("auth.welcome", res.User.Name))
	return nil
}

// Login prompts for credentials. "login manager" asks for a site manager
// session.
func (a *App) Login(ctx context.Context, args []string) error {
	roleHint := ""
	if len(args) > 0 {
		if args[0] != roleHintManager {
			return a.usage("login [manager]")
		}
		roleHint = roleHintManager
	}

	email, err := getSimpleText(a.reader, a.T("prompt.email"), a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.T("prompt.password"), a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res := a.session.Login(ctx, email, string(password), roleHint)
	if !res.OK {
		a.logger.Info(ctx, "login rejected", "reason", res.Message)
		a.println(a.T("common.error") + ": " + res.Message)
		return nil
	}

	a.logger.Info(ctx, "logged in", "user_id", res.User.ID, "role", res.User.Role)
	a.println(a.T("auth.welcome", res.User.Name))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.println(a.T("auth.logged_out"))
	return nil
}

// WhoAmI reloads the user record and prints it.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.session.IsAuthenticated() {
		a.println(a.T("auth.anonymous"))
		return nil
	}

	u, err := a.session.RefreshUserData(ctx)
	if err != nil {
		return a.fail(ctx, "whoami", err)
	}
	if u == nil {
		a.println(a.T("auth.anonymous"))
		return nil
	}

	a.println(u.Name + " <" + u.Email + "> [" + u.Role + "]")
	if u.University != "" {
		a.println(u.University)
	}
	a.printProgress(u.Progress.ProfileComplete, u.Progress.JobsExplored, u.Progress.TrainingsStarted, u.Progress.SkillsAssessed)
	return nil
}

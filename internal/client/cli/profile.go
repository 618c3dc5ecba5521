package cli

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/kongenga/kongenga/internal/client/i18n"
	"github.com/kongenga/kongenga/internal/client/models"
)

// Profile prompts for the editable fields; an empty answer keeps the
// current value.
func (a *App) Profile(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	var upd models.ProfileUpdate
	for _, f := range []struct {
		key string
		dst **string
	}{
		{"prompt.name", &upd.Name},
		{"prompt.university", &upd.University},
		{"prompt.field", &upd.Field},
		{"prompt.year", &upd.Year},
	} {
		v, err := getSimpleText(a.reader, a.T(f.key), a.out)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = &v
		}
	}

	if _, err := a.session.UpdateProfile(ctx, upd); err != nil {
		return a.fail(ctx, "update profile", err)
	}
	a.println(a.T("profile.saved"))
	return nil
}

// Language shows or switches the message language. A logged-in user's
// preference is saved on the account too.
func (a *App) Language(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.println(a.T("lang.current", a.session.Language()) + " (" + strings.Join(i18n.Languages, ", ") + ")")
		return nil
	}

	lang := strings.ToLower(args[0])
	if err := a.session.SetLanguage(ctx, lang); err != nil {
		a.println(a.T("error.language", lang))
		return err
	}
	a.println(a.T("lang.saved", lang))

	if a.session.IsAuthenticated() {
		if _, err := a.session.UpdateProfile(ctx, models.ProfileUpdate{PreferredLanguage: &lang}); err != nil {
			return a.fail(ctx, "save language", err)
		}
	}
	return nil
}

// Avatar uploads an image file as the profile picture.
func (a *App) Avatar(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	if len(args) != 1 {
		return a.usage("avatar <file>")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		a.println(a.T("common.error") + ": " + err.Error())
		return err
	}

	if _, err := a.session.UploadAvatar(ctx, data, http.DetectContentType(data)); err != nil {
		return a.fail(ctx, "upload avatar", err)
	}
	a.println(a.T("avatar.uploaded"))
	return nil
}

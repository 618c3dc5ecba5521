package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/kongenga/kongenga/internal/client/i18n"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) record(name string, args ...string) error {
	f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) T(key string, args ...any) string {
	return i18n.Default().T("fr", key, args...)
}
func (f *fakeExec) Register(context.Context) error { return f.record("register") }
func (f *fakeExec) Login(_ context.Context, args []string) error {
	f.loggedIn = true
	return f.record("login", args...)
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) WhoAmI(context.Context) error { return f.record("whoami") }
func (f *fakeExec) ToggleFavorite(_ context.Context, args []string) error {
	return f.record("fav", args...)
}
func (f *fakeExec) ListFavorites(context.Context) error { return f.record("favs") }
func (f *fakeExec) Progress(_ context.Context, args []string) error {
	return f.record("progress", args...)
}
func (f *fakeExec) Profile(context.Context) error { return f.record("profile") }
func (f *fakeExec) Language(_ context.Context, args []string) error {
	return f.record("lang", args...)
}
func (f *fakeExec) Avatar(_ context.Context, args []string) error {
	return f.record("avatar", args...)
}
func (f *fakeExec) Sectors(context.Context) error { return f.record("sectors") }
func (f *fakeExec) Jobs(_ context.Context, args []string) error {
	return f.record("jobs", args...)
}
func (f *fakeExec) Job(_ context.Context, args []string) error {
	return f.record("job", args...)
}

func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var printed []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		printed = append(printed, fmt.Sprint(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &printed
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	printed := capturePrints(t)

	input := strings.Join([]string{
		"help",
		"login manager",
		"help",
		"",
		"fav dev",
		"favs",
		"progress jobsExplored=3 skillsAssessed=1",
		"jobs sector=tech",
		"job dev",
		"lang sw",
		"foobar",
		"logout",
		"exit",
		"whoami",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(status)" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"login manager",
		"fav dev",
		"favs",
		"progress jobsExplored=3 skillsAssessed=1",
		"jobs sector=tech",
		"job dev",
		"lang sw",
		"logout",
	}, exec.calls)

	out := strings.Join(*printed, "\n")
	assert.Contains(t, out, "kongenga (status)> ")
	assert.Contains(t, out, "Commandes : register, login")
	assert.Contains(t, out, "Commandes : whoami, profile")
	assert.Contains(t, out, "Commande inconnue : foobar")
	assert.Contains(t, out, "Au revoir !")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	capturePrints(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("sectors\nfavs")))

	assert.Equal(t, []string{"sectors", "favs"}, exec.calls)
}

func TestRunREPL_StopsOnCanceledContext(t *testing.T) {
	capturePrints(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("sectors\n")))

	assert.Empty(t, exec.calls)
}

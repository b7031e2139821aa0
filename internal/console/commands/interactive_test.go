package commands

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/WizCoderr/admin.ajastra/internal/gate"
	"github.com/WizCoderr/admin.ajastra/internal/session"
)

// step is one scripted answer: either the label of an item to select or a
// value to type
type step struct {
	choose string
	input  string
}

// scriptedPrompter answers prompts from a fixed script
type scriptedPrompter struct {
	t      *testing.T
	steps  []step
	labels []string
}

func (p *scriptedPrompter) next(label string) (step, bool) {
	p.labels = append(p.labels, label)
	if len(p.steps) == 0 {
		p.t.Errorf("script exhausted at prompt %q", label)
		return step{}, false
	}
	s := p.steps[0]
	p.steps = p.steps[1:]
	return s, true
}

func (p *scriptedPrompter) Select(label string, items []string, cursor int) (int, error) {
	s, ok := p.next(label)
	if !ok {
		return 0, gate.ErrQuit
	}
	for i, item := range items {
		if item == s.choose {
			return i, nil
		}
	}
	p.t.Errorf("prompt %q has no item %q (items: %v)", label, s.choose, items)
	return 0, gate.ErrQuit
}

func (p *scriptedPrompter) Input(label string, validate func(string) error, mask bool) (string, error) {
	s, ok := p.next(label)
	if !ok {
		return "", gate.ErrQuit
	}
	if validate != nil {
		if err := validate(s.input); err != nil {
			return "", fmt.Errorf("invalid %s: %w", label, err)
		}
	}
	return s.input, nil
}

func loginSteps(phone string) []step {
	return []step{
		{choose: "Log in"},
		{input: "Dev Admin"},
		{input: phone},
		{input: "admin@ajastra.dev"},
		{input: "admin-password"},
	}
}

func TestShell_LoginBrowseLogout(t *testing.T) {
	ts := newDevServer(t, true)
	app, out, store := newTestApp(t, ts.URL)

	script := append(loginSteps("9999999999"),
		step{choose: "Orders"},
		step{choose: "Back"},
		step{choose: "Dashboard"},
		step{choose: "Log out"},
		step{choose: "Quit"},
	)
	prompter := &scriptedPrompter{t: t, steps: script}
	app.Prompt = prompter

	if err := runShell(context.Background(), app); err != nil {
		t.Fatalf("expected clean exit, got: %v", err)
	}

	output := out.String()
	for _, want := range []string{"Welcome, Dev Admin", "Total sales", "Logged out successfully", "Session ended."} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}

	if _, ok := store.Token(); ok {
		t.Error("expected token to be removed after logout")
	}
	if role, _ := store.Role(); role != session.RoleAdmin {
		t.Errorf("role should be kept after logout, got %q", role)
	}
	if len(prompter.steps) != 0 {
		t.Errorf("script not fully used, %d steps left", len(prompter.steps))
	}

	// The admin menu is titled with the stored role
	var sawAdminMenu bool
	for _, l := range prompter.labels {
		if l == "Ajastra admin (ADMIN)" {
			sawAdminMenu = true
		}
	}
	if !sawAdminMenu {
		t.Errorf("expected role in admin menu title, prompts: %v", prompter.labels)
	}
}

func TestShell_InvalidLoginStaysOnLoginView(t *testing.T) {
	ts := newDevServer(t, false)
	app, out, store := newTestApp(t, ts.URL)

	script := append(loginSteps("123"), step{choose: "Quit"})
	prompter := &scriptedPrompter{t: t, steps: script}
	app.Prompt = prompter

	if err := runShell(context.Background(), app); err != nil {
		t.Fatalf("expected clean exit, got: %v", err)
	}

	if !strings.Contains(out.String(), "Please enter a valid phone number") {
		t.Errorf("expected validation message, got: %s", out.String())
	}
	if _, ok := store.Token(); ok {
		t.Error("no token should be stored")
	}
	for _, l := range prompter.labels {
		if strings.HasPrefix(l, "Ajastra admin (") {
			t.Errorf("admin menu shown without a session: %v", prompter.labels)
		}
	}
}

func TestShell_StoredSessionOpensAdminView(t *testing.T) {
	ts := newDevServer(t, true)
	app, out, store := newTestApp(t, ts.URL)

	// A valid token from an earlier run
	login, _, _ := newTestApp(t, ts.URL)
	login.WithStore(store)
	if err := execute(t, NewLoginCmd(login),
		"--name", "Dev Admin", "--phone", "9999999999",
		"--email", "admin@ajastra.dev", "--password", "admin-password",
	); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	prompter := &scriptedPrompter{t: t, steps: []step{
		{choose: "Customers"},
		{choose: "Quit"},
	}}
	app.Prompt = prompter

	if err := runShell(context.Background(), app); err != nil {
		t.Fatalf("expected clean exit, got: %v", err)
	}
	if !strings.Contains(out.String(), "customer@ajastra.dev") {
		t.Errorf("expected customer list, got: %s", out.String())
	}
	if _, ok := store.Token(); !ok {
		t.Error("quitting must not clear the session")
	}
}

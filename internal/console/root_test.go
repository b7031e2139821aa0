package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/WizCoderr/admin.ajastra/internal/config"
	"github.com/WizCoderr/admin.ajastra/internal/console/commands"
)

func newTestRoot(args ...string) (*bytes.Buffer, error) {
	var out bytes.Buffer
	app := commands.NewApp(config.Defaults(), zerolog.Nop())
	app.Out = &out

	root := NewRootCmd(app)
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	return &out, root.Execute()
}

func TestVersionCommand(t *testing.T) {
	out, err := newTestRoot("version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "ajastra-admin version dev") {
		t.Errorf("unexpected output: %s", out.String())
	}
}

func TestPersistentFlagsReachConfig(t *testing.T) {
	out, err := newTestRoot("status", "--api", "http://admin.example:8080/", "--session-backend", "memory")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "http://admin.example:8080") {
		t.Errorf("expected overridden API base, got: %s", out.String())
	}
	if !strings.Contains(out.String(), "memory") || !strings.Contains(out.String(), "not logged in") {
		t.Errorf("expected memory session without a token, got: %s", out.String())
	}
}

func TestPageCommandWithoutSession(t *testing.T) {
	_, err := newTestRoot("orders", "--session-backend", "memory")
	if !errors.Is(err, commands.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestCommandTree(t *testing.T) {
	root := NewRootCmd(commands.NewApp(config.Defaults(), zerolog.Nop()))

	want := []string{"version", "shell", "login", "logout", "status", "dashboard",
		"categories", "products", "orders", "customers", "sliders"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("expected command %q, got %v (%v)", name, cmd, err)
		}
	}
}

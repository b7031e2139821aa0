package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/manifoldco/promptui"

	"github.com/WizCoderr/admin.ajastra/internal/gate"
)

// Prompter asks the operator for choices and values
type Prompter interface {
	// Select returns the index of the chosen item
	Select(label string, items []string, cursor int) (int, error)
	// Input reads a line; validate may be nil, mask hides the typed value
	Input(label string, validate func(string) error, mask bool) (string, error)
}

// TerminalPrompter implements Prompter with promptui
type TerminalPrompter struct {
	in  io.ReadCloser
	out io.WriteCloser
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// NewTerminalPrompter creates a promptui-backed prompter on in and out
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	rc, ok := in.(io.ReadCloser)
	if !ok {
		rc = io.NopCloser(in)
	}
	wc, ok := out.(io.WriteCloser)
	if !ok {
		wc = nopWriteCloser{out}
	}
	return &TerminalPrompter{in: rc, out: wc}
}

func (p *TerminalPrompter) Select(label string, items []string, cursor int) (int, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ . | cyan }}",
		Inactive: "  {{ . }}",
		Selected: "{{ . | green }}",
	}

	prompt := promptui.Select{
		Label:     label,
		Items:     items,
		Templates: templates,
		CursorPos: cursor,
		Size:      12,
		Stdin:     p.in,
		Stdout:    p.out,
	}

	index, _, err := prompt.Run()
	if err != nil {
		return 0, promptError(err)
	}
	return index, nil
}

func (p *TerminalPrompter) Input(label string, validate func(string) error, mask bool) (string, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Validate: promptui.ValidateFunc(validate),
		Stdin:    p.in,
		Stdout:   p.out,
	}
	if mask {
		prompt.Mask = '*'
	}

	value, err := prompt.Run()
	if err != nil {
		return "", promptError(err)
	}
	return value, nil
}

// promptError maps Ctrl-C / Ctrl-D to gate.ErrQuit so the shell stops cleanly
func promptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return gate.ErrQuit
	}
	return fmt.Errorf("prompt failed: %w", err)
}

package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/splinterlabs/splinter/internal/secmem"
	splinterr "github.com/splinterlabs/splinter/pkg/errors"
)

// Prompt functions are declared as variables so tests can substitute mocks.
//
//nolint:gochecknoglobals // test seam for interactive prompts
var (
	promptPasswordFn      = promptPassword
	promptNewPassphraseFn = promptNewPassphrase
	promptPhraseFn        = promptPhrase
	promptShareLineFn     = promptShareLine
)

// stdinLines is shared across prompts: a single reader must own the stdin
// buffer, or consecutive line reads would swallow each other's input.
//
//nolint:gochecknoglobals // stdin has one buffer
var stdinLines = bufio.NewReader(os.Stdin)

func readLine() (string, error) {
	line, err := stdinLines.ReadString('\n')
	if err != nil && line == "" {
		return "", splinterr.WithSuggestion(splinterr.ErrInvalidInput, "no input provided")
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptPassword prompts for a passphrase with hidden input. When stdin is
// not a terminal it falls back to a plain line read without printing the
// prompt. The caller is responsible for zeroing the returned bytes.
func promptPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		line, err := readLine()
		if err != nil {
			return nil, err
		}
		return []byte(line), nil
	}

	out(os.Stderr, "%s", prompt)

	passphrase, err := term.ReadPassword(int(syscall.Stdin))
	outln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("reading passphrase: %w", err)
	}

	return passphrase, nil
}

// promptNewPassphrase prompts for a new archive passphrase with confirmation.
// The caller is responsible for zeroing the returned bytes after use.
func promptNewPassphrase() ([]byte, error) {
	passphrase, err := promptPasswordFn("Enter archive passphrase: ")
	if err != nil {
		return nil, err
	}

	if len(passphrase) < 8 {
		secmem.ZeroBytes(passphrase)
		return nil, splinterr.WithSuggestion(
			splinterr.ErrInvalidInput,
			"passphrase must be at least 8 characters",
		)
	}

	confirm, err := promptPasswordFn("Confirm passphrase: ")
	if err != nil {
		secmem.ZeroBytes(passphrase)
		return nil, err
	}
	defer secmem.ZeroBytes(confirm)

	if string(passphrase) != string(confirm) {
		secmem.ZeroBytes(passphrase)
		return nil, splinterr.WithSuggestion(
			splinterr.ErrInvalidInput,
			"passphrases do not match",
		)
	}

	return passphrase, nil
}

// promptPhrase reads a line of words. The prompt is only printed when stdin
// is a terminal, so piped input stays clean.
func promptPhrase(prompt string) (string, error) {
	if term.IsTerminal(int(syscall.Stdin)) {
		out(os.Stderr, "%s", prompt)
	}

	line, err := readLine()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) == "" {
		return "", splinterr.WithSuggestion(splinterr.ErrInvalidInput, "no input provided")
	}
	return line, nil
}

func promptShareLine(n int) (string, error) {
	return promptPhraseFn(fmt.Sprintf("Share %d: ", n))
}

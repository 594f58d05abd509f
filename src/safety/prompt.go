package safety

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"golang.org/x/term"
)

// Options mirrors the global CLI safety flags.
type Options struct {
	// Yes answers every prompt affirmatively without asking.
	Yes bool
	// DryRun declines every prompt; no action should be taken.
	DryRun bool
}

// Asker answers a yes/no question put to the operator. Workflows take an
// Asker so confirmation behavior is injectable in tests.
type Asker func(question string) (bool, error)

// Confirm prompts the user to confirm a potentially destructive action by
// reading a y/yes line from in.
// - If opts.Yes is true, it returns true without prompting.
// - If opts.DryRun is true, it returns false but no error.
// The caller decides what to do with the result.
func Confirm(opts Options, in io.Reader, out io.Writer, question string) (bool, error) {
	if opts.DryRun {
		// No changes in dry-run mode; treat as declined.
		return false, nil
	}
	if opts.Yes {
		return true, nil
	}
	if out != nil {
		fmt.Fprintf(out, "%s [y/N]: ", strings.TrimSpace(question))
	}
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	ans := strings.TrimSpace(strings.ToLower(line))
	return ans == "y" || ans == "yes", nil
}

// NewAsker builds the Asker the CLI hands to the workflows. When in is an
// interactive terminal the question goes through a survey confirm prompt;
// otherwise (piped stdin, tests) it falls back to Confirm's line reader.
func NewAsker(opts Options, in io.Reader, out io.Writer) Asker {
	return func(question string) (bool, error) {
		if opts.DryRun {
			return false, nil
		}
		if opts.Yes {
			return true, nil
		}
		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			var yes bool
			prompt := &survey.Confirm{Message: strings.TrimSpace(question)}
			if err := survey.AskOne(prompt, &yes); err != nil {
				return false, err
			}
			return yes, nil
		}
		return Confirm(opts, in, out, question)
	}
}

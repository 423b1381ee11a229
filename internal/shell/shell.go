package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Prompts shown when the shell is interactive.
const (
	Prompt             = "urn> "
	ContinuationPrompt = "...  "
)

const endOfStatement = ";"

// Run reads statements from in and writes their results to out. Lines are
// collected until one ends with ";", then the collected text is executed.
// Errors are reported as "Error: ..." and reading continues. "quit" or
// "exit" on a line of its own, or the end of in, stops the loop.
//
// Prompts and the farewell message are written only when interactive is
// set.
func (s *Session) Run(in io.Reader, out io.Writer, interactive bool) error {
	sc := bufio.NewScanner(in)
	var pending []string
	prompt := Prompt
	for {
		if interactive {
			fmt.Fprint(out, prompt)
		}
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		if len(pending) == 0 {
			if line == "" {
				continue
			}
			if isQuit(line) {
				if interactive {
					fmt.Fprintln(out, "Exiting urn.")
				}
				return nil
			}
		}

		pending = append(pending, line)
		if !strings.HasSuffix(line, endOfStatement) {
			prompt = ContinuationPrompt
			continue
		}
		s.execLine(out, strings.Join(pending, "\n"))
		pending = pending[:0]
		prompt = Prompt
	}
	if interactive {
		fmt.Fprintln(out)
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(err, "reading input")
	}
	if len(pending) > 0 {
		s.execLine(out, strings.Join(pending, "\n"))
	}
	return nil
}

func (s *Session) execLine(out io.Writer, src string) {
	if err := s.Exec(out, src); err != nil {
		s.log.WithError(err).Debug("statement failed")
		fmt.Fprintf(out, "Error: %s\n", err)
	}
}

func isQuit(line string) bool {
	cmd := strings.ToLower(strings.TrimSuffix(line, endOfStatement))
	return cmd == "quit" || cmd == "exit"
}

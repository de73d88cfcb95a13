package assistant

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Prompt is written before each line is read.
const Prompt = "Enter a command: "

// Session reads commands from in until close/exit or end of input, writing
// the rendered result of each to out. Empty lines are skipped and lines have
// no length limit. It returns whether the book changed, and any read or write
// error.
func (a *Assistant) Session(in io.Reader, out io.Writer) (changed bool, err error) {
	reader := bufio.NewReader(in)

	if _, err := fmt.Fprintln(out, "Welcome to the assistant bot!"); err != nil {
		return false, err
	}

	for {
		if _, err := fmt.Fprint(out, Prompt); err != nil {
			return changed, err
		}
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(out)
			if errors.Is(err, io.EOF) {
				a.log.Debug("input closed, ending session")
				return changed, nil
			}
			return changed, err
		}

		// A final line without a newline still runs; the next read hits EOF.
		verb, args := ParseInput(line)
		if verb == "" {
			continue
		}

		res := a.Run(verb, args)
		changed = changed || res.Changed
		if res.Err != nil && !IsUserError(res.Err) {
			a.log.Warn("command failed", "verb", verb, "err", res.Err)
		}

		if _, err := fmt.Fprintln(out, Render(res)); err != nil {
			return changed, err
		}
		if res.Quit {
			return changed, nil
		}
	}
}

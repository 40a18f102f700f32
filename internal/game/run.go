package game

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// Run plays the session as a plain line-oriented loop: print the
// current description, prompt, read a line, apply it, repeat until
// end of input. It exists so the whole engine can run against any
// reader/writer pair, which is also how it is tested.
func Run(ctx context.Context, sess *Session, in io.Reader, out io.Writer) error {
	if _, err := fmt.Fprint(out, sess.Scene().Description()); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		if _, err := fmt.Fprint(out, "> "); err != nil {
			return err
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			_, err := fmt.Fprintln(out)
			return err
		}

		res, err := sess.Step(ctx, scanner.Text())
		if err != nil {
			return err
		}
		switch {
		case res.SceneChanged:
			// Descriptions carry their own trailing newline.
			if _, err := fmt.Fprint(out, res.Text); err != nil {
				return err
			}
		case res.Text != "":
			if _, err := fmt.Fprintln(out, res.Text); err != nil {
				return err
			}
		}
	}
}

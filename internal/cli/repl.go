package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Tutorials(ctx context.Context) error
	Watch(ctx context.Context, id string) error
	Complete(ctx context.Context, id string) error
	Transcript(ctx context.Context) error
	SaveTranscript(ctx context.Context) error
	ClearTranscript(ctx context.Context) error
	Quiz(ctx context.Context) error
	QuizReset(ctx context.Context) error
	Contact(ctx context.Context) error
	Admin(ctx context.Context) error
	AdminReset(ctx context.Context) error
	Export(ctx context.Context, path string) error
}

const helpText = `Available commands:
  register, login, logout, whoami
  tutorials              list tutorials and your progress
  watch <id|n>           open a tutorial
  complete [id|n]        mark a tutorial complete (default: the open one)
  transcript             show the transcript of the open tutorial
  savetranscript         write the transcript of the open tutorial
  cleartranscript        delete the transcript of the open tutorial
  quiz                   take or resume the quiz
  quizreset              clear your quiz result
  contact                leave a message
  admin                  show all users and messages
  adminreset             wipe all progress and messages
  export <file.xlsx>     export the admin tables
  exit | quit`

// runREPL reads commands from reader until EOF or exit/quit and dispatches
// them to a. The prompt shows the result of statusFn. Handler errors are
// reported and the loop keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "learnify (%s)> ", statusFn())
		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}

		switch cmd {
		case "help":
			fmt.Fprintln(out, helpText)
		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.WhoAmI(ctx)
		case "tutorials":
			err = a.Tutorials(ctx)
		case "watch":
			if arg == "" {
				fmt.Fprintln(out, "Usage: watch <id>")
				continue
			}
			err = a.Watch(ctx, arg)
		case "complete":
			err = a.Complete(ctx, arg)
		case "transcript":
			err = a.Transcript(ctx)
		case "savetranscript":
			err = a.SaveTranscript(ctx)
		case "cleartranscript":
			err = a.ClearTranscript(ctx)
		case "quiz":
			err = a.Quiz(ctx)
		case "quizreset":
			err = a.QuizReset(ctx)
		case "contact":
			err = a.Contact(ctx)
		case "admin":
			err = a.Admin(ctx)
		case "adminreset":
			err = a.AdminReset(ctx)
		case "export":
			if arg == "" {
				fmt.Fprintln(out, "Usage: export <file.xlsx>")
				continue
			}
			err = a.Export(ctx, arg)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(out, "Error:", err)
		}
	}
}

package cli

import "context"

// Contact records a message in the global log and in the user's own log.
// Empty fields are accepted.
func (a *App) Contact(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Your name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Your email", a.out)
	if err != nil {
		return err
	}
	message, err := GetMultiline(a.reader, "Your message", a.out)
	if err != nil {
		return err
	}

	a.progress.AppendMessage(ctx, a.currentUser(ctx), name, email, message)
	a.println("Message saved locally (demo).")
	return nil
}

package cli

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/learnify/internal/catalog"
	"github.com/dmitrijs2005/learnify/internal/views"
)

// resolveTutorial accepts a tutorial id ("t2") or its 1-based list number.
func (a *App) resolveTutorial(arg string) (catalog.Tutorial, bool) {
	if n, err := strconv.Atoi(arg); err == nil {
		if n >= 1 && n <= len(a.tutorials) {
			return a.tutorials[n-1], true
		}
		return catalog.Tutorial{}, false
	}
	for _, t := range a.tutorials {
		if t.ID == arg {
			return t, true
		}
	}
	return catalog.Tutorial{}, false
}

func (a *App) Tutorials(ctx context.Context) error {
	v := views.TutorialList(a.progress.User(ctx, a.currentUser(ctx)), a.tutorials)

	for _, row := range v.Rows {
		mark := "Mark complete"
		if row.Completed {
			mark = "Completed ✓"
		}
		active := " "
		if row.Tutorial.ID == a.activeTutorial {
			active = "*"
		}
		a.printf("%s%d. %s [%s] (%s)\n", active, row.Number, row.Tutorial.Title, row.Tutorial.ID, mark)
		a.printf("    %s\n", row.Tutorial.Description)
	}
	a.println(v.Progress.Label())
	return nil
}

// Watch opens a tutorial. Unknown ids open the first one.
func (a *App) Watch(ctx context.Context, id string) error {
	t, ok := a.resolveTutorial(id)
	if !ok {
		t = catalog.TutorialByID(id)
	}
	a.activeTutorial = t.ID

	v := views.TutorialPanel(a.progress.User(ctx, a.currentUser(ctx)), t.ID)
	a.printf("%s\n", v.Tutorial.Title)
	a.printf("Video: %s\n", v.Tutorial.VideoRef)
	a.printf("%s\n", v.Tutorial.Description)
	if v.Completed {
		a.println("Status: completed ✓")
	}
	if v.Transcript != "" {
		a.println("A transcript is saved for this tutorial (type 'transcript' to show it).")
	}
	return nil
}

// Complete marks a tutorial complete; without an argument the open tutorial
// is used. Repeating it is harmless.
func (a *App) Complete(ctx context.Context, id string) error {
	t := catalog.TutorialByID(a.activeTutorial)
	if id != "" {
		var ok bool
		if t, ok = a.resolveTutorial(id); !ok {
			a.printf("Unknown tutorial: %s\n", id)
			return nil
		}
	}

	user := a.currentUser(ctx)
	a.progress.MarkTutorialComplete(ctx, user, t.ID)

	v := views.TutorialList(a.progress.User(ctx, user), a.tutorials)
	a.printf("Completed ✓ %s\n", t.Title)
	a.println(v.Progress.Label())
	return nil
}

func (a *App) Transcript(ctx context.Context) error {
	v := views.TutorialPanel(a.progress.User(ctx, a.currentUser(ctx)), a.activeTutorial)
	a.printf("Transcript for %s:\n", v.Tutorial.Title)
	if v.Transcript == "" {
		a.println("(empty)")
		return nil
	}
	a.println(v.Transcript)
	return nil
}

func (a *App) SaveTranscript(ctx context.Context) error {
	t := catalog.TutorialByID(a.activeTutorial)
	text, err := GetMultiline(a.reader, "Transcript for "+t.Title, a.out)
	if err != nil {
		return err
	}

	a.progress.SetTranscript(ctx, a.currentUser(ctx), t.ID, text)
	a.println("Transcript saved locally.")
	return nil
}

func (a *App) ClearTranscript(ctx context.Context) error {
	if !a.confirm("Clear transcript for this tutorial?") {
		return nil
	}
	t := catalog.TutorialByID(a.activeTutorial)
	a.progress.ClearTranscript(ctx, a.currentUser(ctx), t.ID)
	a.println("Transcript cleared.")
	return nil
}

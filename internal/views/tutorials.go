package views

import (
	"fmt"

	"github.com/dmitrijs2005/learnify/internal/catalog"
	"github.com/dmitrijs2005/learnify/internal/models"
)

type Progress struct {
	Completed int
	Total     int
	Percent   int
}

func (p Progress) Label() string {
	return fmt.Sprintf("Tutorials completed: %d/%d (%d%%)", p.Completed, p.Total, p.Percent)
}

type TutorialRow struct {
	Number    int
	Tutorial  catalog.Tutorial
	Completed bool
}

type TutorialListView struct {
	Rows     []TutorialRow
	Progress Progress
}

// TutorialList numbers the catalogue from 1 and marks what the user has
// completed.
func TutorialList(p models.UserProgress, tutorials []catalog.Tutorial) TutorialListView {
	v := TutorialListView{Rows: make([]TutorialRow, 0, len(tutorials))}
	for i, t := range tutorials {
		v.Rows = append(v.Rows, TutorialRow{
			Number:    i + 1,
			Tutorial:  t,
			Completed: p.IsCompleted(t.ID),
		})
	}

	done := len(p.CompletedTutorials)
	v.Progress = Progress{
		Completed: done,
		Total:     len(tutorials),
		Percent:   percent(done, len(tutorials)),
	}
	return v
}

type TutorialPanelView struct {
	Tutorial   catalog.Tutorial
	Transcript string
	Completed  bool
}

// TutorialPanel is the active tutorial with the user's saved transcript.
// Unknown ids show the first tutorial.
func TutorialPanel(p models.UserProgress, tutorialID string) TutorialPanelView {
	t := catalog.TutorialByID(tutorialID)
	return TutorialPanelView{
		Tutorial:   t,
		Transcript: p.Transcripts[t.ID],
		Completed:  p.IsCompleted(t.ID),
	}
}

package views

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/learnify/internal/catalog"
	"github.com/dmitrijs2005/learnify/internal/models"
)

// TimeLayout is used for every timestamp shown in the admin tables.
const TimeLayout = "2006-01-02 15:04:05"

type UserRow struct {
	Username  string
	Completed string
	Quiz      string
	Messages  int
}

type MessageRow struct {
	User    string
	Name    string
	Email   string
	Message string
	At      string
}

type AdminView struct {
	Users    []UserRow
	Messages []MessageRow
}

// Admin aggregates the document into one row per user, sorted by username,
// and one row per global message, newest first. Completed tutorials show
// their titles; ids missing from tutorials are shown as is.
func Admin(doc *models.RootDocument, tutorials []catalog.Tutorial, loc *time.Location) AdminView {
	if loc == nil {
		loc = time.Local
	}

	titles := make(map[string]string, len(tutorials))
	for _, t := range tutorials {
		titles[t.ID] = t.Title
	}

	names := make([]string, 0, len(doc.Users))
	for name := range doc.Users {
		names = append(names, name)
	}
	sort.Strings(names)

	v := AdminView{
		Users:    make([]UserRow, 0, len(names)),
		Messages: make([]MessageRow, 0, len(doc.Messages)),
	}

	for _, name := range names {
		u, ok := doc.Lookup(name)
		if !ok {
			u = models.NewUserProgress()
		}

		completed := make([]string, 0, len(u.CompletedTutorials))
		for _, id := range u.CompletedTutorials {
			if title, ok := titles[id]; ok {
				completed = append(completed, title)
			} else {
				completed = append(completed, id)
			}
		}
		row := UserRow{
			Username:  name,
			Completed: strings.Join(completed, "; "),
			Quiz:      "-",
			Messages:  len(u.Messages),
		}
		if row.Completed == "" {
			row.Completed = "-"
		}
		if u.HasQuizResult() {
			qr := u.QuizResult
			row.Quiz = fmt.Sprintf("%d/%d @ %s", qr.Score, qr.Total, qr.TakenAt.In(loc).Format(TimeLayout))
		}
		v.Users = append(v.Users, row)
	}

	for _, m := range doc.Messages {
		v.Messages = append(v.Messages, MessageRow{
			User:    m.User,
			Name:    m.Name,
			Email:   m.Email,
			Message: m.Message.Message,
			At:      m.At.In(loc).Format(TimeLayout),
		})
	}

	return v
}

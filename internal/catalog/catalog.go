// Package catalog holds the fixed tutorial catalogue and quiz bank.
package catalog

// Tutorial is one catalogue entry. VideoRef is an embeddable video URL.
type Tutorial struct {
	ID          string
	Title       string
	VideoRef    string
	Description string
}

// Question is one quiz item; Correct indexes Options.
type Question struct {
	Prompt  string
	Options [4]string
	Correct int
}

var tutorials = []Tutorial{
	{ID: "t1", Title: "HTML Basics — Page Structure", VideoRef: "https://www.youtube.com/embed/PkZNo7MFNFg?rel=0&autoplay=0&cc_load_policy=1", Description: "Basics of HTML structure & tags."},
	{ID: "t2", Title: "Python Full Course", VideoRef: "https://www.youtube.com/embed/rfscVS0vtbw?rel=0&autoplay=0&cc_load_policy=1", Description: "Python crash course / fundamentals."},
	{ID: "t3", Title: "JavaScript Full Course", VideoRef: "https://www.youtube.com/embed/G3e-cpL7ofc?rel=0&autoplay=0&cc_load_policy=1", Description: "Comprehensive JS tutorial."},
	{ID: "t4", Title: "React / Frontend Concepts", VideoRef: "https://www.youtube.com/embed/xTtL8E4LzTQ?rel=0&autoplay=0&cc_load_policy=1", Description: "React basics & project examples."},
	{ID: "t5", Title: "Data Structures & Algorithms", VideoRef: "https://www.youtube.com/embed/Ez8F0nW6S-w?rel=0&autoplay=0&cc_load_policy=1", Description: "DSA concepts and examples."},
}

var quiz = []Question{
	{Prompt: "What does HTML stand for?", Options: [4]string{"HyperText Markup Language", "HighText Machine Language", "Hyper Trainer Mix", "Home Tool Markup"}, Correct: 0},
	{Prompt: "Which tag includes JavaScript?", Options: [4]string{"<script>", "<js>", "<link>", "<code>"}, Correct: 0},
	{Prompt: "CSS property for text color?", Options: [4]string{"text-color", "color", "font-color", "fgcolor"}, Correct: 1},
	{Prompt: "Block-scoped variable in JS?", Options: [4]string{"var", "let", "const", "set"}, Correct: 1},
	{Prompt: "Single-line comment in Python?", Options: [4]string{"//", "#", "/*", "--"}, Correct: 1},
	{Prompt: "Element for hyperlink?", Options: [4]string{"<link>", "<a>", "<href>", "<url>"}, Correct: 1},
	{Prompt: "One-dimensional layout in CSS?", Options: [4]string{"grid", "flexbox", "float", "table"}, Correct: 1},
	{Prompt: "Add item to end of array?", Options: [4]string{"pop", "push", "shift", "unshift"}, Correct: 1},
	{Prompt: "JSON.parse does?", Options: [4]string{"Stringify object", "Parse JSON string to object", "Send JSON", "Validate JSON"}, Correct: 1},
	{Prompt: "Open link in new tab attribute?", Options: [4]string{`target="_blank"`, `rel="external"`, "newtab", `open="_blank"`}, Correct: 0},
}

// Tutorials returns the catalogue in display order. The slice is a copy.
func Tutorials() []Tutorial {
	out := make([]Tutorial, len(tutorials))
	copy(out, tutorials)
	return out
}

// Quiz returns the quiz bank in question order. The slice is a copy.
func Quiz() []Question {
	out := make([]Question, len(quiz))
	copy(out, quiz)
	return out
}

// LookupTutorial finds a tutorial by id.
func LookupTutorial(id string) (Tutorial, bool) {
	for _, t := range tutorials {
		if t.ID == id {
			return t, true
		}
	}
	return Tutorial{}, false
}

// TutorialByID finds a tutorial by id and falls back to the first entry for
// unknown ids.
func TutorialByID(id string) Tutorial {
	if t, ok := LookupTutorial(id); ok {
		return t
	}
	return tutorials[0]
}

// Package cli is the terminal front end of Learnify. A REPL renders the view
// models of package views as text and turns typed commands into calls on the
// credential, session and progress stores.
package cli

package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/learnify/internal/common"
	"github.com/dmitrijs2005/learnify/internal/credentials"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readCredentials() (string, string, error) {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", "", err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return "", "", err
	}
	defer common.WipeByteArray(password)

	return strings.TrimSpace(username), strings.TrimSpace(string(password)), nil
}

// Register creates an account. Duplicate names and empty fields are
// reported to the user and leave the stored credentials unchanged.
func (a *App) Register(ctx context.Context) error {
	username, password, err := a.readCredentials()
	if err != nil {
		return err
	}

	err = a.creds.Register(ctx, username, password)
	switch {
	case errors.Is(err, credentials.ErrEmptyCredentials):
		a.println("Please enter username and password.")
		return nil
	case errors.Is(err, credentials.ErrAlreadyExists):
		a.println("Username already exists!")
		return nil
	case err != nil:
		return err
	}

	a.println("Registration successful! You can now log in.")
	return nil
}

// Login verifies the credentials and points the session at the user.
func (a *App) Login(ctx context.Context) error {
	username, password, err := a.readCredentials()
	if err != nil {
		return err
	}

	err = a.creds.Verify(ctx, username, password)
	if errors.Is(err, credentials.ErrInvalidCredentials) {
		a.println("Invalid username or password.")
		return nil
	}
	if err != nil {
		return err
	}

	if err := a.session.Set(ctx, username); err != nil {
		return err
	}
	a.log.Info(ctx, "user logged in", "username", username)
	a.printf("Welcome back, %s!\n", username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Clear(ctx); err != nil {
		return err
	}
	a.println("Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	if a.isGuest(ctx) {
		a.println("Browsing as guest. Use login or register.")
		return nil
	}
	a.printf("Logged in as %s\n", a.currentUser(ctx))
	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/dmitrijs2005/wotracker/internal/client/client"
	"github.com/dmitrijs2005/wotracker/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var errNotLoggedIn = errors.New("not logged in, type 'login' first")

// Login prompts for a user name and password and opens a server session.
// The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.client.Login(ctx, userName, password)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return errors.New("invalid user name or password")
		}
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	a.userName = s.User.Name
	if a.userName == "" {
		a.userName = userName
	}
	fmt.Fprintf(a.out, "Logged in as %s, session valid until %s\n", a.userName, s.ExpiresAt.Local().Format("2006-01-02 15:04"))
	return nil
}

// Logout revokes the session on the server. Local state is cleared even if
// the server call fails.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	a.userName = ""
	if err := a.client.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	id, err := a.client.WhoAmI(ctx)
	if err != nil {
		return a.sessionError(err)
	}
	fmt.Fprintf(a.out, "%s <%s> (id %s)\n", id.Name, id.Email, id.ID)
	return nil
}

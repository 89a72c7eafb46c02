package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/nexabag/deltamobile/internal/client/api"
	"github.com/nexabag/deltamobile/internal/client/services"
	"github.com/nexabag/deltamobile/internal/common"
)

// Login prompts for credentials and authenticates. Rejected credentials and
// transport failures get different user-facing messages but the same control
// flow: the session stays as it was.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	defer common.WipeByteArray(password)

	err = a.sessions.Login(ctx, username, string(password))
	switch {
	case err == nil:
		fmt.Fprintln(a.out, "Login successful")
		a.view = ViewHome
	case errors.Is(err, common.ErrValidation):
		fmt.Fprintln(a.out, "Username and password must not be empty")
	case errors.Is(err, api.ErrCredentialsRejected):
		fmt.Fprintln(a.out, "Wrong username or password")
	default:
		fmt.Fprintln(a.out, "Server error, try again later")
	}
	return err
}

// Logout clears the persisted session and returns to the login view. It is
// a no-op when already logged out.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	a.inbox = nil
	a.chat = nil
	a.peer = services.Participant{}
	a.view = ViewLogin
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

package cli

import (
	"context"
	"fmt"
)

// Profile renders the signed-in member's details and runs a fresh update
// check. The update banner only appears when the remote version actually
// differs from the bundled one.
func (a *App) Profile(ctx context.Context) error {
	cur := a.sessions.Current()

	fmt.Fprintf(a.out, "Username:  %s\n", cur.Username)
	fmt.Fprintf(a.out, "Member ID: %s\n", cur.UserID)
	if url := a.sessions.AvatarURL(); url != "" {
		fmt.Fprintf(a.out, "Avatar:    %s\n", url)
	}

	theme, err := a.sessions.Theme(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Theme:     %s\n", theme)
	fmt.Fprintf(a.out, "Version:   %s\n", a.updates.LocalVersion())

	status := a.updates.Check(ctx)
	if status.UpdateAvailable {
		fmt.Fprintf(a.out, "NEW UPDATE AVAILABLE (v%s)\n", status.RemoteVersion)
	}

	a.view = ViewProfile
	return nil
}

// Theme switches the persisted theme preference. The choice survives logout.
func (a *App) Theme(ctx context.Context, name string) error {
	if err := a.sessions.SetTheme(ctx, name); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Theme set to %s\n", name)
	return nil
}

// CheckUpdates re-runs the update check on demand and reports the outcome.
func (a *App) CheckUpdates(ctx context.Context) error {
	status := a.updates.Check(ctx)
	switch {
	case !status.Checked:
		fmt.Fprintln(a.out, "Update check still running")
	case status.UpdateAvailable:
		fmt.Fprintf(a.out, "Update available: v%s (you have v%s)\n", status.RemoteVersion, a.updates.LocalVersion())
	default:
		fmt.Fprintln(a.out, "You are up to date")
	}
	return nil
}

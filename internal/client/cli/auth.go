package cli

import (
	"context"
	"fmt"
	"os"
)

// SignIn runs the Google sign-in flow and installs the session. When the
// OAuth client secret is not configured it is asked for interactively,
// without echo, so it never lands in shell history.
func (a *App) SignIn(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Println("Already signed in as", a.session.User().Email)
		return nil
	}

	if a.config.GoogleClientID == "" {
		return fmt.Errorf("google_client_id is not configured")
	}
	if a.config.GoogleClientSecret == "" {
		secret, err := GetSecret("Google OAuth client secret", os.Stdout)
		if err != nil {
			return err
		}
		a.config.GoogleClientSecret = secret
	}

	user, err := a.auth.SignIn(ctx)
	if err != nil {
		return fmt.Errorf("sign-in failed: %w", err)
	}

	fmt.Printf("Signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *App) SignOut(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Not signed in.")
		return nil
	}
	if err := a.auth.SignOut(ctx); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u := a.auth.CurrentUser()
	if u == nil {
		fmt.Println("Not signed in.")
		return nil
	}
	fmt.Printf("%s <%s>\n", u.Name, u.Email)
	if exp, ok := a.tokens.AccessTokenExpiry(); ok {
		fmt.Println("Access token expires:", exp.Local().Format("15:04:05"))
	}
	return nil
}

// Refresh forces a session renewal outside the background schedule.
func (a *App) Refresh(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Not signed in.")
		return nil
	}
	if err := a.auth.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}
	fmt.Println("Session refreshed.")
	return nil
}

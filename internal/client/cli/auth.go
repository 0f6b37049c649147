package cli

import (
	"context"

	"github.com/dmitrijs2005/scmclient/internal/client/forms"
	"github.com/dmitrijs2005/scmclient/internal/client/router"
)

// Login prompts for credentials and signs in. On success the router moves
// to the landing route.
func (a *App) Login(ctx context.Context) error {
	if !a.enter(router.Login) {
		return nil
	}

	username, err := a.ask("Enter username")
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	f := forms.LoginForm{Username: username, Password: string(password)}
	if err := f.Validate(); err != nil {
		a.println("Error:", err)
		return err
	}

	if err := a.session.Login(ctx, f.Username, f.Password); err != nil {
		return a.fail(err, "Login failed")
	}

	a.router.Navigate(router.Landing)
	if u := a.session.State().User; u != nil {
		a.printf("Welcome, %s!\n", u.DisplayName())
	}
	return nil
}

// Signup registers an account. It does not sign in.
func (a *App) Signup(ctx context.Context) error {
	if !a.enter(router.Signup) {
		return nil
	}

	username, err := a.ask("Enter username")
	if err != nil {
		return err
	}
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer clear(password)

	f := forms.SignupForm{Username: username, Email: email, Password: string(password)}
	if err := f.Validate(); err != nil {
		a.println("Error:", err)
		return err
	}

	if _, err := a.client.Auth.Register(ctx, f.Username, f.Email, f.Password); err != nil {
		return a.fail(err, "Signup failed")
	}

	a.router.Navigate(router.Login)
	a.println("Signup successful! Please log in.")
	return nil
}

// Logout clears the session. It works from any state.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return a.fail(err, "Logout failed")
	}
	a.router.Navigate(router.Login)
	a.println("Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	if !a.enter(router.Dashboard) {
		return nil
	}
	u := a.session.State().User
	if u == nil {
		a.println("Not logged in.")
		return nil
	}
	a.printf("%s (%s)\n", u.DisplayName(), u.Username)
	if u.Email != "" {
		a.printf("Email: %s\n", u.Email)
	}
	a.printf("Role:  %s\n", u.Role)
	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dbelyaev/coachbase/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email, display name and password and creates an
// account. On success the session adopts the issued token, so the user is
// signed in immediately. The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter display name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Register(ctx, email, string(password), name); err != nil {
		fmt.Fprintln(a.out, "Registration failed:", err.Error())
		return err
	}

	fmt.Fprintln(a.out, "Welcome,", a.status())
	return nil
}

// Login prompts for credentials and authenticates. The session handles
// token adoption and the redirect to the dashboard.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		fmt.Fprintln(a.out, "Login failed:", err.Error())
		return err
	}

	fmt.Fprintln(a.out, "Signed in as", a.status())
	return nil
}

// Logout signs out. The session clears its state even if the server call
// fails, so this never errors.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

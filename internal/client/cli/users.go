package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/dbelyaev/coachbase/internal/common"
	"github.com/dbelyaev/coachbase/internal/server/models"
)

// Whoami shows the signed-in user's profile, fetched fresh from the server.
func (a *App) Whoami(ctx context.Context) error {
	user, err := a.api.Me(ctx)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	a.printUser(user)
	return nil
}

// List prints all registered users.
func (a *App) List(ctx context.Context) error {
	users, err := a.api.GetUsers(ctx)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	for i := range users {
		fmt.Fprintf(a.out, "%d\t%s\t%s\n", users[i].ID, users[i].Username, users[i].Name)
	}
	return nil
}

// Show prompts for an id and prints that user's profile.
func (a *App) Show(ctx context.Context) error {
	text, err := getSimpleText(a.reader, "Enter user id", os.Stdout)
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Invalid id:", text)
		return err
	}

	user, err := a.api.GetUser(ctx, id)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	a.printUser(user)
	return nil
}

// Update edits the signed-in user's own profile. Each field prompt may be
// left empty to keep the current value; only entered fields are sent.
func (a *App) Update(ctx context.Context) error {
	me := a.session.User()
	if me == nil {
		return common.ErrUnauthorized
	}

	upd := models.UserUpdate{}

	if v, err := getSimpleText(a.reader, "New display name (empty to keep)", os.Stdout); err != nil {
		return err
	} else if v != "" {
		upd.Name = &v
	}

	if v, err := getSimpleText(a.reader, "New email (empty to keep)", os.Stdout); err != nil {
		return err
	} else if v != "" {
		upd.Email = &v
	}

	if v, err := getSimpleText(a.reader, "New username (empty to keep)", os.Stdout); err != nil {
		return err
	} else if v != "" {
		upd.Username = &v
	}

	if pw, err := getPassword(os.Stdout); err != nil {
		return err
	} else if len(pw) > 0 {
		s := string(pw)
		upd.Password = &s
		common.WipeByteArray(pw)
	}

	if upd.Empty() {
		fmt.Fprintln(a.out, "Nothing to update")
		return nil
	}

	user, err := a.api.UpdateUser(ctx, me.ID, upd)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	fmt.Fprintln(a.out, "Profile updated")
	a.printUser(user)

	// Keep the session's copy of the user current.
	a.session.CheckAuth(ctx)
	return nil
}

// Delete removes the signed-in user's own account after confirmation, then
// signs out.
func (a *App) Delete(ctx context.Context) error {
	me := a.session.User()
	if me == nil {
		return common.ErrUnauthorized
	}

	answer, err := getSimpleText(a.reader, "Delete your account? Type 'yes' to confirm", os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.api.DeleteUser(ctx, me.ID); err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}

	fmt.Fprintln(a.out, "Account deleted")
	a.session.Logout(ctx)
	return nil
}

func (a *App) printUser(u *models.PublicUser) {
	fmt.Fprintf(a.out, "id:       %d\n", u.ID)
	fmt.Fprintf(a.out, "username: %s\n", u.Username)
	fmt.Fprintf(a.out, "email:    %s\n", u.Email)
	fmt.Fprintf(a.out, "name:     %s\n", u.Name)
	fmt.Fprintf(a.out, "joined:   %s\n", u.CreatedAt.Format("2006-01-02"))
}

package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/memories/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, e-mail and password and creates an account.
// A successful registration also logs the user in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter e-mail", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.auth.Register(ctx, name, email, string(password))
	if err != nil {
		return err
	}
	a.println(fmt.Sprintf("Welcome, %s!", u.Name))
	return nil
}

// Login authenticates by user name.
func (a *App) Login(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.auth.LoginByName(ctx, name, string(password))
	if err != nil {
		return err
	}
	a.println(fmt.Sprintf("Logged in as %s", u.Name))
	return nil
}

// LoginEmail asks for the e-mail first and only prompts for a password when
// an account exists for it.
func (a *App) LoginEmail(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter e-mail", a.out)
	if err != nil {
		return err
	}
	if email != "" && !a.auth.EmailRegistered(ctx, email) {
		a.println(fmt.Sprintf("No account for %s, use 'register' to create one", email))
		return nil
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.auth.LoginByEmail(ctx, email, string(password))
	if err != nil {
		return err
	}
	a.println(fmt.Sprintf("Logged in as %s", u.Name))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.println("Logged out")
	return nil
}

func (a *App) WhoAmI(_ context.Context) error {
	u, err := a.currentUser()
	if err != nil {
		return err
	}
	a.println(fmt.Sprintf("%s <%s> id=%s since %s", u.Name, u.Email, u.ID, u.CreatedAt.Format("2006-01-02")))
	return nil
}

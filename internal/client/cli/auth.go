package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/assettrack/internal/common"
)

// Input indirections, swapped out in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getYesNo      = GetYesNo
)

var (
	ErrLoginFailed = errors.New("login failed")
	ErrNotLoggedIn = errors.New("not logged in")
)

// Login prompts for credentials and whether to remember them, then logs in.
// The password bytes are wiped before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	remember, err := getYesNo(a.reader, "Remember me on this device?", a.out)
	if err != nil {
		return err
	}

	if !a.store.Login(ctx, userName, string(password), remember) {
		a.log.Info(ctx, "login unsuccessful", "user", userName)
		return ErrLoginFailed
	}

	a.userName = userName
	fmt.Fprintln(a.out, "Logged in")
	return nil
}

// Logout ends the session and forgets remembered credentials.
func (a *App) Logout(ctx context.Context) error {
	a.store.Logout(ctx)
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

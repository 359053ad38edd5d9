package cli

import (
	"context"
	"fmt"

	"github.com/sqlagent/sqlagent-cli/internal/api"
	"github.com/sqlagent/sqlagent-cli/internal/common"
)

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		fmt.Fprintln(a.out, "Login failed:", api.Message(err, "An error occurred during login"))
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", email)
	return nil
}

func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := GetPassword(a.out, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(password) != string(confirm) {
		fmt.Fprintln(a.out, "Passwords do not match.")
		return nil
	}

	if err := a.session.Register(ctx, email, string(password)); err != nil {
		fmt.Fprintln(a.out, "Registration failed:", api.Message(err, "Registration failed"))
		return err
	}

	// Registration never logs the user in; that is a separate step.
	fmt.Fprintln(a.out, "Registration successful. Please login with your credentials.")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, "Logout failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

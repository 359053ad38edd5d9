package cli

import (
	"context"
	"fmt"

	"github.com/sqlagent/sqlagent-cli/internal/api"
	"github.com/sqlagent/sqlagent-cli/internal/common"
)

// maskKey shows just enough of an API key to recognize it.
func maskKey(key string) string {
	if len(key) <= 8 {
		return "********"
	}
	return key[:8] + "..."
}

func (a *App) WhoAmI(_ context.Context) error {
	u := a.session.User()
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "Email:          %s\n", u.Email)
	fmt.Fprintf(a.out, "Subscription:   %s\n", u.SubscriptionStatus)
	fmt.Fprintf(a.out, "Credits left:   %.0f\n", u.CreditsRemaining)
	fmt.Fprintf(a.out, "API key:        %s\n", maskKey(u.APIKey))
	fmt.Fprintf(a.out, "Notifications:  %v\n", u.EmailNotifications)
	return nil
}

// Settings toggles email notifications and optionally changes the
// password. The local user cache is always replaced with the server's
// response, never patched locally.
func (a *App) Settings(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	var in api.SettingsUpdate

	notify, err := GetYesNo(a.reader, "Email notifications?", a.out, u.EmailNotifications)
	if err != nil {
		return err
	}
	if notify != u.EmailNotifications {
		in.EmailNotifications = &notify
	}

	change, err := GetYesNo(a.reader, "Change password?", a.out, false)
	if err != nil {
		return err
	}
	if change {
		password, err := GetPassword(a.out, "New password")
		if err != nil {
			return err
		}
		defer common.WipeByteArray(password)
		s := string(password)
		in.Password = &s
	}

	if in.EmailNotifications == nil && in.Password == nil {
		fmt.Fprintln(a.out, "Nothing to change.")
		return nil
	}

	updated, err := a.api.UpdateSettings(ctx, in)
	if err != nil {
		fmt.Fprintln(a.out, "Could not update settings:", api.Message(err, "request failed"))
		return err
	}
	if err := a.session.UpdateUser(ctx, updated); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Settings updated.")
	return nil
}

// RefreshKey rotates the API key. Every already-issued key stops
// working, so the user confirms first.
func (a *App) RefreshKey(ctx context.Context) error {
	confirmed, err := GetYesNo(a.reader, "Rotate the API key? Existing integrations will stop working", a.out, false)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	key, err := a.api.RefreshAPIKey(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not refresh the API key:", api.Message(err, "request failed"))
		return err
	}
	if err := a.session.RotateCredential(ctx, key); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "New API key: %s\n", key)
	fmt.Fprintln(a.out, "Store it now; it will be shown masked from here on.")
	return nil
}

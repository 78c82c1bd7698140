package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/crownstore/internal/client/services"
	"github.com/dmitrijs2005/crownstore/internal/common"
)

// getSimpleText, getPassword and getConfirmation are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText   = GetSimpleText
	getPassword     = GetPassword
	getConfirmation = GetConfirmation
	getInt          = GetInt
)

const maxOTPAttempts = 3

// Register prompts for the registration form and creates the account. The
// password strength is shown before submitting. The password byte slice is
// wiped before returning.
func (a *App) Register(ctx context.Context) error {
	var in services.RegisterInput
	var err error

	if in.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if in.Phone, err = getSimpleText(a.reader, "Enter phone number", a.out); err != nil {
		return err
	}
	if in.FullName, err = getSimpleText(a.reader, "Enter full name", a.out); err != nil {
		return err
	}
	if in.CompanyName, err = getSimpleText(a.reader, "Enter company name (optional)", a.out); err != nil {
		return err
	}
	if in.BusinessType, err = getSimpleText(a.reader, "Enter business type (individual, retailer, wholesaler, distributor)", a.out); err != nil {
		return err
	}

	if in.Password, err = getPassword("Enter password", a.out); err != nil {
		return err
	}
	defer common.WipeByteArray(in.Password)

	check := services.CheckPassword(string(in.Password), in.Email, in.FullName)
	fmt.Fprintf(a.out, "Password strength: %s (%d/100)\n", check.Label, check.Strength)

	u, err := a.engine.Identity.Register(ctx, in)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s! You can now log in.\n", u.FullName)
	return nil
}

// Login prompts for credentials and the remember-me choice and opens a
// session, replacing any current one.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	remember, err := getConfirmation(a.reader, "Remember me?", a.out)
	if err != nil {
		return err
	}

	s, err := a.engine.Auth.Login(ctx, email, password, remember)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s until %s\n", s.FullName, formatDate(s.ExpiresAt))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.engine.Auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.engine.Auth.CurrentUser(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s <%s>, %s\n", u.FullName, u.Email, u.Phone)
	if u.CompanyName != "" {
		fmt.Fprintf(a.out, "Company: %s (%s)\n", u.CompanyName, u.BusinessType)
	}
	fmt.Fprintf(a.out, "Member since %s, %d order(s), %d favorite(s)\n", formatDate(u.CreatedAt), len(u.Orders), len(u.Favorites))
	return nil
}

// ForgotPassword walks through the reset workflow: request a code, check
// it (a few attempts while it is valid), then set the new password.
func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter your account email", a.out)
	if err != nil {
		return err
	}

	req, err := a.engine.Reset.RequestReset(ctx, email)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "A 6-digit code was sent to %s. It expires at %s.\n", req.Email, req.ExpiresAt.Local().Format("15:04:05"))

	verified := false
	for attempt := 1; attempt <= maxOTPAttempts && !verified; attempt++ {
		code, err := getSimpleText(a.reader, "Enter the code", a.out)
		if err != nil {
			return err
		}

		err = a.engine.Reset.VerifyOTP(ctx, req.Email, code)
		switch {
		case err == nil:
			verified = true
		case errors.Is(err, common.ErrInvalidOTP):
			a.report(ctx, err)
		default:
			return err
		}
	}
	if !verified {
		fmt.Fprintln(a.out, "Too many attempts. Run 'forgot' again to get a new code.")
		return nil
	}

	password, err := getPassword("Enter new password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.engine.Reset.ResetPassword(ctx, req.Email, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Password updated. You can now log in.")
	return nil
}

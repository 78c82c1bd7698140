package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/crownstore/internal/client/models"
)

// optionalText prompts with the current value; an empty answer keeps it and
// yields nil.
func (a *App) optionalText(label, current string) (*string, error) {
	v, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s] (empty keeps it)", label, current), a.out)
	if err != nil || v == "" {
		return nil, err
	}
	return &v, nil
}

// Profile edits the logged-in customer's profile. Email and password are
// not editable here.
func (a *App) Profile(ctx context.Context) error {
	u, err := a.engine.Auth.CurrentUser(ctx)
	if err != nil {
		return err
	}

	var patch models.ProfilePatch
	if patch.FullName, err = a.optionalText("Full name", u.FullName); err != nil {
		return err
	}
	if patch.Phone, err = a.optionalText("Phone", u.Phone); err != nil {
		return err
	}
	if patch.CompanyName, err = a.optionalText("Company", u.CompanyName); err != nil {
		return err
	}
	if patch.BusinessType, err = a.optionalText("Business type", u.BusinessType); err != nil {
		return err
	}

	street, err := getSimpleText(a.reader, "Add delivery address street (empty to skip)", a.out)
	if err != nil {
		return err
	}
	if street != "" {
		city, err := getSimpleText(a.reader, "City", a.out)
		if err != nil {
			return err
		}
		addrs := append(u.Addresses, models.Address{Street: street, City: city})
		patch.Addresses = &addrs
	}

	updated, err := a.engine.Identity.UpdateProfile(ctx, u.ID, patch)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Profile saved for %s (%d address(es))\n", updated.FullName, len(updated.Addresses))
	return nil
}

func (a *App) Favorite(ctx context.Context, args []string) error {
	u, err := a.engine.Auth.CurrentUser(ctx)
	if err != nil {
		return err
	}

	added, err := a.engine.Identity.ToggleFavorite(ctx, u.ID, args[0])
	if err != nil {
		return err
	}

	if added {
		fmt.Fprintf(a.out, "%s added to favorites\n", args[0])
	} else {
		fmt.Fprintf(a.out, "%s removed from favorites\n", args[0])
	}
	return nil
}

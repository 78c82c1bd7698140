// Package models defines the records the engine keeps in the store.
package models

import (
	"slices"
	"time"
)

type Address struct {
	Label   string `json:"label,omitempty"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

// CreditTerms are granted to business customers out of band.
type CreditTerms struct {
	Limit int64 `json:"limit"`
	Days  int   `json:"days"`
}

type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	PasswordHash string       `json:"passwordHash"`
	FullName     string       `json:"fullName"`
	CompanyName  string       `json:"companyName,omitempty"`
	BusinessType string       `json:"businessType"`
	Addresses    []Address    `json:"addresses"`
	Favorites    []string     `json:"favorites"`
	Orders       []Order      `json:"orders"`
	Verified     bool         `json:"verified"`
	CreditTerms  *CreditTerms `json:"creditTerms"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// ProfilePatch lists the fields a profile update may touch. Nil fields are
// left unchanged.
type ProfilePatch struct {
	FullName     *string    `json:"fullName,omitempty"`
	Phone        *string    `json:"phone,omitempty"`
	CompanyName  *string    `json:"companyName,omitempty"`
	BusinessType *string    `json:"businessType,omitempty"`
	Addresses    *[]Address `json:"addresses,omitempty"`
}

// Apply copies the set fields of p onto u.
func (p ProfilePatch) Apply(u *User) {
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.CompanyName != nil {
		u.CompanyName = *p.CompanyName
	}
	if p.BusinessType != nil {
		u.BusinessType = *p.BusinessType
	}
	if p.Addresses != nil {
		u.Addresses = slices.Clone(*p.Addresses)
	}
}

// ToggleFavorite adds productID to the favorites set or removes it, and
// reports whether it is now present.
func (u *User) ToggleFavorite(productID string) bool {
	if i := slices.Index(u.Favorites, productID); i >= 0 {
		u.Favorites = slices.Delete(u.Favorites, i, i+1)
		return false
	}
	u.Favorites = append(u.Favorites, productID)
	return true
}

// FindOrder returns the index of the order with id, or -1.
func (u *User) FindOrder(id string) int {
	return slices.IndexFunc(u.Orders, func(o Order) bool { return o.ID == id })
}

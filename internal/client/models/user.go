// Package models contains the client-side data model for the user directory.
package models

import "strings"

// User is a single directory record. ID is server-assigned and immutable;
// Avatar is read-only on the client.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
}

// FullName returns "First Last" for display.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Matches reports whether query is a case-insensitive substring of the
// user's first name, last name, or email. An empty (or all-blank) query
// matches every record.
func (u User) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(u.FirstName), q) ||
		strings.Contains(strings.ToLower(u.LastName), q) ||
		strings.Contains(strings.ToLower(u.Email), q)
}

// UserPatch carries a partial update. Nil fields are left untouched.
// Identity and avatar are deliberately absent: they are never sent on update.
type UserPatch struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
}

// IsZero reports whether the patch carries no fields.
func (p UserPatch) IsZero() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil
}

// ApplyTo overlays the set fields of the patch onto u in place.
func (p UserPatch) ApplyTo(u *User) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
}

// UserPage is one fetched page of the remote collection.
type UserPage struct {
	Items      []User
	TotalPages int
}

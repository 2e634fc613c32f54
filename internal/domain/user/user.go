package user

import (
	"time"

	"github.com/geocoder89/accounthub/internal/security"
)

type User struct {
	ID           int64         `json:"id"`
	Email        string        `json:"email"`
	Username     string        `json:"username"`
	Name         string        `json:"name"`
	LastName     string        `json:"lastName"`
	PasswordHash security.Hash `json:"-"` // never expose hash in JSON
	City         string        `json:"city"`
	Country      string        `json:"country"`
	State        string        `json:"state"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// Profile is the read-only projection returned to an authenticated caller.
type Profile struct {
	Name     string `json:"name"`
	LastName string `json:"lastName"`
	City     string `json:"city"`
	Country  string `json:"country"`
	State    string `json:"state"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

func (u User) Profile() Profile {
	return Profile{
		Name:     u.Name,
		LastName: u.LastName,
		City:     u.City,
		Country:  u.Country,
		State:    u.State,
		Email:    u.Email,
		Username: u.Username,
	}
}

// ProfilePatch carries a partial profile update. A nil field keeps the
// stored value. Email, username and the password hash are not reachable
// through this path.
type ProfilePatch struct {
	Name     *string `json:"name"`
	LastName *string `json:"lastName"`
	City     *string `json:"city"`
	Country  *string `json:"country"`
	State    *string `json:"state"`
}

// Apply overwrites the mutable fields that are present in the patch.
func (p ProfilePatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.City != nil {
		u.City = *p.City
	}
	if p.Country != nil {
		u.Country = *p.Country
	}
	if p.State != nil {
		u.State = *p.State
	}
}

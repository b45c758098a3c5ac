package user

import "time"

const (
	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"
)

type User struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Username       string     `json:"username"`
	FullName       string     `json:"fullName"`
	ProfilePicture string     `json:"profilePicture,omitempty"`
	PasswordHash   string     `json:"-"` // never expose hash in JSON
	Role           string     `json:"role"`
	IsActive       bool       `json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
	LastLogin      *time.Time `json:"lastLogin,omitempty"`
}

// Profile is the public projection returned by auth and profile endpoints.
type Profile struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	FullName       string     `json:"fullName"`
	Email          string     `json:"email"`
	ProfilePicture string     `json:"profilePicture,omitempty"`
	Role           string     `json:"role"`
	CreatedAt      time.Time  `json:"createdAt"`
	LastLogin      *time.Time `json:"lastLogin,omitempty"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:             u.ID,
		Username:       u.Username,
		FullName:       u.FullName,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
		Role:           u.Role,
		CreatedAt:      u.CreatedAt,
		LastLogin:      u.LastLogin,
	}
}

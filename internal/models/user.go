package models

import "time"

type User struct {
	ID             int       `json:"user_id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	ProfilePicture *string   `json:"profile_picture"`
	Age            *int      `json:"age"`
	IsAdmin        bool      `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// PublicUser is what login returns. It never carries the password hash or the admin flag.
type PublicUser struct {
	ID             int       `json:"user_id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	ProfilePicture *string   `json:"profile_picture"`
	Age            *int      `json:"age"`
	CreatedAt      time.Time `json:"created_at"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
		Age:            u.Age,
		CreatedAt:      u.CreatedAt,
	}
}

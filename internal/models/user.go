package models

import "time"

// User is a stored credential record. The password hash is never
// serialized into responses.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Mail         string    `json:"mail"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

package models

import "time"

// User is a registered account. Meal rows are owned by a User and every
// meal operation is scoped by its ID.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	SessionToken string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

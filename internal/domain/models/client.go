package models

import "time"

// Client is the customer a project is delivered for. A client owns zero or
// more projects; ownership for authorization purposes lives on the project.
type Client struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Company   string    `json:"company,omitempty" db:"company"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

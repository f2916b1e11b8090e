package models

import "time"

const (
	ContactStatusNew     = "new"
	ContactStatusRead    = "read"
	ContactStatusReplied = "replied"
)

// ContactMessage is the model for the 'contact_messages' table.
type ContactMessage struct {
	ID        int64      `json:"message_id" db:"message_id"`
	Name      string     `json:"name" db:"name"`
	Email     string     `json:"email" db:"email"`
	Subject   string     `json:"subject" db:"subject"`
	Message   string     `json:"message" db:"message"`
	Status    string     `json:"status" db:"status"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	RepliedAt *time.Time `json:"replied_at" db:"replied_at"`
}

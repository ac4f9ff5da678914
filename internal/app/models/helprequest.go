package models

import "time"

// HelpRequest defines the help desk ticket model based on the
// 'help_requests' table
type HelpRequest struct {
	ID        int64             `json:"id" db:"id"`
	UserID    int64             `json:"userId" db:"user_id"`
	Subject   string            `json:"subject" db:"subject"`
	Message   string            `json:"message" db:"message"`
	Status    HelpRequestStatus `json:"status" db:"status"`
	CreatedAt time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time         `json:"updatedAt" db:"updated_at"`

	User *User `json:"user,omitempty"` // Relation, no db tag
}

package models

import "time"

// School defines the school profile model based on the 'schools' table.
// A school row always belongs to exactly one user with the SCHOOL role.
type School struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Bio       *string   `json:"bio,omitempty" db:"bio"`
	Website   *string   `json:"website,omitempty" db:"website"`
	Address   *string   `json:"address,omitempty" db:"address"`
	City      *string   `json:"city,omitempty" db:"city"`
	State     *string   `json:"state,omitempty" db:"state"`
	Pincode   *string   `json:"pincode,omitempty" db:"pincode"`
	LogoURL   *string   `json:"logoUrl,omitempty" db:"logo_url"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	User       *User      `json:"user,omitempty"`       // Relation, no db tag
	Categories []Category `json:"categories,omitempty"` // Many-to-many, no db tag
}

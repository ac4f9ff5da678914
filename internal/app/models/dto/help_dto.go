package dto

// CreateHelpRequest represents a user opening a help desk ticket
type CreateHelpRequest struct {
	Subject string `json:"subject" binding:"required,min=3,max=200"`
	Message string `json:"message" binding:"required"`
}

package services

import (
	"context"

	"github.com/campuslink/jobportal/internal/app/models"
	"github.com/campuslink/jobportal/internal/app/repositories"
)

// HelpService handles help desk tickets
type HelpService struct {
	helpRepo *repositories.HelpRequestRepository
}

// NewHelpService creates a new help service instance
func NewHelpService(helpRepo *repositories.HelpRequestRepository) *HelpService {
	return &HelpService{helpRepo: helpRepo}
}

// Create opens a ticket for the user
func (s *HelpService) Create(ctx context.Context, userID int64, subject, message string) (*models.HelpRequest, error) {
	h := &models.HelpRequest{
		UserID:  userID,
		Subject: subject,
		Message: message,
		Status:  models.HelpStatusOpen,
	}
	if err := s.helpRepo.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// ListMine returns the tickets the user has submitted
func (s *HelpService) ListMine(ctx context.Context, userID int64) ([]models.HelpRequest, error) {
	return s.helpRepo.ListByUser(ctx, userID)
}

// Resolve marks a ticket resolved. Admin-only at the route level.
func (s *HelpService) Resolve(ctx context.Context, id int64) (*models.HelpRequest, error) {
	if err := s.helpRepo.UpdateStatus(ctx, id, models.HelpStatusResolved); err != nil {
		return nil, err
	}
	return s.helpRepo.GetByID(ctx, id)
}

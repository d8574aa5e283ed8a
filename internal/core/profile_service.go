package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"learnsphere-backend/internal/db"
	"learnsphere-backend/internal/models"
)

// ProfileService manages user profiles and role lookups.
type ProfileService struct {
	profileRepo db.ProfileRepository
}

// NewProfileService creates a ProfileService.
func NewProfileService(profileRepo db.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// Get returns the user's profile.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// Role returns the user's role, defaulting to student when no profile
// exists yet.
func (s *ProfileService) Role(ctx context.Context, userID string) (string, error) {
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return models.RoleStudent, nil
		}
		return "", fmt.Errorf("failed to get profile for role: %w", err)
	}
	if profile.Role == "" {
		return models.RoleStudent, nil
	}
	return profile.Role, nil
}

// Update applies the provided fields to the user's profile, creating the
// profile with the student role when it does not exist yet. email comes
// from the verified identity, not the request body.
func (s *ProfileService) Update(ctx context.Context, userID, email string, req models.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("failed to load profile for update: %w", err)
		}
		profile = &models.Profile{
			UserID: userID,
			Role:   models.RoleStudent,
		}
	}
	profile.Email = email

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Profession != nil {
		profile.Profession = *req.Profession
	}
	if req.Website != nil {
		profile.Website = *req.Website
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.Education != nil {
		profile.Education = *req.Education
	}
	if req.Interests != nil {
		profile.Interests = NormalizeTags(*req.Interests)
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}

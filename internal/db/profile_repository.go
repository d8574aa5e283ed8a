package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"learnsphere-backend/internal/models"
)

const profilesCollection = "profiles"

type firestoreProfileRepository struct {
	client *firestore.Client
}

// NewFirestoreProfileRepository creates a ProfileRepository backed by the
// "profiles" collection, keyed by Firebase Auth UID.
func NewFirestoreProfileRepository(client *firestore.Client) ProfileRepository {
	return &firestoreProfileRepository{client: client}
}

func (r *firestoreProfileRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	snap, err := r.client.Collection(profilesCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("profile %q: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile %q: %w", userID, err)
	}
	var profile models.Profile
	if err := snap.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile %q: %w", userID, err)
	}
	profile.UserID = snap.Ref.ID
	return &profile, nil
}

// Save writes the full profile document, creating it when missing.
func (r *firestoreProfileRepository) Save(ctx context.Context, profile *models.Profile) error {
	if profile.UserID == "" {
		return fmt.Errorf("profile userID is required for save")
	}
	if _, err := r.client.Collection(profilesCollection).Doc(profile.UserID).Set(ctx, profile); err != nil {
		return fmt.Errorf("failed to save profile %q: %w", profile.UserID, err)
	}
	return nil
}

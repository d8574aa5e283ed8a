package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnsphere-backend/internal/models"
)

func TestProfileRoleDefaultsToStudent(t *testing.T) {
	repo := newFakeProfileRepo()
	service := NewProfileService(repo)

	role, err := service.Role(context.Background(), "new-user")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, role)

	require.NoError(t, repo.Save(context.Background(), &models.Profile{UserID: "instructor-1", Role: models.RoleInstructor}))
	role, err = service.Role(context.Background(), "instructor-1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleInstructor, role)
}

func TestProfileGetNotFound(t *testing.T) {
	service := NewProfileService(newFakeProfileRepo())

	_, err := service.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProfileUpdateCreatesOnFirstWrite(t *testing.T) {
	repo := newFakeProfileRepo()
	service := NewProfileService(repo)

	name := "Ada Lovelace"
	interests := []string{" Math ", "math", "Computing"}
	profile, err := service.Update(context.Background(), "user-1", "ada@example.com", models.UpdateProfileRequest{
		Name:      &name,
		Interests: &interests,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, profile.Role)
	assert.Equal(t, "ada@example.com", profile.Email, "email comes from the verified identity")
	assert.Equal(t, []string{"math", "computing"}, profile.Interests)
}

func TestProfileUpdateMergesExisting(t *testing.T) {
	repo := newFakeProfileRepo()
	service := NewProfileService(repo)
	require.NoError(t, repo.Save(context.Background(), &models.Profile{
		UserID: "user-1",
		Name:   "Ada",
		Bio:    "Mathematician",
		Role:   models.RoleInstructor,
	}))

	location := "London"
	profile, err := service.Update(context.Background(), "user-1", "ada@example.com", models.UpdateProfileRequest{
		Location: &location,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", profile.Name, "unset fields are untouched")
	assert.Equal(t, "Mathematician", profile.Bio)
	assert.Equal(t, "London", profile.Location)
	assert.Equal(t, models.RoleInstructor, profile.Role, "role survives updates")
}

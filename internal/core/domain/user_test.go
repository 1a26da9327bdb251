package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/domain"
)

func TestNewUser(t *testing.T) {
	user, err := domain.NewUser("  Alice@Example.COM ", "hash", " Alice ")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "hash", user.PasswordHash)
}

func TestNewUser_InvalidEmail(t *testing.T) {
	for _, email := range []string{"", "not-an-email", "@example.com"} {
		_, err := domain.NewUser(email, "hash", "Alice")
		assert.ErrorIs(t, err, domain.ErrInvalidEmail, "email %q", email)
	}
}

func TestApply_PartialPatch(t *testing.T) {
	user, err := domain.NewUser("alice@example.com", "hash", "Alice")
	require.NoError(t, err)
	user.Bio = "original bio"

	newName := "Alice B."
	newMobile := "0600000000"
	user.Apply(domain.ProfilePatch{Name: &newName, Mobile: &newMobile})

	assert.Equal(t, "Alice B.", user.Name)
	assert.Equal(t, "0600000000", user.Mobile)
	// Champs non patchés intacts.
	assert.Equal(t, "original bio", user.Bio)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestApply_EmptyStringClearsField(t *testing.T) {
	user, err := domain.NewUser("alice@example.com", "hash", "Alice")
	require.NoError(t, err)
	user.Bio = "bio"

	empty := ""
	user.Apply(domain.ProfilePatch{Bio: &empty})
	assert.Equal(t, "", user.Bio)
}

func TestSummary_HandleFromEmail(t *testing.T) {
	user, err := domain.NewUser("alice@example.com", "hash", "Alice")
	require.NoError(t, err)

	sum := user.Summary()
	assert.Equal(t, user.ID, sum.ID)
	assert.Equal(t, "alice", sum.Handle)
	assert.Equal(t, "Alice", sum.Name)
}

func TestSummary_FallbackNameIsHandle(t *testing.T) {
	user, err := domain.NewUser("bob@example.com", "hash", "")
	require.NoError(t, err)

	sum := user.Summary()
	assert.Equal(t, "bob", sum.Handle)
	assert.Equal(t, "bob", sum.Name)
}

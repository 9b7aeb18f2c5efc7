package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/sprintdeck/internal/errors"
)

func testSession() *Session {
	return &Session{
		Token: "token-abc",
		User: User{
			ID:    "user-123",
			Name:  "Dana Scrum",
			Email: "dana@example.com",
			Role:  "scrumMaster",
		},
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}
}

func TestFileStore_SaveLoad(t *testing.T) {
	store := NewFileStore(t.TempDir(), "")

	require.NoError(t, store.Save(testSession()))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "token-abc", loaded.Token)
	assert.Equal(t, "user-123", loaded.User.ID)
	assert.Equal(t, "scrumMaster", loaded.User.Role)
}

func TestFileStore_LoadMissing(t *testing.T) {
	store := NewFileStore(t.TempDir(), "")

	_, err := store.Load()
	require.Error(t, err)

	deckErr, ok := err.(*errors.SprintdeckError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeSessionNotFound, deckErr.Code)
}

func TestFileStore_Expired(t *testing.T) {
	store := NewFileStore(t.TempDir(), "")

	expired := testSession()
	expired.ExpiresAt = time.Now().Add(-1 * time.Minute)
	require.NoError(t, store.Save(expired))

	_, err := store.Load()
	require.Error(t, err)

	deckErr, ok := err.(*errors.SprintdeckError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeSessionExpired, deckErr.Code)
}

func TestFileStore_Clear(t *testing.T) {
	store := NewFileStore(t.TempDir(), "")

	// Clearing an absent session is fine
	require.NoError(t, store.Clear())

	require.NoError(t, store.Save(testSession()))
	require.NoError(t, store.Clear())

	_, err := store.Load()
	require.Error(t, err)
}

func TestFileStore_EncryptedToken(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir, "hunter2")

	require.NoError(t, store.Save(testSession()))

	// Token must not appear in plaintext on disk
	raw, err := os.ReadFile(filepath.Join(dir, "session.json"))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "token-abc")

	var record map[string]any
	require.NoError(t, json.Unmarshal(raw, &record))
	assert.NotEmpty(t, record["encrypted_token"])

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "token-abc", loaded.Token)
}

func TestFileStore_WrongPassphrase(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewFileStore(dir, "right").Save(testSession()))

	_, err := NewFileStore(dir, "wrong").Load()
	require.Error(t, err)

	deckErr, ok := err.(*errors.SprintdeckError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeSessionDecrypt, deckErr.Code)
}

func TestFileStore_RejectsEmptyToken(t *testing.T) {
	store := NewFileStore(t.TempDir(), "")

	err := store.Save(&Session{})
	require.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Load()
	require.Error(t, err)

	require.NoError(t, store.Save(testSession()))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", loaded.User.Email)

	// Load returns a copy; mutations must not leak into the store
	loaded.User.Email = "mutated@example.com"
	again, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", again.User.Email)

	require.NoError(t, store.Clear())
	_, err = store.Load()
	require.Error(t, err)
}

func TestSession_IsValid(t *testing.T) {
	assert.False(t, (&Session{}).IsValid())
	assert.True(t, testSession().IsValid())

	expired := testSession()
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	assert.False(t, expired.IsValid())

	// No expiry means the server decides
	open := testSession()
	open.ExpiresAt = time.Time{}
	assert.True(t, open.IsValid())
}

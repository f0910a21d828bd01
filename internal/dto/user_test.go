package dto

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	models.HashCost = bcrypt.MinCost
	m.Run()
}

func TestBuildUserFromCreateRequest(t *testing.T) {
	user, err := BuildUserFromCreateRequest(CreateUserRequest{Username: "alice", Password: "secret"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.True(t, user.VerifyPassword("secret"))
}

func TestBuildUserFromCreateRequest_Invalid(t *testing.T) {
	_, err := BuildUserFromCreateRequest(CreateUserRequest{Username: " ", Password: "secret"})
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = BuildUserFromCreateRequest(CreateUserRequest{Username: "alice"})
	assert.ErrorIs(t, err, ErrPasswordRequired)
}

func TestApplyUpdateToUser_UsernameOnly(t *testing.T) {
	user, err := models.NewUser("alice", "secret")
	require.NoError(t, err)
	hash := user.PasswordHash

	_, err = ApplyUpdateToUser(user, UpdateUserRequest{
		Username:    "alicia",
		OldPassword: "secret",
		NewPassword: "changed",
	})
	require.NoError(t, err)

	assert.Equal(t, "alicia", user.Username)
	assert.Equal(t, hash, user.PasswordHash, "password must not change through a general update")
	assert.True(t, user.VerifyPassword("secret"))
}

func TestApplyUpdateToUser_BlankUsername(t *testing.T) {
	user := &models.User{ID: uuid.New(), Username: "alice"}

	_, err := ApplyUpdateToUser(user, UpdateUserRequest{Username: ""})

	assert.ErrorIs(t, err, ErrUsernameRequired)
	assert.Equal(t, "alice", user.Username)
}

func TestToUserResponse_HidesPasswordHash(t *testing.T) {
	user, err := models.NewUser("alice", "secret")
	require.NoError(t, err)

	body, err := json.Marshal(ToUserResponse(*user))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Equal(t, map[string]any{
		"user_id":  user.ID.String(),
		"username": "alice",
	}, raw)
	assert.NotContains(t, string(body), user.PasswordHash)
}

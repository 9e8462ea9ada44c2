package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"dating-app-backend/internal/dto"
	"dating-app-backend/internal/repository"
	"dating-app-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	me := testutil.CreateUser(t, env.db, "me", testutil.WithGender("male"))
	woman := testutil.CreateUser(t, env.db, "woman", testutil.WithGender("female"))
	man := testutil.CreateUser(t, env.db, "man", testutil.WithGender("male"))
	testutil.CreatePhoto(t, env.db, woman.ID, true)

	t.Run("defaults to opposite gender", func(t *testing.T) {
		page, err := env.users.ListUsers(ctx, repository.NewUserParams(me.ID))
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, woman.ID, page.Items[0].ID)
		assert.NotEmpty(t, page.Items[0].PhotoURL)
		assert.Equal(t, 30, page.Items[0].Age)
	})

	t.Run("explicit gender", func(t *testing.T) {
		params := repository.NewUserParams(me.ID)
		params.Gender = "male"
		page, err := env.users.ListUsers(ctx, params)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, man.ID, page.Items[0].ID)
	})

	t.Run("inverted age range", func(t *testing.T) {
		params := repository.NewUserParams(me.ID)
		params.MinAge = 40
		params.MaxAge = 30
		_, err := env.users.ListUsers(ctx, params)
		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("unknown caller", func(t *testing.T) {
		_, err := env.users.ListUsers(ctx, repository.NewUserParams(9999))
		requireStatus(t, err, http.StatusNotFound)
	})
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, env.db, "alice")

	err := env.users.UpdateUser(ctx, alice.ID, dto.UserForUpdate{
		Introduction: "Hi there",
		LookingFor:   "Someone kind",
		Interests:    "Hiking",
		City:         "Delft",
		Country:      "Netherlands",
	})
	require.NoError(t, err)

	detailed, err := env.users.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hi there", detailed.Introduction)
	assert.Equal(t, "Delft", detailed.City)
	assert.Equal(t, "alice", detailed.Username)

	requireStatus(t, env.users.UpdateUser(ctx, 9999, dto.UserForUpdate{}), http.StatusNotFound)
}

func TestTouchLastActive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, env.db, "alice", testutil.ActiveAt(testutil.Now.Add(-48*time.Hour)))

	require.NoError(t, env.users.TouchLastActive(ctx, alice.ID))

	user, err := env.store.Repository().GetUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, testutil.Now.Equal(user.LastActive))

	// unknown users are ignored
	assert.NoError(t, env.users.TouchLastActive(ctx, 9999))
}

func TestUpdatePushToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, env.db, "alice")

	token := "device-token"
	require.NoError(t, env.users.UpdatePushToken(ctx, alice.ID, &token))

	user, err := env.store.Repository().GetUser(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, user.PushToken)
	assert.Equal(t, token, *user.PushToken)

	empty := ""
	require.NoError(t, env.users.UpdatePushToken(ctx, alice.ID, &empty))
	user, err = env.store.Repository().GetUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, user.PushToken)
}

package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"dating-app-backend/internal/dto"
	"dating-app-backend/internal/models"
	"dating-app-backend/internal/repository"
	"dating-app-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMessage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, env.db, "alice")
	bob := testutil.CreateUser(t, env.db, "bob")
	testutil.CreatePhoto(t, env.db, alice.ID, true)

	sent, err := env.messages.CreateMessage(ctx, alice.ID, dto.MessageForCreation{RecipientID: bob.ID, Content: "hello"})
	require.NoError(t, err)
	assert.NotZero(t, sent.ID)
	assert.Equal(t, "alice", sent.SenderKnownAs)
	assert.NotEmpty(t, sent.SenderPhotoURL)
	assert.Equal(t, "bob", sent.RecipientKnownAs)
	assert.False(t, sent.IsRead)
	assert.Equal(t, testutil.Now, sent.MessageSent.UTC())

	t.Run("unknown recipient", func(t *testing.T) {
		_, err := env.messages.CreateMessage(ctx, alice.ID, dto.MessageForCreation{RecipientID: 9999, Content: "hi"})
		requireStatus(t, err, http.StatusNotFound)
	})

	t.Run("empty content", func(t *testing.T) {
		_, err := env.messages.CreateMessage(ctx, alice.ID, dto.MessageForCreation{RecipientID: bob.ID})
		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("get as participant", func(t *testing.T) {
		got, err := env.messages.GetMessage(ctx, bob.ID, sent.ID)
		require.NoError(t, err)
		assert.Equal(t, "hello", got.Content)
	})

	t.Run("hidden from outsiders", func(t *testing.T) {
		carol := testutil.CreateUser(t, env.db, "carol")
		_, err := env.messages.GetMessage(ctx, carol.ID, sent.ID)
		requireStatus(t, err, http.StatusNotFound)
	})
}

func TestGetMessagesForUserService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, env.db, "alice")
	bob := testutil.CreateUser(t, env.db, "bob")
	for i := 0; i < 3; i++ {
		testutil.CreateMessage(t, env.db, bob.ID, alice.ID, "msg", testutil.Now.Add(-time.Duration(i)*time.Minute))
	}

	params := repository.NewMessageParams(alice.ID)
	params.PageSize = 2
	page, err := env.messages.GetMessagesForUser(ctx, params)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 3, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, "bob", page.Items[0].SenderKnownAs)

	params.MessageContainer = "Trash"
	_, err = env.messages.GetMessagesForUser(ctx, params)
	requireStatus(t, err, http.StatusBadRequest)

	thread, err := env.messages.GetMessageThread(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Len(t, thread, 3)
}

func TestMarkAsRead(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, env.db, "alice")
	bob := testutil.CreateUser(t, env.db, "bob")
	m := testutil.CreateMessage(t, env.db, alice.ID, bob.ID, "hi", testutil.Now.Add(-time.Hour))

	requireStatus(t, env.messages.MarkAsRead(ctx, alice.ID, m.ID), http.StatusUnauthorized)
	requireStatus(t, env.messages.MarkAsRead(ctx, bob.ID, 9999), http.StatusNotFound)

	require.NoError(t, env.messages.MarkAsRead(ctx, bob.ID, m.ID))

	stored, err := env.store.Repository().GetMessage(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsRead)
	require.NotNil(t, stored.DateRead)
	assert.True(t, testutil.Now.Equal(*stored.DateRead))

	// second call is a no-op
	require.NoError(t, env.messages.MarkAsRead(ctx, bob.ID, m.ID))
}

func TestDeleteMessage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, env.db, "alice")
	bob := testutil.CreateUser(t, env.db, "bob")
	carol := testutil.CreateUser(t, env.db, "carol")
	m := testutil.CreateMessage(t, env.db, alice.ID, bob.ID, "hi", testutil.Now)

	requireStatus(t, env.messages.DeleteMessage(ctx, carol.ID, m.ID), http.StatusNotFound)

	require.NoError(t, env.messages.DeleteMessage(ctx, alice.ID, m.ID))

	stored, err := env.store.Repository().GetMessage(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, stored.SenderDeleted)
	assert.False(t, stored.RecipientDeleted)

	outbox := repository.NewMessageParams(alice.ID)
	outbox.MessageContainer = repository.ContainerOutbox
	page, err := env.messages.GetMessagesForUser(ctx, outbox)
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	require.NoError(t, env.messages.DeleteMessage(ctx, bob.ID, m.ID))

	var count int64
	require.NoError(t, env.db.Model(&models.Message{}).Where("id = ?", m.ID).Count(&count).Error)
	assert.Zero(t, count, "deleted by both sides")
}

func TestMarkAsReadKeepsSenderDeletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, env.db, "alice")
	bob := testutil.CreateUser(t, env.db, "bob")
	m := testutil.CreateMessage(t, env.db, alice.ID, bob.ID, "hi", testutil.Now)

	require.NoError(t, env.messages.DeleteMessage(ctx, alice.ID, m.ID))
	require.NoError(t, env.messages.MarkAsRead(ctx, bob.ID, m.ID))

	stored, err := env.store.Repository().GetMessage(ctx, m.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsRead)
	assert.True(t, stored.SenderDeleted)
	assert.False(t, stored.RecipientDeleted)
}

func TestDeleteMessageToSelf(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := testutil.CreateUser(t, env.db, "alice")
	m := testutil.CreateMessage(t, env.db, alice.ID, alice.ID, "note to self", testutil.Now)

	require.NoError(t, env.messages.DeleteMessage(ctx, alice.ID, m.ID))

	_, err := env.store.Repository().GetMessage(ctx, m.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

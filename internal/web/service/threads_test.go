package service

import (
	"context"
	"testing"

	"github.com/forumwatch/threadwatch/internal/web/domain"
	"github.com/stretchr/testify/require"
)

func newThreadFixture(t *testing.T) (*ThreadService, domain.Account, domain.Account) {
	t.Helper()

	st := newTestStore(t)
	accounts := &AccountService{Store: st}

	ctx := context.Background()
	alice, err := accounts.Create(ctx, "alice@example.com", "secret", domain.RoleUser)
	require.NoError(t, err)
	bob, err := accounts.Create(ctx, "bob@example.com", "secret", domain.RoleUser)
	require.NoError(t, err)

	return &ThreadService{Store: st}, alice, bob
}

func TestThreadServiceCreate(t *testing.T) {
	ctx := context.Background()
	svc, alice, bob := newThreadFixture(t)

	nt := NewThread{
		Title:        "Release discussion",
		URL:          "https://forum.example/t/1234",
		ColorMessage: "#ff0000",
		ColorQuote:   "#00ff00",
		ColorSpoiler: "#0000ff",
	}

	t.Run("creates a running thread", func(t *testing.T) {
		thread, err := svc.Create(ctx, alice.ID, nt)
		require.NoError(t, err)
		require.NotEmpty(t, thread.ID)
		require.Equal(t, alice.ID, thread.AccountID)
		require.False(t, thread.Paused)
		require.Equal(t, "#ff0000", thread.ColorMessage)
	})

	t.Run("rejects a duplicate url for the same account", func(t *testing.T) {
		_, err := svc.Create(ctx, alice.ID, nt)
		require.ErrorIs(t, err, ErrThreadExists)
	})

	t.Run("the same url is fine for another account", func(t *testing.T) {
		_, err := svc.Create(ctx, bob.ID, nt)
		require.NoError(t, err)
	})

	t.Run("title and url are required", func(t *testing.T) {
		_, err := svc.Create(ctx, alice.ID, NewThread{URL: "https://forum.example/t/5"})
		require.ErrorIs(t, err, ErrMissingField)

		_, err = svc.Create(ctx, alice.ID, NewThread{Title: "No target"})
		require.ErrorIs(t, err, ErrMissingField)
	})
}

func TestThreadServiceTogglePaused(t *testing.T) {
	ctx := context.Background()
	svc, alice, bob := newThreadFixture(t)

	thread, err := svc.Create(ctx, alice.ID, NewThread{
		Title: "Watch me", URL: "https://forum.example/t/42",
	})
	require.NoError(t, err)

	pausedOf := func() bool {
		threads, err := svc.ListByAccount(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, threads, 1)
		return threads[0].Paused
	}

	t.Run("toggling twice restores the original state", func(t *testing.T) {
		require.NoError(t, svc.TogglePaused(ctx, alice.ID, thread.ID))
		require.True(t, pausedOf())

		require.NoError(t, svc.TogglePaused(ctx, alice.ID, thread.ID))
		require.False(t, pausedOf())
	})

	t.Run("another account cannot toggle it", func(t *testing.T) {
		err := svc.TogglePaused(ctx, bob.ID, thread.ID)
		require.ErrorIs(t, err, ErrThreadNotFound)
		require.False(t, pausedOf())
	})
}

func TestThreadServiceRename(t *testing.T) {
	ctx := context.Background()
	svc, alice, bob := newThreadFixture(t)

	const url = "https://forum.example/t/42"
	_, err := svc.Create(ctx, alice.ID, NewThread{Title: "Old title", URL: url})
	require.NoError(t, err)

	t.Run("renames by owner and url", func(t *testing.T) {
		require.NoError(t, svc.Rename(ctx, alice.ID, url, "New title"))

		threads, err := svc.ListByAccount(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, "New title", threads[0].Title)
	})

	t.Run("empty title is rejected", func(t *testing.T) {
		require.ErrorIs(t, svc.Rename(ctx, alice.ID, url, ""), ErrMissingField)
	})

	t.Run("another account's rename misses", func(t *testing.T) {
		err := svc.Rename(ctx, bob.ID, url, "Hijacked")
		require.ErrorIs(t, err, ErrThreadNotFound)
	})
}

func TestThreadServiceDelete(t *testing.T) {
	ctx := context.Background()
	svc, alice, bob := newThreadFixture(t)

	thread, err := svc.Create(ctx, alice.ID, NewThread{
		Title: "Short lived", URL: "https://forum.example/t/9",
	})
	require.NoError(t, err)

	t.Run("another account's delete misses", func(t *testing.T) {
		err := svc.Delete(ctx, bob.ID, thread.ID)
		require.ErrorIs(t, err, ErrThreadNotFound)
	})

	t.Run("owner-scoped delete removes the thread", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, alice.ID, thread.ID))

		threads, err := svc.ListByAccount(ctx, alice.ID)
		require.NoError(t, err)
		require.Empty(t, threads)
	})

	t.Run("the url is reusable after deletion", func(t *testing.T) {
		_, err := svc.Create(ctx, alice.ID, NewThread{
			Title: "Back again", URL: "https://forum.example/t/9",
		})
		require.NoError(t, err)
	})
}

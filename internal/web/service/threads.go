package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/forumwatch/threadwatch/internal/web/domain"
	"github.com/forumwatch/threadwatch/internal/web/store"
	"github.com/forumwatch/threadwatch/pkg/idx"
	"github.com/forumwatch/threadwatch/pkg/slogx"
)

var (
	ErrThreadExists   = errors.New("this thread is already registered")
	ErrThreadNotFound = errors.New("thread not found")
)

// ThreadService is plain CRUD with ownership scoping: every operation takes
// the account id whose rows it may touch. User routes pass the caller's own
// id; admin routes pass the explicit target's.
type ThreadService struct {
	Store store.Store
}

// NewThread carries the creation form fields.
type NewThread struct {
	Title        string
	URL          string
	ColorMessage string
	ColorQuote   string
	ColorSpoiler string
}

// Create registers a new thread for the account. Title and URL are
// required; a duplicate (account, URL) pair is rejected.
func (s *ThreadService) Create(ctx context.Context, accountID string, nt NewThread) (domain.Thread, error) {
	log := slogx.FromContext(ctx)

	if nt.Title == "" || nt.URL == "" {
		return domain.Thread{}, ErrMissingField
	}

	thread := domain.Thread{
		ID:           idx.New().String(),
		AccountID:    accountID,
		Title:        nt.Title,
		URL:          nt.URL,
		ColorMessage: nt.ColorMessage,
		ColorQuote:   nt.ColorQuote,
		ColorSpoiler: nt.ColorSpoiler,
	}

	if err := s.Store.Threads().CreateThread(ctx, thread); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Thread{}, ErrThreadExists
		}
		log.Error("failed to create thread", slog.Any("error", err))
		return domain.Thread{}, err
	}

	log.Info("thread created",
		slog.String("thread_id", thread.ID),
		slog.String("account_id", accountID),
		slog.String("url", nt.URL),
	)
	return thread, nil
}

// ListByAccount returns the account's threads.
func (s *ThreadService) ListByAccount(ctx context.Context, accountID string) ([]domain.Thread, error) {
	return s.Store.Threads().ListThreadsByAccount(ctx, accountID)
}

// TogglePaused flips the paused flag on a thread the account owns.
func (s *ThreadService) TogglePaused(ctx context.Context, accountID, threadID string) error {
	err := s.Store.Threads().ToggleThreadPaused(ctx, threadID, accountID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrThreadNotFound
	}
	return err
}

// Rename changes the title of the account's thread identified by URL (the
// two-step edit flow addresses threads by their target, not their id).
func (s *ThreadService) Rename(ctx context.Context, accountID, url, title string) error {
	if title == "" {
		return ErrMissingField
	}
	err := s.Store.Threads().UpdateThreadTitle(ctx, accountID, url, title)
	if errors.Is(err, store.ErrNotFound) {
		return ErrThreadNotFound
	}
	return err
}

// Delete removes the account's thread. Only reachable from admin routes in
// the current surface.
func (s *ThreadService) Delete(ctx context.Context, accountID, threadID string) error {
	log := slogx.FromContext(ctx)

	err := s.Store.Threads().DeleteThread(ctx, threadID, accountID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrThreadNotFound
	}
	if err == nil {
		log.Info("thread deleted",
			slog.String("thread_id", threadID),
			slog.String("account_id", accountID),
		)
	}
	return err
}

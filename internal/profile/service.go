package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/lectiz/internal/quiz"
)

// Service owns registration and the active profile reference.
type Service struct {
	mu      sync.Mutex
	store   Store
	pointer ActivePointer
	active  *UserProfile
	now     func() time.Time
}

var _ quiz.AttemptRecorder = (*Service)(nil)

// NewService creates a Service. pointer may be nil, in which case the active
// profile is not remembered across restarts.
func NewService(store Store, pointer ActivePointer) *Service {
	return &Service{
		store:   store,
		pointer: pointer,
		now:     time.Now,
	}
}

// Register creates a profile with an empty history, persists it and makes
// it active. If only remembering the active profile fails, the profile is
// still returned together with an error matching ErrNotRemembered.
func (s *Service) Register(ctx context.Context, displayName string) (*UserProfile, error) {
	name := strings.TrimSpace(displayName)
	if name == "" {
		return nil, ErrEmptyName
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate profile id: %w", err)
	}

	p := &UserProfile{
		ID:          id.String(),
		DisplayName: name,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.Save(ctx, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}

	s.mu.Lock()
	s.active = p
	s.mu.Unlock()

	if s.pointer != nil {
		if err := s.pointer.SetActiveProfileID(ctx, p.ID); err != nil {
			return p.Clone(), fmt.Errorf("%w: %w", ErrNotRemembered, err)
		}
	}
	return p.Clone(), nil
}

// Resume reloads the remembered active profile. It returns (nil, nil) when
// no profile is remembered or the remembered one no longer exists.
func (s *Service) Resume(ctx context.Context) (*UserProfile, error) {
	if s.pointer == nil {
		return nil, nil
	}

	id, err := s.pointer.ActiveProfileID(ctx)
	if err != nil {
		return nil, fmt.Errorf("read active profile: %w", err)
	}
	if id == "" {
		return nil, nil
	}

	p, err := s.store.Load(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, s.pointer.ClearActiveProfileID(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("load profile %s: %w", id, err)
	}

	s.mu.Lock()
	s.active = p
	s.mu.Unlock()

	return p.Clone(), nil
}

// Logout clears the active profile reference. Persisted data is kept.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.active = nil
	s.mu.Unlock()

	if s.pointer != nil {
		if err := s.pointer.ClearActiveProfileID(ctx); err != nil {
			return fmt.Errorf("clear active profile: %w", err)
		}
	}
	return nil
}

// Active returns a copy of the logged-in profile, or nil.
func (s *Service) Active() *UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active.Clone()
}

// RecordAttempt appends a to the active profile's history and saves it. If
// the save fails the attempt stays in memory and the error is returned.
func (s *Service) RecordAttempt(ctx context.Context, a quiz.Attempt) error {
	s.mu.Lock()
	if s.active == nil {
		s.mu.Unlock()
		return ErrNoActiveProfile
	}
	s.active.History = append(s.active.History, a)
	snapshot := s.active.Clone()
	s.mu.Unlock()

	if err := s.store.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("save profile %s: %w", snapshot.ID, err)
	}
	return nil
}

package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/lectiz/internal/profile"
	"github.com/abhisek/lectiz/internal/quiz"
)

const activeProfileKey = "active_profile"

// ProfileRepo persists profiles and their attempt history. Attempts are
// append-only: Save inserts the ones the database has not seen and never
// rewrites existing rows.
type ProfileRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

var (
	_ profile.Store         = (*ProfileRepo)(nil)
	_ profile.ActivePointer = (*ProfileRepo)(nil)
)

type profileRow struct {
	ID          string    `sql:"id"`
	DisplayName string    `sql:"display_name"`
	CreatedAt   time.Time `sql:"created_at"`
}

type attemptRow struct {
	ID            string    `sql:"id"`
	Timestamp     time.Time `sql:"timestamp"`
	Score         int       `sql:"score"`
	QuestionCount int       `sql:"question_count"`
	Difficulty    string    `sql:"difficulty"`
}

// Load returns the profile with its history ordered oldest first.
func (r *ProfileRepo) Load(ctx context.Context, id string) (*profile.UserProfile, error) {
	b := entsql.Dialect(dialect.SQLite)

	var profiles []profileRow
	sel := b.Select("id", "display_name", "created_at").
		From(b.Table(tableProfiles)).
		Where(entsql.EQ("id", id))
	if err := scanAll(ctx, r.drv, sel, &profiles); err != nil {
		return nil, fmt.Errorf("load profile %s: %w", id, err)
	}
	if len(profiles) == 0 {
		return nil, profile.ErrNotFound
	}

	var attempts []attemptRow
	sel = b.Select("id", "timestamp", "score", "question_count", "difficulty").
		From(b.Table(tableAttempts)).
		Where(entsql.EQ("profile_id", id)).
		OrderBy(entsql.Asc("sequence"))
	if err := scanAll(ctx, r.drv, sel, &attempts); err != nil {
		return nil, fmt.Errorf("load attempts for %s: %w", id, err)
	}

	p := &profile.UserProfile{
		ID:          profiles[0].ID,
		DisplayName: profiles[0].DisplayName,
		CreatedAt:   profiles[0].CreatedAt.UTC(),
	}
	for _, a := range attempts {
		p.History = append(p.History, quiz.Attempt{
			ID:            a.ID,
			Timestamp:     a.Timestamp.UTC(),
			Score:         a.Score,
			QuestionCount: a.QuestionCount,
			Difficulty:    quiz.Difficulty(a.Difficulty),
		})
	}
	return p, nil
}

// Save upserts the profile row and appends any attempts not yet stored.
func (r *ProfileRepo) Save(ctx context.Context, p *profile.UserProfile) error {
	known, err := r.attemptIDs(ctx, p.ID)
	if err != nil {
		return err
	}

	type pending struct {
		attempt quiz.Attempt
		seq     int64
	}
	// Sequence numbers come from a separate connection, so they are
	// allocated before the transaction takes the write lock.
	var fresh []pending
	for _, a := range p.History {
		if known[a.ID] {
			continue
		}
		seq, err := r.seq.Next(ctx)
		if err != nil {
			return err
		}
		fresh = append(fresh, pending{attempt: a, seq: seq})
	}

	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Insert(tableProfiles).
		Columns("id", "display_name", "created_at").
		Values(p.ID, p.DisplayName, p.CreatedAt.UTC()).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues()).
		Query()
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		tx.Rollback()
		return fmt.Errorf("upsert profile %s: %w", p.ID, err)
	}

	for _, f := range fresh {
		a := f.attempt
		query, args := b.Insert(tableAttempts).
			Columns("id", "sequence", "timestamp", "score", "question_count", "difficulty", "profile_id").
			Values(a.ID, f.seq, a.Timestamp.UTC(), a.Score, a.QuestionCount, string(a.Difficulty), p.ID).
			OnConflict(entsql.ConflictColumns("id"), entsql.DoNothing()).
			Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert attempt %s: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit profile %s: %w", p.ID, err)
	}
	return nil
}

func (r *ProfileRepo) attemptIDs(ctx context.Context, profileID string) (map[string]bool, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select("id").
		From(b.Table(tableAttempts)).
		Where(entsql.EQ("profile_id", profileID))

	var ids []string
	if err := scanAll(ctx, r.drv, sel, &ids); err != nil {
		return nil, fmt.Errorf("list attempts for %s: %w", profileID, err)
	}

	known := make(map[string]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}
	return known, nil
}

// ActiveProfileID returns the remembered profile ID, or "" if none.
func (r *ProfileRepo) ActiveProfileID(ctx context.Context) (string, error) {
	b := entsql.Dialect(dialect.SQLite)
	sel := b.Select("value").
		From(b.Table(tableAppState)).
		Where(entsql.EQ("key", activeProfileKey))

	var values []string
	if err := scanAll(ctx, r.drv, sel, &values); err != nil {
		return "", fmt.Errorf("read active profile: %w", err)
	}
	if len(values) == 0 {
		return "", nil
	}
	return values[0], nil
}

func (r *ProfileRepo) SetActiveProfileID(ctx context.Context, id string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableAppState).
		Columns("key", "value").
		Values(activeProfileKey, id).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("set active profile: %w", err)
	}
	return nil
}

func (r *ProfileRepo) ClearActiveProfileID(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(tableAppState).
		Where(entsql.EQ("key", activeProfileKey)).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear active profile: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/lectiz/internal/profile"
	"github.com/abhisek/lectiz/internal/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	// Each test gets its own shared-cache database so pooled connections
	// see the same data without leaking between tests.
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Driver() == nil {
		t.Fatal("expected non-nil driver")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is not checked here.
		{"foreign_keys", "1"},
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestWithConnPragmas(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"lectiz.db", "lectiz.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"},
		{"file:x?mode=memory", "file:x?mode=memory&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"},
		{"x.db?_pragma=journal_mode(WAL)", "x.db?_pragma=journal_mode(WAL)"},
	}
	for _, tt := range tests {
		if got := withConnPragmas(tt.dsn); got != tt.want {
			t.Errorf("withConnPragmas(%q) = %q, want %q", tt.dsn, got, tt.want)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()
	ctx := context.Background()

	sc, err := newSequenceCounter(db)
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{"profiles", "attempts", "llm_request_events", "app_state", "global_sequence"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestReopenIsIdempotent(t *testing.T) {
	path := t.TempDir() + "/lectiz.db"

	s, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s.Close()
}

func testProfile() *profile.UserProfile {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &profile.UserProfile{
		ID:          "p-1",
		DisplayName: "Ana",
		CreatedAt:   base,
		History: []quiz.Attempt{
			{ID: "a-1", Timestamp: base.Add(time.Minute), Score: 1, QuestionCount: 5, Difficulty: quiz.DifficultyMedium},
			{ID: "a-2", Timestamp: base.Add(2 * time.Minute), Score: 5, QuestionCount: 5, Difficulty: quiz.DifficultyEasy},
			{ID: "a-3", Timestamp: base.Add(3 * time.Minute), Score: 3, QuestionCount: 5, Difficulty: quiz.DifficultyHard},
		},
	}
}

func TestProfileRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()

	want := testProfile()
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Load(ctx, want.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.DisplayName != want.DisplayName || !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("profile = %+v, want %+v", got, want)
	}
	if len(got.History) != len(want.History) {
		t.Fatalf("history length = %d, want %d", len(got.History), len(want.History))
	}
	for i := range want.History {
		g, w := got.History[i], want.History[i]
		if g.ID != w.ID || g.Score != w.Score || g.QuestionCount != w.QuestionCount ||
			g.Difficulty != w.Difficulty || !g.Timestamp.Equal(w.Timestamp) {
			t.Errorf("history[%d] = %+v, want %+v", i, g, w)
		}
	}
}

func TestProfileLoadMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.ProfileRepo().Load(context.Background(), "nope")
	if !errors.Is(err, profile.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProfileSaveAppendsOnly(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()

	p := testProfile()
	p.History = p.History[:1]
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("save: %v", err)
	}

	// A later save with an edited first attempt and a new second one keeps
	// the stored first attempt and appends the second.
	p.History = append(p.History, testProfile().History[1])
	p.History[0].Score = 4
	p.DisplayName = "Ana María"
	if err := repo.Save(ctx, p); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := repo.Load(ctx, p.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.DisplayName != "Ana María" {
		t.Errorf("display name = %q, want updated", got.DisplayName)
	}
	if len(got.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(got.History))
	}
	if got.History[0].Score != 1 {
		t.Errorf("stored attempt was rewritten: score = %d", got.History[0].Score)
	}
	if got.History[1].ID != "a-2" {
		t.Errorf("history[1] = %q, want a-2", got.History[1].ID)
	}
}

func TestActivePointer(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()

	id, err := repo.ActiveProfileID(ctx)
	if err != nil || id != "" {
		t.Fatalf("initial active = %q, %v; want empty", id, err)
	}

	for _, want := range []string{"p-1", "p-2"} {
		if err := repo.SetActiveProfileID(ctx, want); err != nil {
			t.Fatalf("set %s: %v", want, err)
		}
		id, err := repo.ActiveProfileID(ctx)
		if err != nil || id != want {
			t.Fatalf("active = %q, %v; want %s", id, err, want)
		}
	}

	if err := repo.ClearActiveProfileID(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	id, err = repo.ActiveProfileID(ctx)
	if err != nil || id != "" {
		t.Fatalf("after clear active = %q, %v; want empty", id, err)
	}
}

func TestServiceOverProfileRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()

	svc := profile.NewService(repo, repo)
	p, err := svc.Register(ctx, "Luis")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	a := quiz.Attempt{ID: "a-1", Timestamp: time.Now().UTC(), Score: 2, QuestionCount: 5, Difficulty: quiz.DifficultyMedium}
	if err := svc.RecordAttempt(ctx, a); err != nil {
		t.Fatalf("record: %v", err)
	}

	// A new service over the same store resumes the profile with history.
	resumed, err := profile.NewService(repo, repo).Resume(ctx)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if resumed == nil || resumed.ID != p.ID {
		t.Fatalf("resumed = %+v, want %s", resumed, p.ID)
	}
	if len(resumed.History) != 1 || resumed.History[0].ID != "a-1" {
		t.Fatalf("resumed history = %+v", resumed.History)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	inputs := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "reading-content", InputTokens: 100, OutputTokens: 400, LatencyMs: 900, Success: true, RequestBody: "req-1", ResponseBody: "resp-1"},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "reading-content", InputTokens: 120, OutputTokens: 0, LatencyMs: 300, Success: false, ErrorMessage: "rate limited"},
		{Provider: "openai", Model: "gpt-4.1-mini", Purpose: "unknown", InputTokens: 10, OutputTokens: 20, LatencyMs: 100, Success: true},
	}
	for _, in := range inputs {
		if err := repo.AppendLLMRequest(ctx, in); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	if events[0].Model != "gpt-4.1-mini" {
		t.Errorf("expected newest first, got %s", events[0].Model)
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Purpose: "reading-content"})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 || limited[0].ErrorMessage != "rate limited" || limited[0].Success {
		t.Fatalf("limited = %+v", limited)
	}

	first := events[2]
	got, err := repo.GetLLMEvent(ctx, first.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.RequestBody != "req-1" || got.ResponseBody != "resp-1" || !got.Success {
		t.Fatalf("get = %+v", got)
	}
	if missing, err := repo.GetLLMEvent(ctx, 9999); err != nil || missing != nil {
		t.Fatalf("get missing = %+v, %v", missing, err)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 || byPurpose[0].Purpose != "reading-content" {
		t.Fatalf("usage by purpose = %+v", byPurpose)
	}
	rc := byPurpose[0]
	if rc.Calls != 2 || rc.InputTokens != 220 || rc.OutputTokens != 400 || rc.AvgLatencyMs != 600 {
		t.Errorf("reading-content usage = %+v", rc)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[1].Model != "gpt-4.1-mini" || byModel[1].Calls != 1 {
		t.Fatalf("usage by model = %+v", byModel)
	}
}

func TestEventsAndAttemptsShareSequence(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Purpose: "reading-content", Success: true}); err != nil {
		t.Fatalf("append: %v", err)
	}
	p := testProfile()
	p.History = p.History[:1]
	if err := s.ProfileRepo().Save(ctx, p); err != nil {
		t.Fatalf("save: %v", err)
	}

	var seq int64
	if err := s.DB().QueryRow("SELECT sequence FROM attempts WHERE id = 'a-1'").Scan(&seq); err != nil {
		t.Fatalf("read attempt sequence: %v", err)
	}
	if seq != 2 {
		t.Errorf("attempt sequence = %d, want 2", seq)
	}
}

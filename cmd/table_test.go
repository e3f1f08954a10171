package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lectiz/internal/quiz"
	"github.com/abhisek/lectiz/internal/store"
)

func TestCostReport(t *testing.T) {
	r, unpriced := costReport([]store.ModelUsage{
		{Model: "gpt-4o", Calls: 3, InputTokens: 1_000_000, OutputTokens: 0},
		{Model: "mystery-model", Calls: 1, InputTokens: 10, OutputTokens: 10},
	})

	require.Len(t, r.rows, 2)
	assert.Equal(t, "$2.50", r.rows[0][4])
	assert.Equal(t, "?", r.rows[1][4])
	assert.Equal(t, []string{"mystery-model"}, unpriced)
	assert.Equal(t, "TOTAL (partial)", r.totals[0])
	assert.Equal(t, "$2.50", r.totals[4])
}

func TestPurposeReportTotals(t *testing.T) {
	r := purposeReport([]store.PurposeUsage{
		{Purpose: "reading-content", Calls: 2, InputTokens: 100, OutputTokens: 50, AvgLatencyMs: 812.4},
		{Purpose: "other", Calls: 1, InputTokens: 10, OutputTokens: 5},
	})

	assert.Equal(t, []string{"reading-content", "2", "100", "50", "150", "812"}, r.rows[0])
	assert.Equal(t, []string{"TOTAL", "3", "110", "55", "165", ""}, r.totals)
}

func TestEventsReportMarksFailures(t *testing.T) {
	r := eventsReport([]store.LLMEvent{
		{ID: 7, Timestamp: time.Now(), Purpose: "reading-content", Model: "a-very-long-model-name-that-keeps-going", Success: false, LatencyMs: 1200},
	})

	require.Len(t, r.rows, 1)
	assert.Equal(t, "7", r.rows[0][0])
	assert.Len(t, r.rows[0][3], 28)
	assert.Equal(t, "1200", r.rows[0][6])
	assert.Equal(t, "✗", r.rows[0][7])
}

func TestHistoryReportNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.Local)
	history := []quiz.Attempt{
		{Timestamp: base, Score: 1, QuestionCount: 4, Difficulty: quiz.DifficultyEasy},
		{Timestamp: base.Add(time.Hour), Score: 3, QuestionCount: 4, Difficulty: quiz.DifficultyMedium},
		{Timestamp: base.Add(2 * time.Hour), Score: 4, QuestionCount: 4, Difficulty: quiz.DifficultyHard},
	}

	r := historyReport(history, 2)
	require.Len(t, r.rows, 2)
	assert.Equal(t, []string{"2026-03-01 12:00:00", "4/4", "100%", "hard"}, r.rows[0])
	assert.Equal(t, "3/4", r.rows[1][1])

	assert.Len(t, historyReport(history, 0).rows, 3)
}

func TestPrintReport(t *testing.T) {
	r := newReport("Name", "Calls").alignRight(1)
	r.add("reading-content", "12")
	r.total("TOTAL", "12")

	var buf bytes.Buffer
	printReport(&buf, r)

	out := buf.String()
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "reading-content")
	assert.Contains(t, out, "TOTAL")
	assert.Len(t, r.rows, 1, "rendering must not fold the totals into the data rows")
}

func TestWriteEvent(t *testing.T) {
	var buf bytes.Buffer
	writeEvent(&buf, &store.LLMEvent{
		ID:           3,
		Provider:     "openai",
		Model:        "gpt-4o",
		Purpose:      "reading-content",
		ErrorMessage: "rate limited",
		RequestBody:  `{"prompt":"hola"}`,
	})

	out := buf.String()
	assert.Contains(t, out, "rate limited")
	assert.Contains(t, out, `{"prompt":"hola"}`)
	assert.Contains(t, out, "(not captured)")
}

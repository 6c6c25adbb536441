package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func ts(t time.Time) *time.Time { return &t }

func TestFormatTimeOpen(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"zero", 0, "0m"},
		{"minutes only", 12 * time.Minute, "12m"},
		{"rounds down within a minute", 59*time.Second + 900*time.Millisecond, "0m"},
		{"ninety minutes", 90 * time.Minute, "1h 30m"},
		{"just under a day", 23*time.Hour + 59*time.Minute, "23h 59m"},
		{"twenty five hours", 25 * time.Hour, "1d 1h"},
		{"multiple days truncates hours", 49*time.Hour + 30*time.Minute, "2d 1h"},
		{"clock skew clamps to zero", -5 * time.Minute, "0m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimeOpen(base, base.Add(tt.elapsed)))
		})
	}
}

func TestFormatResolutionTime(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"forty five minutes", 45 * time.Minute, "45m"},
		{"two hours ten", 2*time.Hour + 10*time.Minute, "2h 10m"},
		{"no day unit past 24h", 26*time.Hour + 5*time.Minute, "26h 5m"},
		{"zero", 0, "0m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatResolutionTime(base, base.Add(tt.elapsed)))
		})
	}
}

func TestLiveTickets(t *testing.T) {
	tickets := []Ticket{
		{ID: "a", Status: TicketStatusOpen, CreatedAt: base},
		{ID: "b", Status: TicketStatusResolved, CreatedAt: base.Add(time.Hour), ResolvedAt: ts(base.Add(2 * time.Hour))},
		{ID: "c", Status: TicketStatusOpen, CreatedAt: base.Add(3 * time.Hour)},
	}

	live := LiveTickets(tickets)

	require.Len(t, live, 2)
	assert.Equal(t, "c", live[0].ID, "newest created first")
	assert.Equal(t, "a", live[1].ID)
}

func TestPastTickets(t *testing.T) {
	tickets := []Ticket{
		{ID: "a", Status: TicketStatusResolved, CreatedAt: base, ResolvedAt: ts(base.Add(4 * time.Hour))},
		{ID: "b", Status: TicketStatusOpen, CreatedAt: base},
		{ID: "c", Status: TicketStatusResolved, CreatedAt: base, ResolvedAt: ts(base.Add(time.Hour))},
		// resolved status without a timestamp must never reach the past list
		{ID: "d", Status: TicketStatusResolved, CreatedAt: base},
	}

	past := PastTickets(tickets)

	require.Len(t, past, 2)
	assert.Equal(t, "a", past[0].ID, "newest resolved first")
	assert.Equal(t, "c", past[1].ID)
}

func TestComputeStats(t *testing.T) {
	tickets := []Ticket{
		{Status: TicketStatusOpen, CreatedAt: base},
		{Status: TicketStatusResolved, CreatedAt: base, ResolvedAt: ts(base.Add(time.Hour))},
		{Status: TicketStatusResolved, CreatedAt: base, ResolvedAt: ts(base.Add(3 * time.Hour))},
	}

	stats := ComputeStats(tickets)

	assert.Equal(t, 3, stats.TotalTickets)
	assert.Equal(t, 1, stats.LiveTickets)
	assert.Equal(t, 2, stats.ResolvedTickets)
	assert.Equal(t, float64(2*time.Hour/time.Millisecond), stats.AvgResponseTimeMs)
	assert.Equal(t, 4.8, stats.CustomerSatisfaction)
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)

	assert.Equal(t, 0, stats.TotalTickets)
	assert.Equal(t, float64(0), stats.AvgResponseTimeMs, "no resolved tickets must not divide by zero")
}

func TestBuildTimeline(t *testing.T) {
	ticket := Ticket{ID: "t1", Name: "Ada", CreatedAt: base}
	notes := []Note{
		{ID: "n2", TicketID: "t1", Content: "second", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "n1", TicketID: "t1", Content: "first", CreatedAt: base.Add(time.Hour)},
	}

	entries := BuildTimeline(ticket, notes)

	require.Len(t, entries, 3)
	assert.Equal(t, TimelineEntryNote, entries[0].Kind)
	assert.Equal(t, "second", entries[0].Content)
	assert.Equal(t, "first", entries[1].Content)

	created := entries[len(entries)-1]
	assert.Equal(t, TimelineEntryCreated, created.Kind)
	assert.Equal(t, "Ada", created.Author)
	assert.Equal(t, base, created.CreatedAt)
}

func TestBuildTimelineNoNotes(t *testing.T) {
	entries := BuildTimeline(Ticket{Name: "Ada", CreatedAt: base}, nil)

	require.Len(t, entries, 1)
	assert.Equal(t, TimelineEntryCreated, entries[0].Kind)
}

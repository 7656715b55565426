package services

import (
	"context"
	"testing"
	"time"

	"main/model"

	"github.com/google/uuid"
)

func newTestCache(t *testing.T) *TrackerCache {
	cache, err := NewTrackerCache("redis://localhost:6379/1", time.Minute)
	if err != nil {
		t.Fatal("redis connection failed", err)
	}
	return cache
}

func TestTrackerCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	userID := uuid.New().String()

	program := &model.TrackedProgram{
		ProgramID:            uuid.New().String(),
		UserID:               userID,
		CustomProgramName:    "MSc AI",
		CustomUniversityName: "TU Delft",
		Status:               model.StatusResearching,
		Priority:             model.PriorityTarget,
	}

	t.Run("MissBeforeSet", func(t *testing.T) {
		if _, ok := cache.GetProgram(ctx, userID, program.ProgramID); ok {
			t.Fatal("expected miss on cold cache")
		}
	})

	t.Run("ProgramRoundTrip", func(t *testing.T) {
		cache.SetProgram(ctx, userID, program)

		got, ok := cache.GetProgram(ctx, userID, program.ProgramID)
		if !ok {
			t.Fatal("expected hit after set")
		}
		if got.CustomProgramName != "MSc AI" {
			t.Fatal("cached program corrupted:", got.CustomProgramName)
		}
	})

	t.Run("ListRoundTrip", func(t *testing.T) {
		cache.SetProgramList(ctx, userID, []*model.TrackedProgram{program})

		list, ok := cache.GetProgramList(ctx, userID)
		if !ok || len(list) != 1 {
			t.Fatal("expected cached list with 1 program")
		}
	})

	t.Run("StatsAndDeadlinesPerWindow", func(t *testing.T) {
		cache.SetStats(ctx, userID, 30, &model.TrackerStats{TotalPrograms: 1})
		cache.SetDeadlines(ctx, userID, 90, []model.DeadlineEntry{})

		if _, ok := cache.GetStats(ctx, userID, 30); !ok {
			t.Fatal("stats should be cached for the 30 day window")
		}
		if _, ok := cache.GetStats(ctx, userID, 60); ok {
			t.Fatal("a different window must not hit")
		}
		if _, ok := cache.GetDeadlines(ctx, userID, 90); !ok {
			t.Fatal("deadlines should be cached for the 90 day window")
		}
	})

	t.Run("InvalidateDropsEverything", func(t *testing.T) {
		cache.Invalidate(ctx, userID, program.ProgramID)

		if _, ok := cache.GetProgram(ctx, userID, program.ProgramID); ok {
			t.Fatal("program survived invalidation")
		}
		if _, ok := cache.GetProgramList(ctx, userID); ok {
			t.Fatal("list survived invalidation")
		}
		if _, ok := cache.GetStats(ctx, userID, 30); ok {
			t.Fatal("stats survived invalidation")
		}
		if _, ok := cache.GetDeadlines(ctx, userID, 90); ok {
			t.Fatal("deadlines survived invalidation")
		}
	})
}

func TestNilCacheIsAlwaysMiss(t *testing.T) {
	var cache *TrackerCache
	ctx := context.Background()

	if _, ok := cache.GetProgramList(ctx, "user"); ok {
		t.Fatal("nil cache must miss")
	}
	if _, ok := cache.GetStats(ctx, "user", 30); ok {
		t.Fatal("nil cache must miss")
	}

	// Writes and invalidation on a nil cache are no-ops, not panics.
	cache.SetProgram(ctx, "user", &model.TrackedProgram{ProgramID: "p"})
	cache.SetProgramList(ctx, "user", nil)
	cache.Invalidate(ctx, "user", "p")
}

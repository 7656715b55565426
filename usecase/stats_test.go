package usecase

import (
	"testing"
	"time"

	"main/model"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("SameInstant", func(t *testing.T) {
		if got := DaysUntil(now, now); got != 0 {
			t.Fatalf("expected 0, got %d", got)
		}
	})

	t.Run("PartialDayRoundsUp", func(t *testing.T) {
		if got := DaysUntil(now, now.Add(6*time.Hour)); got != 1 {
			t.Fatalf("expected 1, got %d", got)
		}
	})

	t.Run("ExactDays", func(t *testing.T) {
		if got := DaysUntil(now, now.Add(72*time.Hour)); got != 3 {
			t.Fatalf("expected 3, got %d", got)
		}
	})

	t.Run("PastDeadlineGoesNegative", func(t *testing.T) {
		if got := DaysUntil(now, now.Add(-36*time.Hour)); got != -1 {
			t.Fatalf("expected -1, got %d", got)
		}
	})
}

func TestDeadlineBucketFor(t *testing.T) {
	cases := []struct {
		days   int
		window int
		want   model.DeadlineBucket
	}{
		{2, 90, model.BucketDanger},
		{7, 90, model.BucketDanger},
		{8, 90, model.BucketWarning},
		{90, 90, model.BucketWarning},
		{91, 90, model.BucketNeutral},
	}

	for _, tc := range cases {
		if got := DeadlineBucketFor(tc.days, tc.window); got != tc.want {
			t.Fatalf("days=%d window=%d: expected %s, got %s", tc.days, tc.window, tc.want, got)
		}
	}
}

func TestUpcomingDeadlines(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	programs := []*model.TrackedProgram{
		{
			ProgramID:   "far",
			ProgramName: "MSc Robotics",
			Status:      model.StatusPreparing,
			Deadline:    datePtr(now.AddDate(0, 0, 40)),
		},
		{
			ProgramID:   "near",
			ProgramName: "MSc AI",
			Status:      model.StatusResearching,
			Deadline:    datePtr(now.AddDate(0, 0, 10)),
		},
		{
			ProgramID: "no-deadline",
			Status:    model.StatusResearching,
		},
		{
			ProgramID: "past",
			Status:    model.StatusPreparing,
			Deadline:  datePtr(now.AddDate(0, 0, -5)),
		},
		{
			ProgramID: "accepted-soon",
			Status:    model.StatusAccepted,
			Deadline:  datePtr(now.AddDate(0, 0, 5)),
		},
	}

	t.Run("WindowFiltersAndSorts", func(t *testing.T) {
		entries := UpcomingDeadlines(programs, now, 30)
		if len(entries) != 2 {
			t.Fatalf("expected 2 entries in 30 day window, got %d", len(entries))
		}
		if entries[0].ProgramID != "accepted-soon" || entries[1].ProgramID != "near" {
			t.Fatalf("expected soonest first, got %s then %s", entries[0].ProgramID, entries[1].ProgramID)
		}

		entries = UpcomingDeadlines(programs, now, 90)
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries in 90 day window, got %d", len(entries))
		}
		if entries[2].ProgramID != "far" {
			t.Fatalf("expected far last, got %s", entries[2].ProgramID)
		}
	})

	t.Run("StatusDoesNotFilter", func(t *testing.T) {
		// Only the deadline decides membership; an accepted program with a
		// deadline inside the window is still listed.
		accepted := []*model.TrackedProgram{{
			ProgramID: "done",
			Status:    model.StatusAccepted,
			Deadline:  datePtr(now.AddDate(0, 0, 10)),
		}}
		entries := UpcomingDeadlines(accepted, now, 30)
		if len(entries) != 1 || entries[0].ProgramID != "done" {
			t.Fatalf("accepted program 10 days out must appear, got %d entries", len(entries))
		}
	})

	t.Run("Buckets", func(t *testing.T) {
		entries := UpcomingDeadlines(programs, now, 90)
		if entries[0].Bucket != model.BucketDanger {
			t.Fatalf("5 days out should be danger, got %s", entries[0].Bucket)
		}
		if entries[1].Bucket != model.BucketWarning {
			t.Fatalf("10 days out should be warning, got %s", entries[1].Bucket)
		}
		if entries[2].Bucket != model.BucketNeutral {
			t.Fatalf("40 days out should be neutral, got %s", entries[2].Bucket)
		}
	})

	t.Run("EmptyListReturnsEmptySlice", func(t *testing.T) {
		entries := UpcomingDeadlines(nil, now, 90)
		if entries == nil || len(entries) != 0 {
			t.Fatalf("expected empty slice, got %v", entries)
		}
	})
}

func TestBuildTrackerStats(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	programs := []*model.TrackedProgram{
		{Status: model.StatusSubmitted, Priority: model.PriorityTarget},
		{Status: model.StatusInterview, Priority: model.PriorityDream},
		{Status: model.StatusAccepted, Priority: model.PrioritySafety},
		{Status: model.StatusWaitlisted, Priority: model.PriorityTarget,
			Deadline: datePtr(now.AddDate(0, 0, 14))},
	}

	stats := BuildTrackerStats(programs, now)

	if stats.TotalPrograms != 4 {
		t.Fatalf("expected 4 programs, got %d", stats.TotalPrograms)
	}
	if stats.PendingCount != 3 {
		t.Fatalf("submitted+interview+waitlisted should be 3, got %d", stats.PendingCount)
	}
	if stats.AcceptedCount != 1 || stats.RejectedCount != 0 {
		t.Fatalf("expected 1 accepted and 0 rejected, got %d/%d", stats.AcceptedCount, stats.RejectedCount)
	}
	if stats.UpcomingDeadlines != 1 {
		t.Fatalf("expected 1 upcoming deadline, got %d", stats.UpcomingDeadlines)
	}

	// Zero counts stay present for every status and priority.
	if len(stats.ByStatus) != len(model.AllStatuses()) {
		t.Fatalf("expected all %d statuses, got %d", len(model.AllStatuses()), len(stats.ByStatus))
	}
	if got, ok := stats.ByStatus[model.StatusWithdrawn]; !ok || got != 0 {
		t.Fatalf("withdrawn should be present at 0, got %d (present=%v)", got, ok)
	}
	if len(stats.ByPriority) != len(model.AllPriorities()) {
		t.Fatalf("expected all %d priorities, got %d", len(model.AllPriorities()), len(stats.ByPriority))
	}
}

func TestDocumentProgressOf(t *testing.T) {
	t.Run("NoPrograms", func(t *testing.T) {
		progress := DocumentProgressOf(nil)
		if progress.Total != 0 || progress.Percent != 0 {
			t.Fatalf("expected zero progress, got %+v", progress)
		}
	})

	t.Run("AcrossPrograms", func(t *testing.T) {
		programs := []*model.TrackedProgram{
			{DocumentChecklist: []model.ChecklistItem{
				{Name: "SOP", Completed: true},
				{Name: "CV", Completed: true},
			}},
			{DocumentChecklist: []model.ChecklistItem{
				{Name: "Transcript"},
				{Name: "Portfolio"},
			}},
		}
		progress := DocumentProgressOf(programs)
		if progress.Completed != 2 || progress.Total != 4 || progress.Percent != 50 {
			t.Fatalf("expected 2/4 at 50%%, got %+v", progress)
		}
	})
}

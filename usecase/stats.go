package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"main/model"
	"main/repository"
	"main/services"
	"main/utils"
)

const (
	// DefaultDeadlineWindowDays is the lookahead for the deadlines view.
	DefaultDeadlineWindowDays = 90
	// StatsDeadlineWindowDays is the lookahead the stats counter uses.
	StatsDeadlineWindowDays = 30
	// deadlineDangerDays is the threshold below which a deadline is urgent.
	deadlineDangerDays = 7
	// deadlineWarnDays is the warning threshold for the deadline list.
	deadlineWarnDays = 30
)

// DaysUntil counts whole days from now to the deadline, rounding partial
// days up so a deadline later today reports 1, not 0. Past deadlines come
// back negative.
func DaysUntil(now time.Time, deadline time.Time) int {
	diff := deadline.Sub(now)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// DeadlineBucketFor classifies a deadline by urgency: danger within a week,
// warning within warnDays, neutral beyond that.
func DeadlineBucketFor(daysUntil, warnDays int) model.DeadlineBucket {
	switch {
	case daysUntil <= deadlineDangerDays:
		return model.BucketDanger
	case daysUntil <= warnDays:
		return model.BucketWarning
	default:
		return model.BucketNeutral
	}
}

// UpcomingDeadlines filters programs to those with a deadline inside the
// next windowDays days (past deadlines excluded) and returns them soonest
// first. Status does not matter here; a decided program's deadline still
// shows until it passes.
func UpcomingDeadlines(programs []*model.TrackedProgram, now time.Time, windowDays int) []model.DeadlineEntry {
	entries := []model.DeadlineEntry{}
	for _, p := range programs {
		if p.Deadline == nil {
			continue
		}
		days := DaysUntil(now, *p.Deadline)
		if days < 0 || days > windowDays {
			continue
		}
		entries = append(entries, model.DeadlineEntry{
			ProgramID:      p.ProgramID,
			ProgramName:    p.DisplayProgramName(),
			UniversityName: p.DisplayUniversityName(),
			Deadline:       *p.Deadline,
			DaysUntil:      days,
			Bucket:         DeadlineBucketFor(days, deadlineWarnDays),
			Status:         p.Status,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Deadline.Before(entries[j].Deadline)
	})
	return entries
}

// StatusCounts tallies programs per status, with every status present in
// the result even at zero. Dashboard tiles render all of them.
func StatusCounts(programs []*model.TrackedProgram) map[model.ApplicationStatus]int {
	counts := make(map[model.ApplicationStatus]int, len(model.AllStatuses()))
	for _, s := range model.AllStatuses() {
		counts[s] = 0
	}
	for _, p := range programs {
		counts[p.Status]++
	}
	return counts
}

func PriorityCounts(programs []*model.TrackedProgram) map[model.Priority]int {
	counts := make(map[model.Priority]int, len(model.AllPriorities()))
	for _, pr := range model.AllPriorities() {
		counts[pr] = 0
	}
	for _, p := range programs {
		counts[p.Priority]++
	}
	return counts
}

// DocumentProgressOf aggregates checklist completion across all programs.
func DocumentProgressOf(programs []*model.TrackedProgram) model.DocumentProgress {
	var all []model.ChecklistItem
	for _, p := range programs {
		all = append(all, p.DocumentChecklist...)
	}
	return ChecklistProgress(all)
}

// BuildTrackerStats computes the dashboard summary from a full program
// list. Pure; the caller supplies the clock.
func BuildTrackerStats(programs []*model.TrackedProgram, now time.Time) *model.TrackerStats {
	return buildTrackerStatsWindow(programs, now, StatsDeadlineWindowDays)
}

func buildTrackerStatsWindow(programs []*model.TrackedProgram, now time.Time, windowDays int) *model.TrackerStats {
	byStatus := StatusCounts(programs)
	return &model.TrackerStats{
		TotalPrograms: len(programs),
		ByStatus:      byStatus,
		ByPriority:    PriorityCounts(programs),
		AcceptedCount: byStatus[model.StatusAccepted],
		RejectedCount: byStatus[model.StatusRejected],
		PendingCount: byStatus[model.StatusSubmitted] +
			byStatus[model.StatusInterview] +
			byStatus[model.StatusWaitlisted],
		UpcomingDeadlines: len(UpcomingDeadlines(programs, now, windowDays)),
		DocumentProgress:  DocumentProgressOf(programs),
	}
}

type StatsService struct {
	ProgramsRepo *repository.ProgramsRepo
	Cache        *services.TrackerCache
}

func NewStatsService(programsRepo *repository.ProgramsRepo, cache *services.TrackerCache) *StatsService {
	return &StatsService{ProgramsRepo: programsRepo, Cache: cache}
}

// GetStats computes the dashboard summary. windowDays controls the
// upcoming-deadlines counter only; pass StatsDeadlineWindowDays for the
// default view.
func (s *StatsService) GetStats(ctx context.Context, userID string, windowDays int) (*model.TrackerStats, error) {
	if windowDays < 1 || windowDays > 365 {
		return nil, fmt.Errorf("%w: days must be between 1 and 365", model.ErrValidation)
	}

	if cached, ok := s.Cache.GetStats(ctx, userID, windowDays); ok {
		return cached, nil
	}

	programs, err := s.ProgramsRepo.GetUserPrograms(ctx, userID, "", "")
	if err != nil {
		return nil, err
	}

	stats := buildTrackerStatsWindow(programs, time.Now().UTC(), windowDays)
	s.Cache.SetStats(ctx, userID, windowDays, stats)

	utils.TrackTrackerOperation("get_stats")
	return stats, nil
}

// GetDeadlines returns the upcoming-deadline list for the given window.
// Windows outside 1..365 are rejected rather than clamped.
func (s *StatsService) GetDeadlines(ctx context.Context, userID string, windowDays int) ([]model.DeadlineEntry, error) {
	if windowDays < 1 || windowDays > 365 {
		return nil, fmt.Errorf("%w: days must be between 1 and 365", model.ErrValidation)
	}

	if cached, ok := s.Cache.GetDeadlines(ctx, userID, windowDays); ok {
		return cached, nil
	}

	programs, err := s.ProgramsRepo.GetUserPrograms(ctx, userID, "", "")
	if err != nil {
		return nil, err
	}

	entries := UpcomingDeadlines(programs, time.Now().UTC(), windowDays)
	s.Cache.SetDeadlines(ctx, userID, windowDays, entries)

	utils.TrackTrackerOperation("get_deadlines")
	return entries, nil
}

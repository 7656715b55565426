package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"main/model"
	"main/utils"

	"github.com/redis/go-redis/v9"
)

// TrackerCache is a read-through cache in front of the dashboard reads:
// the program list, single programs, the deadline view and the stats view.
// Every successful mutation invalidates all four families for the user,
// because any mutation can change at least one of them. Nothing is written
// optimistically; entries only ever come from fresh backend reads, so a
// failed mutation leaves the cache exactly as it was.
//
// A nil *TrackerCache is valid and behaves as a permanent miss, which is
// what tests and redis-less deployments get.
type TrackerCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewTrackerCache(redisURL string, ttl time.Duration) (*TrackerCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &TrackerCache{client: client, ttl: ttl}, nil
}

func listKey(userID string) string {
	return fmt.Sprintf("tracker:list:%s", userID)
}

func programKey(userID, programID string) string {
	return fmt.Sprintf("tracker:program:%s:%s", userID, programID)
}

func statsKey(userID string, days int) string {
	return fmt.Sprintf("tracker:stats:%s:%d", userID, days)
}

func deadlinesKey(userID string, days int) string {
	return fmt.Sprintf("tracker:deadlines:%s:%d", userID, days)
}

func (tc *TrackerCache) get(ctx context.Context, key, family string, dest interface{}) (bool, error) {
	if tc == nil {
		return false, nil
	}

	data, err := tc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		utils.TrackCacheResult(family, "miss")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache key %s: %v", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache entry: %v", err)
	}
	utils.TrackCacheResult(family, "hit")
	return true, nil
}

func (tc *TrackerCache) set(ctx context.Context, key string, value interface{}) error {
	if tc == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %v", err)
	}
	return tc.client.Set(ctx, key, data, tc.ttl).Err()
}

func (tc *TrackerCache) GetProgramList(ctx context.Context, userID string) ([]*model.TrackedProgram, bool) {
	var programs []*model.TrackedProgram
	hit, err := tc.get(ctx, listKey(userID), "list", &programs)
	if err != nil {
		log.Printf("cache read failed: %v", err)
		return nil, false
	}
	return programs, hit
}

func (tc *TrackerCache) SetProgramList(ctx context.Context, userID string, programs []*model.TrackedProgram) {
	if err := tc.set(ctx, listKey(userID), programs); err != nil {
		log.Printf("cache write failed: %v", err)
	}
}

func (tc *TrackerCache) GetProgram(ctx context.Context, userID, programID string) (*model.TrackedProgram, bool) {
	var program model.TrackedProgram
	hit, err := tc.get(ctx, programKey(userID, programID), "program", &program)
	if err != nil {
		log.Printf("cache read failed: %v", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	return &program, true
}

func (tc *TrackerCache) SetProgram(ctx context.Context, userID string, program *model.TrackedProgram) {
	if program == nil {
		return
	}
	if err := tc.set(ctx, programKey(userID, program.ProgramID), program); err != nil {
		log.Printf("cache write failed: %v", err)
	}
}

func (tc *TrackerCache) GetStats(ctx context.Context, userID string, days int) (*model.TrackerStats, bool) {
	var stats model.TrackerStats
	hit, err := tc.get(ctx, statsKey(userID, days), "stats", &stats)
	if err != nil {
		log.Printf("cache read failed: %v", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	return &stats, true
}

func (tc *TrackerCache) SetStats(ctx context.Context, userID string, days int, stats *model.TrackerStats) {
	if err := tc.set(ctx, statsKey(userID, days), stats); err != nil {
		log.Printf("cache write failed: %v", err)
	}
}

func (tc *TrackerCache) GetDeadlines(ctx context.Context, userID string, days int) ([]model.DeadlineEntry, bool) {
	var entries []model.DeadlineEntry
	hit, err := tc.get(ctx, deadlinesKey(userID, days), "deadlines", &entries)
	if err != nil {
		log.Printf("cache read failed: %v", err)
		return nil, false
	}
	return entries, hit
}

func (tc *TrackerCache) SetDeadlines(ctx context.Context, userID string, days int, entries []model.DeadlineEntry) {
	if err := tc.set(ctx, deadlinesKey(userID, days), entries); err != nil {
		log.Printf("cache write failed: %v", err)
	}
}

// Invalidate drops every cached view that a mutation on the given program
// can have changed: the list, the program itself, and all stats/deadline
// windows. The four always go together.
func (tc *TrackerCache) Invalidate(ctx context.Context, userID, programID string) {
	if tc == nil {
		return
	}

	keys := []string{listKey(userID)}
	if programID != "" {
		keys = append(keys, programKey(userID, programID))
	}
	if err := tc.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("cache invalidation failed: %v", err)
	}

	// Stats and deadlines are keyed per window; sweep both prefixes.
	for _, pattern := range []string{
		fmt.Sprintf("tracker:stats:%s:*", userID),
		fmt.Sprintf("tracker:deadlines:%s:*", userID),
	} {
		iter := tc.client.Scan(ctx, 0, pattern, 100).Iterator()
		for iter.Next(ctx) {
			if err := tc.client.Del(ctx, iter.Val()).Err(); err != nil {
				log.Printf("cache invalidation failed: %v", err)
			}
		}
		if err := iter.Err(); err != nil {
			log.Printf("cache scan failed: %v", err)
		}
	}
}

package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"levelminds/internal/domain/job"
	"levelminds/internal/infrastructure/cache"
)

// MatchedJobsCache stores computed job lists per (student, matching mode).
// Every method is a no-op on a nil receiver or without a backing cache.
type MatchedJobsCache struct {
	store  Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewMatchedJobsCache(store Cache, ttl time.Duration, logger *zap.Logger) *MatchedJobsCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchedJobsCache{store: store, ttl: ttl, logger: logger}
}

func (c *MatchedJobsCache) disabled() bool {
	return c == nil || c.store == nil
}

func (c *MatchedJobsCache) Get(ctx context.Context, studentID int64, enabled bool) ([]job.Job, bool) {
	if c.disabled() {
		return nil, false
	}
	var out []job.Job
	hit, err := c.store.GetJSON(ctx, cache.MatchedJobsKey(studentID, enabled), &out)
	if err != nil {
		c.logger.Debug("matched jobs cache read failed", zap.Error(err))
		return nil, false
	}
	return out, hit
}

func (c *MatchedJobsCache) Set(ctx context.Context, studentID int64, enabled bool, jobs []job.Job) {
	if c.disabled() {
		return
	}
	if err := c.store.SetJSON(ctx, cache.MatchedJobsKey(studentID, enabled), jobs, c.ttl); err != nil {
		c.logger.Debug("matched jobs cache write failed", zap.Error(err))
	}
}

func (c *MatchedJobsCache) InvalidateStudent(ctx context.Context, studentID int64) {
	if c.disabled() {
		return
	}
	if err := c.store.DeleteByPattern(ctx, cache.MatchedJobsStudentPattern(studentID)); err != nil {
		c.logger.Warn("matched jobs cache invalidation failed", zap.Int64("student_id", studentID), zap.Error(err))
	}
}

// InvalidateAll drops every student's list; used when jobs, links or the matching flag change.
func (c *MatchedJobsCache) InvalidateAll(ctx context.Context) {
	if c.disabled() {
		return
	}
	if err := c.store.DeleteByPattern(ctx, cache.MatchedJobsPattern()); err != nil {
		c.logger.Warn("matched jobs cache invalidation failed", zap.Error(err))
	}
}

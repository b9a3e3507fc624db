package usecase

import (
	"context"

	"go.uber.org/zap"

	"levelminds/internal/repository"
)

type SettingsUsecase interface {
	JobMatchingEnabled(ctx context.Context) (bool, error)
	SetJobMatching(ctx context.Context, enabled bool) (bool, error)
}

type Settings struct {
	repo            repository.SettingRepository
	defaultMatching bool
	matched         *MatchedJobsCache
	logger          *zap.Logger
}

func NewSettingsUsecase(repo repository.SettingRepository, defaultMatching bool, matched *MatchedJobsCache, logger *zap.Logger) *Settings {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Settings{repo: repo, defaultMatching: defaultMatching, matched: matched, logger: logger}
}

// JobMatchingEnabled returns the stored flag, or the configured default when unset.
func (s *Settings) JobMatchingEnabled(ctx context.Context) (bool, error) {
	v, ok, err := s.repo.GetBool(ctx, repository.SettingJobMatchingEnabled)
	if err != nil {
		s.logger.Error("read job matching setting", zap.Error(err))
		return false, ErrInternal
	}
	if !ok {
		return s.defaultMatching, nil
	}
	return v, nil
}

func (s *Settings) SetJobMatching(ctx context.Context, enabled bool) (bool, error) {
	if err := s.repo.SetBool(ctx, repository.SettingJobMatchingEnabled, enabled); err != nil {
		s.logger.Error("store job matching setting", zap.Error(err))
		return false, ErrInternal
	}
	s.matched.InvalidateAll(ctx)
	s.logger.Info("job matching setting changed", zap.Bool("enabled", enabled))
	return enabled, nil
}

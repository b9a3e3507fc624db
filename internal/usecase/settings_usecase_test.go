package usecase

import (
	"context"
	"testing"

	"levelminds/internal/repository"
)

func TestSettings_DefaultsWhenUnset(t *testing.T) {
	for _, def := range []bool{true, false} {
		s := NewSettingsUsecase(&fakeSettings{}, def, nil, nil)
		got, err := s.JobMatchingEnabled(context.Background())
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if got != def {
			t.Fatalf("expected default %v, got %v", def, got)
		}
	}
}

func TestSettings_SetJobMatchingInvalidatesMatchedLists(t *testing.T) {
	cache := newFakeCache()
	cache.data["jobs:matched:1:true"] = []byte("[]")
	cache.data["master:subjects"] = []byte("[]")
	repo := &fakeSettings{}
	s := NewSettingsUsecase(repo, true, NewMatchedJobsCache(cache, 0, nil), nil)

	if _, err := s.SetJobMatching(context.Background(), false); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.values[repository.SettingJobMatchingEnabled] {
		t.Fatalf("expected stored flag to be false")
	}
	got, _ := s.JobMatchingEnabled(context.Background())
	if got {
		t.Fatalf("expected stored value to override the default")
	}
	if _, ok := cache.data["jobs:matched:1:true"]; ok {
		t.Fatalf("expected matched lists to be dropped")
	}
	if _, ok := cache.data["master:subjects"]; !ok {
		t.Fatalf("expected unrelated keys to survive")
	}
}

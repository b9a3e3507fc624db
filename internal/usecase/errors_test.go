package usecase

import (
	"errors"
	"fmt"
	"testing"
)

func TestReasonError_MatchesKindAndReason(t *testing.T) {
	err := fmt.Errorf("submit: %w", ErrUnknownSubSkill.WithDetail("sub_skill_id", int64(9)))

	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected kind ErrInvalidInput")
	}
	if !errors.Is(err, ErrUnknownSubSkill) {
		t.Fatalf("expected reason match")
	}
	if errors.Is(err, ErrScoreOutOfRange) {
		t.Fatalf("unexpected match with another reason of the same kind")
	}
	if Kind(err) != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput kind, got %v", Kind(err))
	}
}

func TestReasonError_WithDetailCopies(t *testing.T) {
	a := ErrScoreOutOfRange.WithDetail("score", 11)
	if len(ErrScoreOutOfRange.Detail) != 0 {
		t.Fatalf("expected base error untouched")
	}
	b := a.WithDetail("sub_skill_id", 3)
	if len(a.Detail) != 1 || len(b.Detail) != 2 {
		t.Fatalf("expected independent detail maps, got %v and %v", a.Detail, b.Detail)
	}
}

func TestKind_Internal(t *testing.T) {
	if Kind(errors.New("boom")) != ErrInternal {
		t.Fatalf("expected ErrInternal")
	}
}

package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"levelminds/internal/domain/assessment"
	"levelminds/internal/domain/user"
	"levelminds/internal/metrics"
	"levelminds/internal/repository"
)

type SubmitAssessmentInput struct {
	AssessmentSkillID int64
	Scores            []assessment.SubScore
}

type AssessmentUsecase interface {
	Submit(ctx context.Context, studentUserID uuid.UUID, in SubmitAssessmentInput) (assessment.Assessment, error)
	ListForStudent(ctx context.Context, studentUserID uuid.UUID) ([]assessment.Summary, error)
	ListForExport(ctx context.Context) ([]assessment.ExportRow, error)
}

type StudentLookup interface {
	GetStudentByUserID(ctx context.Context, userID uuid.UUID) (user.StudentProfile, error)
}

type RubricLookup interface {
	GetSkillWithSubSkills(ctx context.Context, id int64) (assessment.Skill, error)
}

type Assessment struct {
	students    StudentLookup
	rubrics     RubricLookup
	assessments repository.AssessmentRepository
	matched     *MatchedJobsCache
	notifier    Notifier
	logger      *zap.Logger
}

func NewAssessmentUsecase(
	students StudentLookup,
	rubrics RubricLookup,
	assessments repository.AssessmentRepository,
	matched *MatchedJobsCache,
	notifier Notifier,
	logger *zap.Logger,
) *Assessment {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assessment{
		students:    students,
		rubrics:     rubrics,
		assessments: assessments,
		matched:     matched,
		notifier:    notifierOrNop(notifier),
		logger:      logger,
	}
}

// Submit validates a complete rubric scoring and stores it with its sub-scores atomically.
func (u *Assessment) Submit(ctx context.Context, studentUserID uuid.UUID, in SubmitAssessmentInput) (assessment.Assessment, error) {
	student, err := u.students.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		if errors.Is(err, user.ErrProfileNotFound) || errors.Is(err, user.ErrNotFound) {
			return assessment.Assessment{}, ErrStudentProfileNotFound
		}
		u.logger.Error("load student profile", zap.Error(err))
		return assessment.Assessment{}, ErrInternal
	}

	skill, err := u.rubrics.GetSkillWithSubSkills(ctx, in.AssessmentSkillID)
	if err != nil {
		if errors.Is(err, repository.ErrAssessmentSkillNotFound) {
			return assessment.Assessment{}, ErrAssessmentSkillNotFound
		}
		u.logger.Error("load assessment skill", zap.Int64("skill_id", in.AssessmentSkillID), zap.Error(err))
		return assessment.Assessment{}, ErrInternal
	}

	total, err := assessment.ValidateScores(skill, in.Scores)
	if err != nil {
		return assessment.Assessment{}, rubricError(err)
	}

	exists, err := u.assessments.Exists(ctx, student.ID, skill.ID)
	if err != nil {
		u.logger.Error("check existing assessment", zap.Error(err))
		return assessment.Assessment{}, ErrInternal
	}
	if exists {
		return assessment.Assessment{}, ErrAlreadyAssessed
	}

	created, err := u.assessments.Create(ctx, assessment.Assessment{
		StudentID:         student.ID,
		AssessmentSkillID: skill.ID,
		TotalScore:        total,
		Scores:            in.Scores,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAssessmentExists):
			return assessment.Assessment{}, ErrAlreadyAssessed
		case errors.Is(err, repository.ErrSubSkillNotFound):
			return assessment.Assessment{}, ErrUnknownSubSkill
		case errors.Is(err, repository.ErrAssessmentSkillNotFound):
			return assessment.Assessment{}, ErrAssessmentSkillNotFound
		}
		u.logger.Error("store assessment", zap.Int64("student_id", student.ID), zap.Int64("skill_id", skill.ID), zap.Error(err))
		return assessment.Assessment{}, ErrInternal
	}

	metrics.AssessmentsSubmitted.Inc()
	u.matched.InvalidateStudent(ctx, student.ID)
	u.notifier.Notify(ctx, studentUserID,
		fmt.Sprintf("Your %s assessment is ready: %d/%d", skill.Name, total, assessment.MaxTotalScore),
		"/student/profile",
	)

	return created, nil
}

func rubricError(err error) error {
	var re *assessment.RubricError
	if !errors.As(err, &re) {
		return ErrInternal
	}

	var out *ReasonError
	switch {
	case errors.Is(err, assessment.ErrUnknownSubSkill):
		out = ErrUnknownSubSkill
	case errors.Is(err, assessment.ErrScoreOutOfRange):
		out = ErrScoreOutOfRange
	case errors.Is(err, assessment.ErrIncompleteRubric):
		return ErrIncompleteRubric
	default:
		return ErrInternal
	}
	return out.WithDetail("sub_skill_id", re.SubSkillID).WithDetail("score", re.Score)
}

func (u *Assessment) ListForStudent(ctx context.Context, studentUserID uuid.UUID) ([]assessment.Summary, error) {
	student, err := u.students.GetStudentByUserID(ctx, studentUserID)
	if err != nil {
		if errors.Is(err, user.ErrProfileNotFound) || errors.Is(err, user.ErrNotFound) {
			return nil, ErrStudentProfileNotFound
		}
		return nil, ErrInternal
	}

	out, err := u.assessments.ListSummariesByStudent(ctx, student.ID)
	if err != nil {
		u.logger.Error("list assessments", zap.Int64("student_id", student.ID), zap.Error(err))
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Assessment) ListForExport(ctx context.Context) ([]assessment.ExportRow, error) {
	rows, err := u.assessments.ListForExport(ctx)
	if err != nil {
		u.logger.Error("list assessments for export", zap.Error(err))
		return nil, ErrInternal
	}
	return rows, nil
}

package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"levelminds/internal/domain/assessment"
	"levelminds/internal/repository"
)

type SkillInput struct {
	CategoryID  int64
	Name        string
	Description string
}

// AssessmentCatalogUsecase manages rubric definitions: categories, skills and their
// four sub-skills.
type AssessmentCatalogUsecase interface {
	ListCategories(ctx context.Context) ([]assessment.Category, error)
	CreateCategory(ctx context.Context, name string) (assessment.Category, error)
	UpdateCategory(ctx context.Context, id int64, name string) (assessment.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	ListSkills(ctx context.Context, categoryID int64) ([]assessment.Skill, error)
	GetSkill(ctx context.Context, id int64) (assessment.Skill, error)
	CreateSkill(ctx context.Context, in SkillInput) (assessment.Skill, error)
	UpdateSkill(ctx context.Context, id int64, in SkillInput) (assessment.Skill, error)
	DeleteSkill(ctx context.Context, id int64) error

	ListSubSkills(ctx context.Context, skillID int64) ([]assessment.SubSkill, error)
	CreateSubSkill(ctx context.Context, skillID int64, name string) (assessment.SubSkill, error)
	UpdateSubSkill(ctx context.Context, id int64, name string) (assessment.SubSkill, error)
	DeleteSubSkill(ctx context.Context, id int64) error
}

type AssessmentCatalog struct {
	repo    repository.AssessmentSkillRepository
	matched *MatchedJobsCache
	logger  *zap.Logger
}

func NewAssessmentCatalogUsecase(repo repository.AssessmentSkillRepository, matched *MatchedJobsCache, logger *zap.Logger) *AssessmentCatalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentCatalog{repo: repo, matched: matched, logger: logger}
}

func (u *AssessmentCatalog) mapErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrCategoryNotFound):
		return ErrCategoryNotFound
	case errors.Is(err, repository.ErrAssessmentSkillNotFound):
		return ErrAssessmentSkillNotFound
	case errors.Is(err, repository.ErrSubSkillNotFound):
		return ErrSubSkillNotFound
	case errors.Is(err, repository.ErrRubricFull):
		return ErrRubricFull
	case repository.IsUniqueViolation(err):
		return ErrDuplicateName
	case repository.IsForeignKeyViolation(err):
		return ErrInUse
	}
	u.logger.Error("assessment catalog", zap.Error(err))
	return ErrInternal
}

func (u *AssessmentCatalog) ListCategories(ctx context.Context) ([]assessment.Category, error) {
	out, err := u.repo.ListCategories(ctx)
	if err != nil {
		return nil, u.mapErr(err)
	}
	return out, nil
}

func (u *AssessmentCatalog) CreateCategory(ctx context.Context, name string) (assessment.Category, error) {
	name, err := cleanName(name)
	if err != nil {
		return assessment.Category{}, err
	}
	c, err := u.repo.CreateCategory(ctx, name)
	if err != nil {
		return assessment.Category{}, u.mapErr(err)
	}
	return c, nil
}

func (u *AssessmentCatalog) UpdateCategory(ctx context.Context, id int64, name string) (assessment.Category, error) {
	name, err := cleanName(name)
	if err != nil {
		return assessment.Category{}, err
	}
	c, err := u.repo.UpdateCategory(ctx, id, name)
	if err != nil {
		return assessment.Category{}, u.mapErr(err)
	}
	return c, nil
}

// DeleteCategory is refused while skills still reference the category.
func (u *AssessmentCatalog) DeleteCategory(ctx context.Context, id int64) error {
	if err := u.repo.DeleteCategory(ctx, id); err != nil {
		return u.mapErr(err)
	}
	return nil
}

func (u *AssessmentCatalog) ListSkills(ctx context.Context, categoryID int64) ([]assessment.Skill, error) {
	out, err := u.repo.ListSkills(ctx, repository.SkillFilter{CategoryID: categoryID})
	if err != nil {
		return nil, u.mapErr(err)
	}
	return out, nil
}

func (u *AssessmentCatalog) GetSkill(ctx context.Context, id int64) (assessment.Skill, error) {
	s, err := u.repo.GetSkillWithSubSkills(ctx, id)
	if err != nil {
		return assessment.Skill{}, u.mapErr(err)
	}
	return s, nil
}

func (u *AssessmentCatalog) CreateSkill(ctx context.Context, in SkillInput) (assessment.Skill, error) {
	s, err := skillFromInput(in)
	if err != nil {
		return assessment.Skill{}, err
	}
	created, err := u.repo.CreateSkill(ctx, s)
	if err != nil {
		return assessment.Skill{}, u.mapErr(err)
	}
	return created, nil
}

func (u *AssessmentCatalog) UpdateSkill(ctx context.Context, id int64, in SkillInput) (assessment.Skill, error) {
	s, err := skillFromInput(in)
	if err != nil {
		return assessment.Skill{}, err
	}
	s.ID = id
	updated, err := u.repo.UpdateSkill(ctx, s)
	if err != nil {
		return assessment.Skill{}, u.mapErr(err)
	}
	return updated, nil
}

// DeleteSkill cascades to sub-skills, job-type links and recorded assessments.
func (u *AssessmentCatalog) DeleteSkill(ctx context.Context, id int64) error {
	if err := u.repo.DeleteSkill(ctx, id); err != nil {
		return u.mapErr(err)
	}
	u.matched.InvalidateAll(ctx)
	return nil
}

func (u *AssessmentCatalog) ListSubSkills(ctx context.Context, skillID int64) ([]assessment.SubSkill, error) {
	if _, err := u.repo.GetSkillWithSubSkills(ctx, skillID); err != nil {
		return nil, u.mapErr(err)
	}
	out, err := u.repo.ListSubSkills(ctx, skillID)
	if err != nil {
		return nil, u.mapErr(err)
	}
	return out, nil
}

func (u *AssessmentCatalog) CreateSubSkill(ctx context.Context, skillID int64, name string) (assessment.SubSkill, error) {
	name, err := cleanName(name)
	if err != nil {
		return assessment.SubSkill{}, err
	}
	ss, err := u.repo.CreateSubSkill(ctx, skillID, name)
	if err != nil {
		return assessment.SubSkill{}, u.mapErr(err)
	}
	return ss, nil
}

func (u *AssessmentCatalog) UpdateSubSkill(ctx context.Context, id int64, name string) (assessment.SubSkill, error) {
	name, err := cleanName(name)
	if err != nil {
		return assessment.SubSkill{}, err
	}
	ss, err := u.repo.UpdateSubSkill(ctx, id, name)
	if err != nil {
		return assessment.SubSkill{}, u.mapErr(err)
	}
	return ss, nil
}

// DeleteSubSkill is refused once a recorded score references the sub-skill.
func (u *AssessmentCatalog) DeleteSubSkill(ctx context.Context, id int64) error {
	if err := u.repo.DeleteSubSkill(ctx, id); err != nil {
		return u.mapErr(err)
	}
	return nil
}

func skillFromInput(in SkillInput) (assessment.Skill, error) {
	name, err := cleanName(in.Name)
	if err != nil {
		return assessment.Skill{}, err
	}
	if in.CategoryID <= 0 {
		return assessment.Skill{}, invalid("category_id is required")
	}
	return assessment.Skill{
		CategoryID:  in.CategoryID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
	}, nil
}

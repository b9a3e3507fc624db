package usecase

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a usecase either is one of these or wraps one.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal error")
)

// ReasonError refines a kind with a machine-readable reason.
// errors.Is matches either the kind or another ReasonError with the same reason.
type ReasonError struct {
	kind   error
	Reason string
	Msg    string
	Detail map[string]any
}

func newReason(kind error, reason, msg string) *ReasonError {
	return &ReasonError{kind: kind, Reason: reason, Msg: msg}
}

func (e *ReasonError) Error() string {
	if len(e.Detail) == 0 {
		return e.Msg
	}
	return fmt.Sprintf("%s %v", e.Msg, e.Detail)
}

func (e *ReasonError) Unwrap() error { return e.kind }

func (e *ReasonError) Is(target error) bool {
	t, ok := target.(*ReasonError)
	return ok && t.Reason == e.Reason
}

// WithDetail returns a copy carrying one extra detail field.
func (e *ReasonError) WithDetail(key string, value any) *ReasonError {
	cp := *e
	cp.Detail = make(map[string]any, len(e.Detail)+1)
	for k, v := range e.Detail {
		cp.Detail[k] = v
	}
	cp.Detail[key] = value
	return &cp
}

// Kind reports which of the error kinds err belongs to, ErrInternal when none.
func Kind(err error) error {
	for _, k := range []error{ErrNotFound, ErrInvalidInput, ErrConflict, ErrForbidden} {
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrInternal
}

var (
	ErrUserNotFound           = newReason(ErrNotFound, "user_not_found", "user not found")
	ErrStudentProfileNotFound = newReason(ErrNotFound, "student_profile_not_found", "student profile not found")
	ErrSchoolProfileNotFound  = newReason(ErrNotFound, "school_profile_not_found", "school profile not found")
	ErrEmailTaken             = newReason(ErrConflict, "email_taken", "email already in use")

	ErrCategoryNotFound        = newReason(ErrNotFound, "assessment_category_not_found", "assessment skill category not found")
	ErrAssessmentSkillNotFound = newReason(ErrNotFound, "assessment_skill_not_found", "assessment skill not found")
	ErrSubSkillNotFound        = newReason(ErrNotFound, "sub_skill_not_found", "assessment sub-skill not found")
	ErrRubricFull              = newReason(ErrConflict, "rubric_full", "assessment skill already has four sub-skills")
	ErrUnknownSubSkill         = newReason(ErrInvalidInput, "unknown_sub_skill", "sub-skill does not belong to this assessment skill")
	ErrScoreOutOfRange         = newReason(ErrInvalidInput, "score_out_of_range", "sub-skill score must be between 0 and 10")
	ErrIncompleteRubric        = newReason(ErrInvalidInput, "incomplete_or_duplicate_rubric", "exactly four distinct sub-skill scores are required")
	ErrAlreadyAssessed         = newReason(ErrConflict, "already_assessed", "student already assessed for this skill")

	ErrJobTypeNotFound = newReason(ErrNotFound, "job_type_not_found", "job type not found")
	ErrSubjectNotFound = newReason(ErrNotFound, "subject_not_found", "subject not found")
	ErrStateNotFound   = newReason(ErrNotFound, "state_not_found", "state not found")
	ErrCityNotFound    = newReason(ErrNotFound, "city_not_found", "city not found")
	ErrDuplicateName   = newReason(ErrConflict, "duplicate_name", "a record with this name already exists")
	ErrInUse           = newReason(ErrConflict, "in_use", "record is still referenced")

	ErrJobNotFound     = newReason(ErrNotFound, "job_not_found", "job not found")
	ErrNotJobOwner     = newReason(ErrForbidden, "not_job_owner", "job belongs to another school")
	ErrJobNotAccepting = newReason(ErrInvalidInput, "job_not_accepting_applications", "job is closed or past its deadline")
	ErrAlreadyApplied  = newReason(ErrConflict, "already_applied", "already applied to this job")

	ErrApplicationNotFound       = newReason(ErrNotFound, "application_not_found", "application not found")
	ErrInvalidStatus             = newReason(ErrInvalidInput, "invalid_status", "unknown application status")
	ErrInvalidTransition         = newReason(ErrInvalidInput, "invalid_status_transition", "status transition not allowed")
	ErrScheduleViaStatus         = newReason(ErrInvalidInput, "schedule_via_interview", "use schedule-interview to move an application to interview_scheduled")
	ErrInvalidSlot               = newReason(ErrInvalidInput, "invalid_interview_slot", "interview_date must be YYYY-MM-DD and end_time after start_time (HH:MM)")
	ErrInterviewAlreadyScheduled = newReason(ErrConflict, "interview_already_scheduled", "an interview is already scheduled for this application")
	ErrStatusChanged             = newReason(ErrConflict, "status_changed", "application status changed, reload and retry")

	ErrPersonalSkillNotFound = newReason(ErrNotFound, "personal_skill_not_found", "personal skill not found")
	ErrNotPersonalSkillOwner = newReason(ErrForbidden, "not_personal_skill_owner", "personal skill belongs to another student")
	ErrPersonalSkillLimit    = newReason(ErrInvalidInput, "personal_skill_limit", "a student can list at most 8 personal skills")
	ErrPersonalSkillTooLong  = newReason(ErrInvalidInput, "skill_name_too_long", "skill name exceeds 100 characters")

	ErrNotificationNotFound = newReason(ErrNotFound, "notification_not_found", "notification not found")
	ErrHelpTicketNotFound   = newReason(ErrNotFound, "help_ticket_not_found", "help ticket not found")
)

func invalid(msg string) *ReasonError {
	return newReason(ErrInvalidInput, "validation_failed", msg)
}

package user

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxPersonalSkills      = 8
	MaxPersonalSkillLength = 100
)

var (
	ErrPersonalSkillEmpty   = errors.New("skill name is empty")
	ErrPersonalSkillTooLong = errors.New("skill name is too long")
)

type PersonalSkill struct {
	ID        int64
	StudentID int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CleanPersonalSkillName trims the name and enforces the length limit in characters.
func CleanPersonalSkillName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrPersonalSkillEmpty
	}
	if utf8.RuneCountInString(name) > MaxPersonalSkillLength {
		return "", ErrPersonalSkillTooLong
	}
	return name, nil
}

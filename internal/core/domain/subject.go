package domain

import (
	"fmt"
	"strings"
)

// Subject classifies a book and names the shelf section it lives in.
type Subject string

const (
	SubjectBiography  Subject = "BIOGRAPHY"
	SubjectChildren   Subject = "CHILDREN"
	SubjectDrama      Subject = "DRAMA"
	SubjectFantasy    Subject = "FANTASY"
	SubjectHistory    Subject = "HISTORY"
	SubjectMystery    Subject = "MYSTERY"
	SubjectPoetry     Subject = "POETRY"
	SubjectRomance    Subject = "ROMANCE"
	SubjectScience    Subject = "SCIENCE"
	SubjectSciFi      Subject = "SCIENCE_FICTION"
	SubjectSelfHelp   Subject = "SELF_HELP"
	SubjectTechnology Subject = "TECHNOLOGY"
	SubjectTravel     Subject = "TRAVEL"
)

var subjects = map[Subject]struct{}{
	SubjectBiography:  {},
	SubjectChildren:   {},
	SubjectDrama:      {},
	SubjectFantasy:    {},
	SubjectHistory:    {},
	SubjectMystery:    {},
	SubjectPoetry:     {},
	SubjectRomance:    {},
	SubjectScience:    {},
	SubjectSciFi:      {},
	SubjectSelfHelp:   {},
	SubjectTechnology: {},
	SubjectTravel:     {},
}

// ParseSubject converts free-form input into a known Subject.
func ParseSubject(value string) (Subject, error) {
	s := Subject(strings.ToUpper(strings.TrimSpace(value)))
	if _, ok := subjects[s]; !ok {
		return "", fmt.Errorf("%w: unknown subject %q", ErrValidation, value)
	}
	return s, nil
}

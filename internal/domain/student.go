package domain

import (
	"fmt"
	"strings"

	"github.com/yigit/hostelsphere/internal/pkg/apperrors"
)

// Gender is the closed set of genders a student profile may carry
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Valid reports whether g is one of the known genders
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Student is a hostel resident record.
// RoomID is owned by the assignment engine; roster operations never write it.
type Student struct {
	ID            string `json:"id"`
	SID           string `json:"SID,omitempty"`          // login code
	PasswordHash  string `json:"passwordHash,omitempty"` // bcrypt hash, never plaintext
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	DateOfBirth   string `json:"dateOfBirth"`
	Gender        Gender `json:"gender"`
	Address       string `json:"address"`
	Course        string `json:"course"`
	Year          string `json:"year"`
	RollNumber    string `json:"rollNumber,omitempty"`
	RoomID        string `json:"roomId,omitempty"`
	AdmissionDate string `json:"admissionDate"`
	PhotoURL      string `json:"photoUrl,omitempty"`
	BloodGroup    string `json:"bloodGroup,omitempty"`
}

// NewStudent validates a caller-built student record.
// The id must be supplied by the caller; any RoomID is dropped.
func NewStudent(s Student) (Student, error) {
	s.ID = strings.TrimSpace(s.ID)
	if s.ID == "" {
		return Student{}, fmt.Errorf("%w: student id is required", apperrors.ErrValidationFailed)
	}
	if s.Gender != "" && !s.Gender.Valid() {
		return Student{}, fmt.Errorf("%w: unknown gender %q", apperrors.ErrValidationFailed, s.Gender)
	}
	s.RoomID = ""
	return s, nil
}

// FullName returns "first last"
func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// HasRoom reports whether the student currently holds a bed
func (s Student) HasRoom() bool {
	return s.RoomID != ""
}

// StudentPatch lists the student fields that may be changed after creation.
// A nil field is left untouched. RoomID is not patchable.
type StudentPatch struct {
	SID           *string `json:"SID,omitempty"`
	PasswordHash  *string `json:"-"`
	FirstName     *string `json:"firstName,omitempty"`
	LastName      *string `json:"lastName,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	DateOfBirth   *string `json:"dateOfBirth,omitempty"`
	Gender        *Gender `json:"gender,omitempty"`
	Address       *string `json:"address,omitempty"`
	Course        *string `json:"course,omitempty"`
	Year          *string `json:"year,omitempty"`
	RollNumber    *string `json:"rollNumber,omitempty"`
	AdmissionDate *string `json:"admissionDate,omitempty"`
	PhotoURL      *string `json:"photoUrl,omitempty"`
	BloodGroup    *string `json:"bloodGroup,omitempty"`
}

// Apply returns a copy of s with the non-nil patch fields merged in
func (p StudentPatch) Apply(s Student) Student {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&s.SID, p.SID)
	set(&s.PasswordHash, p.PasswordHash)
	set(&s.FirstName, p.FirstName)
	set(&s.LastName, p.LastName)
	set(&s.Email, p.Email)
	set(&s.Phone, p.Phone)
	set(&s.DateOfBirth, p.DateOfBirth)
	set(&s.Address, p.Address)
	set(&s.Course, p.Course)
	set(&s.Year, p.Year)
	set(&s.RollNumber, p.RollNumber)
	set(&s.AdmissionDate, p.AdmissionDate)
	set(&s.PhotoURL, p.PhotoURL)
	set(&s.BloodGroup, p.BloodGroup)
	if p.Gender != nil {
		s.Gender = *p.Gender
	}
	return s
}

// IsEmpty reports whether the patch changes nothing
func (p StudentPatch) IsEmpty() bool {
	return p == StudentPatch{}
}

package dto

import (
	"github.com/yigit/hostelsphere/internal/domain"
)

// CreateStudentRequest represents the admin form for a new student.
// ID is optional; one is generated when omitted.
type CreateStudentRequest struct {
	ID            string        `json:"id,omitempty" binding:"omitempty,max=64"`
	SID           string        `json:"sid,omitempty" binding:"omitempty,sid"`
	Password      string        `json:"password,omitempty" binding:"omitempty,min=6"`
	FirstName     string        `json:"firstName" binding:"required,max=100"`
	LastName      string        `json:"lastName" binding:"required,max=100"`
	Email         string        `json:"email" binding:"required,email"`
	Phone         string        `json:"phone,omitempty" binding:"omitempty,phone"`
	DateOfBirth   string        `json:"dateOfBirth,omitempty" binding:"omitempty,isodate"`
	Gender        domain.Gender `json:"gender,omitempty" binding:"omitempty,oneof=Male Female Other"`
	Address       string        `json:"address,omitempty" binding:"max=300"`
	Course        string        `json:"course,omitempty" binding:"max=100"`
	Year          string        `json:"year,omitempty" binding:"max=20"`
	RollNumber    string        `json:"rollNumber,omitempty" binding:"max=40"`
	AdmissionDate string        `json:"admissionDate,omitempty" binding:"omitempty,isodate"`
	BloodGroup    string        `json:"bloodGroup,omitempty" binding:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
}

// UpdateStudentRequest carries the profile fields to change; absent fields are kept
type UpdateStudentRequest struct {
	FirstName     *string        `json:"firstName,omitempty" binding:"omitempty,min=1,max=100"`
	LastName      *string        `json:"lastName,omitempty" binding:"omitempty,min=1,max=100"`
	Email         *string        `json:"email,omitempty" binding:"omitempty,email"`
	Phone         *string        `json:"phone,omitempty" binding:"omitempty,phone"`
	DateOfBirth   *string        `json:"dateOfBirth,omitempty" binding:"omitempty,isodate"`
	Gender        *domain.Gender `json:"gender,omitempty" binding:"omitempty,oneof=Male Female Other"`
	Address       *string        `json:"address,omitempty" binding:"omitempty,max=300"`
	Course        *string        `json:"course,omitempty" binding:"omitempty,max=100"`
	Year          *string        `json:"year,omitempty" binding:"omitempty,max=20"`
	RollNumber    *string        `json:"rollNumber,omitempty" binding:"omitempty,max=40"`
	AdmissionDate *string        `json:"admissionDate,omitempty" binding:"omitempty,isodate"`
	BloodGroup    *string        `json:"bloodGroup,omitempty" binding:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
}

// ToPatch converts the request into a domain patch
func (r UpdateStudentRequest) ToPatch() domain.StudentPatch {
	return domain.StudentPatch{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Email:         r.Email,
		Phone:         r.Phone,
		DateOfBirth:   r.DateOfBirth,
		Gender:        r.Gender,
		Address:       r.Address,
		Course:        r.Course,
		Year:          r.Year,
		RollNumber:    r.RollNumber,
		AdmissionDate: r.AdmissionDate,
		BloodGroup:    r.BloodGroup,
	}
}

// SetCredentialsRequest sets the portal login of a student
type SetCredentialsRequest struct {
	SID      string `json:"sid" binding:"required,sid"`
	Password string `json:"password" binding:"required,min=6"`
}

// StudentResponse is the API view of a student; the password hash is never exposed
type StudentResponse struct {
	ID             string        `json:"id"`
	SID            string        `json:"sid,omitempty"`
	FirstName      string        `json:"firstName"`
	LastName       string        `json:"lastName"`
	FullName       string        `json:"fullName"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone"`
	DateOfBirth    string        `json:"dateOfBirth"`
	Gender         domain.Gender `json:"gender"`
	Address        string        `json:"address"`
	Course         string        `json:"course"`
	Year           string        `json:"year"`
	RollNumber     string        `json:"rollNumber,omitempty"`
	AdmissionDate  string        `json:"admissionDate"`
	PhotoURL       string        `json:"photoUrl,omitempty"`
	BloodGroup     string        `json:"bloodGroup,omitempty"`
	RoomID         string        `json:"roomId,omitempty"`
	RoomNumber     string        `json:"roomNumber,omitempty"`
	HasCredentials bool          `json:"hasCredentials"`
}

// NewStudentResponse builds the API view; room may be nil for unassigned students
func NewStudentResponse(s domain.Student, room *domain.Room) StudentResponse {
	resp := StudentResponse{
		ID:             s.ID,
		SID:            s.SID,
		FirstName:      s.FirstName,
		LastName:       s.LastName,
		FullName:       s.FullName(),
		Email:          s.Email,
		Phone:          s.Phone,
		DateOfBirth:    s.DateOfBirth,
		Gender:         s.Gender,
		Address:        s.Address,
		Course:         s.Course,
		Year:           s.Year,
		RollNumber:     s.RollNumber,
		AdmissionDate:  s.AdmissionDate,
		PhotoURL:       s.PhotoURL,
		BloodGroup:     s.BloodGroup,
		RoomID:         s.RoomID,
		HasCredentials: s.SID != "" && s.PasswordHash != "",
	}
	if room != nil {
		resp.RoomNumber = room.RoomNumber
	}
	return resp
}

// StudentSummary is the short form used inside other payloads
type StudentSummary struct {
	ID       string `json:"id"`
	SID      string `json:"sid,omitempty"`
	FullName string `json:"fullName"`
	Course   string `json:"course,omitempty"`
	Year     string `json:"year,omitempty"`
	RoomID   string `json:"roomId,omitempty"`
}

// NewStudentSummary builds the short form of s
func NewStudentSummary(s domain.Student) StudentSummary {
	return StudentSummary{ID: s.ID, SID: s.SID, FullName: s.FullName(), Course: s.Course, Year: s.Year, RoomID: s.RoomID}
}

// PortalProfile is what a logged-in student sees about themselves
type PortalProfile struct {
	Student   StudentResponse  `json:"student"`
	Room      *RoomResponse    `json:"room,omitempty"`
	Roommates []StudentSummary `json:"roommates"`
}

// IDCardResponse is the printable hostel identity card of a student
type IDCardResponse struct {
	ID            string `json:"id"`
	FullName      string `json:"fullName"`
	SID           string `json:"sid,omitempty"`
	RoomNumber    string `json:"roomNumber,omitempty"`
	PhotoURL      string `json:"photoUrl,omitempty"`
	Course        string `json:"course,omitempty"`
	Year          string `json:"year,omitempty"`
	BloodGroup    string `json:"bloodGroup,omitempty"`
	AdmissionDate string `json:"admissionDate,omitempty"`
	ValidUntil    string `json:"validUntil"`
}

// NewIDCardResponse builds the card of s; validUntil is computed by the caller
func NewIDCardResponse(s domain.Student, room *domain.Room, validUntil string) IDCardResponse {
	card := IDCardResponse{
		ID:            s.ID,
		FullName:      s.FullName(),
		SID:           s.SID,
		PhotoURL:      s.PhotoURL,
		Course:        s.Course,
		Year:          s.Year,
		BloodGroup:    s.BloodGroup,
		AdmissionDate: s.AdmissionDate,
		ValidUntil:    validUntil,
	}
	if room != nil {
		card.RoomNumber = room.RoomNumber
	}
	return card
}

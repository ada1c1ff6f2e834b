package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/hostelsphere/internal/app/models"
	"github.com/yigit/hostelsphere/internal/app/models/dto"
	"github.com/yigit/hostelsphere/internal/domain"
	"github.com/yigit/hostelsphere/internal/pkg/apperrors"
	"github.com/yigit/hostelsphere/internal/pkg/auth"
	"github.com/yigit/hostelsphere/internal/pkg/filestorage"
	"github.com/yigit/hostelsphere/internal/pkg/helpers"
	"github.com/yigit/hostelsphere/internal/pkg/sanitize"
	"github.com/yigit/hostelsphere/internal/pkg/validation"
	"github.com/yigit/hostelsphere/internal/pkg/websocket"
)

// StudentFilter narrows a student listing
type StudentFilter struct {
	Query    string // matched against name, SID and email
	Assigned *bool
	Page     int
	Size     int
}

// StudentService defines the student management operations
type StudentService interface {
	CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (dto.StudentResponse, error)
	GetStudent(ctx context.Context, id string) (dto.StudentResponse, error)
	ListStudents(ctx context.Context, filter StudentFilter) (dto.PaginatedResponse[dto.StudentResponse], error)
	UpdateStudent(ctx context.Context, id string, req dto.UpdateStudentRequest) (dto.StudentResponse, error)
	DeleteStudent(ctx context.Context, id string) error
	SetCredentials(ctx context.Context, id string, req dto.SetCredentialsRequest) (dto.StudentResponse, error)
	UploadPhoto(ctx context.Context, id string, fileHeader *multipart.FileHeader) (dto.StudentResponse, error)
	IDCards(ctx context.Context, query string) ([]dto.IDCardResponse, error)
}

type studentServiceImpl struct {
	state   *StateManager
	storage filestorage.FileStorage
	clock   helpers.Clock
	logger  zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(state *StateManager, storage filestorage.FileStorage, clock helpers.Clock, logger zerolog.Logger) StudentService {
	if clock == nil {
		clock = helpers.SystemClock
	}
	return &studentServiceImpl{state: state, storage: storage, clock: clock, logger: logger}
}

// studentResponse resolves the room of s inside snap
func studentResponse(snap models.Snapshot, s domain.Student) dto.StudentResponse {
	if s.RoomID == "" {
		return dto.NewStudentResponse(s, nil)
	}
	if r, ok := domain.FindRoom(snap.Rooms, s.RoomID); ok {
		return dto.NewStudentResponse(s, &r)
	}
	return dto.NewStudentResponse(s, nil)
}

func validateContact(email, phone string) error {
	if email != "" && !validation.IsValidEmail(email) {
		return fmt.Errorf("%w: invalid email %q", apperrors.ErrValidationFailed, email)
	}
	if phone != "" && !validation.IsValidPhone(phone) {
		return fmt.Errorf("%w: invalid phone %q", apperrors.ErrValidationFailed, phone)
	}
	return nil
}

// CreateStudent registers a new, unassigned student
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (dto.StudentResponse, error) {
	record := domain.Student{
		ID:            strings.TrimSpace(req.ID),
		SID:           strings.TrimSpace(req.SID),
		FirstName:     sanitize.Text(req.FirstName),
		LastName:      sanitize.Text(req.LastName),
		Email:         strings.TrimSpace(req.Email),
		Phone:         strings.TrimSpace(req.Phone),
		DateOfBirth:   req.DateOfBirth,
		Gender:        req.Gender,
		Address:       sanitize.Text(req.Address),
		Course:        sanitize.Text(req.Course),
		Year:          sanitize.Text(req.Year),
		RollNumber:    sanitize.Text(req.RollNumber),
		AdmissionDate: req.AdmissionDate,
		BloodGroup:    req.BloodGroup,
	}
	if record.ID == "" {
		record.ID = "student-" + uuid.New().String()
	}
	if record.AdmissionDate == "" {
		record.AdmissionDate = helpers.FormatDate(s.clock())
	}
	if record.FirstName == "" || record.LastName == "" {
		return dto.StudentResponse{}, fmt.Errorf("%w: first and last name are required", apperrors.ErrValidationFailed)
	}
	if err := validateContact(record.Email, record.Phone); err != nil {
		return dto.StudentResponse{}, err
	}
	if record.SID != "" && !validation.IsValidSID(record.SID) {
		return dto.StudentResponse{}, fmt.Errorf("%w: invalid SID %q", apperrors.ErrValidationFailed, record.SID)
	}
	if req.Password != "" {
		if record.SID == "" {
			return dto.StudentResponse{}, fmt.Errorf("%w: a password needs an SID", apperrors.ErrValidationFailed)
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return dto.StudentResponse{}, err
		}
		record.PasswordHash = hash
	}

	var created domain.Student
	err := s.state.Update(ctx, "student.create", func(draft *models.Snapshot) ([]websocket.Event, error) {
		students, err := domain.AddStudent(draft.Students, record)
		if err != nil {
			return nil, err
		}
		draft.Students = students
		created = students[len(students)-1]
		return []websocket.Event{newEvent("student.created", dto.NewStudentSummary(created))}, nil
	})
	if err != nil {
		return dto.StudentResponse{}, err
	}
	s.logger.Info().Str("studentID", created.ID).Msg("Student created")
	return dto.NewStudentResponse(created, nil), nil
}

// GetStudent returns one student with their room number
func (s *studentServiceImpl) GetStudent(ctx context.Context, id string) (dto.StudentResponse, error) {
	snap := s.state.Snapshot()
	st, ok := domain.FindStudent(snap.Students, id)
	if !ok {
		return dto.StudentResponse{}, fmt.Errorf("%w: %q", apperrors.ErrStudentNotFound, id)
	}
	return studentResponse(snap, st), nil
}

func matchesStudent(st domain.Student, q string) bool {
	if q == "" {
		return true
	}
	for _, field := range []string{st.FullName(), st.SID, st.Email} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// ListStudents returns a page of students in registration order
func (s *studentServiceImpl) ListStudents(ctx context.Context, filter StudentFilter) (dto.PaginatedResponse[dto.StudentResponse], error) {
	snap := s.state.Snapshot()
	q := strings.ToLower(strings.TrimSpace(filter.Query))

	items := make([]dto.StudentResponse, 0, len(snap.Students))
	for _, st := range snap.Students {
		if !matchesStudent(st, q) {
			continue
		}
		if filter.Assigned != nil && st.HasRoom() != *filter.Assigned {
			continue
		}
		items = append(items, studentResponse(snap, st))
	}
	return helpers.Paginate(items, filter.Page, filter.Size), nil
}

// cardValidityYears is how long an ID card stays valid after admission
const cardValidityYears = 4

// IDCards returns the identity cards of every student whose name or SID contains query
func (s *studentServiceImpl) IDCards(ctx context.Context, query string) ([]dto.IDCardResponse, error) {
	snap := s.state.Snapshot()
	q := strings.ToLower(strings.TrimSpace(query))

	cards := make([]dto.IDCardResponse, 0, len(snap.Students))
	for _, st := range snap.Students {
		if q != "" && !strings.Contains(strings.ToLower(st.FullName()), q) && !strings.Contains(strings.ToLower(st.SID), q) {
			continue
		}
		var room *domain.Room
		if r, ok := domain.FindRoom(snap.Rooms, st.RoomID); ok && st.RoomID != "" {
			room = &r
		}
		cards = append(cards, dto.NewIDCardResponse(st, room, s.cardValidUntil(st.AdmissionDate)))
	}
	return cards, nil
}

// cardValidUntil counts from admission, or from today when the admission date is missing
func (s *studentServiceImpl) cardValidUntil(admission string) string {
	from, err := helpers.ParseDate(admission)
	if err != nil {
		from = s.clock()
	}
	return helpers.FormatDate(from.AddDate(cardValidityYears, 0, 0))
}

// UpdateStudent merges profile changes; room and credentials are not touched here
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id string, req dto.UpdateStudentRequest) (dto.StudentResponse, error) {
	patch := req.ToPatch()
	for _, field := range []**string{&patch.FirstName, &patch.LastName, &patch.Address, &patch.Course, &patch.Year, &patch.RollNumber} {
		if *field != nil {
			v := sanitize.Text(**field)
			*field = &v
		}
	}
	if (patch.FirstName != nil && *patch.FirstName == "") || (patch.LastName != nil && *patch.LastName == "") {
		return dto.StudentResponse{}, fmt.Errorf("%w: names cannot be empty", apperrors.ErrValidationFailed)
	}
	if patch.Gender != nil && !patch.Gender.Valid() {
		return dto.StudentResponse{}, fmt.Errorf("%w: unknown gender %q", apperrors.ErrValidationFailed, *patch.Gender)
	}
	var email, phone string
	if patch.Email != nil {
		email = *patch.Email
		if email == "" {
			return dto.StudentResponse{}, fmt.Errorf("%w: email cannot be empty", apperrors.ErrValidationFailed)
		}
	}
	if patch.Phone != nil {
		phone = *patch.Phone
	}
	if err := validateContact(email, phone); err != nil {
		return dto.StudentResponse{}, err
	}

	var resp dto.StudentResponse
	err := s.state.Update(ctx, "student.update", func(draft *models.Snapshot) ([]websocket.Event, error) {
		if _, ok := domain.FindStudent(draft.Students, id); !ok {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrStudentNotFound, id)
		}
		draft.Students = domain.UpdateStudent(draft.Students, id, patch)
		updated, _ := domain.FindStudent(draft.Students, id)
		resp = studentResponse(*draft, updated)
		if patch.IsEmpty() {
			return nil, errNoChange
		}
		return []websocket.Event{newEvent("student.updated", dto.NewStudentSummary(updated), id)}, nil
	})
	if err != nil {
		return dto.StudentResponse{}, err
	}
	return resp, nil
}

// DeleteStudent removes the student and frees their bed. Their complaints,
// gate passes, attendance and payments are kept as history.
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id string) error {
	var photo, roomID string
	err := s.state.Update(ctx, "student.delete", func(draft *models.Snapshot) ([]websocket.Event, error) {
		st, ok := domain.FindStudent(draft.Students, id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrStudentNotFound, id)
		}
		photo, roomID = st.PhotoURL, st.RoomID
		*draft = draft.WithState(s.state.Engine().DeleteStudent(draft.State(), id))
		return []websocket.Event{newEvent("student.deleted", map[string]string{"id": id, "roomId": roomID})}, nil
	})
	if err != nil {
		return err
	}
	s.logger.Info().Str("studentID", id).Str("roomID", roomID).Msg("Student deleted")
	s.removePhoto(ctx, photo)
	return nil
}

// SetCredentials sets the portal login of a student
func (s *studentServiceImpl) SetCredentials(ctx context.Context, id string, req dto.SetCredentialsRequest) (dto.StudentResponse, error) {
	sid := strings.TrimSpace(req.SID)
	if !validation.IsValidSID(sid) {
		return dto.StudentResponse{}, fmt.Errorf("%w: invalid SID %q", apperrors.ErrValidationFailed, sid)
	}
	if len(req.Password) < 6 {
		return dto.StudentResponse{}, fmt.Errorf("%w: password must be at least 6 characters", apperrors.ErrValidationFailed)
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return dto.StudentResponse{}, err
	}

	var resp dto.StudentResponse
	err = s.state.Update(ctx, "student.credentials", func(draft *models.Snapshot) ([]websocket.Event, error) {
		if _, ok := domain.FindStudent(draft.Students, id); !ok {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrStudentNotFound, id)
		}
		if domain.SIDTaken(draft.Students, sid, id) {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrDuplicateSID, sid)
		}
		draft.Students = domain.UpdateStudent(draft.Students, id, domain.StudentPatch{SID: &sid, PasswordHash: &hash})
		updated, _ := domain.FindStudent(draft.Students, id)
		resp = studentResponse(*draft, updated)
		return nil, nil
	})
	if err != nil {
		return dto.StudentResponse{}, err
	}
	s.logger.Info().Str("studentID", id).Msg("Student credentials set")
	return resp, nil
}

// UploadPhoto stores a new profile photo and replaces the previous one
func (s *studentServiceImpl) UploadPhoto(ctx context.Context, id string, fileHeader *multipart.FileHeader) (dto.StudentResponse, error) {
	if fileHeader == nil {
		return dto.StudentResponse{}, fmt.Errorf("%w: photo file is required", apperrors.ErrValidationFailed)
	}
	if !slices.ContainsFunc(s.state.Snapshot().Students, func(st domain.Student) bool { return st.ID == id }) {
		return dto.StudentResponse{}, fmt.Errorf("%w: %q", apperrors.ErrStudentNotFound, id)
	}

	url, err := s.storage.SaveFileWithPath(ctx, fileHeader, "photos")
	if err != nil {
		return dto.StudentResponse{}, fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}

	var resp dto.StudentResponse
	var previous string
	err = s.state.Update(ctx, "student.photo", func(draft *models.Snapshot) ([]websocket.Event, error) {
		st, ok := domain.FindStudent(draft.Students, id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrStudentNotFound, id)
		}
		previous = st.PhotoURL
		draft.Students = domain.UpdateStudent(draft.Students, id, domain.StudentPatch{PhotoURL: &url})
		updated, _ := domain.FindStudent(draft.Students, id)
		resp = studentResponse(*draft, updated)
		return []websocket.Event{newEvent("student.updated", dto.NewStudentSummary(updated), id)}, nil
	})
	if err != nil {
		s.removePhoto(ctx, url)
		return dto.StudentResponse{}, err
	}
	s.removePhoto(ctx, previous)
	return resp, nil
}

func (s *studentServiceImpl) removePhoto(ctx context.Context, url string) {
	if url == "" || s.storage == nil {
		return
	}
	if err := s.storage.DeleteFile(ctx, url); err != nil {
		s.logger.Warn().Err(err).Str("photoUrl", url).Msg("Failed to delete photo")
	}
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/hostelsphere/internal/app/models/dto"
	"github.com/yigit/hostelsphere/internal/domain"
	"github.com/yigit/hostelsphere/internal/pkg/apperrors"
	"github.com/yigit/hostelsphere/internal/pkg/auth"
)

// AdminCredentials is the single warden account from configuration
type AdminCredentials struct {
	Username     string
	PasswordHash string
}

// AuthService handles logins and the logged-in student's view
type AuthService struct {
	state      *StateManager
	jwtService *auth.JWTService
	admin      AdminCredentials
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	state *StateManager,
	jwtService *auth.JWTService,
	admin AdminCredentials,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		state:      state,
		jwtService: jwtService,
		admin:      admin,
		logger:     logger,
	}
}

// AdminLogin authenticates the warden
func (s *AuthService) AdminLogin(ctx context.Context, req dto.AdminLoginRequest) (*dto.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", apperrors.ErrValidationFailed)
	}
	// Check the hash even on a username mismatch so both paths cost the same
	passwordOK := auth.CheckPassword(s.admin.PasswordHash, req.Password)
	if username != s.admin.Username || !passwordOK {
		s.logger.Warn().Str("username", username).Msg("Admin login failed")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.generateTokenResponse(username, auth.RoleAdmin, username)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("username", username).Msg("Admin logged in")
	return &dto.AuthResponse{Token: *token, Role: string(auth.RoleAdmin), User: dto.AdminProfile{Username: username}}, nil
}

// StudentLogin authenticates a student by SID and password
func (s *AuthService) StudentLogin(ctx context.Context, req dto.StudentLoginRequest) (*dto.AuthResponse, error) {
	sid := strings.TrimSpace(req.SID)
	if sid == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: SID and password are required", apperrors.ErrValidationFailed)
	}

	st, ok := domain.FindStudentBySID(s.state.Snapshot().Students, sid)
	if !ok || !auth.CheckPassword(st.PasswordHash, req.Password) {
		s.logger.Warn().Str("sid", sid).Msg("Student login failed")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.generateTokenResponse(st.ID, auth.RoleStudent, st.FullName())
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("studentID", st.ID).Msg("Student logged in")
	return &dto.AuthResponse{Token: *token, Role: string(auth.RoleStudent), User: dto.NewStudentSummary(st)}, nil
}

// CurrentStudent returns the live profile of a logged-in student: their
// record, room and roommates.
func (s *AuthService) CurrentStudent(ctx context.Context, studentID string) (*dto.PortalProfile, error) {
	snap := s.state.Snapshot()
	st, ok := domain.FindStudent(snap.Students, studentID)
	if !ok {
		// The account was deleted after the token was issued
		return nil, fmt.Errorf("%w: %q", apperrors.ErrStudentNotFound, studentID)
	}

	profile := &dto.PortalProfile{Student: studentResponse(snap, st), Roommates: []dto.StudentSummary{}}
	if r, ok := domain.FindRoom(snap.Rooms, st.RoomID); ok && st.HasRoom() {
		room := roomResponse(snap, r)
		profile.Room = &room
		for _, mate := range room.Occupants {
			if mate.ID != st.ID {
				profile.Roommates = append(profile.Roommates, mate)
			}
		}
	}
	return profile, nil
}

// generateTokenResponse creates token response
func (s *AuthService) generateTokenResponse(subject string, role auth.Role, name string) (*dto.TokenResponse, error) {
	accessToken, expiresIn, err := s.jwtService.GenerateAccessToken(subject, role, name)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}
	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(expiresIn),
	}, nil
}

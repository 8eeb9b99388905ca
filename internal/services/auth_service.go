package services

import (
	"fmt"
	"strings"
	"time"

	"portside_pos_backend/internal/models"
	"portside_pos_backend/internal/repositories"
	"portside_pos_backend/pkg/utils"
)

// adminDisplayName is the name shown for the built-in administrator.
const adminDisplayName = "Admin"

// AuthResponse is returned on successful login.
type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	ExpiresAt   time.Time      `json:"expires_at"`
	User        models.Session `json:"user"`
	Landing     string         `json:"landing"`
}

// AdminCredentialsRequest changes the administrator login.
type AdminCredentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthService signs users in.
type AuthService interface {
	Login(req models.Credentials) (*AuthResponse, error)
	Register(req CreateStaffRequest) (*models.StaffProfile, error)
	ChangeAdminCredentials(req AdminCredentialsRequest) error
}

type authService struct {
	store        repositories.CollectionStore
	staffRepo    repositories.StaffRepository
	settingRepo  repositories.SettingRepository
	staffService StaffService
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(
	store repositories.CollectionStore,
	sr repositories.StaffRepository,
	str repositories.SettingRepository,
	staffService StaffService,
) AuthService {
	return &authService{store: store, staffRepo: sr, settingRepo: str, staffService: staffService}
}

// Login tries the administrator first, then the staff list.
func (s *authService) Login(req models.Credentials) (*AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	session, err := s.authenticate(username, req.Password)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := utils.GenerateAccessToken(session.Name, session.Username, session.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	utils.LogInfo("User signed in", map[string]interface{}{"username": session.Username, "role": session.Role})
	return &AuthResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        *session,
		Landing:     session.LandingScreen(),
	}, nil
}

func (s *authService) authenticate(username, password string) (*models.Session, error) {
	admin, err := s.settingRepo.GetAdmin(s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin credentials: %w", err)
	}
	if strings.EqualFold(username, admin.User) && checkSecret(admin.PassHash, admin.Pass, password) {
		return &models.Session{Name: adminDisplayName, Username: admin.User, Role: models.RoleAdmin}, nil
	}

	staff, err := s.staffRepo.List(s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to load staff: %w", err)
	}
	for _, m := range staff {
		if m.Username == username && checkSecret(m.PasscodeHash, m.Passcode, password) {
			return &models.Session{Name: m.Name, Username: m.Username, Role: m.Role}, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// Register is staff self sign-up; same rules as the staff editor.
func (s *authService) Register(req CreateStaffRequest) (*models.StaffProfile, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	return s.staffService.Create(req)
}

func (s *authService) ChangeAdminCredentials(req AdminCredentialsRequest) error {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	hash, err := HashSecret(req.Password)
	if err != nil {
		return err
	}
	if err := s.settingRepo.SaveAdmin(s.store, models.AdminCredentials{User: username, PassHash: hash}); err != nil {
		return fmt.Errorf("failed to save admin credentials: %w", err)
	}
	utils.LogInfo("Admin credentials changed", map[string]interface{}{"username": username})
	return nil
}


package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"portside_pos_backend/internal/models"
	"portside_pos_backend/internal/repositories"
	"portside_pos_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// CreateStaffRequest adds an employee. Username falls back to the first
// word of the name.
type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username"`
	Passcode string `json:"passcode" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// StaffService manages the staff list.
type StaffService interface {
	List(search string) ([]models.StaffProfile, error)
	Create(req CreateStaffRequest) (*models.StaffProfile, error)
	Delete(id int64) error
}

type staffService struct {
	store     repositories.CollectionStore
	staffRepo repositories.StaffRepository
	now       func() time.Time
}

// NewStaffService creates a new instance of StaffService.
func NewStaffService(store repositories.CollectionStore, sr repositories.StaffRepository) StaffService {
	return &staffService{store: store, staffRepo: sr, now: time.Now}
}

// HashSecret hashes a passcode or password for storage.
func HashSecret(secret string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(hashed), nil
}

// checkSecret compares against the hash, or against the legacy plaintext
// when no hash has been written yet.
func checkSecret(hash, plain, candidate string) bool {
	if hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
	}
	return plain != "" && plain == candidate
}

func (s *staffService) List(search string) ([]models.StaffProfile, error) {
	staff, err := s.staffRepo.List(s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to load staff: %w", err)
	}
	search = strings.TrimSpace(search)
	profiles := make([]models.StaffProfile, 0, len(staff))
	for _, m := range staff {
		if search != "" && !utils.ContainsFold(m.Name, search) {
			continue
		}
		profiles = append(profiles, m.Profile())
	}
	return profiles, nil
}

func (s *staffService) Create(req CreateStaffRequest) (*models.StaffProfile, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Passcode == "" {
		return nil, fmt.Errorf("%w: passcode is required", ErrValidation)
	}
	if !models.IsValidStaffRole(req.Role) {
		return nil, ErrInvalidRole
	}
	username := strings.TrimSpace(req.Username)
	if username == "" {
		username = utils.FirstWordLower(name)
	}

	hash, err := HashSecret(req.Passcode)
	if err != nil {
		return nil, err
	}

	var member models.StaffMember
	err = s.store.Atomically(func(tx repositories.CollectionStore) error {
		staff, err := s.staffRepo.List(tx)
		if err != nil {
			return err
		}
		ids := make([]int64, 0, len(staff))
		for _, m := range staff {
			if m.Username == username {
				return ErrUsernameExists
			}
			ids = append(ids, m.ID)
		}
		now := s.now()
		member = models.StaffMember{
			ID:           utils.NextID(now, ids),
			Name:         name,
			Username:     username,
			PasscodeHash: hash,
			Role:         req.Role,
			Joined:       now.UnixMilli(),
		}
		return s.staffRepo.Save(tx, append(staff, member))
	})
	if err != nil {
		if errors.Is(err, ErrUsernameExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create staff member: %w", err)
	}

	utils.LogInfo("Staff member created", map[string]interface{}{"staff_id": member.ID, "username": member.Username, "role": member.Role})
	profile := member.Profile()
	return &profile, nil
}

func (s *staffService) Delete(id int64) error {
	err := s.store.Atomically(func(tx repositories.CollectionStore) error {
		staff, err := s.staffRepo.List(tx)
		if err != nil {
			return err
		}
		kept := make([]models.StaffMember, 0, len(staff))
		for _, m := range staff {
			if m.ID != id {
				kept = append(kept, m)
			}
		}
		if len(kept) == len(staff) {
			return ErrStaffNotFound
		}
		return s.staffRepo.Save(tx, kept)
	})
	if err != nil {
		if errors.Is(err, ErrStaffNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete staff member: %w", err)
	}
	utils.LogInfo("Staff member deleted", map[string]interface{}{"staff_id": id})
	return nil
}

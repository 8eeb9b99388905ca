package repositories

import (
	"portside_pos_backend/internal/models"
	"portside_pos_backend/pkg/utils"
)

// StaffRepository reads and writes the staff list.
type StaffRepository interface {
	List(exec CollectionStore) ([]models.StaffMember, error)
	Save(exec CollectionStore, staff []models.StaffMember) error
}

type staffRepository struct{}

// NewStaffRepository creates a new instance of StaffRepository.
func NewStaffRepository() StaffRepository {
	return &staffRepository{}
}

// List returns the staff; records without a username get the lower-cased
// first word of their name, as older data had no usernames.
func (r *staffRepository) List(exec CollectionStore) ([]models.StaffMember, error) {
	staff, err := loadCollection(exec, KeyStaff, DefaultStaff)
	if err != nil {
		return nil, err
	}
	for i := range staff {
		if staff[i].Username == "" {
			staff[i].Username = utils.FirstWordLower(staff[i].Name)
		}
	}
	return staff, nil
}

func (r *staffRepository) Save(exec CollectionStore, staff []models.StaffMember) error {
	if staff == nil {
		staff = []models.StaffMember{}
	}
	return exec.Write(KeyStaff, staff)
}

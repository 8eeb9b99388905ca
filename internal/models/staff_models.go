package models

// Staff roles.
const (
	RoleManager = "Manager"
	RoleServer  = "Server"
	RoleKitchen = "Kitchen"
	// RoleAdmin is the built-in administrator; it is not a staff record.
	RoleAdmin = "admin"
)

// IsValidStaffRole checks a role against the staff roles.
func IsValidStaffRole(role string) bool {
	switch role {
	case RoleManager, RoleServer, RoleKitchen:
		return true
	default:
		return false
	}
}

// StaffMember is an employee that can sign in to the POS.
type StaffMember struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	// Passcode is only present on records written by older clients;
	// it is hashed into PasscodeHash when the collection is loaded.
	Passcode     string `json:"passcode,omitempty"`
	PasscodeHash string `json:"passcode_hash,omitempty"`
	Role         string `json:"role"`
	Joined       int64  `json:"joined"`
}

// StaffProfile is a staff member without credentials.
type StaffProfile struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Joined   int64  `json:"joined"`
}

// Profile strips the credentials.
func (s StaffMember) Profile() StaffProfile {
	return StaffProfile{ID: s.ID, Name: s.Name, Username: s.Username, Role: s.Role, Joined: s.Joined}
}

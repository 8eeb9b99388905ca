package models

// Credentials for login request
type Credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Session is the signed-in user as stored in the access token.
type Session struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsManagement reports whether the session may use the back-office screens.
func (s Session) IsManagement() bool {
	return s.Role == RoleAdmin || s.Role == RoleManager
}

// LandingScreen is where a user goes after signing in.
func (s Session) LandingScreen() string {
	switch s.Role {
	case RoleAdmin, RoleManager:
		return "dashboard"
	case RoleKitchen:
		return "kitchen"
	default:
		return "pos"
	}
}

package types

// Roles a session user may hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the current identity held by a SessionStore.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Demo identity fabricated by the mock login. Every login yields exactly
// this user; there is no credential check.
var DemoUser = User{
	ID:       "demo-user-123",
	Email:    "demo@nexusvpn.com",
	FullName: "Demo User",
	Role:     RoleUser,
}

// Invitation is returned by the user-invite stub.
type Invitation struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Success bool   `json:"success"`
}

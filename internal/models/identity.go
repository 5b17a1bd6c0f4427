package models

// Roles an authenticated identity can carry.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// Identity is the currently authenticated user as persisted to the
// session key. The password never appears here; it lives only in the
// user directory.
type Identity struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Role     string   `json:"role"`
	Subjects []string `json:"subjects"`
	Progress int      `json:"progress"`
}

// IsAdmin reports whether the identity may use the admin-only document
// operations.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// HasSubject reports membership of a catalog subject id in the
// identity's selection.
func (i Identity) HasSubject(id string) bool {
	for _, s := range i.Subjects {
		if s == id {
			return true
		}
	}
	return false
}

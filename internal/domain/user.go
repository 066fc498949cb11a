package domain

// Role is the access level recorded on a user.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// Roles lists every role a user may be created with.
var Roles = []Role{RoleAdmin, RoleEditor, RoleViewer}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User is a record from the users collection.
// ID is the hex form of the store-assigned identifier.
type User struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Age     int    `json:"age"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
	Avatar  string `json:"avatar"`
}

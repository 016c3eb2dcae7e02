package domain

type Role string

const (
	RoleOwner   Role = "owner"
	RoleManager Role = "manager"
)

// User is an operator account. Role gates write access to inventory:
// only owners may bulk-purchase, lock or delete batches.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
}

package models

import "time"

// Roles a principal can hold. The set is deployment-defined; these are the
// ones the platform ships with.
const (
	RoleReader = "Reader"
	RoleAuthor = "Author"
	RoleAdmin  = "Admin"
)

// User represents a registered account in the system.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Education    string    `json:"education"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	Avatar       AssetRef  `json:"avatar"`
	CreatedAt    time.Time `json:"createdAt"`
}

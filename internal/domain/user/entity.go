package user

// User represents a user entity in the system.
// Password is persisted as provided and must never leave the service layer
// in API responses.
type User struct {
	ID       int64  // ID is the unique identifier for the user
	Name     string // Name is the full name of the user
	Email    string // Email is the unique email address of the user
	Password string // Password is the raw credential, write-only
}

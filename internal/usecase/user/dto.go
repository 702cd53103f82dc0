package user

// CreateUserInput represents the payload for creating a new user.
// Fields are assumed to have passed schema validation at the route boundary;
// the service re-checks only the invariants the store cannot express.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateUserInput represents a partial update. Nil fields are left untouched.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
}

// User represents a user DTO for API responses. The password column never
// appears here.
type User struct {
	ID    int64
	Name  string
	Email string
}

package users

// User is the owning identity for every other resource in the system.
// The password hash never leaves the API surface.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

package user

// User is the single profile of the tracker. No format validation happens here.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

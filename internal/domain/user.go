package domain

import "time"

// Account defaults applied at registration.
const (
	DefaultPhoneNumber = "0000000000"
	DefaultLoginMethod = "email"
	DefaultUserStatus  = "active"
	DefaultUserRole    = "user"
)

// User is a mobile app account. Credentials are never part of this type.
type User struct {
	ID          int64     `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	LoginMethod string    `json:"login_method"`
	Status      string    `json:"status"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Registration is the input to account creation.
type Registration struct {
	FullName string
	Email    string
	Password string
}

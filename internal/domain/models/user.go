package models

import "tourbook/internal/domain"

// User is an account that can own bookings. Role is "customer" or "admin".
type User struct {
	ID    domain.ID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone"`
	Role  string    `json:"role"`
}

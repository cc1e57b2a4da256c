package repository

import authdomain "watches-backend/internal/auth/domain"

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(user *authdomain.User) error
	FindByEmail(email string) (*authdomain.User, error)
	FindByUsername(username string) (*authdomain.User, error)
	FindByID(id string) (*authdomain.User, error)
	Update(user *authdomain.User) error
	// CountByRole counts users with the given role (dashboard customer count)
	CountByRole(role authdomain.Role) (int64, error)
}

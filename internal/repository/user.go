package repository

import "userapi/internal/model"

// UserRepository is the data access layer for users.
type UserRepository struct {
	*BaseRepository[model.User]
}

var _ Repository[model.User] = (*UserRepository)(nil)

// NewUserRepository is called once per request; the value holds no state.
func NewUserRepository() Repository[model.User] {
	return &UserRepository{BaseRepository: NewBaseRepository[model.User]()}
}

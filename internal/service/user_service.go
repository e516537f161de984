package service

import (
	"biodiv_backend/internal/model"
	"biodiv_backend/internal/repository"
	"biodiv_backend/internal/util"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetAll() ([]model.User, error) {
	return s.UserRepo.FindAll()
}

// UserPatch carries a partial admin update. Nil fields are untouched.
type UserPatch struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	IsAdmin  *bool   `json:"is_admin"`
}

func (s *UserService) Update(id uint, patch UserPatch) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	if patch.Username != nil && *patch.Username != user.Username {
		if existing, err := s.UserRepo.FindByUsername(*patch.Username); err == nil && existing.ID != user.ID {
			return nil, util.ErrUsernameTaken
		}
		user.Username = *patch.Username
	}
	if patch.Email != nil && *patch.Email != user.Email {
		if existing, err := s.UserRepo.FindByEmail(*patch.Email); err == nil && existing.ID != user.ID {
			return nil, util.ErrEmailRegistered
		}
		user.Email = *patch.Email
	}
	if patch.IsAdmin != nil {
		user.IsAdmin = *patch.IsAdmin
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(id uint) error {
	if _, err := s.UserRepo.FindByID(id); err != nil {
		return util.ErrUserNotFound
	}
	return s.UserRepo.Delete(id)
}

// UsernameIndex maps user id to username for export rows.
func (s *UserService) UsernameIndex() (map[uint]string, error) {
	users, err := s.UserRepo.FindAll()
	if err != nil {
		return nil, err
	}
	index := make(map[uint]string, len(users))
	for _, u := range users {
		index[u.ID] = u.Username
	}
	return index, nil
}

package app

import (
	"context"

	"homelyhub/internal/domain"
)

type UserService struct {
	users domain.UserRepository
}

func NewUserService(u domain.UserRepository) *UserService {
	return &UserService{users: u}
}

func (s *UserService) Me(ctx context.Context, actor domain.Actor) (domain.User, error) {
	if err := requireActor(actor); err != nil {
		return domain.User{}, err
	}
	return s.users.GetUser(ctx, actor.ID)
}

func (s *UserService) UpdateProfile(ctx context.Context, actor domain.Actor, upd domain.UserUpdate) (domain.User, error) {
	if err := requireActor(actor); err != nil {
		return domain.User{}, err
	}
	u, err := s.users.GetUser(ctx, actor.ID)
	if err != nil {
		return domain.User{}, err
	}
	upd.Apply(&u)
	if err := u.Validate(); err != nil {
		return domain.User{}, err
	}
	if err := s.users.UpdateUser(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

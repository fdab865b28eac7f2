package service

import (
	"context"
	"errors"

	"mindbridge/internal/models"
	"mindbridge/internal/repository"

	"gorm.io/gorm"
)

type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	UserID     uint
	Name       string
	Avatar     string
	Phone      string
	Branch     string
	Year       string
	RollNumber string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User not found")
		}
		return nil, err
	}

	const maxNameLen = 100

	if in.Name != "" {
		if len(in.Name) > maxNameLen {
			return nil, models.NewValidationError("Name too long (max 100 characters)")
		}
		user.Profile.Name = in.Name
	}
	if in.Avatar != "" {
		user.Profile.Avatar = in.Avatar
	}
	if in.Phone != "" {
		user.Profile.Phone = in.Phone
	}
	if in.Branch != "" {
		user.Profile.Branch = in.Branch
	}
	if in.Year != "" {
		user.Profile.Year = in.Year
	}
	if in.RollNumber != "" {
		user.Profile.RollNumber = in.RollNumber
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

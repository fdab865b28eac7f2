package service

import (
	"context"
	"errors"
	"strings"

	"mindbridge/internal/models"
	"mindbridge/internal/repository"

	"gorm.io/gorm"
)

type InstituteService struct {
	instituteRepo repository.InstituteRepository
}

type RegisterInstituteInput struct {
	Name     string
	Code     string
	Email    string
	Branches []models.OrgUnit
	Years    []models.OrgUnit
}

func NewInstituteService(instituteRepo repository.InstituteRepository) *InstituteService {
	return &InstituteService{instituteRepo: instituteRepo}
}

func (s *InstituteService) RegisterInstitute(ctx context.Context, in RegisterInstituteInput) (*models.Institute, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if strings.TrimSpace(in.Code) == "" {
		return nil, models.NewValidationError("Code is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, models.NewValidationError("Email is required")
	}

	inst := &models.Institute{
		Name:     strings.TrimSpace(in.Name),
		Code:     strings.ToUpper(strings.TrimSpace(in.Code)),
		Email:    strings.TrimSpace(in.Email),
		Branches: in.Branches,
		Years:    in.Years,
		Plan:     models.SubscriptionFree,
		IsActive: true,
		Settings: models.InstituteSettings{
			AllowAnonymous:      true,
			MaxCounselors:       10,
			EnableCommunityWall: true,
			EnableAnalytics:     true,
		},
	}
	if err := s.instituteRepo.Create(ctx, inst); err != nil {
		return nil, err
	}
	return inst, nil
}

func (s *InstituteService) GetInstitute(ctx context.Context, id uint) (*models.Institute, error) {
	inst, err := s.instituteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Institute not found")
		}
		return nil, err
	}
	return inst, nil
}

func (s *InstituteService) GetInstituteByCode(ctx context.Context, code string) (*models.Institute, error) {
	inst, err := s.instituteRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Institute not found")
		}
		return nil, err
	}
	return inst, nil
}

// UpdateSettings replaces the institute's feature toggles.
func (s *InstituteService) UpdateSettings(ctx context.Context, id uint, settings models.InstituteSettings) (*models.Institute, error) {
	if settings.MaxCounselors < 0 {
		return nil, models.NewValidationError("max_counselors cannot be negative")
	}
	if err := s.instituteRepo.UpdateSettings(ctx, id, settings); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Institute not found")
		}
		return nil, err
	}
	return s.instituteRepo.GetByID(ctx, id)
}

package auth

import (
	"context"
	"time"

	"github.com/clinidesk/scheduling-api/internal/config"
	"github.com/clinidesk/scheduling-api/internal/model"
	"github.com/clinidesk/scheduling-api/internal/repository"
	"github.com/clinidesk/scheduling-api/pkg/auth"
	apperrors "github.com/clinidesk/scheduling-api/pkg/errors"
	"github.com/clinidesk/scheduling-api/pkg/security"
)

type Service struct {
	doctorRepo repository.DoctorRepository
	jwtSvc     auth.JWTService
	hasher     security.PasswordHasher
}

func NewService(doctorRepo repository.DoctorRepository, cfg config.JWTConfig) *Service {
	return &Service{
		doctorRepo: doctorRepo,
		jwtSvc: auth.NewJWTService(
			cfg.Secret,
			cfg.RefreshSecret,
			time.Duration(cfg.ExpiryHours)*time.Hour,
			time.Duration(cfg.RefreshExpiryHours)*time.Hour,
		),
		hasher: security.NewBcryptHasher(0),
	}
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	doctor, err := s.doctorRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.NewUnauthorized(model.ErrInvalidCredentials)
	}

	if err := s.hasher.Compare(doctor.PasswordHash, req.Password); err != nil {
		return nil, apperrors.NewUnauthorized(model.ErrInvalidCredentials)
	}

	access, err := s.jwtSvc.GenerateAccessToken(doctor.ID, doctor.Email, "doctor")
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	refresh, err := s.jwtSvc.GenerateRefreshToken(doctor.ID)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}

	return &model.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (s *Service) Refresh(ctx context.Context, req *model.RefreshTokenRequest) (*model.TokenResponse, error) {
	userID, err := s.jwtSvc.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorized(err)
	}

	doctor, err := s.doctorRepo.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.NewUnauthorized(model.ErrInvalidCredentials)
	}

	access, err := s.jwtSvc.GenerateAccessToken(doctor.ID, doctor.Email, "doctor")
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}
	refresh, err := s.jwtSvc.GenerateRefreshToken(doctor.ID)
	if err != nil {
		return nil, apperrors.NewInternal(err)
	}

	return &model.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func (s *Service) ValidateToken(ctx context.Context, token string) (*auth.TokenClaims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized(err)
	}
	return claims, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"user-backend/internal/api"
	"user-backend/internal/biz"
)

const birthdateLayout = "2006-01-02"

// authService implements the identity operations behind the API.
type authService struct {
	auth *biz.AuthUsecase
}

// NewAuthService creates an AuthService.
func NewAuthService(auth *biz.AuthUsecase) api.AuthService {
	return &authService{auth: auth}
}

func (s *authService) Login(ctx context.Context, req *api.LoginRequest) (*api.AuthenticatedResponse, error) {
	result, err := s.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	return convertToken(result), nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*api.AuthenticatedResponse, error) {
	result, err := s.auth.Refresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	return convertToken(result), nil
}

func (s *authService) Register(ctx context.Context, isExpert bool, req *api.RegisterRequest) (string, error) {
	reg, err := convertRegistration(req)
	if err != nil {
		return "", err
	}
	return s.auth.Register(ctx, isExpert, *reg)
}

func (s *authService) Logout(ctx context.Context, userID string) (bool, error) {
	return s.auth.Logout(ctx, userID)
}

func convertToken(t *biz.TokenResult) *api.AuthenticatedResponse {
	return &api.AuthenticatedResponse{
		AccessToken:      t.AccessToken,
		ExpiresIn:        t.ExpiresIn,
		RefreshExpiresIn: t.RefreshExpiresIn,
		TokenType:        t.TokenType,
		SessionState:     t.SessionState,
		Scope:            t.Scope,
	}
}

func convertRegistration(req *api.RegisterRequest) (*biz.Registration, error) {
	switch {
	case req.Username == "":
		return nil, fmt.Errorf("username cannot be blank: %w", biz.ErrIllegalAttribute)
	case req.Password == "":
		return nil, fmt.Errorf("password cannot be blank: %w", biz.ErrIllegalAttribute)
	case req.FirstName == "":
		return nil, fmt.Errorf("firstName cannot be blank: %w", biz.ErrIllegalAttribute)
	case req.Email == "":
		return nil, fmt.Errorf("email cannot be blank: %w", biz.ErrIllegalAttribute)
	}

	gender := biz.Gender(req.Gender)
	if !gender.Valid() {
		return nil, fmt.Errorf("unknown gender %q: %w", req.Gender, biz.ErrIllegalAttribute)
	}

	var birthDate time.Time
	if req.Birthdate != "" {
		t, err := time.Parse(birthdateLayout, req.Birthdate)
		if err != nil {
			return nil, fmt.Errorf("birthdate must use the %s layout: %w", birthdateLayout, biz.ErrIllegalAttribute)
		}
		birthDate = t
	}

	return &biz.Registration{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Gender:    gender,
		BirthDate: birthDate,
	}, nil
}

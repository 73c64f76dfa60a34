package service

import (
	"context"
	"fmt"
	"time"

	"user-backend/internal/api"
	"user-backend/internal/biz"
)

// userService implements the user profile operations behind the API.
type userService struct {
	users *biz.UserUsecase
	auth  *biz.AuthUsecase
}

// NewUserService creates a UserService. Deletion goes through the auth
// usecase because it spans the local store and the identity provider.
func NewUserService(users *biz.UserUsecase, auth *biz.AuthUsecase) api.UserService {
	return &userService{users: users, auth: auth}
}

func (s *userService) GetUser(ctx context.Context, userID string) (*api.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return convertUser(user), nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*api.UserResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return convertUser(user), nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req *api.UserUpdateRequest) error {
	upd := &biz.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if req.Gender != nil {
		g := biz.Gender(*req.Gender)
		upd.Gender = &g
	}
	if req.BirthDate != nil {
		t, err := time.Parse(birthdateLayout, *req.BirthDate)
		if err != nil {
			return fmt.Errorf("birthDate must use the %s layout: %w", birthdateLayout, biz.ErrIllegalAttribute)
		}
		upd.BirthDate = &t
	}
	return s.users.Update(ctx, userID, upd)
}

func (s *userService) UpdateUserDomains(ctx context.Context, userID string, req *api.UserDomainsUpdateRequest) error {
	return s.users.UpdateDomains(ctx, userID, biz.DomainsOperator(req.Operator), req.DomainIDs)
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	return s.auth.DeleteUser(ctx, userID)
}

func (s *userService) ExpertsByDomain(ctx context.Context, domainID string) ([]api.UserResponse, error) {
	experts, err := s.users.ExpertsByDomain(ctx, domainID)
	if err != nil {
		return nil, err
	}
	resp := make([]api.UserResponse, 0, len(experts))
	for _, u := range experts {
		resp = append(resp, *convertUser(u))
	}
	return resp, nil
}

func convertUser(u *biz.User) *api.UserResponse {
	birthDate := ""
	if !u.BirthDate.IsZero() {
		birthDate = u.BirthDate.Format(birthdateLayout)
	}
	domainIDs := u.DomainIDs
	if domainIDs == nil {
		domainIDs = []string{}
	}
	return &api.UserResponse{
		ID:        u.ID,
		IsExpert:  u.IsExpert,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Gender:    string(u.Gender),
		BirthDate: birthDate,
		Email:     u.Email,
		DomainIDs: domainIDs,
	}
}

package api

import (
	"context"
)

// LoginRequest is the login request DTO.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthenticatedResponse mirrors the token payload returned by the identity
// provider for login and refresh.
type AuthenticatedResponse struct {
	AccessToken      string `json:"access_token"`
	ExpiresIn        int64  `json:"expires_in"`
	RefreshExpiresIn int64  `json:"refresh_expires_in"`
	TokenType        string `json:"token_type"`
	SessionState     string `json:"session_state"`
	Scope            string `json:"scope"`
}

// RegisterRequest is the registration request DTO. Birthdate uses the
// YYYY-MM-DD layout.
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Gender    string `json:"gender"`
	Birthdate string `json:"birthdate"`
}

// RegisterResponse carries the user id issued by the identity provider.
type RegisterResponse struct {
	ID string `json:"id"`
}

// LogoutResponse reports whether the upstream session termination succeeded.
type LogoutResponse struct {
	Success bool `json:"success"`
}

// UserResponse is the user profile DTO.
type UserResponse struct {
	ID        string   `json:"id"`
	IsExpert  bool     `json:"isExpert"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Gender    string   `json:"gender"`
	BirthDate string   `json:"birthDate,omitempty"`
	Email     string   `json:"email"`
	DomainIDs []string `json:"domainIds"`
}

// UserUpdateRequest is a partial profile update; absent fields are left
// untouched.
type UserUpdateRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Gender    *string `json:"gender"`
	BirthDate *string `json:"birthDate"`
}

// UserDomainsUpdateRequest adds or removes domain associations.
type UserDomainsUpdateRequest struct {
	Operator  string   `json:"operator"`
	DomainIDs []string `json:"domainIds"`
}

// DomainCreateRequest is the domain creation DTO.
type DomainCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DomainUpdateRequest is a partial domain update.
type DomainUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// DomainResponse is the domain DTO.
type DomainResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PagingResponse is one page of a sorted listing.
type PagingResponse[T any] struct {
	TotalPages       int   `json:"totalPages"`
	TotalElements    int64 `json:"totalElements"`
	Number           int   `json:"number"`
	Size             int   `json:"size"`
	NumberOfElements int   `json:"numberOfElements"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	Content          []T   `json:"content"`
}

// AuthService handles identity operations (implemented by the service layer).
type AuthService interface {
	Login(ctx context.Context, req *LoginRequest) (*AuthenticatedResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthenticatedResponse, error)
	Register(ctx context.Context, isExpert bool, req *RegisterRequest) (string, error)
	Logout(ctx context.Context, userID string) (bool, error)
}

// UserService handles user profile operations (implemented by the service
// layer).
type UserService interface {
	GetUser(ctx context.Context, userID string) (*UserResponse, error)
	GetUserByEmail(ctx context.Context, email string) (*UserResponse, error)
	UpdateUser(ctx context.Context, userID string, req *UserUpdateRequest) error
	UpdateUserDomains(ctx context.Context, userID string, req *UserDomainsUpdateRequest) error
	DeleteUser(ctx context.Context, userID string) error
	ExpertsByDomain(ctx context.Context, domainID string) ([]UserResponse, error)
}

// DomainService handles domain operations (implemented by the service layer).
type DomainService interface {
	GetDomain(ctx context.Context, domainID string) (*DomainResponse, error)
	ListDomains(ctx context.Context, name string, pageNumber, pageSize int) (*PagingResponse[DomainResponse], error)
	CreateDomain(ctx context.Context, req *DomainCreateRequest) (string, error)
	UpdateDomain(ctx context.Context, domainID string, req *DomainUpdateRequest) error
	DeleteDomain(ctx context.Context, domainID string) error
}

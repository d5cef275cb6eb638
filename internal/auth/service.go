package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/ybhavu/clinic-portal/internal/uploads"
	"github.com/ybhavu/clinic-portal/internal/users"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong
	// password so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingFields      = errors.New("all fields are required")
	ErrInvalidRole        = errors.New("unknown account type")
)

// Service orchestrates registration and credential verification.
type Service struct {
	store *users.Store
	files *uploads.Intake
}

func NewService(store *users.Store, files *uploads.Intake) *Service {
	return &Service{store: store, files: files}
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
	// TODO: compare ConfirmPassword against Password once product
	// confirms mismatches should be rejected; today it is collected
	// and ignored, as the form has always behaved.
	ConfirmPassword string
	Address         string
	City            string
	State           string
	Pincode         string
	UserType        users.Role
	ProfilePic      *multipart.FileHeader
}

func (in RegisterInput) validate() error {
	required := []string{
		in.FirstName, in.LastName, in.Username, in.Email, in.Password,
		in.Address, in.City, in.State, in.Pincode,
	}
	for _, f := range required {
		if f == "" {
			return ErrMissingFields
		}
	}
	if !in.UserType.Valid() {
		return ErrInvalidRole
	}
	return nil
}

// Register stores the profile image, hashes the password and inserts
// the account. If the insert fails the stored image is removed so a
// rejected signup leaves nothing behind.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*users.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	filename, err := s.files.Store(in.ProfilePic)
	if err != nil {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &users.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Address:      in.Address,
		City:         in.City,
		State:        in.State,
		Pincode:      in.Pincode,
		UserType:     in.UserType,
		ProfilePic:   filename,
	}
	if err := s.store.Create(ctx, u); err != nil {
		if rmErr := s.files.Remove(filename); rmErr != nil {
			log.Printf("could not remove orphaned upload %s: %v", filename, rmErr)
		}
		return nil, err
	}
	return u, nil
}

// Authenticate resolves email + password to an account. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*users.User, error) {
	u, err := s.store.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !CheckPassword(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

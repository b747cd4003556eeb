package application

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"eventreg/internal/domain"
	"eventreg/internal/domain/entities"
	"eventreg/internal/ports/input"
	"eventreg/internal/ports/output"
)

var _ input.AccountUseCase = (*AccountService)(nil)

// bcrypt ignores anything past 72 bytes.
const maxPasswordLength = 72

type signupInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type AccountService struct {
	users    output.UserRepository
	hasher   output.PasswordHasher
	issuer   output.TokenIssuer
	verifier output.TokenVerifier
	validate *validator.Validate
	policy   *bluemonday.Policy
	logger   zerolog.Logger
}

func NewAccountService(
	users output.UserRepository,
	hasher output.PasswordHasher,
	issuer output.TokenIssuer,
	verifier output.TokenVerifier,
	logger zerolog.Logger,
) *AccountService {
	return &AccountService{
		users:    users,
		hasher:   hasher,
		issuer:   issuer,
		verifier: verifier,
		validate: NewValidator(),
		policy:   bluemonday.StrictPolicy(),
		logger:   logger.With().Str("component", "accounts").Logger(),
	}
}

// NewValidator returns a validator reporting fields by their json name.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationFailure converts validator errors to a domain.ValidationError.
func ValidationFailure(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return &domain.ValidationError{Fields: fields}
}

func (s *AccountService) Signup(ctx context.Context, name, email, password string) (*entities.User, error) {
	in := signupInput{
		Name:     strings.TrimSpace(s.policy.Sanitize(name)),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: password,
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, ValidationFailure(err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entities.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("user_id", user.ID).Msg("user signed up")
	return user, nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (string, *entities.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" || len(password) > maxPasswordLength {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

func (s *AccountService) Me(ctx context.Context, userID int64) (*entities.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate resolves a bearer token to the user id it was issued for.
func (s *AccountService) Authenticate(_ context.Context, token string) (int64, error) {
	return s.verifier.Verify(token)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"student-analyzer-be/internal/dto"
	"student-analyzer-be/internal/entity"
	"student-analyzer-be/internal/pkg/logger"
	"student-analyzer-be/internal/pkg/mailer"
	"student-analyzer-be/internal/pkg/serverutils"
	"student-analyzer-be/internal/repository/specification"
	"student-analyzer-be/internal/repository/unitofwork"
	"student-analyzer-be/pkg/events"
	"student-analyzer-be/pkg/store"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var (
	ErrEmailTaken          = errors.New("Email already registered")
	ErrEmailNotFound       = errors.New("Email not found")
	ErrInvalidPassword     = errors.New("Invalid password")
	ErrInvalidEmail        = errors.New("Please enter a valid email address")
	ErrPasswordTooShort    = errors.New("Password must be at least 6 characters long")
	ErrPasswordMismatch    = errors.New("Passwords do not match")
	ErrPasswordComposition = errors.New("Password must contain both letters and numbers")
)

// IEventPublisher is satisfied by pkg/nats.Publisher, including a nil one
type IEventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// ISessionStore holds the in-memory analysis session of each logged-in user
type ISessionStore interface {
	Get(email string) (*store.Session, bool)
	GetOrCreate(email string) *store.Session
	Delete(email string)
}

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, email string) error
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	sessions       ISessionStore
	emailService   mailer.IEmailService
	eventPublisher IEventPublisher
	jwtSecret      string
	tokenTTL       time.Duration
	logger         logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	sessions ISessionStore,
	emailService mailer.IEmailService,
	eventPublisher IEventPublisher,
	jwtSecret string,
	tokenTTL time.Duration,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		sessions:       sessions,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		jwtSecret:      jwtSecret,
		tokenTTL:       tokenTTL,
		logger:         log,
	}
}

// ValidateRegistration applies the sign-up rules in the order users see them
func ValidateRegistration(email, password, confirm string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if password != confirm {
		return ErrPasswordMismatch
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrPasswordComposition
	}
	return nil
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	email := strings.TrimSpace(req.Email)
	if err := ValidateRegistration(email, req.Password, req.ConfirmPassword); err != nil {
		return nil, serverutils.Wrap(serverutils.ErrBadRequest, err)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.AccountRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.Wrap(serverutils.ErrConflict, ErrEmailTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	account := &entity.Account{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := uow.AccountRepository().Create(ctx, account); err != nil {
		return nil, fmt.Errorf("Error creating account: %w", err)
	}

	s.logger.Info("AUTH", "Account created", map[string]interface{}{
		"email": email,
	})

	go func() {
		if err := s.emailService.SendWelcome(email); err != nil {
			s.logger.Warn("AUTH", "Failed to send welcome email", map[string]interface{}{
				"email": email,
				"error": err.Error(),
			})
		}
	}()

	s.publish(ctx, events.New(events.TypeUserRegistered, map[string]interface{}{
		"email": email,
	}))

	return &dto.RegisterResponse{Email: email}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	account, err := uow.AccountRepository().FindOne(ctx, specification.ByEmail{Email: email})
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, serverutils.Wrap(serverutils.ErrUnauthorized, ErrEmailNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("AUTH", "Invalid password", map[string]interface{}{
			"email": email,
		})
		return nil, serverutils.Wrap(serverutils.ErrUnauthorized, ErrInvalidPassword)
	}

	now := time.Now()
	if err := uow.AccountRepository().RecordLogin(ctx, account.Email, now); err != nil {
		return nil, fmt.Errorf("Login error: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	token, err := serverutils.GenerateToken(s.jwtSecret, account.Email, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	s.sessions.GetOrCreate(account.Email)

	s.logger.Info("AUTH", "Login successful", map[string]interface{}{
		"email": account.Email,
		"count": account.LoginCount + 1,
	})
	s.publish(ctx, events.New(events.TypeUserLogin, map[string]interface{}{
		"email": account.Email,
		"time":  now.Format(time.RFC822),
	}))

	stamp := now.Format(time.RFC3339)
	return &dto.LoginResponse{
		AccessToken: token,
		User: dto.AccountDTO{
			Email:            account.Email,
			NoOfTimeLoggedIn: account.LoginCount + 1,
			LatestLoginAt:    &stamp,
		},
	}, nil
}

// Logout drops the session; the stateless token simply stops mattering
func (s *authService) Logout(ctx context.Context, email string) error {
	s.sessions.Delete(email)
	s.logger.Info("AUTH", "Logout", map[string]interface{}{
		"email": email,
	})
	return nil
}

func (s *authService) publish(ctx context.Context, evt events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("AUTH", "Failed to publish event", map[string]interface{}{
			"type":  evt.EventType(),
			"error": err.Error(),
		})
	}
}

package services

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/applyhub/applyhub/internal/apperr"
	"github.com/applyhub/applyhub/internal/auth"
	"github.com/applyhub/applyhub/internal/models"
	"github.com/applyhub/applyhub/internal/repository"
)

const msgInvalidCredentials = "Invalid email or password"

// Session is a signed admin token and when it stops being valid.
type Session struct {
	Admin     *models.Admin
	Token     string
	ExpiresAt time.Time
}

type AdminService struct {
	admins repository.AdminRepository
	issuer *auth.Issuer
	logger *slog.Logger
}

func NewAdminService(admins repository.AdminRepository, issuer *auth.Issuer, logger *slog.Logger) *AdminService {
	return &AdminService{admins: admins, issuer: issuer, logger: loggerOrDefault(logger)}
}

func (s *AdminService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return nil, apperr.New(apperr.CodeUnauthorized, msgInvalidCredentials, nil)
		}
		return nil, internal(s.logger, "find admin", err)
	}
	if !auth.CheckPassword(admin.PasswordHash, password) {
		return nil, apperr.New(apperr.CodeUnauthorized, msgInvalidCredentials, nil)
	}

	token, expires, err := s.issuer.Issue(admin.ID, admin.Email)
	if err != nil {
		return nil, internal(s.logger, "issue token", err)
	}
	s.logger.Info("admin logged in", "admin_id", admin.ID)
	return &Session{Admin: admin, Token: token, ExpiresAt: expires}, nil
}

// Authenticate resolves a session token to the admin it belongs to.
func (s *AdminService) Authenticate(ctx context.Context, token string) (*models.Admin, error) {
	claims, err := s.issuer.Verify(token)
	if err != nil {
		return nil, apperr.New(apperr.CodeUnauthorized, err.Error(), nil)
	}
	admin, err := s.admins.FindByID(ctx, claims.Subject)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return nil, apperr.New(apperr.CodeUnauthorized, "Admin not found", nil)
		}
		return nil, internal(s.logger, "find admin", err)
	}
	return admin, nil
}

func (s *AdminService) Create(ctx context.Context, name, email, password string) (*models.Admin, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)

	var fields []apperr.FieldError
	if name == "" {
		fields = append(fields, apperr.FieldError{Path: "name", Message: "name is required"})
	}
	if _, err := mail.ParseAddress(email); err != nil {
		fields = append(fields, apperr.FieldError{Path: "email", Message: "Please enter a valid email address."})
	}
	if len(password) < auth.MinPasswordLength {
		fields = append(fields, apperr.FieldError{Path: "password", Message: "Password must be at least 8 characters"})
	}
	if len(fields) > 0 {
		return nil, apperr.Validation(fields[0].Message, fields)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, internal(s.logger, "hash password", err)
	}
	admin := &models.Admin{Name: name, Email: email, PasswordHash: hash}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, internal(s.logger, "create admin", err)
	}
	return admin, nil
}

// EnsureAdmin creates the bootstrap admin unless one with that email
// already exists.
func (s *AdminService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}
	if _, err := s.admins.FindByEmail(ctx, normalizeEmail(email)); err == nil {
		return false, nil
	} else if !apperr.Is(err, apperr.CodeNotFound) {
		return false, err
	}
	if name == "" {
		name = "Administrator"
	}
	if _, err := s.Create(ctx, name, email, password); err != nil {
		return false, err
	}
	return true, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

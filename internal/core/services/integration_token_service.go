package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/travel_ledger/internal/apperrors"
	"github.com/SscSPs/travel_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/travel_ledger/internal/core/ports/services"
	"github.com/SscSPs/travel_ledger/internal/dto"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenScheme    = "tl"
	tokenPrefixLen = 12
)

// integrationTokenService implements the IntegrationTokenSvc interface
type integrationTokenService struct {
	BaseService
	tokenRepo portsrepo.IntegrationTokenRepository
}

// NewIntegrationTokenService creates a new integration token service
func NewIntegrationTokenService(tokenRepo portsrepo.IntegrationTokenRepository, authorizer portssvc.TenantAuthorizerSvc) portssvc.IntegrationTokenSvc {
	svc := &integrationTokenService{tokenRepo: tokenRepo}
	svc.TenantAuthorizer = authorizer
	return svc
}

var _ portssvc.IntegrationTokenSvc = (*integrationTokenService)(nil)

// CreateToken generates a new integration token. The plaintext has the form
// tl_<prefix>_<secret>; only the prefix is stored in clear.
func (s *integrationTokenService) CreateToken(ctx context.Context, tenantID string, req dto.CreateIntegrationTokenRequest, userID string) (string, *domain.IntegrationToken, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleAdmin); err != nil {
		return "", nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return "", nil, fmt.Errorf("%w: token name is required", apperrors.ErrValidation)
	}

	prefix, err := generateSecureToken(9)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	prefix = prefix[:tokenPrefixLen]
	secret, err := generateSecureToken(32)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash token: %w", err)
	}

	now := time.Now().UTC()
	var expiresAt *time.Time
	if req.ExpiresIn != nil {
		if *req.ExpiresIn <= 0 {
			return "", nil, fmt.Errorf("%w: expiresIn must be positive", apperrors.ErrValidation)
		}
		expiry := now.Add(*req.ExpiresIn)
		expiresAt = &expiry
	}

	token := domain.IntegrationToken{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		Name:        strings.TrimSpace(req.Name),
		TokenPrefix: prefix,
		TokenHash:   string(hash),
		ExpiresAt:   expiresAt,
		CreatedBy:   userID,
		CreatedAt:   now,
	}
	if err := s.tokenRepo.Create(ctx, token); err != nil {
		s.LogError(ctx, err, "Failed to save integration token", slog.String("tenant_id", tenantID))
		return "", nil, fmt.Errorf("failed to save token: %w", err)
	}

	s.LogInfo(ctx, "Integration token created", slog.String("tenant_id", tenantID), slog.String("token_id", token.ID))
	return fmt.Sprintf("%s_%s_%s", tokenScheme, prefix, secret), &token, nil
}

// ListTokens returns the tokens of a tenant
func (s *integrationTokenService) ListTokens(ctx context.Context, tenantID, userID string) ([]domain.IntegrationToken, error) {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	tokens, err := s.tokenRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	return tokens, nil
}

// RevokeToken revokes a token of the tenant
func (s *integrationTokenService) RevokeToken(ctx context.Context, tenantID, tokenID, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, tenantID, domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.tokenRepo.Revoke(ctx, tenantID, tokenID, time.Now().UTC()); err != nil {
		return err
	}
	s.LogInfo(ctx, "Integration token revoked", slog.String("tenant_id", tenantID), slog.String("token_id", tokenID))
	return nil
}

// ValidateToken checks a plaintext token and returns its record
func (s *integrationTokenService) ValidateToken(ctx context.Context, raw string) (*domain.IntegrationToken, error) {
	parts := strings.SplitN(raw, "_", 3)
	if len(parts) != 3 || parts[0] != tokenScheme || len(parts[1]) != tokenPrefixLen || parts[2] == "" {
		return nil, fmt.Errorf("%w: malformed integration token", apperrors.ErrForbidden)
	}

	token, err := s.tokenRepo.FindByPrefix(ctx, parts[1])
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown integration token", apperrors.ErrForbidden)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(token.TokenHash), []byte(parts[2])); err != nil {
		return nil, fmt.Errorf("%w: invalid integration token", apperrors.ErrForbidden)
	}

	now := time.Now().UTC()
	if !token.IsUsable(now) {
		return nil, fmt.Errorf("%w: integration token revoked or expired", apperrors.ErrForbidden)
	}

	if err := s.tokenRepo.TouchLastUsed(ctx, token.ID, now); err != nil {
		s.LogError(ctx, err, "Failed to update token last used", slog.String("token_id", token.ID))
	}
	return token, nil
}

// generateSecureToken returns n random bytes, URL-safe encoded without
// padding or underscores so the token splits cleanly.
func generateSecureToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return strings.ReplaceAll(base64.RawURLEncoding.EncodeToString(b), "_", "-"), nil
}

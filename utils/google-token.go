package utils

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"

	"google.golang.org/api/idtoken"

	apperrors "tasklist-project/backend/errors"
	"tasklist-project/backend/logging"
	"tasklist-project/backend/models"
)

// GoogleTokenVerifier verifies Google-issued ID tokens against the configured
// OAuth client id.
type GoogleTokenVerifier struct {
	Audience string
}

func NewGoogleTokenVerifier(audience string) *GoogleTokenVerifier {
	return &GoogleTokenVerifier{Audience: audience}
}

// Verify checks the token signature and audience and extracts the identity
// claims the resolver needs.
func (v *GoogleTokenVerifier) Verify(ctx context.Context, credential string) (*models.GoogleClaims, error) {
	if v.Audience == "" {
		logging.Logger.Error("Event ID: VERIFY_TOKEN_AUDIENCE_MISSING, Description: GOOGLE_CLIENT_ID is not configured.")
		return nil, fmt.Errorf("google client id is not configured")
	}

	payload, err := idtoken.Validate(ctx, credential, v.Audience)
	if err != nil {
		if isUnreachable(err) {
			return nil, fmt.Errorf("%w: certificate fetch failed: %v", apperrors.ErrDependencyUnavailable, err)
		}
		return nil, fmt.Errorf("token validation failed: %v", err)
	}

	claims := &models.GoogleClaims{
		Subject: payload.Subject,
		Email:   stringClaim(payload.Claims, "email"),
		Name:    stringClaim(payload.Claims, "name"),
		Picture: stringClaim(payload.Claims, "picture"),
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, fmt.Errorf("token payload is missing identity claims")
	}
	return claims, nil
}

// isUnreachable separates transport failures, which are retryable, from a
// rejected token. Validate fetches Google's signing certificates over HTTP,
// so network errors surface here.
func isUnreachable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

func stringClaim(claims map[string]interface{}, key string) string {
	value, _ := claims[key].(string)
	return value
}

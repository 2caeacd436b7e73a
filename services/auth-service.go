package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sony/gobreaker"

	apperrors "tasklist-project/backend/errors"
	"tasklist-project/backend/logging"
	"tasklist-project/backend/models"
)

// TokenVerifier checks an external identity assertion cryptographically and
// against the expected audience, returning its verified claims. Errors that
// wrap ErrDependencyUnavailable mean the provider could not be reached; any
// other error means the assertion itself was rejected.
type TokenVerifier interface {
	Verify(ctx context.Context, credential string) (*models.GoogleClaims, error)
}

// verifyOutcome carries a verification result through the breaker so that a
// rejected token reads as a completed call rather than a provider failure.
type verifyOutcome struct {
	claims *models.GoogleClaims
	err    error
}

// AuthService resolves external identity assertions to local user records.
type AuthService struct {
	userStore UserStore
	verifier  TokenVerifier
	breaker   *gobreaker.CircuitBreaker
}

func NewAuthService(userStore UserStore, verifier TokenVerifier, breaker *gobreaker.CircuitBreaker) *AuthService {
	return &AuthService{
		userStore: userStore,
		verifier:  verifier,
		breaker:   breaker,
	}
}

// AuthenticateGoogle verifies the assertion and returns the matching local
// user, creating one on first sight and refreshing email, name and picture on
// every later sign-in. The refresh write is issued even when nothing changed.
func (s *AuthService) AuthenticateGoogle(ctx context.Context, credential string) (*models.User, error) {
	if credential == "" {
		return nil, apperrors.Validation("credential is required")
	}

	// Only provider outages count as breaker failures; a rejected token is
	// the caller's problem and must not shut out everyone else.
	result, err := s.breaker.Execute(func() (interface{}, error) {
		claims, verr := s.verifier.Verify(ctx, credential)
		if verr != nil && !errors.Is(verr, apperrors.ErrDependencyUnavailable) {
			return verifyOutcome{err: verr}, nil
		}
		return verifyOutcome{claims: claims}, verr
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			logging.Logger.Warnf("Event ID: AUTH_PROVIDER_BREAKER_OPEN, Description: Identity verification short-circuited: %v", err)
		} else {
			logging.Logger.Warnf("Event ID: AUTH_PROVIDER_UNREACHABLE, Description: Identity provider could not be reached: %v", err)
		}
		return nil, fmt.Errorf("%w: identity provider unavailable", apperrors.ErrDependencyUnavailable)
	}
	outcome := result.(verifyOutcome)
	if outcome.err != nil {
		logging.Logger.Warnf("Event ID: AUTH_TOKEN_INVALID, Description: Google token verification failed: %v", outcome.err)
		return nil, fmt.Errorf("%w: invalid or expired Google token", apperrors.ErrAuthentication)
	}
	claims := outcome.claims

	user, err := s.userStore.FindByGoogleID(ctx, claims.Subject)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if user == nil || errors.Is(err, apperrors.ErrNotFound) {
		user = &models.User{
			GoogleID: claims.Subject,
			Email:    models.NormalizeEmail(claims.Email),
			Name:     claims.Name,
			Picture:  claims.Picture,
			// Role is configured on first login.
		}
		if err := s.userStore.Insert(ctx, user); err != nil {
			return nil, err
		}
		logging.Logger.Infof("Event ID: USER_CREATED, Description: New user created for Google subject %s", claims.Subject)
		return user, nil
	}

	user.Email = models.NormalizeEmail(claims.Email)
	user.Name = claims.Name
	if claims.Picture != "" {
		user.Picture = claims.Picture
	}
	if err := s.userStore.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

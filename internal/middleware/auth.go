package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUserNotFound is returned by UserResolver when no user matches the given Cognito sub
// and none could be provisioned.
var ErrUserNotFound = errors.New("user not found")

// Token rejections. The message doubles as the client-facing error text.
var (
	errMissingAuth   = errors.New("authorization header required")
	errMalformedAuth = errors.New("invalid authorization header format")
	errInvalidToken  = errors.New("invalid or expired token")
	errNotIDToken    = errors.New("id token required")
	errMissingSub    = errors.New("sub claim not found")
)

// Endpoints reachable without credentials: load balancer probes and scrapes.
var publicPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// UserResolver resolves a Cognito sub claim to a database user ID.
// Implementations must return ErrUserNotFound (or a wrapped form) when the user does not exist.
type UserResolver interface {
	ResolveUserID(ctx context.Context, cognitoSub string) (string, error)
}

type AuthConfig struct {
	DevMode      bool
	JWKSClient   *JWKSClient
	Issuer       string
	AppClientID  string
	UserResolver UserResolver
}

type Auth struct {
	cfg    AuthConfig
	parser *jwt.Parser
}

// cognitoClaims is the subset of a Cognito ID token the API relies on.
type cognitoClaims struct {
	TokenUse string `json:"token_use"`
	jwt.RegisteredClaims
}

func NewAuth(cfg AuthConfig) (*Auth, error) {
	if !cfg.DevMode {
		if cfg.UserResolver == nil {
			return nil, fmt.Errorf("middleware: UserResolver is required when DevMode is false")
		}
		if cfg.JWKSClient == nil {
			return nil, fmt.Errorf("middleware: JWKSClient is required when DevMode is false")
		}
	}
	return &Auth{
		cfg: cfg,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{"RS256"}),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithAudience(cfg.AppClientID),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if publicPaths[path.Clean(r.URL.Path)] {
			next.ServeHTTP(w, r)
			return
		}

		var (
			userID string
			err    error
		)
		if a.cfg.DevMode {
			userID = r.Header.Get("X-User-ID")
			if userID == "" {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "X-User-ID header required in dev mode")
				return
			}
		} else {
			userID, err = a.authenticate(r)
			if err != nil {
				a.reject(w, r, err)
				return
			}
		}

		next.ServeHTTP(w, r.WithContext(SetUserID(r.Context(), userID)))
	})
}

// authenticate verifies the bearer token and maps its subject to a user id.
func (a *Auth) authenticate(r *http.Request) (string, error) {
	raw, err := bearerToken(r.Header.Get("Authorization"))
	if err != nil {
		return "", err
	}

	sub, err := a.verify(r.Context(), raw)
	if err != nil {
		return "", err
	}

	return a.cfg.UserResolver.ResolveUserID(r.Context(), sub)
}

func (a *Auth) verify(ctx context.Context, raw string) (string, error) {
	var claims cognitoClaims
	token, err := a.parser.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		kid, ok := token.Header["kid"].(string)
		if !ok {
			return nil, fmt.Errorf("kid header not found")
		}
		return a.cfg.JWKSClient.GetKey(ctx, kid)
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", errInvalidToken, err)
	}
	// Only id tokens carry the user's identity claims.
	if claims.TokenUse != "" && claims.TokenUse != "id" {
		return "", errNotIDToken
	}
	if claims.Subject == "" {
		return "", errMissingSub
	}
	return claims.Subject, nil
}

// bearerToken extracts the credentials from an Authorization header. The
// scheme name is case-insensitive.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingAuth
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errMalformedAuth
	}
	return strings.TrimSpace(token), nil
}

func (a *Auth) reject(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	switch {
	case errors.Is(err, ErrUserNotFound):
		writeUnauthorized(w, ErrUserNotFound.Error())
	case errors.Is(err, errMissingAuth), errors.Is(err, errMalformedAuth),
		errors.Is(err, errNotIDToken), errors.Is(err, errMissingSub):
		writeUnauthorized(w, err.Error())
	case errors.Is(err, errInvalidToken):
		slog.DebugContext(ctx, "token rejected",
			"error", err,
			"request_id", RequestIDFromContext(ctx),
		)
		writeUnauthorized(w, errInvalidToken.Error())
	default:
		slog.ErrorContext(ctx, "user resolution failed",
			"error", err,
			"request_id", RequestIDFromContext(ctx),
		)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="dailytasker"`)
	writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// CognitoJWKSURL returns the JWKS URL for the given Cognito User Pool.
func CognitoJWKSURL(region, userPoolID string) string {
	return CognitoIssuer(region, userPoolID) + "/.well-known/jwks.json"
}

// CognitoIssuer returns the expected issuer for the given Cognito User Pool.
func CognitoIssuer(region, userPoolID string) string {
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", region, userPoolID)
}

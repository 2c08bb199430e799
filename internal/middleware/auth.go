package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"
	"github.com/nexiumfounders/subsplit/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// OperatorIDKey is the context key for storing the authenticated operator ID.
	OperatorIDKey contextKey = "operator_id"
	// EmailKey is the context key for storing the authenticated operator's email.
	EmailKey contextKey = "email"
	// RequestIDKey is the context key for the per-call request ID.
	RequestIDKey contextKey = "request_id"
)

// GetOperatorID extracts the operator ID from the context.
// Returns empty string if not found.
func GetOperatorID(ctx context.Context) string {
	id, _ := ctx.Value(OperatorIDKey).(string)
	return id
}

// GetEmail extracts the operator email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// RequireAuth returns a middleware that validates JWT tokens and requires authentication.
// Procedures listed in public skip the check (e.g. GetSummary for read-only
// dashboards). The operator ID and email are added to the request context.
func RequireAuth(jwtManager *auth.JWTManager, public ...string) connect.UnaryInterceptorFunc {
	open := make(map[string]bool, len(public))
	for _, p := range public {
		open[p] = true
	}
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if open[req.Spec().Procedure] {
				return next(ctx, req)
			}

			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			tokenString, ok := bearerToken(authHeader)
			if !ok {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(withClaims(ctx, claims), req)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func withClaims(ctx context.Context, claims *auth.Claims) context.Context {
	ctx = context.WithValue(ctx, OperatorIDKey, claims.OperatorID)
	return context.WithValue(ctx, EmailKey, claims.Email)
}

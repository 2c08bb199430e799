package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/nexiumfounders/subsplit/internal/metrics"
)

// RequestIDHeader carries the request ID back to the caller.
const RequestIDHeader = "X-Request-Id"

// GetRequestID extracts the request ID from the context.
// Returns empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// LoggingInterceptor returns a Connect interceptor that logs every RPC call
// and records it in m (which may be nil). A caller-supplied X-Request-Id is
// reused, otherwise a new one is generated; it is echoed in the response
// headers and attached to the context.
func LoggingInterceptor(m *metrics.Metrics) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure
			operatorID := GetOperatorID(ctx) // empty if pre-auth

			requestID := req.Header().Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			ctx = context.WithValue(ctx, RequestIDKey, requestID)

			resp, err := next(ctx, req)

			elapsed := time.Since(start)
			duration := elapsed.Milliseconds()
			code := "ok"
			if err != nil {
				var connectErr *connect.Error
				if errors.As(err, &connectErr) {
					code = connectErr.Code().String()
					connectErr.Meta().Set(RequestIDHeader, requestID)
					slog.Warn("RPC error",
						"procedure", procedure,
						"code", connectErr.Code(),
						"error", connectErr.Message(),
						"request_id", requestID,
						"operator_id", operatorID,
						"duration_ms", duration,
					)
				} else {
					code = connect.CodeUnknown.String()
					slog.Error("RPC error",
						"procedure", procedure,
						"error", err,
						"request_id", requestID,
						"operator_id", operatorID,
						"duration_ms", duration,
					)
				}
			} else {
				resp.Header().Set(RequestIDHeader, requestID)
				slog.Info("RPC ok",
					"procedure", procedure,
					"request_id", requestID,
					"operator_id", operatorID,
					"duration_ms", duration,
				)
			}
			m.ObserveRPC(procedure, code, elapsed)

			return resp, err
		}
	}
}

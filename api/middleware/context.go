package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/dealerdesk/dealerdesk-backend/pkg/logger"
)

type contextKey string

const ctxBranchID contextKey = "branch_id"

const branchIDHeader = "X-DealerDesk-Branch"

// BranchIDFromContext returns the branch scope for the request, or zero
// when the caller did not scope to a branch.
func BranchIDFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(ctxBranchID).(int64); ok {
		return v
	}
	return 0
}

// WithBranchID injects the branch identifier into the context.
func WithBranchID(ctx context.Context, branchID int64) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxBranchID, branchID)
}

// BranchScope reads the optional branch header and threads the branch id
// through the request context and log fields. Malformed values are ignored.
func BranchScope(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(branchIDHeader))
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}
			branchID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || branchID <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			ctx := WithBranchID(r.Context(), branchID)
			if logg != nil {
				ctx = logg.WithBranchID(ctx, branchID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

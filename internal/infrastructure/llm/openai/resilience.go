package openai

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/radicado-io/petition-classifier/internal/core/domain"
)

// oracleBreaker fails fast while the oracle is persistently unhealthy. It is
// not a retry mechanism: each classification still issues at most one call,
// and an open breaker surfaces as a transport failure the caller may retry.
type oracleBreaker struct {
	cb *gobreaker.CircuitBreaker[any]
}

func newOracleBreaker() *oracleBreaker {
	settings := gobreaker.Settings{
		Name:        "oracle-classify",
		MaxRequests: 2,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !recordsFailure(err)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("circuit_breaker_state_change", "operation", name, "from", from.String(), "to", to.String())
		},
	}
	return &oracleBreaker{cb: gobreaker.NewCircuitBreaker[any](settings)}
}

func (b *oracleBreaker) execute(fn func() error) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, fn()
	})
	return err
}

// recordsFailure decides which errors count against the breaker: network
// trouble and server-side statuses do, caller cancellation and client-side
// statuses do not.
func recordsFailure(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusRequestTimeout, http.StatusTooManyRequests,
			http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

func wrapTransportError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if domain.IsKind(err, domain.ErrMalformedVerdict) {
		return err
	}
	return domain.WrapError(domain.ErrOracleTransport, operation, err)
}

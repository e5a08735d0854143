package circuitbreaker

import (
	"time"

	"github.com/sony/gobreaker/v2"
)

// CreateCircuitBreaker builds the breaker guarding the image service call.
// Image generation is slow and billed per request, so the breaker trips
// early and waits a full minute before probing again.
func CreateCircuitBreaker(name string) *gobreaker.CircuitBreaker[[]byte] {
	var st gobreaker.Settings
	st.Name = name
	st.Timeout = time.Minute
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= 3 && failureRatio >= 0.6
	}

	cb := gobreaker.NewCircuitBreaker[[]byte](st)

	return cb
}

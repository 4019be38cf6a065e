package obs

import (
	"time"

	"trip-itinerary-service/internal/platform/logger"
)

// Time measures an operation's duration and logs it on return, attaching
// the error if the deferred pointer holds one.
//
// Usage: defer obs.Time(log, "ors.Matrix")(&err)
func Time(log *logger.Logger, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Warn("operation failed", "op", name, "dur_ms", dur.Milliseconds(), "err", *errp)
			return
		}
		log.Debug("operation done", "op", name, "dur_ms", dur.Milliseconds())
	}
}

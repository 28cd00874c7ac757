package timerservice

import (
	"strconv"
	"sync"

	"github.com/rs/zerolog"
)

// resolutionHintKey is the hint that configures for the system timer-resolution
// request.
const resolutionHintKey = "TIMER_RESOLUTION"

// resolutionController subscribes to the TIMER_RESOLUTION hint and installs
// or revokes an OS timer-resolution request as it changes.
// Failures from the platform call are tolerated silently (best effort);
// they are only logged, at Debug.
type resolutionController struct {
	mu          sync.Mutex
	installedMS int
	unsubscribe func()
	log         *zerolog.Logger
}

func newResolutionController(hints HintSource, log *zerolog.Logger) *resolutionController {
	c := &resolutionController{log: log}

	apply := func(value string) {
		period := 1
		if value != "" {
			if p, err := strconv.Atoi(value); err == nil {
				period = p
			}
		}
		c.apply(period)
	}

	if v, ok := hints.Get(resolutionHintKey); ok {
		apply(v)
	} else {
		apply("")
	}
	c.unsubscribe = hints.Subscribe(resolutionHintKey, apply)

	return c
}

// apply installs period (milliseconds) as the new resolution request,
// revoking any prior request first. period == 0 means "no request".
func (c *resolutionController) apply(period int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if period == c.installedMS {
		return
	}

	if c.installedMS != 0 {
		if err := revokeSystemTimerResolution(c.installedMS); err != nil && c.log != nil {
			c.log.Debug().Err(err).Int("period_ms", c.installedMS).Msg("timer resolution revoke failed")
		}
		c.installedMS = 0
	}

	if period != 0 {
		if err := installSystemTimerResolution(period); err != nil {
			if c.log != nil {
				c.log.Debug().Err(err).Int("period_ms", period).Msg("timer resolution install failed")
			}
			return
		}
		c.installedMS = period
	}
}

// close revokes any outstanding resolution request and stops observing the
// hint, always revoking the final request at shutdown.
func (c *resolutionController) close() {
	c.unsubscribe()
	c.apply(0)
}

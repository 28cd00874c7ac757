//go:build !windows

package timerservice

// installSystemTimerResolution is a no-op on platforms without a
// multimedia-timer-style resolution request, a "best effort"
// contract (period is still tracked by resolutionController so repeated
// identical hints don't re-invoke this).
func installSystemTimerResolution(periodMS int) error {
	return nil
}

// revokeSystemTimerResolution is a no-op to match installSystemTimerResolution.
func revokeSystemTimerResolution(periodMS int) error {
	return nil
}

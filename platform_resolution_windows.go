//go:build windows

package timerservice

import "golang.org/x/sys/windows"

// winmm is the multimedia timer DLL; timeBeginPeriod/timeEndPeriod aren't
// wrapped by x/sys/windows itself, so the call is made the way the package
// expects callers to reach un-wrapped Win32 APIs: through its own
// NewLazySystemDLL/NewProc loader, the same dynamic-binding mechanism
// x/sys/windows uses internally for its own syscalls.
var (
	winmm               = windows.NewLazySystemDLL("winmm.dll")
	procTimeBeginPeriod = winmm.NewProc("timeBeginPeriod")
	procTimeEndPeriod   = winmm.NewProc("timeEndPeriod")
)

// installSystemTimerResolution requests a multimedia timer period of
// periodMS milliseconds via timeBeginPeriod.
func installSystemTimerResolution(periodMS int) error {
	r, _, err := procTimeBeginPeriod.Call(uintptr(periodMS))
	return callResult(r, err)
}

// revokeSystemTimerResolution releases a previously installed request via
// timeEndPeriod.
func revokeSystemTimerResolution(periodMS int) error {
	r, _, err := procTimeEndPeriod.Call(uintptr(periodMS))
	return callResult(r, err)
}

// callResult converts winmm's MMRESULT return convention (0 == success)
// into an error.
func callResult(r uintptr, callErr error) error {
	if r == 0 {
		return nil
	}
	return callErr
}

package timerservice

import "testing"

func TestFastStateInitialAwake(t *testing.T) {
	s := newFastState()
	if got := s.Load(); got != stateAwake {
		t.Fatalf("Load() = %v, want Awake", got)
	}
}

func TestFastStateTryTransition(t *testing.T) {
	s := newFastState()
	if !s.TryTransition(stateAwake, stateRunning) {
		t.Fatal("TryTransition(Awake, Running) should succeed")
	}
	if s.TryTransition(stateAwake, stateRunning) {
		t.Fatal("TryTransition(Awake, Running) should fail once already Running")
	}
	if got := s.Load(); got != stateRunning {
		t.Fatalf("Load() = %v, want Running", got)
	}
}

func TestFastStateIsTerminal(t *testing.T) {
	s := newFastState()
	if s.IsTerminal() {
		t.Fatal("fresh state should not be terminal")
	}
	s.Store(stateTerminated)
	if !s.IsTerminal() {
		t.Fatal("state after Store(Terminated) should be terminal")
	}
}

func TestLifecycleStateString(t *testing.T) {
	cases := map[lifecycleState]string{
		stateAwake:       "Awake",
		stateRunning:     "Running",
		stateTerminating: "Terminating",
		stateTerminated:  "Terminated",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Fatalf("%v.String() = %q, want %q", state, got, want)
		}
	}
}

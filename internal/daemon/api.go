// Package daemon describes the scripting surface exposed by the jsprog
// runtime daemon: the global functions and variables available to the
// code compiled from a profile, and the shape of the payload document.
package daemon

import (
	"fmt"
	"sort"
)

// Global functions installed by the daemon into every script state.
const (
	FnDelay               = "jsprog_delay"
	FnIsKeyPressed        = "jsprog_iskeypressed"
	FnGetAbs              = "jsprog_getabs"
	FnGetAbsMin           = "jsprog_getabsmin"
	FnGetAbsMax           = "jsprog_getabsmax"
	FnPressKey            = "jsprog_presskey"
	FnReleaseKey          = "jsprog_releasekey"
	FnMoveRel             = "jsprog_moverel"
	FnCancelPrevious      = "jsprog_cancelprevious"
	FnCancelPreviousOfKey = "jsprog_cancelpreviousofkey"
	FnCancelAll           = "jsprog_cancelall"
	FnCancelAllOfKey      = "jsprog_cancelallofkey"
	FnCancelAllOfJoystick = "jsprog_cancelallofjoystick"
)

// Prefix is shared by every name the daemon defines. Names the daemon
// derives from key and axis names (jsprog_KEY_A) carry it as well.
const Prefix = "jsprog_"

// ValueVar is the global holding the value of the control event being
// handled.
const ValueVar = "value"

// Relative axis codes accepted by FnMoveRel.
const (
	RelX     = 0x00
	RelY     = 0x01
	RelWheel = 0x08
)

// Signature is the number of arguments a daemon function accepts.
type Signature struct {
	MinArgs int
	MaxArgs int
}

var functions = map[string]Signature{
	FnDelay:               {1, 1},
	FnIsKeyPressed:        {1, 1},
	FnGetAbs:              {1, 1},
	FnGetAbsMin:           {1, 1},
	FnGetAbsMax:           {1, 1},
	FnPressKey:            {1, 1},
	FnReleaseKey:          {1, 1},
	FnMoveRel:             {2, 2},
	FnCancelPrevious:      {0, 0},
	FnCancelPreviousOfKey: {1, 1},
	FnCancelAll:           {0, 0},
	FnCancelAllOfKey:      {1, 1},
	FnCancelAllOfJoystick: {0, 0},
}

// Lookup returns the signature of the named daemon function.
func Lookup(name string) (Signature, bool) {
	sig, ok := functions[name]
	return sig, ok
}

// Functions returns the names of all daemon functions, sorted.
func Functions() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Accepts returns true if n arguments are acceptable for the signature.
func (s Signature) Accepts(n int) bool {
	return n >= s.MinArgs && n <= s.MaxArgs
}

// String describes the accepted argument count, e.g. "2 arguments".
func (s Signature) String() string {
	switch {
	case s.MinArgs == s.MaxArgs && s.MinArgs == 1:
		return "1 argument"
	case s.MinArgs == s.MaxArgs:
		return fmt.Sprintf("%d arguments", s.MinArgs)
	default:
		return fmt.Sprintf("%d to %d arguments", s.MinArgs, s.MaxArgs)
	}
}

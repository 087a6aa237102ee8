package hexanim

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
)

// Easing transforms linear progress t in [0, 1] into eased progress.
type Easing func(t float64) float64

// ErrUnknownEasing is returned when an animation names
// a curve which is not registered.
var ErrUnknownEasing = errors.New("unknown easing")

// HexagonEasing is the default name, registered to EaseInOutCubic.
const HexagonEasing = "hexagonEasing"

// LinearCurve returns linear progress (no easing).
func LinearCurve(t float64) float64 { return t }

// EaseInOutCubic starts and ends slowly, with a cubic acceleration.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// Swing is a cosine ease in-out.
func Swing(t float64) float64 {
	return 0.5 - math.Cos(t*math.Pi)/2
}

var (
	curvesMu sync.RWMutex
	curves   = map[string]Easing{
		HexagonEasing:    EaseInOutCubic,
		"easeInOutCubic": EaseInOutCubic,
		"linear":         LinearCurve,
		"swing":          Swing,
	}
)

// RegisterEasing makes a curve available by name.
// An existing curve with the same name is replaced.
func RegisterEasing(name string, curve Easing) {
	curvesMu.Lock()
	defer curvesMu.Unlock()
	curves[name] = curve
}

// LookupEasing returns the curve registered under name.
// The error wraps ErrUnknownEasing.
func LookupEasing(name string) (Easing, error) {
	curvesMu.RLock()
	defer curvesMu.RUnlock()
	curve, ok := curves[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownEasing, name)
	}
	return curve, nil
}

// Easings returns the sorted names of the registered curves.
func Easings() []string {
	curvesMu.RLock()
	defer curvesMu.RUnlock()
	out := make([]string, 0, len(curves))
	for name := range curves {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

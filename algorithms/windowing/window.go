package windowing

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type names a window function.
type Type string

const (
	TypeHann        Type = "hann"
	TypeHamming     Type = "hamming"
	TypeBlackman    Type = "blackman"
	TypeRectangular Type = "rectangular"
)

// ParseType resolves a window name. The empty string selects Hann.
func ParseType(name string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(name))); t {
	case "":
		return TypeHann, nil
	case TypeHann, TypeHamming, TypeBlackman, TypeRectangular:
		return t, nil
	case "boxcar", "none":
		return TypeRectangular, nil
	default:
		return "", fmt.Errorf("unknown window type %q", name)
	}
}

// Window holds precomputed coefficients for one window function and size.
//
// Periodic windows (denominator N) are the right choice for spectral analysis
// and match scipy.signal.get_window(fftbins=True); symmetric windows use N-1.
type Window struct {
	typ          Type
	size         int
	symmetric    bool
	coefficients []float64
}

// New creates a window of the given type and size.
func New(typ Type, size int, symmetric bool) (*Window, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size must be > 0: %d", size)
	}

	w := &Window{
		typ:       typ,
		size:      size,
		symmetric: symmetric,
	}
	if err := w.generate(); err != nil {
		return nil, err
	}
	return w, nil
}

// NewHann creates a Hann window
func NewHann(size int, symmetric bool) (*Window, error) {
	return New(TypeHann, size, symmetric)
}

func (w *Window) generate() error {
	w.coefficients = make([]float64, w.size)

	if w.size == 1 {
		w.coefficients[0] = 1
		return nil
	}

	denominator := float64(w.size)
	if w.symmetric {
		denominator = float64(w.size - 1)
	}

	for i := range w.size {
		phase := 2 * math.Pi * float64(i) / denominator
		switch w.typ {
		case TypeHann:
			w.coefficients[i] = 0.5 * (1.0 - math.Cos(phase))
		case TypeHamming:
			w.coefficients[i] = 0.54 - 0.46*math.Cos(phase)
		case TypeBlackman:
			w.coefficients[i] = 0.42 - 0.5*math.Cos(phase) + 0.08*math.Cos(2*phase)
		case TypeRectangular:
			w.coefficients[i] = 1
		default:
			return fmt.Errorf("unknown window type %q", w.typ)
		}
	}

	return nil
}

// Apply applies the window to a signal (creates new array)
func (w *Window) Apply(signal []float64) ([]float64, error) {
	if len(signal) != w.size {
		return nil, fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), w.size)
	}

	windowed := make([]float64, w.size)
	vecmath.MulBlock(windowed, signal, w.coefficients)
	return windowed, nil
}

// ApplyInPlace applies the window to a signal in-place
func (w *Window) ApplyInPlace(signal []float64) error {
	if len(signal) != w.size {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), w.size)
	}

	vecmath.MulBlockInPlace(signal, w.coefficients)
	return nil
}

// Coefficients returns a copy of the window coefficients
func (w *Window) Coefficients() []float64 {
	coeffs := make([]float64, len(w.coefficients))
	copy(coeffs, w.coefficients)
	return coeffs
}

// Size returns the window size
func (w *Window) Size() int {
	return w.size
}

// Type returns the window type
func (w *Window) Type() Type {
	return w.typ
}

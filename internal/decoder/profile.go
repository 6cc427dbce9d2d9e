package decoder

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Modulation identifies how the demodulator slices pulses into bits.
type Modulation int

const (
	// OOKPulsePWM is on-off keyed pulse width modulation.
	OOKPulsePWM Modulation = iota + 1
	// FSKPulsePWM is frequency shift keyed pulse width modulation.
	FSKPulsePWM
)

func (m Modulation) String() string {
	switch m {
	case OOKPulsePWM:
		return "OOK_PWM"
	case FSKPulsePWM:
		return "FSK_PWM"
	default:
		return "unknown"
	}
}

// Profile parameterizes the pulse demodulator feeding a decoder. Widths are
// consumed by the demodulator only; decoders never look at them.
type Profile struct {
	Name        string
	Description string
	Modulation  Modulation
	ShortWidth  time.Duration
	LongWidth   time.Duration
	GapLimit    time.Duration
	ResetLimit  time.Duration
	// Tolerance of zero makes the demodulator split short and long pulses
	// at their midpoint.
	Tolerance time.Duration
	Fields    []string
}

// Validate checks the timing windows are usable.
func (p Profile) Validate() error {
	if p.Name == "" {
		return errors.New("profile name is required")
	}
	if p.Modulation != OOKPulsePWM && p.Modulation != FSKPulsePWM {
		return fmt.Errorf("profile %s: unsupported modulation %d", p.Name, p.Modulation)
	}
	if p.ShortWidth <= 0 || p.LongWidth <= p.ShortWidth {
		return fmt.Errorf("profile %s: short width %v must be positive and below long width %v", p.Name, p.ShortWidth, p.LongWidth)
	}
	if p.GapLimit <= 0 || p.ResetLimit <= p.GapLimit {
		return fmt.Errorf("profile %s: gap limit %v must be positive and below reset limit %v", p.Name, p.GapLimit, p.ResetLimit)
	}
	if p.Tolerance < 0 {
		return fmt.Errorf("profile %s: negative tolerance %v", p.Name, p.Tolerance)
	}
	return nil
}

// Threshold returns the pulse width separating short from long pulses.
func (p Profile) Threshold() time.Duration {
	if p.Tolerance == 0 {
		return (p.ShortWidth + p.LongWidth) / 2
	}
	return p.ShortWidth + p.Tolerance
}

// FlexSpec renders the profile as an rtl_433 flex decoder argument.
func (p Profile) FlexSpec() string {
	parts := []string{
		"n=" + p.Name,
		"m=" + p.Modulation.String(),
		fmt.Sprintf("s=%d", p.ShortWidth.Microseconds()),
		fmt.Sprintf("l=%d", p.LongWidth.Microseconds()),
		fmt.Sprintf("r=%d", p.ResetLimit.Microseconds()),
		fmt.Sprintf("g=%d", p.GapLimit.Microseconds()),
	}
	if p.Tolerance > 0 {
		parts = append(parts, fmt.Sprintf("t=%d", p.Tolerance.Microseconds()))
	}
	return strings.Join(parts, ",")
}

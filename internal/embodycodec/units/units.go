// Package units tags attribute descriptors with the physical unit their
// scaled value is expressed in. Units carry no behavior of their own;
// the attribute registry owns the factor/offset conversion.
package units

// Unit identifies the physical quantity a Scalar attribute value is
// expressed in.
type Unit uint8

const (
	None Unit = iota
	Percent
	BPM
	Millisecond
	Celsius
	BreathsPerMinute
	Count
)

func (u Unit) String() string {
	switch u {
	case Percent:
		return "%"
	case BPM:
		return "bpm"
	case Millisecond:
		return "ms"
	case Celsius:
		return "°C"
	case BreathsPerMinute:
		return "breaths/min"
	case Count:
		return "count"
	default:
		return ""
	}
}

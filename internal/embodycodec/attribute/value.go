// Package attribute implements the attribute/value sub-codec: a static
// id -> descriptor registry, generalized from message-type requirements
// to attribute widths, over a sum-type Value generalized here to an
// interface with one concrete type per kind since attribute values span
// scalars, strings, and a dozen packed structs.
package attribute

import (
	"github.com/danmuck/edgectl/internal/embodycodec/enums"
	"github.com/danmuck/edgectl/internal/embodycodec/units"
)

// Value is implemented by every concrete attribute value kind. It carries
// no behavior; type switches at call sites recover the concrete shape.
type Value interface {
	isAttributeValue()
}

// Scalar is a unit-tagged physical quantity: wire integer w decodes to
// Physical = Offset + w*Factor. Most simple numeric
// attributes (battery level, heart rate, temperature, ...) decode to
// this shape.
type Scalar struct {
	Physical float64
	Unit     units.Unit
}

func (Scalar) isAttributeValue() {}

// Bool is a one-byte 0/1 flag attribute.
type Bool bool

func (Bool) isAttributeValue() {}

// Str is a context-width ASCII string attribute (Model, Vendor): its
// width is supplied by the caller, not the registry.
type Str string

func (Str) isAttributeValue() {}

// CommaList is SystemStatusNames: a context-width, comma-joined list of
// active status flag names.
type CommaList []string

func (CommaList) isAttributeValue() {}

// Int64 is a raw signed integer identifier or timestamp attribute
// (serial number, Bluetooth MAC, current time) that carries no physical
// unit and must not be scaled.
type Int64 int64

func (Int64) isAttributeValue() {}

// SleepModeValue wraps the device's bounded sleep-state enumeration
// rather than exposing it as an unlabeled Scalar.
type SleepModeValue enums.SleepMode

func (SleepModeValue) isAttributeValue() {}

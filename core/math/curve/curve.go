package curve

import (
	"encoding"
	"errors"
	"math/big"

	"github.com/cronokirby/saferith"
)

var (
	// ErrScalarOutOfRange is returned when an externally supplied secret
	// scalar falls outside [1, n-1] for the group order n.
	ErrScalarOutOfRange = errors.New("curve: scalar outside [1, n-1]")

	// ErrInvalidPoint is returned when affine coordinates do not describe a
	// point on the curve.
	ErrInvalidPoint = errors.New("curve: coordinates not on curve")
)

// Curve represents the starting point for working with a prime-order
// elliptic-curve group.
//
// The expectation is that this interface will be implemented by a
// concrete curve type, like Secp256k1, wrapping a constant-time backend.
type Curve interface {
	// NewPoint creates an identity point.
	NewPoint() Point
	// NewBasePoint creates the generator of the group.
	NewBasePoint() Point
	// NewScalar creates a scalar with the value of 0.
	NewScalar() Scalar
	// Name returns the name of this curve.
	Name() string
	// ScalarBits returns the number of significant bits in a scalar.
	ScalarBits() int
	// SafeScalarBytes returns the number of random bytes needed to sample
	// a scalar through modular reduction without measurable bias.
	SafeScalarBytes() int
	// Order returns the number of elements in the group.
	Order() *saferith.Modulus
	// PointFromAffine builds a group element from big-endian affine
	// coordinates. (0, 0) yields the identity element.
	PointFromAffine(x, y *big.Int) (Point, error)
}

// Scalar represents an integer modulo the group order.
//
// Arithmetic methods mutate the receiver and return it, to allow chaining.
type Scalar interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	// Curve returns the Curve associated with this kind of scalar.
	Curve() Curve
	Add(Scalar) Scalar
	Sub(Scalar) Scalar
	Negate() Scalar
	Mul(Scalar) Scalar
	Invert() Scalar
	Equal(Scalar) bool
	IsZero() bool
	Set(Scalar) Scalar
	SetNat(*saferith.Nat) Scalar
	// Act acts on a point with this scalar, returning a new point.
	Act(Point) Point
	// ActOnBase acts on the generator with this scalar, returning a new point.
	ActOnBase() Point
}

// Point represents an element of the group, including the identity.
//
// Unlike scalars, the arithmetic methods return fresh points.
type Point interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	// Curve returns the Curve associated with this kind of point.
	Curve() Curve
	Add(Point) Point
	Sub(Point) Point
	Negate() Point
	Equal(Point) bool
	IsIdentity() bool
	// XBytes returns the affine x-coordinate as a fixed-width big-endian
	// slice. The identity element yields all zeros.
	XBytes() []byte
	// YBytes returns the affine y-coordinate as a fixed-width big-endian
	// slice. The identity element yields all zeros.
	YBytes() []byte
}

// ScalarFromUint64 embeds a small integer into the scalar field of group.
func ScalarFromUint64(group Curve, v uint64) Scalar {
	return group.NewScalar().SetNat(new(saferith.Nat).SetUint64(v))
}

// SecretScalar validates that an externally supplied scalar is usable as a
// secret key, i.e. lies in [1, n-1].
func SecretScalar(s Scalar) (Scalar, error) {
	if s == nil || s.IsZero() {
		return nil, ErrScalarOutOfRange
	}
	return s, nil
}

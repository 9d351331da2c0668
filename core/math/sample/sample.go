package sample

import (
	"io"

	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"

	"github.com/mr-shifu/ctoken-lib/core/math/curve"
)

func mustReadBytes(rand io.Reader, buf []byte) {
	if _, err := io.ReadFull(rand, buf); err != nil {
		panic(errors.WithMessage(err, "sample: failed to read enough randomness"))
	}
}

// Scalar returns a new Scalar in [1, n-1], sampled from the given source.
//
// The source is read with headroom over the scalar width so that the
// reduction mod n introduces no measurable bias.
func Scalar(rand io.Reader, group curve.Curve) curve.Scalar {
	buf := make([]byte, group.SafeScalarBytes())
	for {
		mustReadBytes(rand, buf)
		n := new(saferith.Nat).SetBytes(buf)
		s := group.NewScalar().SetNat(n)
		if !s.IsZero() {
			return s
		}
	}
}

// ScalarPointPair returns a new Scalar in [1, n-1] along with its product
// with the group generator. This is the key-generation primitive.
func ScalarPointPair(rand io.Reader, group curve.Curve) (curve.Scalar, curve.Point) {
	s := Scalar(rand, group)
	return s, s.ActOnBase()
}

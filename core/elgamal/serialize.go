package elgamal

import (
	"math/big"

	"github.com/fxamacker/cbor/v2"

	"github.com/mr-shifu/ctoken-lib/core/math/curve"
)

// Serialized is the ledger wire form of a ciphertext: the affine
// coordinates of both components as big unsigned integers within the
// group's field modulus.
//
// The all-zero tuple is the reserved sentinel for the canonical zero
// ciphertext. A single identity component is carried as its own (0, 0)
// pair, so mixed zero/non-zero ciphertexts round-trip faithfully.
type Serialized struct {
	C1X *big.Int
	C1Y *big.Int
	C2X *big.Int
	C2Y *big.Int
}

// Serialize converts the ciphertext to its wire tuple.
func (c *Ciphertext) Serialize() *Serialized {
	c1x, c1y := affineCoordinates(c.C1)
	c2x, c2y := affineCoordinates(c.C2)
	return &Serialized{C1X: c1x, C1Y: c1y, C2X: c2x, C2Y: c2y}
}

func affineCoordinates(p curve.Point) (*big.Int, *big.Int) {
	if p.IsIdentity() {
		return new(big.Int), new(big.Int)
	}
	return new(big.Int).SetBytes(p.XBytes()), new(big.Int).SetBytes(p.YBytes())
}

// Deserialize reconstructs the ciphertext from its wire tuple within the
// given group.
func (s *Serialized) Deserialize(group curve.Curve) (*Ciphertext, error) {
	c1, err := group.PointFromAffine(s.C1X, s.C1Y)
	if err != nil {
		return nil, err
	}
	c2, err := group.PointFromAffine(s.C2X, s.C2Y)
	if err != nil {
		return nil, err
	}
	return &Ciphertext{C1: c1, C2: c2}, nil
}

// IsZero reports whether this is the reserved zero-balance sentinel.
func (s *Serialized) IsZero() bool {
	return s.C1X.Sign() == 0 && s.C1Y.Sign() == 0 &&
		s.C2X.Sign() == 0 && s.C2Y.Sign() == 0
}

// ZeroSerialized returns the wire form of the canonical zero ciphertext.
func ZeroSerialized() *Serialized {
	return &Serialized{
		C1X: new(big.Int),
		C1Y: new(big.Int),
		C2X: new(big.Int),
		C2Y: new(big.Int),
	}
}

type rawSerialized struct {
	C1X []byte
	C1Y []byte
	C2X []byte
	C2Y []byte
}

func (s *Serialized) MarshalBinary() ([]byte, error) {
	raw := rawSerialized{
		C1X: s.C1X.Bytes(),
		C1Y: s.C1Y.Bytes(),
		C2X: s.C2X.Bytes(),
		C2Y: s.C2Y.Bytes(),
	}
	return cbor.Marshal(raw)
}

func (s *Serialized) UnmarshalBinary(data []byte) error {
	raw := rawSerialized{}
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.C1X = new(big.Int).SetBytes(raw.C1X)
	s.C1Y = new(big.Int).SetBytes(raw.C1Y)
	s.C2X = new(big.Int).SetBytes(raw.C2X)
	s.C2Y = new(big.Int).SetBytes(raw.C2Y)
	return nil
}

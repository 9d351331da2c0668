package curve

import (
	"errors"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/mr-shifu/ctoken-lib/lib/params"
)

const (
	secp256k1ScalarBits  = 256
	secp256k1ScalarBytes = 32
	// compressed SEC1 encoding; all zeros is reserved for the identity.
	secp256k1PointBytes = 33
)

var secp256k1Order = saferith.ModulusFromBytes(secp256k1.Params().N.Bytes())

// Secp256k1 is the secp256k1 group, backed by decred's constant-time
// implementation. The generator and order match the ones the ledger uses,
// so points produced here round-trip through ledger storage.
type Secp256k1 struct{}

func (Secp256k1) NewPoint() Point {
	return new(Secp256k1Point)
}

func (Secp256k1) NewBasePoint() Point {
	out := new(Secp256k1Point)
	one := new(secp256k1.ModNScalar)
	one.SetInt(1)
	secp256k1.ScalarBaseMultNonConst(one, &out.value)
	return out
}

func (Secp256k1) NewScalar() Scalar {
	return new(Secp256k1Scalar)
}

func (Secp256k1) Name() string {
	return "secp256k1"
}

func (Secp256k1) ScalarBits() int {
	return secp256k1ScalarBits
}

func (Secp256k1) SafeScalarBytes() int {
	return secp256k1ScalarBytes + params.SecBytes/2
}

func (Secp256k1) Order() *saferith.Modulus {
	return secp256k1Order
}

func (c Secp256k1) PointFromAffine(x, y *big.Int) (Point, error) {
	if x == nil || y == nil || x.Sign() < 0 || y.Sign() < 0 {
		return nil, ErrInvalidPoint
	}
	if x.Sign() == 0 && y.Sign() == 0 {
		return c.NewPoint(), nil
	}
	fieldP := secp256k1.Params().P
	if x.Cmp(fieldP) >= 0 || y.Cmp(fieldP) >= 0 {
		return nil, ErrInvalidPoint
	}

	// Decompress from x and recover the full point through the parser,
	// which enforces the curve equation, then check the claimed y.
	compressed := make([]byte, secp256k1PointBytes)
	compressed[0] = byte(2 + y.Bit(0))
	x.FillBytes(compressed[1:])
	pub, err := secp256k1.ParsePubKey(compressed)
	if err != nil {
		return nil, ErrInvalidPoint
	}

	out := new(Secp256k1Point)
	pub.AsJacobian(&out.value)
	var yBytes [secp256k1ScalarBytes]byte
	y.FillBytes(yBytes[:])
	if string(out.YBytes()) != string(yBytes[:]) {
		return nil, ErrInvalidPoint
	}
	return out, nil
}

// Secp256k1Scalar is an integer modulo the order of the secp256k1 group.
type Secp256k1Scalar struct {
	value secp256k1.ModNScalar
}

func secp256k1CastScalar(generic Scalar) *Secp256k1Scalar {
	out, ok := generic.(*Secp256k1Scalar)
	if !ok {
		panic("curve: failed to convert to secp256k1 scalar")
	}
	return out
}

func (*Secp256k1Scalar) Curve() Curve {
	return Secp256k1{}
}

func (s *Secp256k1Scalar) MarshalBinary() ([]byte, error) {
	data := s.value.Bytes()
	return data[:], nil
}

func (s *Secp256k1Scalar) UnmarshalBinary(data []byte) error {
	if len(data) != secp256k1ScalarBytes {
		return errors.New("curve: invalid scalar length")
	}
	if overflow := s.value.SetByteSlice(data); overflow {
		return errors.New("curve: scalar not in the correct range")
	}
	return nil
}

func (s *Secp256k1Scalar) Add(that Scalar) Scalar {
	other := secp256k1CastScalar(that)
	s.value.Add(&other.value)
	return s
}

func (s *Secp256k1Scalar) Sub(that Scalar) Scalar {
	other := secp256k1CastScalar(that)
	negated := new(secp256k1.ModNScalar)
	negated.NegateVal(&other.value)
	s.value.Add(negated)
	return s
}

func (s *Secp256k1Scalar) Negate() Scalar {
	s.value.Negate()
	return s
}

func (s *Secp256k1Scalar) Mul(that Scalar) Scalar {
	other := secp256k1CastScalar(that)
	s.value.Mul(&other.value)
	return s
}

func (s *Secp256k1Scalar) Invert() Scalar {
	s.value.InverseNonConst()
	return s
}

func (s *Secp256k1Scalar) Equal(that Scalar) bool {
	other := secp256k1CastScalar(that)
	return s.value.Equals(&other.value)
}

func (s *Secp256k1Scalar) IsZero() bool {
	return s.value.IsZero()
}

func (s *Secp256k1Scalar) Set(that Scalar) Scalar {
	other := secp256k1CastScalar(that)
	s.value.Set(&other.value)
	return s
}

func (s *Secp256k1Scalar) SetNat(nat *saferith.Nat) Scalar {
	reduced := new(saferith.Nat).Mod(nat, secp256k1Order)
	buf := make([]byte, secp256k1ScalarBytes)
	reduced.FillBytes(buf)
	if overflow := s.value.SetByteSlice(buf); overflow {
		panic("curve: reduction mod order overflowed")
	}
	return s
}

func (s *Secp256k1Scalar) Act(that Point) Point {
	other := secp256k1CastPoint(that)
	out := new(Secp256k1Point)
	secp256k1.ScalarMultNonConst(&s.value, &other.value, &out.value)
	return out
}

func (s *Secp256k1Scalar) ActOnBase() Point {
	out := new(Secp256k1Point)
	secp256k1.ScalarBaseMultNonConst(&s.value, &out.value)
	return out
}

// Secp256k1Point is an element of the secp256k1 group, in Jacobian
// coordinates. The zero value is the identity element.
type Secp256k1Point struct {
	value secp256k1.JacobianPoint
}

func secp256k1CastPoint(generic Point) *Secp256k1Point {
	out, ok := generic.(*Secp256k1Point)
	if !ok {
		panic("curve: failed to convert to secp256k1 point")
	}
	return out
}

func (*Secp256k1Point) Curve() Curve {
	return Secp256k1{}
}

func (p *Secp256k1Point) MarshalBinary() ([]byte, error) {
	out := make([]byte, secp256k1PointBytes)
	if p.IsIdentity() {
		return out, nil
	}
	p.value.ToAffine()
	out[0] = byte(2)
	if p.value.Y.IsOdd() {
		out[0] = byte(3)
	}
	data := p.value.X.Bytes()
	copy(out[1:], data[:])
	return out, nil
}

func (p *Secp256k1Point) UnmarshalBinary(data []byte) error {
	if len(data) != secp256k1PointBytes {
		return errors.New("curve: invalid point length")
	}
	identity := true
	for _, b := range data {
		if b != 0 {
			identity = false
			break
		}
	}
	if identity {
		p.value = secp256k1.JacobianPoint{}
		return nil
	}
	pub, err := secp256k1.ParsePubKey(data)
	if err != nil {
		return err
	}
	pub.AsJacobian(&p.value)
	return nil
}

func (p *Secp256k1Point) Add(that Point) Point {
	other := secp256k1CastPoint(that)
	out := new(Secp256k1Point)
	secp256k1.AddNonConst(&p.value, &other.value, &out.value)
	return out
}

func (p *Secp256k1Point) Sub(that Point) Point {
	return p.Add(that.Negate())
}

func (p *Secp256k1Point) Negate() Point {
	out := new(Secp256k1Point)
	out.value.Set(&p.value)
	out.value.Y.Normalize().Negate(1).Normalize()
	return out
}

func (p *Secp256k1Point) Equal(that Point) bool {
	other := secp256k1CastPoint(that)
	if p.IsIdentity() || other.IsIdentity() {
		return p.IsIdentity() && other.IsIdentity()
	}
	p.value.ToAffine()
	other.value.ToAffine()
	return p.value.X.Equals(&other.value.X) && p.value.Y.Equals(&other.value.Y)
}

func (p *Secp256k1Point) IsIdentity() bool {
	return p.value.Z.Normalize().IsZero() ||
		(p.value.X.Normalize().IsZero() && p.value.Y.Normalize().IsZero())
}

func (p *Secp256k1Point) XBytes() []byte {
	out := make([]byte, secp256k1ScalarBytes)
	if p.IsIdentity() {
		return out
	}
	p.value.ToAffine()
	data := p.value.X.Bytes()
	copy(out, data[:])
	return out
}

func (p *Secp256k1Point) YBytes() []byte {
	out := make([]byte, secp256k1ScalarBytes)
	if p.IsIdentity() {
		return out
	}
	p.value.ToAffine()
	data := p.value.Y.Bytes()
	copy(out, data[:])
	return out
}

package elgamal

import (
	"io"

	"github.com/mr-shifu/ctoken-lib/core/math/curve"
)

// Ciphertext is an exponential-ElGamal encryption of a token amount.
type Ciphertext struct {
	// C1 = nonce⋅G
	C1 curve.Point
	// C2 = amount⋅G + nonce⋅public
	C2 curve.Point
}

// NewCiphertext returns a ciphertext with identity components.
func NewCiphertext(group curve.Curve) *Ciphertext {
	return &Ciphertext{
		C1: group.NewPoint(),
		C2: group.NewPoint(),
	}
}

// ZeroCiphertext returns the canonical (Identity, Identity) pair used as the
// initial balance before any deposit. This is the reserved degenerate
// ciphertext, not an encryption of zero under fresh randomness.
func ZeroCiphertext(group curve.Curve) *Ciphertext {
	return NewCiphertext(group)
}

// Add returns the component-wise sum of two ciphertexts. For ciphertexts
// under the same public key, the result decrypts to the sum of the
// plaintexts.
func (c *Ciphertext) Add(other *Ciphertext) *Ciphertext {
	return &Ciphertext{
		C1: c.C1.Add(other.C1),
		C2: c.C2.Add(other.C2),
	}
}

// Sub returns the component-wise difference of two ciphertexts. For
// ciphertexts under the same public key, the result decrypts to the
// difference of the plaintexts; a logically negative difference falls
// outside the decryption search range.
func (c *Ciphertext) Sub(other *Ciphertext) *Ciphertext {
	return &Ciphertext{
		C1: c.C1.Sub(other.C1),
		C2: c.C2.Sub(other.C2),
	}
}

// Clone returns an independent copy of the ciphertext.
func (c *Ciphertext) Clone() *Ciphertext {
	group := c.C1.Curve()
	out := NewCiphertext(group)
	out.C1 = out.C1.Add(c.C1)
	out.C2 = out.C2.Add(c.C2)
	return out
}

// Valid returns true if the ciphertext has both components. Identity
// components are legal: the canonical zero balance is (Identity, Identity).
func (c *Ciphertext) Valid() bool {
	return c != nil && c.C1 != nil && c.C2 != nil
}

// IsZero reports whether this is the canonical zero ciphertext.
func (c *Ciphertext) IsZero() bool {
	return c.Valid() && c.C1.IsIdentity() && c.C2.IsIdentity()
}

func (c *Ciphertext) MarshalBinary() ([]byte, error) {
	buf, err := c.C1.MarshalBinary()
	if err != nil {
		return nil, err
	}
	buf2, err := c.C2.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return append(buf, buf2...), nil
}

func (c *Ciphertext) UnmarshalBinary(data []byte) error {
	if len(data) != 2*pointBinaryLength {
		return io.ErrShortBuffer
	}
	group := curve.Secp256k1{}
	c1 := group.NewPoint()
	if err := c1.UnmarshalBinary(data[:pointBinaryLength]); err != nil {
		return err
	}
	c2 := group.NewPoint()
	if err := c2.UnmarshalBinary(data[pointBinaryLength:]); err != nil {
		return err
	}
	c.C1, c.C2 = c1, c2
	return nil
}

func (c *Ciphertext) WriteTo(w io.Writer) (int64, error) {
	var total int64

	buf, err := c.C1.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(buf)
	total += int64(n)
	if err != nil {
		return total, err
	}

	buf, err = c.C2.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err = w.Write(buf)
	total += int64(n)
	return total, err
}

func (Ciphertext) Domain() string {
	return "ElGamal Ciphertext"
}

const pointBinaryLength = 33

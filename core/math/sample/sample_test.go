package sample

import (
	"crypto/rand"
	mrand "math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mr-shifu/ctoken-lib/core/math/curve"
)

func TestScalarIsNonZero(t *testing.T) {
	group := curve.Secp256k1{}
	for i := 0; i < 64; i++ {
		assert.False(t, Scalar(rand.Reader, group).IsZero())
	}
}

func TestScalarDeterministicSource(t *testing.T) {
	group := curve.Secp256k1{}

	a := Scalar(mrand.New(mrand.NewSource(42)), group)
	b := Scalar(mrand.New(mrand.NewSource(42)), group)
	assert.True(t, a.Equal(b))

	c := Scalar(mrand.New(mrand.NewSource(43)), group)
	assert.False(t, a.Equal(c))
}

func TestScalarPointPair(t *testing.T) {
	group := curve.Secp256k1{}
	sk, pk := ScalarPointPair(rand.Reader, group)
	assert.False(t, sk.IsZero())
	assert.True(t, pk.Equal(sk.ActOnBase()))
	assert.False(t, pk.IsIdentity())
}

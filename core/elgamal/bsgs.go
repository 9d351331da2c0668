package elgamal

import (
	"math"

	"github.com/mr-shifu/ctoken-lib/core/math/curve"
)

// identityTableKey is the reserved baby-step table key for the identity
// element, which has no affine x-coordinate of its own.
const identityTableKey = "\x00identity"

func pointTableKey(p curve.Point) string {
	if p.IsIdentity() {
		return identityTableKey
	}
	return string(p.XBytes())
}

// babyStepGiantStep finds the smallest m in [0, maxAmount] with
// m⋅G = target.
//
// With step = ⌈√maxAmount⌉+1, the baby-step table maps j⋅G to j for
// j in [0, step), and the giant steps walk target - i⋅step⋅G for i in
// [0, step), covering every m up to step²-1 ≥ maxAmount.
func babyStepGiantStep(target curve.Point, maxAmount int64) (int64, error) {
	group := target.Curve()
	step := int64(math.Ceil(math.Sqrt(float64(maxAmount)))) + 1

	generator := group.NewBasePoint()
	table := make(map[string]int64, step)
	babyStep := group.NewPoint()
	for j := int64(0); j < step; j++ {
		if _, seen := table[pointTableKey(babyStep)]; !seen {
			table[pointTableKey(babyStep)] = j
		}
		babyStep = babyStep.Add(generator)
	}

	// -step⋅G, so each giant step is a single addition.
	stride := curve.ScalarFromUint64(group, uint64(step)).ActOnBase().Negate()

	probe := target
	for i := int64(0); i < step; i++ {
		if j, ok := table[pointTableKey(probe)]; ok {
			m := i*step + j
			// The table is keyed by x-coordinate alone, which a point
			// shares with its negation; accept the candidate only if it
			// reproduces the target.
			if m == 0 {
				if target.IsIdentity() {
					return 0, nil
				}
			} else if AmountScalar(group, m).ActOnBase().Equal(target) {
				return m, nil
			}
		}
		probe = probe.Add(stride)
	}
	return 0, ErrNotFound
}

package money

import (
	"math/big"

	"github.com/shopspring/decimal"

	bankster "github.com/randomseed-io/bankster-sub000"
	"github.com/randomseed-io/bankster-sub000/scale"
)

// Allocate splits the money into len(ratios) parts proportional to the
// ratios such that the parts sum exactly to the original amount. Ratios must
// be non-negative and integer-like, and at least one must be non-zero. Any
// remainder left by integer division is distributed one minor unit at a time
// to the earliest parts with a non-zero ratio, in ratio order.
func Allocate(m Money, ratios ...decimal.Decimal) ([]Money, error) {
	if len(ratios) == 0 {
		return nil, bankster.NewError(bankster.ErrorInvalidRatio, "ratios", "at least one ratio is required")
	}

	weights := make([]*big.Int, len(ratios))
	sum := new(big.Int)

	for i, ratio := range ratios {
		if !ratio.IsInteger() {
			return nil, bankster.Errorf(bankster.ErrorInvalidRatio, "ratios", "ratio %s is not integer-like", ratio)
		}

		if ratio.IsNegative() {
			return nil, bankster.Errorf(bankster.ErrorInvalidRatio, "ratios", "ratio %s is negative", ratio)
		}

		weights[i] = ratio.BigInt()
		sum.Add(sum, weights[i])
	}

	if sum.Sign() == 0 {
		return nil, bankster.NewError(bankster.ErrorInvalidRatio, "ratios", "all ratios are zero")
	}

	// Work in minor units so the split stays exact. The unit scale covers
	// both the currency's nominal scale and the amount's actual scale, so a
	// rescaled or auto-scaled amount shifts to an integer without loss.
	unitScale := scale.Of(m.amount)
	if !m.cur.IsAutoScaled() && m.cur.Scale > unitScale {
		unitScale = m.cur.Scale
	}

	total := m.amount.Shift(unitScale).BigInt()

	parts := make([]*big.Int, len(weights))
	distributed := new(big.Int)

	for i, weight := range weights {
		part := new(big.Int).Mul(total, weight)
		part.Quo(part, sum)
		parts[i] = part
		distributed.Add(distributed, part)
	}

	remainder := new(big.Int).Sub(total, distributed)
	step := big.NewInt(int64(remainder.Sign()))

	for i := 0; remainder.Sign() != 0; i = (i + 1) % len(parts) {
		if weights[i].Sign() == 0 {
			continue
		}

		parts[i].Add(parts[i], step)
		remainder.Sub(remainder, step)
	}

	out := make([]Money, len(parts))
	for i, part := range parts {
		out[i] = Money{cur: m.cur, amount: decimal.NewFromBigInt(part, -unitScale)}
	}

	return out, nil
}

// AllocateInts is Allocate with plain integer ratios.
func AllocateInts(m Money, ratios ...int64) ([]Money, error) {
	ds := make([]decimal.Decimal, len(ratios))
	for i, ratio := range ratios {
		ds[i] = decimal.NewFromInt(ratio)
	}

	return Allocate(m, ds...)
}

// Distribute splits the money into n equal parts, the equal-ratio special
// case of Allocate. It fails for n less than one.
func Distribute(m Money, n int) ([]Money, error) {
	if n <= 0 {
		return nil, bankster.Errorf(bankster.ErrorInvalidRatio, "n", "cannot distribute into %d parts", n)
	}

	ratios := make([]int64, n)
	for i := range ratios {
		ratios[i] = 1
	}

	return AllocateInts(m, ratios...)
}

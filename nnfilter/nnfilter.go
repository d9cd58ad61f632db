// Package nnfilter implements Monkey's Audio's adaptive neural filter: a
// cascade of 0 to 3 sign-sign LMS FIR stages that remove short-term
// correlation left over by the range coder's residual decode.
package nnfilter

import "github.com/mewkiz/ape/internal/bits"

// MaxStages is the largest number of cascaded stages at any compression
// level (level 5000, "Insane").
const MaxStages = 3

// orders holds the tap count of each stage, indexed by fset (0..4) then
// stage (0..2). A zero order means the stage is absent.
var orders = [5][MaxStages]int{
	{0, 0, 0},       // 1000: Fast
	{16, 0, 0},      // 2000: Normal
	{64, 0, 0},      // 3000: High
	{32, 256, 0},    // 4000: Extra High
	{16, 256, 1280}, // 5000: Insane
}

// fracbits holds the dot-product right-shift of each stage, same indexing
// as orders.
var fracbits = [5][MaxStages]uint{
	{0, 0, 0},
	{11, 0, 0},
	{11, 0, 0},
	{10, 13, 0},
	{11, 13, 15},
}

// Stage is one sign-sign LMS FIR filter stage.
type Stage struct {
	order    int
	fracbits uint

	coeffs      []int16
	adaptCoeffs []int16
	history     []int16
	delayPos    int
}

// NewStage allocates a stage with the given tap count and fractional-bit
// shift. The history and adaptation rings are sized to 2*order so that a
// window of order taps is always contiguous, even across a wrap.
func NewStage(order int, fracbits uint) *Stage {
	s := &Stage{
		order:       order,
		fracbits:    fracbits,
		coeffs:      make([]int16, order),
		adaptCoeffs: make([]int16, 2*order),
		history:     make([]int16, 2*order),
	}
	s.Reset()
	return s
}

// Reset clears the stage to its initial, all-zero state.
func (s *Stage) Reset() {
	for i := range s.coeffs {
		s.coeffs[i] = 0
	}
	for i := range s.history {
		s.history[i] = 0
		s.adaptCoeffs[i] = 0
	}
	s.delayPos = s.order
}

// Decompress applies the inverse filter to one input sample and returns the
// filtered output, adapting the stage's coefficients in place.
func (s *Stage) Decompress(input int32) int32 {
	if s.order == 0 {
		return input
	}

	hs := s.delayPos - s.order

	var sum int64
	for i := 0; i < s.order; i++ {
		sum += int64(s.coeffs[i]) * int64(s.history[hs+i])
	}
	filtered := int32(sum >> s.fracbits)
	output := input + filtered

	sign := bits.Sgn(input)
	if sign != 0 {
		for i := 0; i < s.order; i++ {
			s.coeffs[i] = bits.SaturatingAddInt16(s.coeffs[i], int16(sign)*s.adaptCoeffs[hs+i])
		}
	}

	s.history[s.delayPos] = bits.ClampInt16(output)
	s.adaptCoeffs[s.delayPos] = int16(bits.Sgn(output))

	s.delayPos++
	if s.delayPos >= 2*s.order {
		copy(s.history[:s.order], s.history[s.order:2*s.order])
		copy(s.adaptCoeffs[:s.order], s.adaptCoeffs[s.order:2*s.order])
		s.delayPos = s.order
	}

	return output
}

// Cascade chains 0 to MaxStages stages, applied in forward order.
type Cascade struct {
	stages []*Stage
}

// NewCascade builds the stage cascade for the given compression-level set
// index, fset = level/1000 - 1.
func NewCascade(fset int) *Cascade {
	c := &Cascade{}
	for i := 0; i < MaxStages; i++ {
		order := orders[fset][i]
		if order == 0 {
			continue
		}
		c.stages = append(c.stages, NewStage(order, fracbits[fset][i]))
	}
	return c
}

// Reset clears every stage in the cascade.
func (c *Cascade) Reset() {
	for _, s := range c.stages {
		s.Reset()
	}
}

// Decompress runs value through every stage of the cascade, in the order
// the stages were added (stage 0 first).
func (c *Cascade) Decompress(value int32) int32 {
	for _, s := range c.stages {
		value = s.Decompress(value)
	}
	return value
}

// NumStages reports how many non-empty stages the cascade holds.
func (c *Cascade) NumStages() int {
	return len(c.stages)
}

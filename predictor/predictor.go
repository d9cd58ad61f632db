// Package predictor implements Monkey's Audio's linear predictor: a
// per-channel cascade of a 4-tap adaptive FIR filter ("filter A"), a 5-tap
// cross-channel adaptive FIR filter ("filter B", stereo only), and an IIR
// feedback accumulator, followed by inverse mid/side channel decorrelation
// in the stereo case.
package predictor

import "github.com/mewkiz/ape/internal/bits"

const (
	history   = 512
	ringExtra = 50
	ringSize  = history + ringExtra
)

// Ring offsets, relative to buf_pos, for the Y (first, mono) and X (second,
// stereo cross) channels. Chosen so that a 4- or 5-tap access never
// underflows after a wrap.
const (
	yDelayA = 50
	yDelayB = 42
	xDelayA = 34
	xDelayB = 26

	yAdaptA = 18
	xAdaptA = 14
	yAdaptB = 10
	xAdaptB = 5
)

// seedCoeffsA is the v3.93+ initial seed for filter A's coefficients.
var seedCoeffsA = [4]int64{360, 317, -109, 98}

// channelState holds the per-channel adaptive filter registers.
type channelState struct {
	lastA   int64
	filterA int64
	filterB int64
	coeffsA [4]int64
	coeffsB [5]int64
}

func (c *channelState) reset() {
	c.lastA = 0
	c.filterA = 0
	c.filterB = 0
	c.coeffsA = seedCoeffsA
	c.coeffsB = [5]int64{}
}

// Predictor reconstructs sample magnitudes from NNFilter output, for one or
// two channels sharing a single delay-line ring buffer.
type Predictor struct {
	buf      []int64
	bufPos   int
	channels [2]channelState
}

// New allocates a predictor ready for decode after a Reset.
func New() *Predictor {
	p := &Predictor{buf: make([]int64, ringSize)}
	p.Reset()
	return p
}

// Reset clears the delay-line ring and both channels' adaptive state to
// their initial condition, as required at every frame boundary.
func (p *Predictor) Reset() {
	for i := range p.buf {
		p.buf[i] = 0
	}
	p.bufPos = 0
	p.channels[0].reset()
	p.channels[1].reset()
}

// DecodeMono reverses the predictor for a single-channel sample.
func (p *Predictor) DecodeMono(input int32) int32 {
	output := p.updateFilter(0, int64(input), yDelayA, yAdaptA, -1, -1)
	p.advance()
	return int32(output)
}

// DecodeStereo reverses the predictor for a Y/X sample pair (decoded in
// that order) and applies the inverse mid/side decorrelation, returning
// (left, right).
func (p *Predictor) DecodeStereo(inputY, inputX int32) (left, right int32) {
	decodedY := p.updateFilter(0, int64(inputY), yDelayA, yAdaptA, yDelayB, yAdaptB)
	decodedX := p.updateFilter(1, int64(inputX), xDelayA, xAdaptA, xDelayB, xAdaptB)
	p.advance()

	l := int32(decodedX) - int32(decodedY)/2
	r := l + int32(decodedY)
	return l, r
}

// updateFilter applies one channel's filter A (and, when delayB >= 0,
// filter B) to a single input sample and adapts the channel's
// coefficients in place. It returns filter_a[ch], which becomes the
// channel's decoded sample.
func (p *Predictor) updateFilter(ch int, decoded int64, delayA, adaptA, delayB, adaptB int) int64 {
	bp := p.bufPos
	cs := &p.channels[ch]

	// Filter A delay-line and adaptation-sign writes.
	p.buf[bp+delayA] = cs.lastA
	p.buf[bp+delayA-1] = p.buf[bp+delayA] - p.buf[bp+delayA-1]
	p.buf[bp+adaptA] = int64(bits.Sgn64(p.buf[bp+delayA]))
	p.buf[bp+adaptA-1] = int64(bits.Sgn64(p.buf[bp+delayA-1]))

	hasB := delayB >= 0
	if hasB {
		other := &p.channels[ch^1]
		p.buf[bp+delayB] = other.filterA - (cs.filterB * 31 >> 5)
		p.buf[bp+adaptB] = int64(bits.Sgn64(p.buf[bp+delayB]))
		p.buf[bp+delayB-1] = p.buf[bp+delayB] - p.buf[bp+delayB-1]
		p.buf[bp+adaptB-1] = int64(bits.Sgn64(p.buf[bp+delayB-1]))
		cs.filterB = other.filterA
	}

	var predA int64
	for j := 0; j < 4; j++ {
		predA += cs.coeffsA[j] * p.buf[bp+delayA-j]
	}

	var predB int64
	if hasB {
		for j := 0; j < 5; j++ {
			predB += cs.coeffsB[j] * p.buf[bp+delayB-j]
		}
	}

	cs.lastA = decoded + ((predA + (predB >> 1)) >> 10)
	cs.filterA = cs.lastA + (cs.filterA * 31 >> 5)

	if sign := bits.Sgn64(decoded); sign != 0 {
		s := int64(sign)
		for j := 0; j < 4; j++ {
			cs.coeffsA[j] += s * p.buf[bp+adaptA-j]
		}
		if hasB {
			for j := 0; j < 5; j++ {
				cs.coeffsB[j] += s * p.buf[bp+adaptB-j]
			}
		}
	}

	return cs.filterA
}

// advance moves the ring cursor forward by one sample, wrap-copying the
// trailing headroom back to the start of the ring when buf_pos reaches the
// end of the addressable history.
func (p *Predictor) advance() {
	p.bufPos++
	if p.bufPos >= history {
		copy(p.buf[:ringExtra], p.buf[p.bufPos:p.bufPos+ringExtra])
		for i := ringExtra; i < len(p.buf); i++ {
			p.buf[i] = 0
		}
		p.bufPos = 0
	}
}

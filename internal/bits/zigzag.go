// Package bits holds small integer tricks shared by the range coder, the
// NNFilter and the predictor: APE's zigzag mapping and the sign/saturation
// helpers used by the adaptive filters.
package bits

// DecodeZigZag maps an unsigned magnitude decoded by the range coder to its
// signed residual value, following APE's own (non-protobuf) zigzag rule:
// an odd x decodes to a positive value, an even x decodes to a
// non-positive value.
//
//	0 =>  0
//	1 =>  1
//	2 => -1
//	3 =>  2
//	4 => -2
//	5 =>  3
//	6 => -3
func DecodeZigZag(x uint32) int32 {
	if x&1 != 0 {
		return int32(x>>1) + 1
	}
	return -int32(x >> 1)
}

package blend

// div255 divides x by 255, rounding to nearest.
//
// Formula: ((x + 128) + ((x + 128) >> 8)) >> 8
//
// This is Jim Blinn's exact rounding formula for 8-bit alpha products. It is
// exact for every x in [0, 255*255], which keeps compositing results
// identical to the floating-point reference after rounding.
//
// References:
//   - Jim Blinn, "Three Wrongs Make a Right", IEEE CG&A 1995
//   - Alvy Ray Smith's technical memos: http://alvyray.com/Memos/
func div255(x uint32) uint32 {
	t := x + 128
	return (t + (t >> 8)) >> 8
}

// mulDiv255 multiplies two bytes and divides by 255 with rounding.
func mulDiv255(a, b byte) byte {
	return byte(div255(uint32(a) * uint32(b)))
}

// addClamp adds two bytes and clamps to 255.
func addClamp(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}

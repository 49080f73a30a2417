// Package blend implements premultiplied source-over compositing.
//
// All operations work on premultiplied RGBA byte spans laid out like
// image.RGBA.Pix: four bytes per pixel, alpha last.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

// SourceOver composites a single premultiplied source pixel over a
// premultiplied destination pixel.
//
// Formula: S + D * (1 - Sa)
//
// For straight-alpha inputs this is the familiar
// out = src*srcA + dst*dstA*(1-srcA), outA = srcA + dstA*(1-srcA).
func SourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte) {
	invSa := 255 - sa
	return addClamp(sr, mulDiv255(dr, invSa)),
		addClamp(sg, mulDiv255(dg, invSa)),
		addClamp(sb, mulDiv255(db, invSa)),
		addClamp(sa, mulDiv255(da, invSa))
}

// SourceOverSpan composites n pixels of src over dst in place.
// Both spans must hold at least n*4 bytes.
func SourceOverSpan(dst, src []byte, n int) {
	if n <= 0 {
		return
	}
	dst = dst[:n*4]
	src = src[:n*4]

	for i := 0; i < len(src); i += 4 {
		sa := src[i+3]
		switch sa {
		case 0:
			// Transparent source leaves dst untouched.
			continue
		case 255:
			dst[i+0] = src[i+0]
			dst[i+1] = src[i+1]
			dst[i+2] = src[i+2]
			dst[i+3] = 255
			continue
		}
		dst[i+0], dst[i+1], dst[i+2], dst[i+3] = SourceOver(
			src[i+0], src[i+1], src[i+2], sa,
			dst[i+0], dst[i+1], dst[i+2], dst[i+3],
		)
	}
}

// Unpremultiply converts one premultiplied pixel back to straight alpha.
func Unpremultiply(r, g, b, a byte) (byte, byte, byte) {
	switch a {
	case 0:
		return 0, 0, 0
	case 255:
		return r, g, b
	}
	half := uint32(a) / 2
	return byte(min((uint32(r)*255+half)/uint32(a), 255)),
		byte(min((uint32(g)*255+half)/uint32(a), 255)),
		byte(min((uint32(b)*255+half)/uint32(a), 255))
}

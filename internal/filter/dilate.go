package filter

import (
	"image"
	"math"
)

// Dilate grows the coverage of mask by a disc of the given radius and returns
// the result as a new mask whose bounds are mask.Bounds() outset by radius.
//
// Each output pixel takes the maximum coverage found within the disc, so
// anti-aliased glyph edges stay smooth after dilation. A radius <= 0 returns
// a copy of mask.
func Dilate(mask *image.Alpha, radius int) *image.Alpha {
	src := mask.Bounds()
	if radius < 0 {
		radius = 0
	}
	dst := image.NewAlpha(src.Inset(-radius))
	if src.Empty() {
		return dst
	}

	// span[dy+radius] is the half-width of the disc on row dy.
	span := make([]int, 2*radius+1)
	for dy := -radius; dy <= radius; dy++ {
		span[dy+radius] = int(math.Floor(math.Sqrt(float64(radius*radius - dy*dy))))
	}

	// rowMax[hw] holds, for one source row, the horizontal running maximum
	// over a window of half-width hw, indexed in dst coordinates.
	width := dst.Rect.Dx()
	rowMax := make(map[int][]uint8, radius+1)
	for _, hw := range span {
		if _, ok := rowMax[hw]; !ok {
			rowMax[hw] = make([]uint8, width)
		}
	}

	for sy := src.Min.Y; sy < src.Max.Y; sy++ {
		row := mask.Pix[mask.PixOffset(src.Min.X, sy):][:src.Dx()]
		if isZero(row) {
			continue
		}

		for hw, out := range rowMax {
			windowMax(out, row, src.Min.X-dst.Rect.Min.X, hw)
		}

		for dy := -radius; dy <= radius; dy++ {
			out := rowMax[span[dy+radius]]
			dstRow := dst.Pix[dst.PixOffset(dst.Rect.Min.X, sy+dy):][:width]
			for x, v := range out {
				if v > dstRow[x] {
					dstRow[x] = v
				}
			}
		}
	}

	return dst
}

// windowMax writes into out the maximum of row over [x-hw, x+hw], where row
// starts at offset off within out.
func windowMax(out, row []uint8, off, hw int) {
	clear(out)
	for i, v := range row {
		if v == 0 {
			continue
		}
		lo := max(off+i-hw, 0)
		hi := min(off+i+hw, len(out)-1)
		for x := lo; x <= hi; x++ {
			if v > out[x] {
				out[x] = v
			}
		}
	}
}

// Ring returns the coverage of dilate(mask, radius) minus mask: the band a
// stroke of the given width paints outside the glyph. The glyph interior is
// left at zero coverage.
func Ring(mask *image.Alpha, radius int) *image.Alpha {
	ring := Dilate(mask, radius)
	b := mask.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		inner := mask.Pix[mask.PixOffset(b.Min.X, y):][:b.Dx()]
		outer := ring.Pix[ring.PixOffset(b.Min.X, y):][:b.Dx()]
		for x, c := range inner {
			if outer[x] > c {
				outer[x] -= c
			} else {
				outer[x] = 0
			}
		}
	}
	return ring
}

// Spread returns the per-pixel maximum of mask placed at each offset.
// The result bounds cover every placement.
func Spread(mask *image.Alpha, offsets ...image.Point) *image.Alpha {
	src := mask.Bounds()
	var r image.Rectangle
	for _, off := range offsets {
		r = r.Union(src.Add(off))
	}
	dst := image.NewAlpha(r)
	if src.Empty() {
		return dst
	}

	for _, off := range offsets {
		for y := src.Min.Y; y < src.Max.Y; y++ {
			row := mask.Pix[mask.PixOffset(src.Min.X, y):][:src.Dx()]
			out := dst.Pix[dst.PixOffset(src.Min.X+off.X, y+off.Y):][:src.Dx()]
			for x, v := range row {
				if v > out[x] {
					out[x] = v
				}
			}
		}
	}
	return dst
}

func isZero(row []uint8) bool {
	for _, v := range row {
		if v != 0 {
			return false
		}
	}
	return true
}

package filters

// gradientBias is subtracted from the position term of the horizontal
// gradient so the left edge darkens and the right edge brightens.
const gradientBias = 127

// scale255 returns n/d*255 rounded to the nearest integer, ties away from zero.
// Integer arithmetic keeps exact halves exact: 5/10*255 yields 128.
// n must be non-negative and d positive.
func scale255(n, d int) int {
	return (2*n*255 + d) / (2 * d)
}

// saturate clamps v to the range of a channel.
func saturate(v int) uint8 {
	if v < 0 {
		return 0
	} else if v > 255 {
		return 255
	}
	return uint8(v)
}

// colorGradient maps x position to blue and y position to red. Green is kept.
func colorGradient(_, g, _ uint8, x, y, w, h int) (uint8, uint8, uint8) {
	return saturate(scale255(x, w)), g, saturate(scale255(y, h))
}

// horizontalGradient brightens pixels towards the right edge and darkens
// them towards the left, saturating every channel.
func horizontalGradient(b, g, r uint8, x, _, w, _ int) (uint8, uint8, uint8) {
	d := scale255(x, w) - gradientBias
	return saturate(int(b) + d), saturate(int(g) + d), saturate(int(r) + d)
}

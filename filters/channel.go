package filters

// channel identifies one color channel of a BGRA pixel.
type channel int

const (
	chanBlue channel = iota
	chanGreen
	chanRed
)

// maxChannel returns the channel holding the largest value.
// Ties resolve in blue, green, red order.
func maxChannel(b, g, r uint8) channel {
	switch max(r, b, g) {
	case b:
		return chanBlue
	case g:
		return chanGreen
	}
	return chanRed
}

// minChannel returns the channel holding the smallest value.
// Ties resolve in blue, green, red order.
func minChannel(b, g, r uint8) channel {
	switch min(r, b, g) {
	case b:
		return chanBlue
	case g:
		return chanGreen
	}
	return chanRed
}

// middleChannel returns the first channel, checking blue then green, that is
// neither the maximum nor the minimum. Red is returned otherwise, which
// includes every pixel where two or more channels are equal to an extreme.
func middleChannel(b, g, r uint8) channel {
	hi, lo := max(r, b, g), min(r, b, g)
	switch {
	case b != hi && b != lo:
		return chanBlue
	case g != hi && g != lo:
		return chanGreen
	}
	return chanRed
}

func setChannel(b, g, r uint8, c channel, v uint8) (uint8, uint8, uint8) {
	switch c {
	case chanBlue:
		b = v
	case chanGreen:
		g = v
	default:
		r = v
	}
	return b, g, r
}

// picker selects a channel of a pixel.
type picker func(b, g, r uint8) channel

// only saturates the picked channel and zeroes the other two.
func only(pick picker) func(b, g, r uint8, x, y, w, h int) (uint8, uint8, uint8) {
	return func(b, g, r uint8, _, _, _, _ int) (uint8, uint8, uint8) {
		return setChannel(0, 0, 0, pick(b, g, r), 255)
	}
}

// force sets the picked channel to v leaving the rest untouched.
func force(pick picker, v uint8) func(b, g, r uint8, x, y, w, h int) (uint8, uint8, uint8) {
	return func(b, g, r uint8, _, _, _, _ int) (uint8, uint8, uint8) {
		return setChannel(b, g, r, pick(b, g, r), v)
	}
}

func redOnly(_, _, r uint8, _, _, _, _ int) (uint8, uint8, uint8)   { return 0, 0, r }
func greenOnly(_, g, _ uint8, _, _, _, _ int) (uint8, uint8, uint8) { return 0, g, 0 }
func blueOnly(b, _, _ uint8, _, _, _, _ int) (uint8, uint8, uint8)  { return b, 0, 0 }

package game

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

func (c RGB) Add(dr, dg, db int) RGB {
	r := int(c.R) + dr
	g := int(c.G) + dg
	b := int(c.B) + db
	if r < 0 {
		r = 0
	} else if r > 255 {
		r = 255
	}
	if g < 0 {
		g = 0
	} else if g > 255 {
		g = 255
	}
	if b < 0 {
		b = 0
	} else if b > 255 {
		b = 255
	}
	return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}

// floats returns the colour as normalised floats.
func (c RGB) floats() (float32, float32, float32) {
	return float32(c.R) / 255.0, float32(c.G) / 255.0, float32(c.B) / 255.0
}

var Palette = struct {
	SkyTop    RGB
	SkyBottom RGB
	Grass     RGB
	GrassDark RGB
	Floor     RGB
	LaneLine  RGB
	Chicken   RGB
	Beak      RGB
	Eye       RGB
	FryerTop  RGB
	FryerBody RGB
	FryerOil  RGB
	Crate     RGB
	FireHot   RGB
	FireCool  RGB
	Oil       RGB
	Smoke     RGB
	Boss      RGB
	Shot      RGB
	Fireball  RGB
	Stunned   RGB
	Hurt      RGB
}{
	SkyTop:    RGB{R: 135, G: 206, B: 235},
	SkyBottom: RGB{R: 176, G: 224, B: 230},
	Grass:     RGB{R: 34, G: 139, B: 34},
	GrassDark: RGB{R: 24, G: 104, B: 24},
	Floor:     RGB{R: 86, G: 120, B: 70},
	LaneLine:  RGB{R: 220, G: 220, B: 200},
	Chicken:   RGB{R: 255, G: 215, B: 0},
	Beak:      RGB{R: 255, G: 165, B: 0},
	Eye:       RGB{R: 255, G: 255, B: 255},
	FryerTop:  RGB{R: 85, G: 85, B: 85},
	FryerBody: RGB{R: 34, G: 34, B: 34},
	FryerOil:  RGB{R: 255, G: 215, B: 0},
	Crate:     RGB{R: 150, G: 104, B: 58},
	FireHot:   RGB{R: 255, G: 210, B: 110},
	FireCool:  RGB{R: 190, G: 70, B: 45},
	Oil:       RGB{R: 40, G: 36, B: 60},
	Smoke:     RGB{R: 200, G: 200, B: 200},
	Boss:      RGB{R: 120, G: 40, B: 30},
	Shot:      RGB{R: 255, G: 250, B: 235},
	Fireball:  RGB{R: 255, G: 120, B: 30},
	Stunned:   RGB{R: 150, G: 140, B: 90},
	Hurt:      RGB{R: 255, G: 80, B: 80},
}

// HealthBarColor returns green/yellow/red based on fraction.
func HealthBarColor(frac float64) RGB {
	if frac > 0.6 {
		return RGB{R: 60, G: 220, B: 60}
	}
	if frac > 0.3 {
		return RGB{R: 220, G: 220, B: 60}
	}
	return RGB{R: 220, G: 60, B: 60}
}

package colour

import "math"

// pow25To7 is 25^7, a constant from the CIEDE2000 chroma weighting terms.
const pow25To7 = 6103515625.0

// DeltaE2000 returns the CIEDE2000 perceptual difference between two CIELAB
// points, with the parametric weighting factors kL, kC and kH set to 1.
// The result is symmetric and zero for identical inputs, and matches the
// published reference pairs within 1e-4.
func DeltaE2000(lab1, lab2 ColorPoint) float64 {
	l1, a1, b1 := lab1[0], lab1[1], lab1[2]
	l2, a2, b2 := lab2[0], lab2[1], lab2[2]

	deg360 := degToRad(360)
	deg180 := degToRad(180)

	// Chroma averaging and the G factor that rescales a* for low chroma.
	c1 := math.Hypot(a1, b1)
	c2 := math.Hypot(a2, b2)
	barC := (c1 + c2) / 2.0
	barC7 := math.Pow(barC, 7)
	g := 0.5 * (1.0 - math.Sqrt(barC7/(barC7+pow25To7)))

	a1p := (1.0 + g) * a1
	a2p := (1.0 + g) * a2
	c1p := math.Hypot(a1p, b1)
	c2p := math.Hypot(a2p, b2)

	h1p := hueAngle(b1, a1p)
	h2p := hueAngle(b2, a2p)

	// Differences. With either chroma at zero the hue difference is defined
	// as zero, per the standard.
	dLp := l2 - l1
	dCp := c2p - c1p

	var dhp float64
	if c1p*c2p != 0 {
		dhp = h2p - h1p
		if dhp < -deg180 {
			dhp += deg360
		} else if dhp > deg180 {
			dhp -= deg360
		}
	}
	dHp := 2.0 * math.Sqrt(c1p*c2p) * math.Sin(dhp/2.0)

	// Averages for the weighting functions.
	barLp := (l1 + l2) / 2.0
	barCp := (c1p + c2p) / 2.0

	var barHp float64
	hSum := h1p + h2p
	switch {
	case c1p*c2p == 0:
		barHp = hSum
	case math.Abs(h1p-h2p) <= deg180:
		barHp = hSum / 2.0
	case hSum < deg360:
		barHp = (hSum + deg360) / 2.0
	default:
		barHp = (hSum - deg360) / 2.0
	}

	t := 1.0 -
		0.17*math.Cos(barHp-degToRad(30)) +
		0.24*math.Cos(2.0*barHp) +
		0.32*math.Cos(3.0*barHp+degToRad(6)) -
		0.20*math.Cos(4.0*barHp-degToRad(63))

	dTheta := degToRad(30) * math.Exp(-sq((barHp-degToRad(275))/degToRad(25)))

	barCp7 := math.Pow(barCp, 7)
	rc := 2.0 * math.Sqrt(barCp7/(barCp7+pow25To7))

	sl := 1.0 + 0.015*sq(barLp-50.0)/math.Sqrt(20.0+sq(barLp-50.0))
	sc := 1.0 + 0.045*barCp
	sh := 1.0 + 0.015*barCp*t

	rt := -math.Sin(2.0*dTheta) * rc

	return math.Sqrt(
		sq(dLp/sl) +
			sq(dCp/sc) +
			sq(dHp/sh) +
			rt*(dCp/sc)*(dHp/sh))
}

// hueAngle returns the hue angle of (aPrime, b) in [0, 2pi), or 0 when both
// components are zero.
func hueAngle(b, aPrime float64) float64 {
	if b == 0 && aPrime == 0 {
		return 0
	}
	h := math.Atan2(b, aPrime)
	if h < 0 {
		h += degToRad(360)
	}
	return h
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

func sq(v float64) float64 {
	return v * v
}

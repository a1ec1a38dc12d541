package grade

// A LUT maps each 8-bit input level to an output level. The tone
// mapper and the curve engine both bake into one of these, so the
// per-pixel cost of either stage is a single array index.
type LUT [256]uint8

func IdentityLUT() LUT {
	var l LUT
	for i := 0; i < 256; i++ {
		l[i] = uint8(i)
	}
	return l
}

func (l LUT)IsIdentity() bool {
	for i := 0; i < 256; i++ {
		if l[i] != uint8(i) {
			return false
		}
	}
	return true
}

// Compose returns the table computing l[inner[i]], i.e. `inner` is
// applied first. Used to fold the master curve into each channel curve.
func (l LUT)Compose(inner LUT) LUT {
	var out LUT
	for i := 0; i < 256; i++ {
		out[i] = l[inner[i]]
	}
	return out
}

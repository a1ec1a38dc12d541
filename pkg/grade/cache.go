package grade

// Equality checks backing the Developer's rebuild diff. Tone, WB and
// HSL params are plain comparable structs; these cover the two
// sub-objects holding slices.

func pointsEqual(a, b []Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func curveParamsEqual(a, b CurveParams) bool {
	return pointsEqual(a.RGB, b.RGB) &&
		pointsEqual(a.Red, b.Red) &&
		pointsEqual(a.Green, b.Green) &&
		pointsEqual(a.Blue, b.Blue)
}

// clone deep-copies the slice-valued fields so the Developer's cached
// bundle can't be mutated out from under the diff by a caller editing
// its own copy in place.
func (a Adjustments)clone() Adjustments {
	out := a
	out.Curves.RGB = append([]Point(nil), a.Curves.RGB...)
	out.Curves.Red = append([]Point(nil), a.Curves.Red...)
	out.Curves.Green = append([]Point(nil), a.Curves.Green...)
	out.Curves.Blue = append([]Point(nil), a.Curves.Blue...)
	out.Look.Looks = append([]Look(nil), a.Look.Looks...)
	return out
}

// Looks compare by cube identity, not content: cubes are parsed once
// and shared, so pointer equality is the cheap content check.
func lookParamsEqual(a, b LookParams) bool {
	if len(a.Looks) != len(b.Looks) {
		return false
	}
	for i := range a.Looks {
		if a.Looks[i].Cube != b.Looks[i].Cube || a.Looks[i].Intensity != b.Looks[i].Intensity {
			return false
		}
	}
	return true
}

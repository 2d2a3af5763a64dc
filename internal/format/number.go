package format

import "strconv"

// FormatFloat renders v with the given number of significant digits, as a
// value of the given bit size (32 or 64). A float32 result is therefore never
// shown with more digits than it carries.
//
// Parameters:
//   - v: The value to format.
//   - digits: The number of significant digits.
//   - bits: The floating-point width the value was computed in.
//
// Returns:
//   - string: The formatted value.
func FormatFloat(v float64, digits, bits int) string {
	return strconv.FormatFloat(v, 'g', digits, bits)
}

// FormatError renders an absolute error in scientific notation.
func FormatError(v float64) string {
	return strconv.FormatFloat(v, 'e', 2, 64)
}

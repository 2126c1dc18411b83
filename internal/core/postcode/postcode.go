// Package postcode extracts UK postcodes from free-form address text
package postcode

import "regexp"

// ukRe matches the general UK postcode grammar: the GIR 0AA special case plus
// the outward codes A9, A99, AA9, AA99, A9A and AA9A followed by a 9AA inward
// code, with the space between halves optional
var ukRe = regexp.MustCompile(
	`([Gg][Ii][Rr] 0[Aa]{2})` +
		`|((([A-Za-z][0-9]{1,2})` +
		`|(([A-Za-z][A-Ha-hJ-Yj-y][0-9]{1,2})` +
		`|(([A-Za-z][0-9][A-Za-z])` +
		`|([A-Za-z][A-Ha-hJ-Yj-y][0-9][A-Za-z]?))))` +
		`\s?[0-9][A-Za-z]{2})`,
)

// Find returns the first postcode-shaped token in addr.
// ok is false when the address carries no recognizable postcode
func Find(addr string) (string, bool) {
	m := ukRe.FindString(addr)
	if m == "" {
		return "", false
	}
	return m, true
}

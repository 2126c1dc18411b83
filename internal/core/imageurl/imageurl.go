// Package imageurl rewrites scraped image URLs to request higher resolutions
package imageurl

import (
	"fmt"
	"regexp"
	"strconv"
)

// DefaultScaleFactor is applied when the caller does not configure one.
// The scraper hands back thumbnails around 80x106; x7 lands in display range
const DefaultScaleFactor = 7

// dimsRe finds the width/height token pair embedded in Google image URLs
var dimsRe = regexp.MustCompile(`w(\d+)-h(\d+)`)

// Rescale multiplies the w/h token pair in url by factor and substitutes the
// result in place. URLs without the token pair pass through unchanged
func Rescale(url string, factor int) string {
	m := dimsRe.FindStringSubmatch(url)
	if m == nil {
		return url
	}

	// the grammar guarantees digits; Atoi cannot fail here
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])

	return dimsRe.ReplaceAllLiteralString(url, fmt.Sprintf("w%d-h%d", w*factor, h*factor))
}

package post

import "strings"

// CompressText trims a text to a target ratio of its word count,
// preserving the beginning. Ratios outside (0,1) leave the text
// unchanged.
func CompressText(text string, targetRatio float64) string {
	if targetRatio <= 0 || targetRatio >= 1 {
		return text
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}
	keep := int(float64(len(words)) * targetRatio)
	if keep <= 0 {
		keep = 1
	}
	if keep >= len(words) {
		return text
	}
	return strings.Join(words[:keep], " ")
}

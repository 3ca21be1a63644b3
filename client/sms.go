package client

import "unicode/utf16"

// SMS segment sizes.
const (
	gsmSingleSegment     = 160
	gsmMultiSegment      = 153
	unicodeSingleSegment = 70
	unicodeMultiSegment  = 67
)

// isGSMExtended reports whether r takes two septets in the GSM 03.38
// alphabet.
func isGSMExtended(r rune) bool {
	switch r {
	case '\f', '^', '{', '}', '\\', '[', '~', ']', '|', '€':
		return true
	}

	return false
}

// SMSParts estimates how many SMS segments text occupies. With unicode set
// the 70/67 limits apply to UTF-16 code units, so characters outside the
// Basic Multilingual Plane count twice; otherwise GSM-7 limits of 160/153
// septets, where extended characters count double and are never split
// across segments.
func SMSParts(text string, unicode bool) int {
	if unicode {
		n := len(utf16.Encode([]rune(text)))
		if n <= unicodeSingleSegment {
			return 1
		}

		return (n + unicodeMultiSegment - 1) / unicodeMultiSegment
	}

	total := 0
	for _, r := range text {
		total++
		if isGSMExtended(r) {
			total++
		}
	}

	if total <= gsmSingleSegment {
		return 1
	}

	parts, septets := 1, 0
	for _, r := range text {
		extended := isGSMExtended(r)

		if septets == gsmMultiSegment || (septets == gsmMultiSegment-1 && extended) {
			parts++
			septets = 0
		}

		if extended {
			septets += 2
		} else {
			septets++
		}
	}

	return parts
}

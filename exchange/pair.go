package exchange

import "strings"

const (
	PairSeparator = "_"
)

//
// PairFirst returns the first (base) asset of a canonical pair. Malformed pairs are returned as-is.
//
func PairFirst(pair string) string {
	return strings.SplitN(pair, PairSeparator, 2)[0]
}

//
// PairSecond returns the second (quote) asset of a canonical pair, or an empty string if the pair
// has no separator.
//
func PairSecond(pair string) string {
	parts := strings.SplitN(pair, PairSeparator, 2)
	if len(parts) < 2 {
		return ""
	}

	return parts[1]
}

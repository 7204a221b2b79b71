package expr

import "strings"

// compareNatural compares two strings treating embedded runs of
// digits as numbers, so "Cond2" sorts before "Cond10". Returns -1, 0
// or 1 in the manner of strings.Compare.
func compareNatural(a, b string) int {
	for a != "" && b != "" {
		aRun, aNum, aRest := nextRun(a)
		bRun, bNum, bRest := nextRun(b)

		if aNum && bNum {
			// Compare digit runs numerically: longer run of
			// significant digits wins, equal lengths compare
			// lexically.
			at := strings.TrimLeft(aRun, "0")
			bt := strings.TrimLeft(bRun, "0")
			switch {
			case len(at) != len(bt):
				if len(at) < len(bt) {
					return -1
				}
				return 1
			case at != bt:
				return strings.Compare(at, bt)
			case aRun != bRun:
				// Equal values, different zero-padding.
				return strings.Compare(aRun, bRun)
			}
		} else if c := strings.Compare(aRun, bRun); c != 0 {
			return c
		}

		a, b = aRest, bRest
	}

	return strings.Compare(a, b)
}

// nextRun splits s into its leading run of digits or non-digits and
// the remainder.
func nextRun(s string) (run string, numeric bool, rest string) {
	numeric = isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == numeric {
		i++
	}
	return s[:i], numeric, s[i:]
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

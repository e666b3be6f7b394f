package canonical

// Ratio returns a normalized edit similarity in [0,1] between two keys,
// defined as 2*LCS(a,b)/(len(a)+len(b)) over runes. Two empty keys are
// treated as identical and compare as 1.0.
func Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	ar := []rune(a)
	br := []rune(b)
	if len(ar) == 0 || len(br) == 0 {
		return 0.0
	}
	// Keep the DP rows sized by the shorter string.
	if len(br) > len(ar) {
		ar, br = br, ar
	}
	prev := make([]int, len(br)+1)
	curr := make([]int, len(br)+1)
	for _, ca := range ar {
		for j, cb := range br {
			switch {
			case ca == cb:
				curr[j+1] = prev[j] + 1
			case prev[j+1] >= curr[j]:
				curr[j+1] = prev[j+1]
			default:
				curr[j+1] = curr[j]
			}
		}
		prev, curr = curr, prev
		for j := range curr {
			curr[j] = 0
		}
	}
	lcs := prev[len(br)]
	return 2.0 * float64(lcs) / float64(len(ar)+len(br))
}

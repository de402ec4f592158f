package retrieval

import "strings"

// PartialRatio scores how well the shorter of a and b matches somewhere inside
// the longer one, in [0,1]. Each alignment is scored with the Indel similarity
// 2·LCS/(|x|+|y|); windows that hang off either end of the longer string are
// considered too, so a match at the very start or end is not penalised.
// Comparison is case-insensitive and rune-based.
func PartialRatio(a, b string) float64 {
	s := []rune(strings.ToLower(a))
	l := []rune(strings.ToLower(b))
	if len(s) > len(l) {
		s, l = l, s
	}
	if len(s) == 0 {
		if len(l) == 0 {
			return 1
		}
		return 0
	}

	best := 0.0
	consider := func(window []rune) bool {
		if r := indelRatio(s, window); r > best {
			best = r
		}
		return best >= 1
	}

	for k := 1; k < len(s); k++ {
		if consider(l[:k]) {
			return 1
		}
	}
	for i := 0; i+len(s) <= len(l); i++ {
		if consider(l[i : i+len(s)]) {
			return 1
		}
	}
	for k := len(s) - 1; k >= 1; k-- {
		if consider(l[len(l)-k:]) {
			return 1
		}
	}
	return best
}

func indelRatio(x, y []rune) float64 {
	total := len(x) + len(y)
	if total == 0 {
		return 1
	}
	return 2 * float64(lcsLen(x, y)) / float64(total)
}

func lcsLen(x, y []rune) int {
	if len(x) < len(y) {
		x, y = y, x
	}
	prev := make([]int, len(y)+1)
	cur := make([]int, len(y)+1)
	for i := 1; i <= len(x); i++ {
		for j := 1; j <= len(y); j++ {
			switch {
			case x[i-1] == y[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(y)]
}

package normalizer

import "strings"

// similarityRatio implements the Ratcliff/Obershelp measure over runes,
// case-insensitively: twice the total length of the greedily matched common
// blocks divided by the combined length of both strings.
func similarityRatio(a, b string) float64 {
	ar := []rune(strings.ToLower(a))
	br := []rune(strings.ToLower(b))
	total := len(ar) + len(br)
	if total == 0 {
		return 1
	}
	matched := matchingBlocksSize(ar, br, 0, len(ar), 0, len(br))
	return 2 * float64(matched) / float64(total)
}

// matchingBlocksSize finds the longest common block within the given bounds
// and recurses on the regions to its left and right.
func matchingBlocksSize(a, b []rune, alo, ahi, blo, bhi int) int {
	ai, bj, size := longestMatch(a, b, alo, ahi, blo, bhi)
	if size == 0 {
		return 0
	}
	total := size
	total += matchingBlocksSize(a, b, alo, ai, blo, bj)
	total += matchingBlocksSize(a, b, ai+size, ahi, bj+size, bhi)
	return total
}

// longestMatch returns the earliest longest matching block between a[alo:ahi]
// and b[blo:bhi].
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo
	lengths := make(map[int]int)
	for i := alo; i < ahi; i++ {
		next := make(map[int]int)
		for j := blo; j < bhi; j++ {
			if a[i] != b[j] {
				continue
			}
			k := lengths[j-1] + 1
			next[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		lengths = next
	}
	return besti, bestj, bestsize
}

package db

// CanonicalPair orders two user ids so the lexicographically smaller
// one comes first. Matches and Conversations always store their pair
// in this order, so (A,B) and (B,A) hit the same row.
func CanonicalPair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

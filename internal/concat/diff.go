package concat

// trimCommon computes the minimal single replacement window between two
// texts by trimming their common prefix and suffix. It returns the
// prefix length and the end of the differing window in each text, so
// old[prefix:oldEnd] is replaced by new[prefix:newEnd].
//
// This is the policy used for all reported changes: a full alignment
// diff could split one edit into several hunks, but a keystroke-sized
// edit always reduces to a single window, and reporting one window per
// mutation matches the one-change-per-event contract.
func trimCommon(old, new string) (prefix, oldEnd, newEnd int) {
	limit := len(old)
	if len(new) < limit {
		limit = len(new)
	}

	for prefix < limit && old[prefix] == new[prefix] {
		prefix++
	}

	suffix := 0
	for suffix < limit-prefix && old[len(old)-1-suffix] == new[len(new)-1-suffix] {
		suffix++
	}

	return prefix, len(old) - suffix, len(new) - suffix
}

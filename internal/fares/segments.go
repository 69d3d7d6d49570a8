package fares

import (
	"sort"

	"faregrid.ticketconsole.org/internal/models"
)

// segmentIndex lists, per line prefix, the sequence numbers i for which the
// table stores a fare between FormatCode(prefix, i) and
// FormatCode(prefix, i+1). Every other adjacent pair prices at zero, so a
// line sum only has to visit these.
type segmentIndex map[string][]int

func newSegmentIndex(entries []models.FareEntry) segmentIndex {
	seen := make(map[string]map[int]struct{})
	for _, e := range entries {
		pa, pb := ParseCode(e.From), ParseCode(e.To)
		if pa.Prefix == "" || pa.Prefix != pb.Prefix {
			continue
		}
		lo, hi := min(pa.Seq, pb.Seq), max(pa.Seq, pb.Seq)
		if hi-lo != 1 {
			continue
		}
		// "01-1" and "01-001" parse like "01-01" but are different keys.
		if e.From != FormatCode(pa.Prefix, pa.Seq) || e.To != FormatCode(pb.Prefix, pb.Seq) {
			continue
		}
		if seen[pa.Prefix] == nil {
			seen[pa.Prefix] = make(map[int]struct{})
		}
		seen[pa.Prefix][lo] = struct{}{}
	}

	idx := make(segmentIndex, len(seen))
	for prefix, set := range seen {
		seqs := make([]int, 0, len(set))
		for i := range set {
			seqs = append(seqs, i)
		}
		sort.Ints(seqs)
		idx[prefix] = seqs
	}
	return idx
}

// within returns the indexed starts of prefix in [lo, hi).
func (s segmentIndex) within(prefix string, lo, hi int) []int {
	seqs := s[prefix]
	start := sort.SearchInts(seqs, lo)
	end := sort.SearchInts(seqs, hi)
	return seqs[start:end]
}

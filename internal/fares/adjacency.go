package fares

import (
	"fmt"
	"strconv"
	"strings"
)

// codeSeparator splits a station code into line prefix and sequence number.
const codeSeparator = "-"

// StationCode is a parsed station code.
type StationCode struct {
	Prefix string
	Seq    int
}

// ParseCode splits code on the first separator. A code without separator has
// an empty prefix; a non-numeric suffix yields Seq 0. It never fails.
func ParseCode(code string) StationCode {
	prefix, rest, found := strings.Cut(code, codeSeparator)
	if !found {
		return StationCode{}
	}
	// Only the part up to a second separator counts, "01-02-x" is stop 2.
	if i := strings.Index(rest, codeSeparator); i >= 0 {
		rest = rest[:i]
	}
	seq, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		seq = 0
	}
	return StationCode{Prefix: prefix, Seq: seq}
}

// SameLine reports whether a and b carry the same non-empty line prefix.
func SameLine(a, b string) bool {
	pa, pb := ParseCode(a), ParseCode(b)
	return pa.Prefix != "" && pa.Prefix == pb.Prefix
}

// FormatCode builds the code of stop seq on line prefix, zero padding the
// number to two digits.
func FormatCode(prefix string, seq int) string {
	return fmt.Sprintf("%s%s%02d", prefix, codeSeparator, seq)
}

// Package fares resolves prices between stations of a transit network.
//
// The engine works on an immutable snapshot of stations, lines and stored
// fares. Stored fares are sparse: a price between two stations that share a
// line prefix is the sum of the adjacent segments between them, and riders
// may change lines for free at stations whose display names match.
//
// Same-line adjacency is inferred from station codes alone
// ("<prefix>-<number>"); the ordered station list of a Line is only used for
// the colour hints of the fare matrix.
package fares

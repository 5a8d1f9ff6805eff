package core

import "errors"

var (
	// ErrIndexOutOfRange is returned by Candidate accessors for a position outside [0, Len()).
	ErrIndexOutOfRange = errors.New("index is out of range")
	// ErrLengthMismatch is returned when a Candidate does not match the item count of a Problem.
	ErrLengthMismatch = errors.New("candidate length does not match item count")
)

// Item is a single knapsack item. Items are values; a Problem hands out copies.
type Item struct {
	// Value is the profit gained when the item is selected.
	Value uint64 `json:"value" yaml:"value"`
	// Weight is the capacity consumed when the item is selected.
	Weight uint64 `json:"weight" yaml:"weight"`
}

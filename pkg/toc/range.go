package toc

import (
	"errors"
	"fmt"
)

const (
	// MinLevel is the highest heading rank (h1).
	MinLevel = 1
	// MaxLevel is the lowest heading rank (h6).
	MaxLevel = 6
)

// ErrInvalidRange reports a top/depth pair outside 1 <= top <= depth <= 6.
var ErrInvalidRange = errors.New("toc: invalid heading range")

// Range selects the heading levels a fixer or generator considers. Top is the
// first level included and Depth the last one.
type Range struct {
	Top   int
	Depth int
}

// DefaultRange covers h1 through h6.
func DefaultRange() Range {
	return Range{Top: MinLevel, Depth: MaxLevel}
}

// NewRange validates top and depth.
func NewRange(top, depth int) (Range, error) {
	r := Range{Top: top, Depth: depth}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

// Validate returns an error wrapping ErrInvalidRange when the range is empty
// or leaves h1..h6.
func (r Range) Validate() error {
	switch {
	case r.Top < MinLevel || r.Top > MaxLevel:
		return fmt.Errorf("%w: top %d not in [%d, %d]", ErrInvalidRange, r.Top, MinLevel, MaxLevel)
	case r.Depth < MinLevel || r.Depth > MaxLevel:
		return fmt.Errorf("%w: depth %d not in [%d, %d]", ErrInvalidRange, r.Depth, MinLevel, MaxLevel)
	case r.Top > r.Depth:
		return fmt.Errorf("%w: top %d greater than depth %d", ErrInvalidRange, r.Top, r.Depth)
	}
	return nil
}

// Contains reports whether a heading level falls inside the range.
func (r Range) Contains(level int) bool {
	return level >= r.Top && level <= r.Depth
}

// Tags lists the heading tag names covered by the range, highest rank first.
func (r Range) Tags() []string {
	if r.Validate() != nil {
		return nil
	}
	tags := make([]string, 0, r.Depth-r.Top+1)
	for level := r.Top; level <= r.Depth; level++ {
		tags = append(tags, fmt.Sprintf("h%d", level))
	}
	return tags
}

// relative converts an absolute heading level into a 1-based menu level.
func (r Range) relative(level int) int {
	return level - r.Top + 1
}

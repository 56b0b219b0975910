package codec

import (
	"fmt"
)

// Strategy is how a list finds out how many elements it holds.
type Strategy uint8

const (
	// StrategyUnknown is the zero value and is always an error.
	StrategyUnknown Strategy = 0
	// StrategyPrefix8 reads a uint8 count immediately before the elements.
	StrategyPrefix8 Strategy = 1
	// StrategyPrefix16 reads a uint16 count immediately before the elements.
	StrategyPrefix16 Strategy = 2
	// StrategyPrefix32 reads a uint32 count immediately before the elements.
	StrategyPrefix32 Strategy = 3
	// StrategyFixed uses a count supplied by the caller and reads nothing.
	StrategyFixed Strategy = 4
	// StrategySum uses the sum of already decoded fields and reads nothing.
	StrategySum Strategy = 5
	// StrategySaved uses a length recorded with Reader.Save multiplied by a constant and
	// reads nothing.
	StrategySaved Strategy = 6
)

func (s Strategy) String() string {
	switch s {
	case StrategyPrefix8:
		return "Prefix8"
	case StrategyPrefix16:
		return "Prefix16"
	case StrategyPrefix32:
		return "Prefix32"
	case StrategyFixed:
		return "Fixed"
	case StrategySum:
		return "Sum"
	case StrategySaved:
		return "Saved"
	}
	return fmt.Sprintf("Strategy(%d)", uint8(s))
}

// Count describes where a list's element count comes from.
type Count struct {
	Strategy Strategy

	// N is the count for StrategyFixed.
	N int
	// Terms are summed for StrategySum.
	Terms []int
	// Key names the saved length for StrategySaved, which is multiplied by Mult.
	Key  string
	Mult int
}

// Counts read from a prefix.
var (
	Prefix8  = Count{Strategy: StrategyPrefix8}
	Prefix16 = Count{Strategy: StrategyPrefix16}
	Prefix32 = Count{Strategy: StrategyPrefix32}
)

// Fixed is a count known before the list is read.
func Fixed(n int) Count {
	return Count{Strategy: StrategyFixed, N: n}
}

// Sum is a count that is the sum of already decoded fields.
func Sum(terms ...int) Count {
	return Count{Strategy: StrategySum, Terms: terms}
}

// Saved is a count equal to the length saved under key times mult.
func Saved(key string, mult int) Count {
	return Count{Strategy: StrategySaved, Key: key, Mult: mult}
}

// resolve returns the element count, reading a prefix if the strategy has one.
func (c Count) resolve(r *Reader) (int, error) {
	switch c.Strategy {
	case StrategyPrefix8:
		n, err := U8(r)
		return int(n), err
	case StrategyPrefix16:
		n, err := U16(r)
		return int(n), err
	case StrategyPrefix32:
		n, err := U32(r)
		return int(n), err
	case StrategyFixed:
		return c.N, nil
	case StrategySum:
		n := 0
		for _, t := range c.Terms {
			n += t
		}
		return n, nil
	case StrategySaved:
		n, ok := r.Saved(c.Key)
		if !ok {
			return 0, r.fail(r.off, fmt.Errorf("%w: no length saved as %q", ErrBug, c.Key))
		}
		return n * c.Mult, nil
	}
	return 0, r.fail(r.off, fmt.Errorf("%w: unknown count strategy %s", ErrBug, c.Strategy))
}

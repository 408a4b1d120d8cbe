package domain

import "fmt"

// Category selects which order counter a new order draws its number from.
type Category string

const (
	CategorySail      Category = "Sail"
	CategoryAccessory Category = "Accessory"
)

func (c Category) Valid() bool {
	return c == CategorySail || c == CategoryAccessory
}

// Prefix is the letter in front of the numeric part of a display number.
// Sail orders use "S", everything else "A".
func (c Category) Prefix() string {
	if c == CategorySail {
		return "S"
	}
	return "A"
}

// OrderCounter is the versioned per-category counter row. LastNumber is
// monotonically non-decreasing and never reused, even when an order is
// later removed. Version backs the optimistic write check.
type OrderCounter struct {
	Category   Category
	LastNumber int
	Version    int
}

// NextRange computes the contiguous block of quantity numbers following
// the counter's current value. It does not mutate the counter; the
// repository persists LastNumber+quantity under a version check.
func (c OrderCounter) NextRange(quantity int) NumberRange {
	return NumberRange{
		Category: c.Category,
		First:    c.LastNumber + 1,
		Last:     c.LastNumber + quantity,
	}
}

// NumberRange is a reserved block of consecutive sequence numbers.
type NumberRange struct {
	Category Category
	First    int
	Last     int
}

func (r NumberRange) Size() int {
	return r.Last - r.First + 1
}

// Display renders the human-facing order number: "S42" for a single unit,
// "S42-S44" for a block.
func (r NumberRange) Display() string {
	prefix := r.Category.Prefix()
	if r.First == r.Last {
		return fmt.Sprintf("%s%d", prefix, r.First)
	}
	return fmt.Sprintf("%s%d-%s%d", prefix, r.First, prefix, r.Last)
}

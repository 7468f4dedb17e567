package deck

import "fmt"

// SlideContext is a read-only snapshot of which slide is showing.
type SlideContext struct {
	SlideNumber int `json:"slide_number"`
	TotalSlides int `json:"total_slides"`
}

func (c SlideContext) Validate() error {
	if c.TotalSlides < 1 {
		return fmt.Errorf("total_slides must be >= 1, got %d", c.TotalSlides)
	}
	if c.SlideNumber < 1 || c.SlideNumber > c.TotalSlides {
		return fmt.Errorf("slide_number %d out of range [1,%d]", c.SlideNumber, c.TotalSlides)
	}
	return nil
}

// Navigator owns the current-slide state for one presentation session.
// All transitions are no-ops at the bounds; the invariant
// 1 <= current <= total holds for the navigator's whole lifetime.
type Navigator struct {
	current int
	total   int
}

func NewNavigator(total int) (*Navigator, error) {
	if total < 1 {
		return nil, fmt.Errorf("deck must have at least one slide, got %d", total)
	}
	return &Navigator{current: 1, total: total}, nil
}

func (n *Navigator) Current() int { return n.current }
func (n *Navigator) Total() int   { return n.total }

// Advance moves to the next slide and returns the current slide.
// No-op on the last slide.
func (n *Navigator) Advance() int {
	if n.current < n.total {
		n.current++
	}
	return n.current
}

// Retreat moves to the previous slide and returns the current slide.
// No-op on the first slide.
func (n *Navigator) Retreat() int {
	if n.current > 1 {
		n.current--
	}
	return n.current
}

// JumpTo moves directly to slide target and returns the current slide.
// Out-of-range targets are ignored.
func (n *Navigator) JumpTo(target int) int {
	if target >= 1 && target <= n.total {
		n.current = target
	}
	return n.current
}

// Context returns a snapshot suitable for building a voice request.
func (n *Navigator) Context() SlideContext {
	return SlideContext{SlideNumber: n.current, TotalSlides: n.total}
}

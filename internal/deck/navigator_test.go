package deck

import "testing"

func TestNewNavigator_RejectsEmptyDeck(t *testing.T) {
	if _, err := NewNavigator(0); err == nil {
		t.Fatal("expected error for total=0")
	}
	if _, err := NewNavigator(-3); err == nil {
		t.Fatal("expected error for negative total")
	}
}

func TestNavigator_StartsAtOne(t *testing.T) {
	nav, err := NewNavigator(5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nav.Current() != 1 {
		t.Errorf("expected initial slide 1, got %d", nav.Current())
	}
}

func TestNavigator_AdvanceStopsAtUpperBound(t *testing.T) {
	nav, _ := NewNavigator(3)
	for i := 0; i < 10; i++ {
		nav.Advance()
	}
	if nav.Current() != 3 {
		t.Errorf("expected slide 3 after repeated advance, got %d", nav.Current())
	}
}

func TestNavigator_RetreatStopsAtLowerBound(t *testing.T) {
	nav, _ := NewNavigator(3)
	for i := 0; i < 10; i++ {
		nav.Retreat()
	}
	if nav.Current() != 1 {
		t.Errorf("expected slide 1 after repeated retreat, got %d", nav.Current())
	}
}

func TestNavigator_JumpTo(t *testing.T) {
	tests := []struct {
		name   string
		target int
		want   int
	}{
		{"in range", 3, 3},
		{"lower bound", 1, 1},
		{"upper bound", 5, 5},
		{"below range is a no-op", 0, 1},
		{"above range is a no-op", 6, 1},
		{"negative is a no-op", -2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav, _ := NewNavigator(5)
			if got := nav.JumpTo(tt.target); got != tt.want {
				t.Errorf("JumpTo(%d) = %d, want %d", tt.target, got, tt.want)
			}
		})
	}
}

func TestNavigator_BoundsHoldUnderArbitrarySequences(t *testing.T) {
	nav, _ := NewNavigator(4)

	ops := []func() int{
		nav.Advance, nav.Advance, nav.Retreat,
		func() int { return nav.JumpTo(99) },
		nav.Advance,
		func() int { return nav.JumpTo(-1) },
		nav.Retreat, nav.Retreat, nav.Retreat, nav.Retreat,
		func() int { return nav.JumpTo(4) },
		nav.Advance,
	}

	for i, op := range ops {
		cur := op()
		if cur < 1 || cur > nav.Total() {
			t.Fatalf("op %d: slide %d escaped [1,%d]", i, cur, nav.Total())
		}
		if ctx := nav.Context(); ctx.Validate() != nil {
			t.Fatalf("op %d: context %+v invalid", i, ctx)
		}
	}
}

func TestSlideContext_Validate(t *testing.T) {
	valid := SlideContext{SlideNumber: 2, TotalSlides: 5}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid context, got %v", err)
	}

	for _, ctx := range []SlideContext{
		{SlideNumber: 0, TotalSlides: 5},
		{SlideNumber: 6, TotalSlides: 5},
		{SlideNumber: 1, TotalSlides: 0},
		{SlideNumber: -1, TotalSlides: -1},
	} {
		if err := ctx.Validate(); err == nil {
			t.Errorf("expected error for %+v", ctx)
		}
	}
}

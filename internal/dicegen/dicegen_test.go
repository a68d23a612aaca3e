package dicegen

import (
	"testing"

	"github.com/go-bkgm/bkgm/pkg/position"
)

func TestMockReplaysInOrder(t *testing.T) {
	want := []position.Dice{
		position.NewDice(3, 1),
		position.NewDice(6, 6),
		position.NewDice(2, 5),
	}
	m := NewMock(want...)
	for i, w := range want {
		if got := m.Roll(); got != w {
			t.Errorf("roll %d: got %v, want %v", i, got, w)
		}
	}
	if !m.AssertExhausted() {
		t.Error("AssertExhausted() = false after consuming every scripted roll")
	}
}

func TestMockPanicsWhenExhausted(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic when Mock runs out of scripted rolls")
		}
	}()
	m := NewMock(position.NewDice(1, 1))
	m.Roll()
	m.Roll()
}

func TestRandProducesEveryFaceAndFollowsHighLowOrder(t *testing.T) {
	r := NewRandSeeded(42)
	seen := make(map[int]bool)
	for i := 0; i < 10_000; i++ {
		d := r.Roll()
		if d.High < d.Low {
			t.Fatalf("Roll() returned unnormalized dice %+v", d)
		}
		if d.High < 1 || d.High > 6 || d.Low < 1 || d.Low > 6 {
			t.Fatalf("Roll() out of range: %+v", d)
		}
		seen[d.High*10+d.Low] = true
	}
	if len(seen) != 21 {
		t.Errorf("saw %d distinct unordered pairs over 10000 rolls, want 21", len(seen))
	}
}

func TestRandSeededIsReproducible(t *testing.T) {
	a := NewRandSeeded(7)
	b := NewRandSeeded(7)
	for i := 0; i < 100; i++ {
		if a.Roll() != b.Roll() {
			t.Fatalf("same-seed generators diverged at roll %d", i)
		}
	}
}

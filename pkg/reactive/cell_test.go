package reactive

import (
	"testing"
)

func TestCell_GetSet(t *testing.T) {
	cell := NewCell(42)

	if got := cell.Get(); got != 42 {
		t.Errorf("Expected initial value 42, got %v", got)
	}

	cell.Set(100)
	if got := cell.Get(); got != 100 {
		t.Errorf("Expected value 100 after Set, got %v", got)
	}
}

func TestEffect_TracksDependencies(t *testing.T) {
	cell := NewCell("hello")

	runs := 0
	var seen string
	NewEffect(func() {
		runs++
		seen = cell.Get().(string)
	})

	if runs != 1 {
		t.Fatalf("Expected 1 initial run, got %d", runs)
	}
	if seen != "hello" {
		t.Errorf("Expected effect to observe hello, got %q", seen)
	}

	cell.Set("world")
	if runs != 2 {
		t.Errorf("Expected 2 runs after write, got %d", runs)
	}
	if seen != "world" {
		t.Errorf("Expected effect to observe world, got %q", seen)
	}
}

func TestEffect_ResubscribesEachRun(t *testing.T) {
	use := NewCell(true)
	a := NewCell("a")
	b := NewCell("b")

	runs := 0
	NewEffect(func() {
		runs++
		if use.Get().(bool) {
			a.Get()
		} else {
			b.Get()
		}
	})

	use.Set(false) // now depends on b, not a
	runs = 0

	a.Set("a2")
	if runs != 0 {
		t.Errorf("Expected no runs after write to dropped dependency, got %d", runs)
	}
	b.Set("b2")
	if runs != 1 {
		t.Errorf("Expected 1 run after write to live dependency, got %d", runs)
	}
}

func TestEffect_Dispose(t *testing.T) {
	cell := NewCell(1)

	runs := 0
	eff := NewEffect(func() {
		runs++
		cell.Get()
	})

	eff.Dispose()
	cell.Set(2)
	if runs != 1 {
		t.Errorf("Expected no runs after dispose, got %d total", runs)
	}
}

func TestUntrack(t *testing.T) {
	tracked := NewCell(1)
	untracked := NewCell(10)

	runs := 0
	var sum int
	NewEffect(func() {
		runs++
		sum = tracked.Get().(int) + Untrack(func() any { return untracked.Get() }).(int)
	})

	if sum != 11 {
		t.Fatalf("Expected sum 11, got %d", sum)
	}

	untracked.Set(20)
	if runs != 1 {
		t.Errorf("Expected no re-run on untracked write, got %d runs", runs)
	}

	tracked.Set(2)
	if runs != 2 {
		t.Errorf("Expected re-run on tracked write, got %d runs", runs)
	}
	if sum != 22 {
		t.Errorf("Expected sum 22, got %d", sum)
	}
}

func TestDerived_Chained(t *testing.T) {
	base := NewCell(1)
	double := NewDerived(func() any { return base.Get().(int) * 2 })
	plusOne := NewDerived(func() any { return double.Get().(int) + 1 })

	if got := plusOne.Get(); got != 3 {
		t.Fatalf("Expected derived chain value 3, got %v", got)
	}

	var observed int
	NewEffect(func() {
		observed = plusOne.Get().(int)
	})

	base.Set(5)
	if observed != 11 {
		t.Errorf("Expected chained propagation to 11, got %d", observed)
	}
}

func TestBatch_SingleRunPerComputation(t *testing.T) {
	a := NewCell(1)
	b := NewCell(2)

	runs := 0
	var sum int
	NewEffect(func() {
		runs++
		sum = a.Get().(int) + b.Get().(int)
	})
	runs = 0

	Batch(func() {
		a.Set(10)
		b.Set(20)
		if runs != 0 {
			t.Errorf("Expected no runs inside batch region, got %d", runs)
		}
	})

	if runs != 1 {
		t.Errorf("Expected exactly 1 run after batch, got %d", runs)
	}
	if sum != 30 {
		t.Errorf("Expected sum 30 after batch, got %d", sum)
	}
}

func TestBatch_Nested(t *testing.T) {
	cell := NewCell(0)

	runs := 0
	NewEffect(func() {
		runs++
		cell.Get()
	})
	runs = 0

	Batch(func() {
		cell.Set(1)
		Batch(func() {
			cell.Set(2)
		})
		if runs != 0 {
			t.Errorf("Expected nested batch to defer to outer region, got %d runs", runs)
		}
	})

	if runs != 1 {
		t.Errorf("Expected 1 run after outer batch, got %d", runs)
	}
}

func TestBatch_DistinctComputations(t *testing.T) {
	a := NewCell(1)
	b := NewCell(2)

	runsA, runsB := 0, 0
	NewEffect(func() { runsA++; a.Get() })
	NewEffect(func() { runsB++; b.Get() })
	runsA, runsB = 0, 0

	Batch(func() {
		a.Set(10)
		b.Set(20)
		a.Set(11)
	})

	if runsA != 1 {
		t.Errorf("Expected dependent of a to run once, got %d", runsA)
	}
	if runsB != 1 {
		t.Errorf("Expected dependent of b to run once, got %d", runsB)
	}
}

func TestCell_Update(t *testing.T) {
	cell := NewCell(10)
	cell.Update(func(v any) any { return v.(int) * 2 })
	if got := cell.Get(); got != 20 {
		t.Errorf("Expected 20 after Update, got %v", got)
	}
}

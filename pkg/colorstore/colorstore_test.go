package colorstore

import "testing"

func TestColorForAssignsCyclically(t *testing.T) {
	s, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	seen := map[int]Color{}
	for id := 1; id <= len(Palette); id++ {
		c, err := s.ColorFor(id)
		if err != nil {
			t.Fatalf("color for %d: %v", id, err)
		}
		seen[id] = c
		if c != Palette[id-1] {
			t.Fatalf("expected employee %d to take palette slot %d, got %+v", id, id-1, c)
		}
	}

	// The palette wraps once exhausted.
	c, err := s.ColorFor(100)
	if err != nil {
		t.Fatalf("color for 100: %v", err)
	}
	if c != Palette[0] {
		t.Fatalf("expected wrap to first palette entry, got %+v", c)
	}
}

func TestColorForIsStable(t *testing.T) {
	s, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	first, err := s.ColorFor(7)
	if err != nil {
		t.Fatalf("color for 7: %v", err)
	}
	again, err := s.ColorFor(7)
	if err != nil {
		t.Fatalf("color for 7: %v", err)
	}
	if first != again {
		t.Fatalf("expected stable color, got %+v then %+v", first, again)
	}
}

func TestSetColorAndReset(t *testing.T) {
	s, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	pinned := Color{Foreground: "16", Background: "226"}
	if err := s.SetColor(7, pinned); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := s.ColorFor(7)
	if err != nil {
		t.Fatalf("color for 7: %v", err)
	}
	if got != pinned {
		t.Fatalf("expected pinned color, got %+v", got)
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	fresh, err := s.ColorFor(7)
	if err != nil {
		t.Fatalf("color for 7: %v", err)
	}
	if fresh != Palette[0] {
		t.Fatalf("expected first palette entry after reset, got %+v", fresh)
	}
}

func TestParseANSI(t *testing.T) {
	if _, err := ParseANSI("231"); err != nil {
		t.Fatalf("expected valid code, got %v", err)
	}
	for _, bad := range []string{"-1", "256", "blue", ""} {
		if _, err := ParseANSI(bad); err == nil {
			t.Fatalf("expected %q rejected", bad)
		}
	}
}

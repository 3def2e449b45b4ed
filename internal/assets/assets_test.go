package assets

import (
	"errors"
	"testing"
	"testing/fstest"
)

func TestSourcePriority(t *testing.T) {
	s := NewSource()
	s.AddFS("base", fstest.MapFS{
		"assets/Dock.glb":   {Data: []byte("base-dock")},
		"assets/Tavern.glb": {Data: []byte("base-tavern")},
	})
	s.AddFS("mod", fstest.MapFS{
		"assets/Dock.glb": {Data: []byte("mod-dock")},
	})

	data, err := s.Read("./assets/Dock.glb")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != "mod-dock" {
		t.Errorf("expected last root to win, got %q", data)
	}

	data, err = s.Read("assets/Tavern.glb")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(data) != "base-tavern" {
		t.Errorf("expected fallback to base root, got %q", data)
	}

	if got := s.Roots(); len(got) != 2 || got[0] != "mod" {
		t.Errorf("unexpected root order %v", got)
	}
}

func TestSourceMissing(t *testing.T) {
	s := NewSource()
	s.AddFS("empty", fstest.MapFS{})

	_, err := s.Read("assets/Castle.glb")
	if !errors.Is(err, ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestSourceCachesReads(t *testing.T) {
	s := NewSource()
	s.AddFS("base", fstest.MapFS{"a.bin": {Data: []byte{1, 2, 3}}})

	for i := 0; i < 3; i++ {
		if _, err := s.Read("a.bin"); err != nil {
			t.Fatalf("Read: %v", err)
		}
	}

	hits, misses := s.Cache().Stats()
	if hits != 2 || misses != 1 {
		t.Errorf("cache stats = %d hits / %d misses, want 2 / 1", hits, misses)
	}
}

func TestClean(t *testing.T) {
	tests := map[string]string{
		"./assets/Dock.glb":  "assets/Dock.glb",
		"/assets/Dock.glb":   "assets/Dock.glb",
		"assets//x/../y.glb": "assets/y.glb",
	}
	for in, want := range tests {
		if got := clean(in); got != want {
			t.Errorf("clean(%q) = %q, want %q", in, got, want)
		}
	}
}

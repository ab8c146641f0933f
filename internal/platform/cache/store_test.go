package cache

import (
	"errors"
	"testing"
	"time"
)

func TestStore_SetGet(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Minute, 0)
	defer s.Close()

	s.Set("matches:#AAA:50", []string{"x"})
	v, ok := s.Get("matches:#AAA:50")
	if !ok {
		t.Fatalf("expected hit")
	}
	if got := v.([]string); len(got) != 1 || got[0] != "x" {
		t.Fatalf("unexpected value: %v", got)
	}
}

func TestStore_ExpiredEntryMisses(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Minute, 0)
	defer s.Close()

	current := time.Now()
	s.now = func() time.Time { return current }

	s.SetWithTTL("k", 1, time.Second)
	current = current.Add(2 * time.Second)

	if _, ok := s.Get("k"); ok {
		t.Fatalf("expected expired entry to miss")
	}
	if s.Len() != 0 {
		t.Fatalf("expected lazy eviction, got %d entries", s.Len())
	}
}

func TestStore_GetOrLoad(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Minute, 0)
	defer s.Close()

	loads := 0
	load := func() (any, error) {
		loads++
		return "loaded", nil
	}

	for i := 0; i < 3; i++ {
		v, err := s.GetOrLoad("k", load)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != "loaded" {
			t.Fatalf("unexpected value: %v", v)
		}
	}
	if loads != 1 {
		t.Fatalf("expected one load, got %d", loads)
	}
}

func TestStore_GetOrLoadErrorNotCached(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Minute, 0)
	defer s.Close()

	boom := errors.New("boom")
	if _, err := s.GetOrLoad("k", func() (any, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
	if _, ok := s.Get("k"); ok {
		t.Fatalf("failed load must not cache")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Minute, 0)
	defer s.Close()

	s.Set("matches:#AAA:10", 1)
	s.Set("matches:#AAA:50", 2)
	s.Set("matches:#BBB:50", 3)

	if removed := s.DeletePrefix("matches:#AAA:"); removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if _, ok := s.Get("matches:#BBB:50"); !ok {
		t.Fatalf("unrelated key must survive")
	}
}

package cache

import (
	"errors"
	"testing"
)

func seedKeys(s *Store, keys ...string) {
	for _, k := range keys {
		s.Set(k, k)
	}
}

func TestInvalidate_ExactMatch(t *testing.T) {
	s := newTestStore(10)
	defer s.Destroy()
	seedKeys(s, "foo:1", "foo:2")

	n, err := s.Invalidate("foo:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 key removed, got %d", n)
	}
	if _, ok := s.Get("foo:2"); !ok {
		t.Fatalf("expected foo:2 untouched")
	}

	// Exact match on an absent key removes nothing.
	n, err = s.Invalidate("foo:1")
	if err != nil || n != 0 {
		t.Fatalf("expected 0 removed for absent key, got n=%d err=%v", n, err)
	}
}

func TestInvalidate_Prefix(t *testing.T) {
	s := newTestStore(10)
	defer s.Destroy()
	seedKeys(s, "foo:1", "foo:2", "bar:1")

	n, err := s.Invalidate("foo:*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 keys removed, got %d", n)
	}
	if _, ok := s.Get("bar:1"); !ok {
		t.Fatalf("expected bar:1 to survive prefix invalidation")
	}
}

func TestInvalidate_Suffix(t *testing.T) {
	s := newTestStore(10)
	defer s.Destroy()
	seedKeys(s, "articles:page=1", "articles:page=2", "users:page=1")

	n, err := s.Invalidate("*page=1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 keys removed, got %d", n)
	}
}

func TestInvalidate_Everything(t *testing.T) {
	s := newTestStore(10)
	defer s.Destroy()
	seedKeys(s, "a", "b", "c")

	n, err := s.Invalidate("*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Fatalf("expected all 3 keys removed, got %d", n)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, Len=%d", s.Len())
	}
}

func TestInvalidate_TwoWildcards(t *testing.T) {
	s := newTestStore(10)
	defer s.Destroy()
	seedKeys(s, "articles:tag=go&page=1", "articles:tag=go&page=2", "articles:tag=web&page=1", "users:tag=go")

	n, err := s.Invalidate("articles:*tag=go*")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 keys removed, got %d", n)
	}
	if _, ok := s.Get("articles:tag=web&page=1"); !ok {
		t.Fatalf("expected non-matching article key to survive")
	}
	if _, ok := s.Get("users:tag=go"); !ok {
		t.Fatalf("expected users key to survive")
	}
}

func TestInvalidate_TooManyWildcards(t *testing.T) {
	s := newTestStore(10)
	defer s.Destroy()
	seedKeys(s, "a", "b")

	n, err := s.Invalidate("a*b*c*d")
	if !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no removals on invalid pattern, got %d", n)
	}
	if s.Len() != 2 {
		t.Fatalf("expected store unmodified, Len=%d", s.Len())
	}
}

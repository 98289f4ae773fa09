package search

import "testing"

func TestStore_WordRoundTrip(t *testing.T) {
	t.Parallel()
	s := New()
	if s.Word() != "" {
		t.Fatalf("new store should be empty")
	}
	s.SetWord("cerveja")
	if s.Word() != "cerveja" {
		t.Fatalf("Word=%q", s.Word())
	}
	s.SetWord("")
	if s.Word() != "" {
		t.Fatalf("clearing failed")
	}
}

package paginate

import "testing"

func TestWindow_Pages(t *testing.T) {
	t.Parallel()
	cases := []struct {
		size, take, pages int
		multiple          bool
	}{
		{0, 15, 0, false},
		{1, 15, 1, false},
		{15, 15, 1, false},
		{16, 15, 2, true},
		{30, 15, 2, true},
		{31, 15, 3, true},
		// the band where the source's ">0.5" threshold differed
		{8, 15, 1, false},
	}
	for _, c := range cases {
		w := New(0, c.take, c.size)
		if w.Pages() != c.pages || w.Multiple() != c.multiple {
			t.Fatalf("size=%d take=%d: pages=%d multiple=%v, want %d %v",
				c.size, c.take, w.Pages(), w.Multiple(), c.pages, c.multiple)
		}
	}
}

func TestWindow_Defaults(t *testing.T) {
	t.Parallel()
	w := New(-5, 0, -1)
	if w.Skip != 0 || w.Take != 15 || w.Size != 0 {
		t.Fatalf("unexpected defaults: %+v", w)
	}
}

func TestWindow_PageAndSkipDual(t *testing.T) {
	t.Parallel()
	w := New(30, 15, 100)
	if w.Page() != 2 {
		t.Fatalf("Page=%d", w.Page())
	}
	for page := 0; page < w.Pages(); page++ {
		if got := New(w.SkipFor(page), w.Take, w.Size).Page(); got != page {
			t.Fatalf("SkipFor/Page mismatch at %d: got %d", page, got)
		}
	}
	if w.SkipFor(-1) != 0 {
		t.Fatalf("negative page should clamp to 0")
	}
}

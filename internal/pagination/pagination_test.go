package pagination

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		requested  int
		size       int
		totalItems int
		wantNumber int
		wantPages  int
	}{
		{"first page of many", 1, 10, 35, 1, 4},
		{"middle page", 3, 10, 35, 3, 4},
		{"exact last page", 4, 10, 35, 4, 4},
		{"past the end clamps to last", 99, 10, 35, 4, 4},
		{"zero clamps to first", 0, 10, 35, 1, 4},
		{"negative clamps to first", -5, 10, 35, 1, 4},
		{"empty collection has one page", 1, 10, 0, 1, 1},
		{"past the end of empty collection", 7, 10, 0, 1, 1},
		{"total divides evenly", 2, 10, 20, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.requested, tt.size, tt.totalItems)
			if p.Number != tt.wantNumber {
				t.Errorf("Number = %d, want %d", p.Number, tt.wantNumber)
			}
			if p.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantPages)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	if got := New(1, 10, 35).Offset(); got != 0 {
		t.Errorf("page 1 offset = %d, want 0", got)
	}
	if got := New(3, 10, 35).Offset(); got != 20 {
		t.Errorf("page 3 offset = %d, want 20", got)
	}
	if got := New(99, 10, 35).Offset(); got != 30 {
		t.Errorf("clamped page offset = %d, want 30", got)
	}
}

func TestNeighbours(t *testing.T) {
	p := New(2, 10, 35)
	if !p.HasPrev() || !p.HasNext() {
		t.Fatalf("page 2 of 4 should have both neighbours")
	}
	if p.PrevNumber() != 1 || p.NextNumber() != 3 {
		t.Errorf("neighbours = %d/%d, want 1/3", p.PrevNumber(), p.NextNumber())
	}

	first := New(1, 10, 35)
	if first.HasPrev() {
		t.Error("first page reports a previous page")
	}
	last := New(4, 10, 35)
	if last.HasNext() {
		t.Error("last page reports a next page")
	}
}

func TestParsePageParam(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"1", 1},
		{"17", 17},
		{"0", 1},
		{"-3", 1},
		{"abc", 1},
		{"2.5", 1},
	}

	for _, tt := range tests {
		if got := ParsePageParam(tt.raw); got != tt.want {
			t.Errorf("ParsePageParam(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

package core

import (
	"math"
	"testing"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, want int
	}{
		{0, 0},
		{1, 1},
		{10, 1},
		{11, 2},
		{23, 3},
		{-5, 0},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, PageSize); got != tt.want {
			t.Errorf("TotalPages(%d) = %d, want %d", tt.total, got, tt.want)
		}
	}
}

func TestNewPage(t *testing.T) {
	tests := []struct {
		name        string
		number      int
		total       int
		wantNumber  int
		wantOffset  int
		wantInRange bool
		wantPrev    bool
		wantNext    bool
	}{
		{"first page", 1, 23, 1, 0, true, false, true},
		{"zero becomes one", 0, 23, 1, 0, true, false, true},
		{"negative becomes one", -3, 23, 1, 0, true, false, true},
		{"last page", 3, 23, 3, 20, true, true, false},
		{"past the end", 4, 23, 4, 30, false, true, false},
		{"no rows", 1, 0, 1, 0, false, false, false},
		{"huge number saturates offset", 1 << 62, 23, 1 << 62, math.MaxInt, false, true, false},
		{"max int", math.MaxInt, 23, math.MaxInt, math.MaxInt, false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage[Organization](tt.number, tt.total)
			if p.Number != tt.wantNumber {
				t.Errorf("Number = %d, want %d", p.Number, tt.wantNumber)
			}
			if p.Size != PageSize {
				t.Errorf("Size = %d, want %d", p.Size, PageSize)
			}
			if got := p.Offset(); got != tt.wantOffset {
				t.Errorf("Offset() = %d, want %d", got, tt.wantOffset)
			}
			if got := p.InRange(); got != tt.wantInRange {
				t.Errorf("InRange() = %v, want %v", got, tt.wantInRange)
			}
			if got := p.HasPrev(); got != tt.wantPrev {
				t.Errorf("HasPrev() = %v, want %v", got, tt.wantPrev)
			}
			if got := p.HasNext(); got != tt.wantNext {
				t.Errorf("HasNext() = %v, want %v", got, tt.wantNext)
			}
		})
	}
}

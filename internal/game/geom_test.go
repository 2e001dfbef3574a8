package game

import "testing"

func TestRect_Intersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{
			name: "overlapping corners",
			a:    Rect{X: 0, Y: 0, W: 50, H: 50},
			b:    Rect{X: 40, Y: 40, W: 50, H: 50},
			want: true,
		},
		{
			name: "bullet inside enemy",
			a:    Rect{X: 397, Y: 530, W: 10, H: 20},
			b:    Rect{X: 390, Y: 525, W: 50, H: 50},
			want: true,
		},
		{
			name: "touching edges do not overlap",
			a:    Rect{X: 0, Y: 0, W: 50, H: 50},
			b:    Rect{X: 50, Y: 0, W: 50, H: 50},
			want: false,
		},
		{
			name: "disjoint vertically",
			a:    Rect{X: 0, Y: 0, W: 50, H: 50},
			b:    Rect{X: 10, Y: 100, W: 50, H: 50},
			want: false,
		},
		{
			name: "fully contained",
			a:    Rect{X: 0, Y: 0, W: 100, H: 100},
			b:    Rect{X: 25, Y: 25, W: 10, H: 10},
			want: true,
		},
		{
			name: "negative coordinates",
			a:    Rect{X: -30, Y: -30, W: 40, H: 40},
			b:    Rect{X: 0, Y: 0, W: 50, H: 50},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("a.Intersects(b) = %v, want %v", got, tt.want)
			}
			if got := tt.b.Intersects(tt.a); got != tt.want {
				t.Errorf("b.Intersects(a) = %v, want %v (collision must be symmetric)", got, tt.want)
			}
		})
	}
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 20}

	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 10, true},
		{29.9, 29.9, true},
		{30, 20, false},
		{20, 30, false},
		{9.9, 20, false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-5, 0, 10); got != 0 {
		t.Errorf("Clamp(-5) = %v, want 0", got)
	}
	if got := Clamp(15, 0, 10); got != 10 {
		t.Errorf("Clamp(15) = %v, want 10", got)
	}
	if got := Clamp(7, 0, 10); got != 7 {
		t.Errorf("Clamp(7) = %v, want 7", got)
	}
}

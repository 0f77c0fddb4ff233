package rect

import (
	"errors"
	"math"
	"testing"
)

func TestDiscretize(t *testing.T) {
	tests := []struct {
		name   string
		coords [][4]float64
		units  int
		want   Set
	}{
		{
			name:   "extremes map to 1 and units",
			coords: [][4]float64{{0, 0, 1, 1}},
			units:  10,
			want:   MustNew([4]int{1, 1, 10, 10}),
		},
		{
			name:   "starts floor and ends ceil",
			coords: [][4]float64{{0, 0, 0.35, 0.5}, {0.55, 0.5, 1, 1}},
			units:  11,
			want:   MustNew([4]int{1, 1, 5, 6}, [4]int{6, 6, 11, 11}),
		},
		{
			name:   "offset range",
			coords: [][4]float64{{10, 10, 20, 30}},
			units:  5,
			want:   MustNew([4]int{1, 1, 3, 5}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Discretize(tt.coords, tt.units)
			if err != nil {
				t.Fatalf("Discretize() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Discretize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscretizeErrors(t *testing.T) {
	tests := []struct {
		name   string
		coords [][4]float64
		units  int
	}{
		{"units disabled", [][4]float64{{0, 0, 1, 1}}, 0},
		{"units too small", [][4]float64{{0, 0, 1, 1}}, 1},
		{"degenerate rect", [][4]float64{{0, 0, 1, 1}, {0.5, 0.5, 0.5, 1}}, 10},
		{"nan", [][4]float64{{0, math.NaN(), 1, 1}}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Discretize(tt.coords, tt.units); err == nil {
				t.Error("Discretize() should fail")
			}
		})
	}

	_, err := Discretize([][4]float64{{1, 0, 0, 1}, {0, 0, 1, 1}, {0, 1, 1, 0}}, 4)
	var verr *ValidationError
	if !errors.As(err, &verr) || len(verr.Invalid) != 2 {
		t.Errorf("expected ValidationError with 2 entries, got %v", err)
	}
}

func TestDiscretizeEmpty(t *testing.T) {
	got, err := Discretize(nil, 10)
	if err != nil || len(got) != 0 {
		t.Errorf("Discretize(nil) = %v, %v", got, err)
	}
}

func TestFromFloats(t *testing.T) {
	got, err := FromFloats([][4]float64{{1, 1, 2, 3}, {1, 4, 2, 8}})
	if err != nil {
		t.Fatalf("FromFloats() error = %v", err)
	}
	if !got.Equal(MustNew([4]int{1, 1, 2, 3}, [4]int{1, 4, 2, 8})) {
		t.Errorf("FromFloats() = %v", got)
	}

	if _, err := FromFloats([][4]float64{{1, 1.5, 2, 3}}); err == nil {
		t.Error("FromFloats should reject fractional coordinates")
	}
	if _, err := FromFloats([][4]float64{{2, 1, 1, 3}}); err == nil {
		t.Error("FromFloats should validate rectangles")
	}
}

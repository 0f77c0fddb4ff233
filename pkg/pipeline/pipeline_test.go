package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/boxgrid/pkg/errors"
	"github.com/matzehuels/boxgrid/pkg/rect"
)

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		units   int
		wantErr bool
	}{
		{"no discretization", 0, false},
		{"minimum units", 2, false},
		{"one unit", 1, true},
		{"negative units", -4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{Units: tt.units}
			err := opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if opts.TTL != DefaultTTL {
				t.Errorf("TTL = %v, want %v", opts.TTL, DefaultTTL)
			}
			if opts.Logger == nil {
				t.Error("Logger should default to a discard logger")
			}
		})
	}
}

func TestEncodeKeyOptsFollowLabels(t *testing.T) {
	on := Options{Labels: true}
	off := Options{}
	if on.EncodeKeyOpts() == off.EncodeKeyOpts() {
		t.Error("labeled and unlabeled encodes must use different key options")
	}
}

func TestPrepare(t *testing.T) {
	tests := []struct {
		name     string
		coords   [][4]float64
		units    int
		want     rect.Set
		wantCode errors.Code
	}{
		{
			name:   "integral passthrough",
			coords: [][4]float64{{1, 1, 3, 4}},
			want:   rect.MustNew([4]int{1, 1, 3, 4}),
		},
		{
			name:     "fractional without units",
			coords:   [][4]float64{{0.5, 1, 3, 4}},
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:   "discretized",
			coords: [][4]float64{{0, 0, 1, 1}},
			units:  5,
			want:   rect.MustNew([4]int{1, 1, 5, 5}),
		},
		{
			name:     "bad units",
			coords:   [][4]float64{{0, 0, 1, 1}},
			units:    1,
			wantCode: errors.ErrCodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Prepare(tt.coords, tt.units)
			if tt.wantCode != "" {
				if code := errors.GetCode(err); code != tt.wantCode {
					t.Fatalf("code = %q, want %q (err %v)", code, tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Prepare() error = %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Prepare() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadRects(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.json")
	if err := os.WriteFile(path, []byte(`{"rects": [[1, 1, 3, 4], [4, 1, 6, 6]]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	set, err := LoadRects(path, 0)
	if err != nil {
		t.Fatalf("LoadRects() error = %v", err)
	}
	want := rect.MustNew([4]int{1, 1, 3, 4}, [4]int{4, 1, 6, 6})
	if !set.Equal(want) {
		t.Errorf("LoadRects() = %v, want %v", set, want)
	}

	_, err = LoadRects(filepath.Join(dir, "missing.json"), 0)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file: got %v, want FILE_NOT_FOUND", err)
	}
}

package pagewindow

import "testing"

func Test_IsNormalizedPerPageMax(t *testing.T) {
	tests := []struct {
		name     string
		perPage  int
		max      int
		want     int
		isStrict bool
	}{
		{"zero uses default", 0, 50, DefaultPerPage, false},
		{"negative uses default", -10, 50, DefaultPerPage, false},
		{"default capped by max", 0, 10, 10, false},
		{"within max unchanged", 7, 50, 7, true},
		{"equal max unchanged", 50, 50, 50, true},
		{"above max clamped", 51, 50, 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, strict := IsNormalizedPerPageMax(tt.perPage, tt.max)
			if got != tt.want || strict != tt.isStrict {
				t.Errorf("%s: got=(%d,%v) want=(%d,%v)", tt.name, got, strict, tt.want, tt.isStrict)
			}
		})
	}
}

func Test_NormalizePerPageMax(t *testing.T) {
	tests := []struct {
		name    string
		perPage int
		max     int
		want    int
	}{
		{"zero -> default", 0, 77, DefaultPerPage},
		{"negative -> default", -3, 77, DefaultPerPage},
		{"clamp to max", 1000, 77, 77},
		{"keep when ok", 12, 77, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePerPageMax(tt.perPage, tt.max); got != tt.want {
				t.Errorf("%s: got %d want %d", tt.name, got, tt.want)
			}
		})
	}
}

func Test_NormalizePerPage(t *testing.T) {
	tests := []struct {
		name    string
		perPage int
		want    int
	}{
		{"zero -> default", 0, DefaultPerPage},
		{"negative -> default", -1, DefaultPerPage},
		{"clamp to MaxPerPage", MaxPerPage + 1, MaxPerPage},
		{"keep when ok", 17, 17},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePerPage(tt.perPage); got != tt.want {
				t.Errorf("%s: got %d want %d", tt.name, got, tt.want)
			}
		})
	}
}

func Test_NormalizePage(t *testing.T) {
	tests := []struct {
		name string
		page int
		want int
	}{
		{"negative -> first", -4, 1},
		{"zero -> first", 0, 1},
		{"keep when ok", 9, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePage(tt.page); got != tt.want {
				t.Errorf("%s: got %d want %d", tt.name, got, tt.want)
			}
		})
	}
}

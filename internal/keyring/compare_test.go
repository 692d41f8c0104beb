package keyring

import "testing"

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b []byte
		want bool
	}{
		{"both empty", nil, []byte{}, true},
		{"equal", []byte("egk0"), []byte("egk0"), true},
		{"first byte differs", []byte("fgk0"), []byte("egk0"), false},
		{"last byte differs", []byte("egk1"), []byte("egk0"), false},
		{"all bytes differ", []byte{0, 0, 0, 0}, []byte{1, 1, 1, 1}, false},
		{"length differs", []byte("egk"), []byte("egk0"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compare(tt.a, tt.b); got != tt.want {
				t.Errorf("compare(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

package version

import "testing"

func TestSatisfies(t *testing.T) {
	saved := Version
	t.Cleanup(func() { Version = saved })

	tests := []struct {
		version    string
		constraint string
		want       bool
		wantErr    bool
	}{
		{"0.2.0", ">= 0.1.0", true, false},
		{"0.2.0", "< 0.2.0", false, false},
		{"1.4.1", "~1.4", true, false},
		{"dev", ">= 9.0.0", true, false},
		{"0.2.0", "not a constraint", false, true},
		{"garbage", ">= 0.1.0", false, true},
	}
	for _, tt := range tests {
		Version = tt.version
		got, err := Satisfies(tt.constraint)
		if (err != nil) != tt.wantErr {
			t.Errorf("Satisfies(%q) with %s: err = %v, wantErr %v", tt.constraint, tt.version, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Satisfies(%q) with %s = %v, want %v", tt.constraint, tt.version, got, tt.want)
		}
	}
}

package errors

import "testing"

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid", "E1042", false},
		{"valid with spaces around", "  E1042  ", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"control character", "E10\x0042", true},
		{"too long", string(make([]byte, 300)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIdentifier(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidateThresholds(t *testing.T) {
	tests := []struct {
		name      string
		low, high int
		wantErr   bool
	}{
		{"defaults", 3, 8, false},
		{"equal", 5, 5, false},
		{"zero low", 0, 8, false},
		{"inverted", 8, 3, true},
		{"negative low", -1, 8, true},
		{"negative high", 3, -8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateThresholds(tt.low, tt.high)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateThresholds(%d, %d) error = %v, wantErr %v", tt.low, tt.high, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidThreshold {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidThreshold)
			}
		})
	}
}

func TestValidateZoomRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		wantErr  bool
	}{
		{"defaults", 0.1, 8, false},
		{"equal", 1, 1, false},
		{"zero min", 0, 8, true},
		{"negative", -1, 8, true},
		{"inverted", 8, 0.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateZoomRange(tt.min, tt.max)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateZoomRange(%g, %g) error = %v, wantErr %v", tt.min, tt.max, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid relative", "out/chart.svg", false},
		{"valid absolute", "/tmp/chart.svg", false},
		{"empty", "", true},
		{"null byte", "out\x00.svg", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

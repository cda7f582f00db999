package phone

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"local with leading zero", "0501234567", "+380501234567"},
		{"formatted local", "(050) 123-45-67", "+380501234567"},
		{"country code without plus", "380501234567", "+380501234567"},
		{"bare nine digits", "501234567", "+380501234567"},
		{"already canonical", "+380501234567", "+380501234567"},
		{"international spacing", "+38 050 123 45 67", "+380501234567"},
		{"unrecognized passes through", "call the front desk", "call the front desk"},
		{"too short passes through", "12345", "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatDisplay(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"canonical", "+380501234567", "+38 (050)-123-45-67"},
		{"non-canonical passthrough", "+1 (555) 123-4567", "+1 (555) 123-4567"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDisplay(tt.in); got != tt.want {
				t.Errorf("FormatDisplay(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

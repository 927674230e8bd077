package pdf

import "testing"

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{250, "250.00"},
		{1234.5, "1,234.50"},
		{1234567.891, "1,234,567.89"},
		{-150, "-150.00"},
	}
	for _, tt := range tests {
		if got := Money(tt.in); got != tt.want {
			t.Errorf("Money(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := map[float64]string{0.05: "5", 0.07: "7", 0.175: "17.5", 0: "0"}
	for in, want := range tests {
		if got := Percent(in); got != want {
			t.Errorf("Percent(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0001-01", "invoice_0001-01.pdf"},
		{" 0042-12 ", "invoice_0042-12.pdf"},
		{"../etc/passwd", "invoice_..etcpasswd.pdf"},
		{"a b", "invoice_a_b.pdf"},
		{"", "invoice_unnumbered.pdf"},
		{"///", "invoice_unnumbered.pdf"},
	}
	for _, tt := range tests {
		if got := FileName(tt.in); got != tt.want {
			t.Errorf("FileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

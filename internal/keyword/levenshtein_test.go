package keyword

import "testing"

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"cat", "cat", 0},
		{"", "cat", 3},
		{"cat", "", 3},
		{"cat", "cats", 1},
		{"purr", "purrr", 1},
		{"kitten", "sitting", 3},
		{"steemship", "steamship", 1},
		{"über", "uber", 1},
	}
	for _, tt := range tests {
		if got := EditDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("EditDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := EditDistance(tt.b, tt.a); got != tt.want {
			t.Errorf("EditDistance(%q, %q) = %d, want %d", tt.b, tt.a, got, tt.want)
		}
	}
}

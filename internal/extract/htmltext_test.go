package extract

import "testing"

func TestText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "just text", "just text"},
		{"tags stripped", "<p>Hello <b>world</b></p>", "Hello world"},
		{"script skipped", "<div>keep</div><script>drop()</script>", "keep"},
		{"style skipped", "<style>p{color:red}</style><p>visible</p>", "visible"},
		{"nested", "<div><p>a</p><div><span>b</span></div></div>", "a b"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.input); got != tt.expected {
				t.Errorf("Text(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

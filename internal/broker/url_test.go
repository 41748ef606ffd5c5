package broker

import "testing"

func TestParseBaseURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty defaults", "", "http://localhost:8080"},
		{"whitespace defaults", "   ", "http://localhost:8080"},
		{"bare host gets scheme", "broker.example.com:9000", "http://broker.example.com:9000"},
		{"https kept", "https://broker.example.com", "https://broker.example.com"},
		{"path stripped", "http://broker.example.com/api/v1", "http://broker.example.com"},
		{"query and fragment stripped", "http://broker.example.com/x?a=1#top", "http://broker.example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := parseBaseURL(tt.input)
			if err != nil {
				t.Fatalf("parseBaseURL(%q): %v", tt.input, err)
			}
			if got := u.String(); got != tt.want {
				t.Errorf("parseBaseURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

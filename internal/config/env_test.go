package config

import "testing"

func TestBoolEnvOrDefault(t *testing.T) {
	t.Setenv("BOOL_TEST", "")
	if got := boolEnvOrDefault("BOOL_TEST", true); !got {
		t.Fatalf("expected default true when unset")
	}

	cases := []struct {
		val      string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"no", false},
		{"maybe", true}, // falls back to default on unknown
	}

	for _, tc := range cases {
		t.Setenv("BOOL_TEST", tc.val)
		if got := boolEnvOrDefault("BOOL_TEST", true); got != tc.expected {
			t.Fatalf("expected %v for %s, got %v", tc.expected, tc.val, got)
		}
	}
}

func TestListEnvOrDefault(t *testing.T) {
	t.Setenv("LIST_TEST", " , ")
	if got := listEnvOrDefault("LIST_TEST", "a,b"); len(got) != 2 || got[0] != "a" {
		t.Fatalf("expected default list on blank value, got %v", got)
	}
	t.Setenv("LIST_TEST", "x, y ,z")
	if got := listEnvOrDefault("LIST_TEST", "a"); len(got) != 3 || got[1] != "y" {
		t.Fatalf("expected parsed list, got %v", got)
	}
}

func TestIntEnvOrDefault(t *testing.T) {
	t.Setenv("INT_TEST", "-3")
	if got := intEnvOrDefault("INT_TEST", 7); got != 7 {
		t.Fatalf("expected default on non-positive, got %d", got)
	}
	t.Setenv("INT_TEST", "12")
	if got := intEnvOrDefault("INT_TEST", 7); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
}

func TestPortEnvOrDefault(t *testing.T) {
	const key = "TEST_PORT_ENV"
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "", want: "4000"},
		{raw: "8080", want: "8080"},
		{raw: " 9090 ", want: "9090"},
		{raw: "0", want: "4000"},
		{raw: "70000", want: "4000"},
		{raw: "http", want: "4000"},
	}
	for _, tt := range tests {
		t.Setenv(key, tt.raw)
		if got := portEnvOrDefault(key, "4000"); got != tt.want {
			t.Fatalf("raw %q: expected %s, got %s", tt.raw, tt.want, got)
		}
	}
}

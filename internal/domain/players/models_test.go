package players

import (
	"reflect"
	"testing"
)

func TestPlayerJSONTags(t *testing.T) {
	type fieldCheck struct {
		name string
		tag  string
	}
	playerType := reflect.TypeOf(Player{})
	fields := []fieldCheck{
		{"ID", "id"},
		{"Handle", "handle"},
		{"FirstName", "firstName,omitempty"},
		{"LastName", "lastName,omitempty"},
		{"Role", "role,omitempty"},
		{"Image", "image,omitempty"},
	}
	for _, fc := range fields {
		f, ok := playerType.FieldByName(fc.name)
		if !ok {
			t.Fatalf("missing field %s", fc.name)
		}
		if tag := f.Tag.Get("json"); tag != fc.tag {
			t.Fatalf("field %s expected tag %s, got %s", fc.name, fc.tag, tag)
		}
	}
}

func TestFullNameSkipsBlanks(t *testing.T) {
	cases := []struct {
		player Player
		want   string
	}{
		{Player{FirstName: "Lee", LastName: "Sang-hyeok"}, "Lee Sang-hyeok"},
		{Player{FirstName: "Lee"}, "Lee"},
		{Player{LastName: "Sang-hyeok"}, "Sang-hyeok"},
		{Player{}, ""},
	}
	for _, tc := range cases {
		if got := tc.player.FullName(); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

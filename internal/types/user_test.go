package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestBirthdateUnmarshalLayouts(t *testing.T) {
	cases := map[string]time.Time{
		`"1990-06-15T10:30:00"`:  time.Date(1990, 6, 15, 10, 30, 0, 0, time.UTC),
		`"1990-06-15T10:30:00Z"`: time.Date(1990, 6, 15, 10, 30, 0, 0, time.UTC),
		`"1990-06-15"`:           time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
		`null`:                   {},
		`""`:                     {},
	}
	for input, want := range cases {
		var b Birthdate
		if err := json.Unmarshal([]byte(input), &b); err != nil {
			t.Fatalf("%s: %v", input, err)
		}
		if !b.Time.Equal(want) {
			t.Fatalf("%s: got %v want %v", input, b.Time, want)
		}
	}

	var b Birthdate
	if err := json.Unmarshal([]byte(`"15/06/1990"`), &b); err == nil {
		t.Fatalf("slashed date must not parse")
	}
}

func TestBirthdateMarshal(t *testing.T) {
	b := Birthdate{time.Date(1990, 6, 15, 10, 30, 0, 0, time.UTC)}
	out, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"1990-06-15T10:30:00"` {
		t.Fatalf("got %s", out)
	}
}

func TestUserRoleValid(t *testing.T) {
	if !RoleUser.Valid() || !RoleAdmin.Valid() {
		t.Fatalf("built-in roles must be valid")
	}
	if UserRole("moderator").Valid() || UserRole("").Valid() {
		t.Fatalf("unknown roles must be invalid")
	}
}

func TestUserViewOmitsPassword(t *testing.T) {
	u := User{
		UID: 7,
		Info: UserInfo{
			Username: "sampleuser",
			Name:     "Sample User",
			Role:     RoleUser,
			Password: "SecurePassword456",
		},
	}
	out, err := json.Marshal(u.View())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(out, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := raw["password"]; ok {
		t.Fatalf("view leaks the password: %s", out)
	}
	if string(raw["username"]) != `"sampleuser"` {
		t.Fatalf("view dropped the username: %s", out)
	}
}

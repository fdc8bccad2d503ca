package types

import (
	"fmt"
	"strings"
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Birthdate accepts the timestamp shapes the course clients send
// ("1990-01-01T00:00:00", RFC3339, bare dates) and always renders the first.
type Birthdate struct {
	time.Time
}

const birthdateLayout = "2006-01-02T15:04:05"

var birthdateLayouts = []string{
	birthdateLayout,
	time.RFC3339,
	"2006-01-02",
}

func (b *Birthdate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		b.Time = time.Time{}
		return nil
	}
	for _, layout := range birthdateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			b.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid birthdate %q", s)
}

func (b Birthdate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.Time.Format(birthdateLayout) + `"`), nil
}

// UserInfo is the mutable-by-registration part of a user. Username is unique
// and immutable once stored; Role only changes through GrantAdmin.
type UserInfo struct {
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Birthdate Birthdate `json:"birthdate"`
	Role      UserRole  `json:"role"`
	Password  string    `json:"password"`
}

type User struct {
	UID  int64    `json:"uid"`
	Info UserInfo `json:"info"`
}

// UserView is the public projection returned by the API; the password never
// leaves the store.
type UserView struct {
	UID       int64     `json:"uid"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Birthdate Birthdate `json:"birthdate"`
	Role      UserRole  `json:"role"`
}

func (u User) View() UserView {
	return UserView{
		UID:       u.UID,
		Username:  u.Info.Username,
		Name:      u.Info.Name,
		Birthdate: u.Info.Birthdate,
		Role:      u.Info.Role,
	}
}

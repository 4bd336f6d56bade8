package domain

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type User struct {
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	Points       int
	BookingIDs   []string
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) Clone() User {
	out := *u
	out.BookingIDs = append([]string(nil), u.BookingIDs...)

	return out
}

package models

type User struct {
	ID       int     `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Email    string  `db:"email" json:"email"`
	Password string  `db:"password" json:"-"`
	IsAdmin  bool    `db:"is_admin" json:"is_admin"`
	Role     *string `db:"role" json:"role"`
}

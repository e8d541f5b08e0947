package models

import "github.com/golang-jwt/jwt/v4"

type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Handle   string `json:"handle" gorm:"not null;uniqueIndex"`
	Name     string `json:"name" gorm:"not null"`
	Email    string `json:"email" gorm:"not null;uniqueIndex"`
	Password string `json:"-" gorm:"not null"` // bcrypt hash, never serialized
}

// PublicUser is the only shape a User is ever rendered in.
type PublicUser struct {
	ID     uint   `json:"id"`
	Handle string `json:"handle"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// ToPublic strips the password hash.
func (u *User) ToPublic() PublicUser {
	return PublicUser{
		ID:     u.ID,
		Handle: u.Handle,
		Name:   u.Name,
		Email:  u.Email,
	}
}

type SignupRequest struct {
	Handle   string `json:"handle" validate:"required,max=50"`
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SigninResponse struct {
	JWT    string `json:"jwt"`
	UserID uint   `json:"userId"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint `json:"userId"`
	jwt.RegisteredClaims
}

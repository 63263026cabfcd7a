package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IDs de perfil de acesso
const (
	RoleAdmin       = 1
	RoleSupervisor  = 2
	RoleOperacional = 3
	RoleVendedor    = 4
)

type User struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Lastname  string     `json:"lastname"`
	Email     string     `json:"email"`
	Active    bool       `json:"active"`
	RoleID    int        `json:"role_id"`
	Deleted   bool       `json:"deleted"`
	DeletedAt *time.Time `json:"deleted_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type Claims struct {
	UserID       int
	UserName     string
	UserLastname string
	UserEmail    string
	UserActive   bool
	UserRoleID   int
	jwt.RegisteredClaims
}

// Actor identifica quem está executando uma operação sobre uma venda
type Actor struct {
	UserID int
	RoleID int
}

// ActorFromClaims extrai o ator das claims do token
func ActorFromClaims(claims *Claims) Actor {
	return Actor{
		UserID: claims.UserID,
		RoleID: claims.UserRoleID,
	}
}

package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Perfis aceitos no token de acesso
const (
	RoleAdmin = "admin"
	RoleSales = "sales"
)

// Claims são os dados do usuário carregados no token de acesso.
// O token é emitido fora deste serviço, aqui ele apenas é verificado.
type Claims struct {
	UserEmail string `json:"user_email"`
	UserName  string `json:"user_name,omitempty"`
	UserRole  string `json:"user_role"`
	jwt.RegisteredClaims
}

// IsAdmin informa se o usuário pode alterar a configuração de preços
func (c *Claims) IsAdmin() bool {
	return c.UserRole == RoleAdmin
}

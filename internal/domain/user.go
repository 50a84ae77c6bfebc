package domain

import "time"

// User representa um usuário do terminal de coleta (operador ou supervisor).
// Supervisores autenticam-se com um código de acesso para liberar o ajuste
// manual de quantidades.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	AccessCodeHash string    `json:"-"` // Oculta o hash do código de acesso no JSON de resposta
	Role           UserRole  `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserRole é um tipo string para representar o papel do usuário no sistema.
type UserRole string

// Constantes para os papéis de usuário
const (
	RoleSupervisor UserRole = "supervisor"
	RoleOperator   UserRole = "operator"
)

// UserRepository define o contrato de consulta para a entidade User.
type UserRepository interface {
	FindByName(name string) (User, error)
}

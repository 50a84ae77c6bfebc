package userrepo

import (
	"time"

	"github.com/google/uuid"

	"scanflow/internal/domain"
	apperror "scanflow/internal/errors"
)

// Repository é o cadastro em memória de usuários do terminal. O terminal é
// mono-dispositivo: o conjunto de usuários é fixo e carregado na subida, com
// o código de acesso do supervisor vindo da configuração (já com hash).
type Repository struct {
	users map[string]domain.User
}

// NewRepository cria o repositório com o supervisor padrão. accessCodeHash é
// o hash bcrypt do código de acesso configurado em SUPERVISOR_ACCESS_CODE.
func NewRepository(accessCodeHash string) *Repository {
	r := &Repository{users: make(map[string]domain.User)}
	r.users["supervisor"] = domain.User{
		ID:             uuid.New().String(),
		Name:           "supervisor",
		AccessCodeHash: accessCodeHash,
		Role:           domain.RoleSupervisor,
		CreatedAt:      time.Now(),
	}
	return r
}

// FindByName busca um usuário pelo nome de login.
func (r *Repository) FindByName(name string) (domain.User, error) {
	user, ok := r.users[name]
	if !ok {
		return domain.User{}, apperror.NewNotFoundError("Usuário não encontrado.")
	}
	return user, nil
}

package authservice

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"scanflow/internal/domain"
	apperror "scanflow/internal/errors"
	"scanflow/internal/pkg/logger"
)

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(userID string, userRole string) (string, error)
}

// Service autentica usuários do terminal pelo código de acesso e emite o JWT
// que libera as operações restritas (ajuste manual de quantidade).
type Service struct {
	userRepo domain.UserRepository
	tokenSvc TokenService
	logger   logger.Logger
}

// NewService cria uma nova instância do serviço de autenticação.
func NewService(repo domain.UserRepository, tokenSvc TokenService, log logger.Logger) *Service {
	return &Service{
		userRepo: repo,
		tokenSvc: tokenSvc,
		logger:   log,
	}
}

// Login valida o código de acesso do usuário e retorna um JWT assinado.
// Usuário inexistente e código incorreto retornam o mesmo erro — não vazamos
// qual dos dois falhou.
func (s *Service) Login(ctx context.Context, name string, accessCode string) (string, error) {
	if name == "" || accessCode == "" {
		return "", apperror.NewValidationError("Nome e código de acesso são obrigatórios.")
	}

	user, err := s.userRepo.FindByName(name)
	if err != nil {
		s.logger.Warn("Tentativa de login com usuário desconhecido.", map[string]interface{}{"name": name})
		return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.AccessCodeHash), []byte(accessCode)); err != nil {
		s.logger.Warn("Código de acesso incorreto.", map[string]interface{}{"name": name})
		return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	tokenString, err := s.tokenSvc.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		s.logger.Error("Falha ao gerar token.", err)
		return "", apperror.NewInternalError("Falha ao gerar token de acesso.", err)
	}

	s.logger.Info("Login realizado.", map[string]interface{}{"name": name, "role": string(user.Role)})
	return tokenString, nil
}

// HashAccessCode gera o hash bcrypt do código de acesso configurado.
// Chamado na subida para popular o cadastro de usuários.
func HashAccessCode(accessCode string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(accessCode), bcrypt.DefaultCost)
	if err != nil {
		return "", apperror.NewInternalError("Falha ao gerar hash do código de acesso.", err)
	}
	return string(hash), nil
}

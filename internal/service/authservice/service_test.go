package authservice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperror "scanflow/internal/errors"
	"scanflow/internal/pkg/logger"
	"scanflow/internal/repository/userrepo"
	"scanflow/internal/service/authservice"
)

// MockTokenService é uma implementação mock da interface TokenService.
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateToken(userID string, userRole string) (string, error) {
	args := m.Called(userID, userRole)
	return args.String(0), args.Error(1)
}

func newAuthService(t *testing.T, tokenSvc authservice.TokenService) *authservice.Service {
	t.Helper()
	hash, err := authservice.HashAccessCode("1234")
	assert.NoError(t, err)
	repo := userrepo.NewRepository(hash)
	return authservice.NewService(repo, tokenSvc, logger.NewLogger("fatal"))
}

// TestLogin_Success testa o login do supervisor com o código correto.
func TestLogin_Success(t *testing.T) {
	mockTokens := new(MockTokenService)
	svc := newAuthService(t, mockTokens)

	mockTokens.On("GenerateToken", mock.AnythingOfType("string"), "supervisor").
		Return("signed-token", nil)

	tokenString, err := svc.Login(context.Background(), "supervisor", "1234")

	assert.NoError(t, err)
	assert.Equal(t, "signed-token", tokenString)
	mockTokens.AssertExpectations(t)
}

// TestLogin_WrongAccessCode testa que código incorreto falha com erro de
// autenticação, sem revelar qual credencial falhou.
func TestLogin_WrongAccessCode(t *testing.T) {
	mockTokens := new(MockTokenService)
	svc := newAuthService(t, mockTokens)

	_, err := svc.Login(context.Background(), "supervisor", "9999")

	assert.Error(t, err)
	assert.IsType(t, &apperror.UnauthorizedError{}, err)
	mockTokens.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything)
}

// TestLogin_UnknownUser testa usuário inexistente: mesmo erro do código errado.
func TestLogin_UnknownUser(t *testing.T) {
	mockTokens := new(MockTokenService)
	svc := newAuthService(t, mockTokens)

	_, err := svc.Login(context.Background(), "intruso", "1234")

	assert.Error(t, err)
	assert.IsType(t, &apperror.UnauthorizedError{}, err)
}

// TestLogin_MissingCredentials testa a validação de campos obrigatórios.
func TestLogin_MissingCredentials(t *testing.T) {
	mockTokens := new(MockTokenService)
	svc := newAuthService(t, mockTokens)

	_, err := svc.Login(context.Background(), "", "")

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
}

package operator

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"smelterAdvisor/pkg/logger"
	"smelterAdvisor/pkg/utils"
)

const RoleOperator = "operator"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrLoginDisabled      = errors.New("operator login is disabled")
)

type TokenGenerator interface {
	GenerateJWT(subject, role string) (string, error)
}

// OperatorService authenticates the single configured plant operator account.
type OperatorService struct {
	username     string
	passwordHash string
	tokens       TokenGenerator
}

func NewOperatorService(username, passwordHash string, tokens TokenGenerator) *OperatorService {
	return &OperatorService{
		username:     username,
		passwordHash: passwordHash,
		tokens:       tokens,
	}
}

func (s *OperatorService) Login(ctx context.Context, username, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("context error: %w", err)
	}

	if s.passwordHash == "" {
		return "", ErrLoginDisabled
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := utils.CheckPassword(password, s.passwordHash)
	if !userOK || !passOK {
		logger.Warn("Operator login rejected", "username", username)
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateJWT(s.username, RoleOperator)
	if err != nil {
		logger.Error("Failed to generate operator token", err)
		return "", err
	}

	logger.Info("Operator logged in", "username", s.username)

	return token, nil
}

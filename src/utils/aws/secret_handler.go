package aws_handler

import (
	"encoding/json"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
)

type SecretManager struct {
	svc *secretsmanager.SecretsManager
}

func NewSecretManager(svc *secretsmanager.SecretsManager) *SecretManager {
	return &SecretManager{svc: svc}
}

func (s *SecretManager) GetSecretValue(secretID string) (string, error) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	}

	result, err := s.svc.GetSecretValue(input)
	if err != nil {
		return "", err
	}

	return *result.SecretString, nil
}

// DatabaseCredentials is the shape stored in the database secret.
type DatabaseCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// GetDatabaseCredentials fetches and decodes the credentials secret.
func (s *SecretManager) GetDatabaseCredentials(secretID string) (*DatabaseCredentials, error) {
	raw, err := s.GetSecretValue(secretID)
	if err != nil {
		return nil, err
	}

	var creds DatabaseCredentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

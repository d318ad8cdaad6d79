package configuring

import (
	"errors"
	"fmt"
)

var (
	ErrLoadConfig      = errors.New("erro ao carregar configuração de preços")
	ErrSaveConfig      = errors.New("erro ao gravar configuração de preços")
	ErrGenerateVersion = errors.New("erro ao gerar versão da configuração")
	ErrVersionNotFound = errors.New("versão da configuração não encontrada")
)

// ConfigServiceError é um erro de acesso à origem da configuração
type ConfigServiceError struct {
	Err     error // Erro base
	Cause   error // Erro da origem (banco ou arquivo)
	Details string
}

func (e *ConfigServiceError) Error() string {
	msg := e.Err.Error()
	if e.Details != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Details)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (%s)", msg, e.Cause.Error())
	}
	return msg
}

func (e *ConfigServiceError) Unwrap() error {
	return e.Err
}

func NewConfigServiceError(baseErr, cause error, details string) *ConfigServiceError {
	return &ConfigServiceError{
		Err:     baseErr,
		Cause:   cause,
		Details: details,
	}
}

package quoting

import (
	"errors"
	"fmt"
)

var (
	// Erros de configuração
	ErrTierGap         = errors.New("faixas com intervalo entre elas")
	ErrTierOverlap     = errors.New("faixas sobrepostas")
	ErrTierBounds      = errors.New("faixa com limites inválidos")
	ErrTierUnbounded   = errors.New("apenas a última faixa pode ser ilimitada")
	ErrTierPricing     = errors.New("faixa deve ter exatamente um entre price e rate")
	ErrTierKind        = errors.New("tipo de faixa incompatível com o cálculo")
	ErrUnknownCycle    = errors.New("ciclo de pagamento desconhecido")
	ErrInvalidCycle    = errors.New("ciclo de pagamento inválido")
	ErrMissingPlan     = errors.New("plano não configurado")
	ErrMissingTable    = errors.New("tabela de custo variável não configurada")
	ErrUnknownRule     = errors.New("regra de duplicação desconhecida")
	ErrDiscountOrder   = errors.New("ordem de desconto do kombo deve ser 2")
	ErrInvalidDiscount = errors.New("desconto fora do intervalo [0, 1]")

	// Erros de entrada
	ErrUnknownProduct    = errors.New("produto desconhecido")
	ErrUnknownPlan       = errors.New("nível de plano desconhecido")
	ErrPlanRequired      = errors.New("plano obrigatório para o produto selecionado")
	ErrUnknownAddon      = errors.New("add-on desconhecido")
	ErrDuplicatedAddon   = errors.New("add-on selecionado mais de uma vez")
	ErrAddonUnavailable  = errors.New("add-on indisponível para os produtos selecionados")
	ErrNegativeUsage     = errors.New("quantidade de uso negativa")
	ErrNegativeAmount    = errors.New("valor monetário negativo")
	ErrUnknownKombo      = errors.New("kombo desconhecido")
	ErrKomboNotSatisfied = errors.New("seleção não contém todos os itens do kombo")
	ErrNoKomboAvailable  = errors.New("nenhum kombo compatível com a seleção")
)

// ConfigError indica uma configuração de preços inválida.
// Path identifica o trecho do documento, ex.: variableCosts.leads.tiers.k[1]
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuração inválida em %s: %s", e.Path, e.Err.Error())
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// InputError indica uma entrada de cotação rejeitada antes do cálculo
type InputError struct {
	Field string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("entrada inválida em %s: %s", e.Field, e.Err.Error())
}

func (e *InputError) Unwrap() error {
	return e.Err
}

func configError(path string, err error) *ConfigError {
	return &ConfigError{Path: path, Err: err}
}

func inputError(field string, err error) *InputError {
	return &InputError{Field: field, Err: err}
}

// IsConfigError verifica se o erro foi causado pela configuração de preços
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

// IsInputError verifica se o erro foi causado pela entrada da cotação
func IsInputError(err error) bool {
	var inErr *InputError
	return errors.As(err, &inErr)
}

package configuring

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/kenlo-pricing-api/internal/domain"
	"github.com/vfg2006/kenlo-pricing-api/internal/usecases/quoting"
)

var ErrMalformedDocument = errors.New("documento de configuração malformado")

// strictJSON rejeita campos desconhecidos em qualquer nível do documento
var strictJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	DisallowUnknownFields:  true,
}.Froze()

// Parse decodifica e valida um documento de configuração de preços
func Parse(document []byte) (*domain.PricingConfiguration, error) {
	var cfg domain.PricingConfiguration
	if err := strictJSON.Unmarshal(document, &cfg); err != nil {
		return nil, &quoting.ConfigError{
			Path: "document",
			Err:  fmt.Errorf("%w: %s", ErrMalformedDocument, err.Error()),
		}
	}

	if err := quoting.ValidateConfiguration(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Encode serializa a configuração no formato canônico (chaves de mapas ordenadas)
func Encode(cfg *domain.PricingConfiguration) ([]byte, error) {
	return strictJSON.MarshalIndent(cfg, "", "  ")
}

package utils

import (
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 6)
}

// GenerateVersionLabel gera o rótulo de uma nova versão de configuração (ex: 2025.03.14-Ab12Cd)
func GenerateVersionLabel(now time.Time) (string, error) {
	id, err := GenerateID()
	if err != nil {
		return "", err
	}

	return now.Format("2006.01.02") + "-" + id, nil
}

// Package pricingsource guarda a configuração de preços em um arquivo JSON
package pricingsource

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/kenlo-pricing-api/infrastructure/repository"
	"github.com/vfg2006/kenlo-pricing-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FileStore lê o arquivo inteiro em uma única chamada e grava via arquivo temporário + rename,
// então um leitor nunca vê uma gravação pela metade. O último a gravar vence.
// O arquivo guarda apenas a versão vigente, não há histórico.
type FileStore struct {
	path string
	mu   sync.Mutex // serializa gravações deste processo
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

var _ repository.PricingConfigRepository = (*FileStore)(nil)

func (s *FileStore) Latest(_ context.Context) (*domain.PricingConfigVersion, error) {
	document, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, repository.ErrVersionNotFound
		}
		return nil, errors.Wrapf(err, "erro ao ler %s", s.path)
	}

	info, err := os.Stat(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao consultar %s", s.path)
	}

	// só o campo version é lido aqui, a validação completa fica com quem consome
	var header struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(document, &header); err != nil {
		return nil, errors.Wrapf(err, "documento inválido em %s", s.path)
	}

	return &domain.PricingConfigVersion{
		ID:        1,
		Version:   header.Version,
		Document:  document,
		CreatedBy: "file",
		CreatedAt: info.ModTime(),
	}, nil
}

func (s *FileStore) GetByVersion(ctx context.Context, version string) (*domain.PricingConfigVersion, error) {
	latest, err := s.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if latest.Version != version {
		return nil, repository.ErrVersionNotFound
	}
	return latest, nil
}

func (s *FileStore) List(ctx context.Context, _ int) ([]*domain.PricingConfigVersion, error) {
	latest, err := s.Latest(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrVersionNotFound) {
			return []*domain.PricingConfigVersion{}, nil
		}
		return nil, err
	}

	latest.Document = nil
	return []*domain.PricingConfigVersion{latest}, nil
}

func (s *FileStore) Save(_ context.Context, version *domain.PricingConfigVersion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "erro ao criar arquivo temporário")
	}
	tmpPath := tmp.Name()

	// remove o temporário se algo falhar antes do rename
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(version.Document); err != nil {
		tmp.Close()
		return errors.Wrap(err, "erro ao gravar arquivo temporário")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "erro ao sincronizar arquivo temporário")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "erro ao fechar arquivo temporário")
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return errors.Wrapf(err, "erro ao substituir %s", s.path)
	}

	info, err := os.Stat(s.path)
	if err == nil {
		version.CreatedAt = info.ModTime()
	}
	version.ID = 1

	return nil
}

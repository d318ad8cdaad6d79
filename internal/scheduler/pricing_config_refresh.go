package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/kenlo-pricing-api/internal/config"
	"github.com/vfg2006/kenlo-pricing-api/internal/domain"
)

// ConfigReloader recarrega a configuração de preços vigente a partir da origem
type ConfigReloader interface {
	Reload(ctx context.Context) (*domain.PricingSnapshot, error)
}

// PricingConfigRefreshConfig representa a configuração do agendador de recarga
type PricingConfigRefreshConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// PricingConfigRefreshService recarrega periodicamente a configuração de preços,
// para que versões gravadas por outra instância entrem em uso sem reiniciar o serviço
type PricingConfigRefreshService struct {
	scheduler           *gocron.Scheduler
	config              PricingConfigRefreshConfig
	reloader            ConfigReloader
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastVersion         string
	lastError           string
}

// NewPricingConfigRefreshService cria uma nova instância do serviço de recarga
func NewPricingConfigRefreshService(reloader ConfigReloader, appConfig *config.Config) *PricingConfigRefreshService {
	refreshConfig := PricingConfigRefreshConfig{
		CronSchedule: appConfig.PricingRefresh.CronSchedule,
		SyncEnabled:  appConfig.PricingRefresh.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": refreshConfig.CronSchedule,
		"sync_enabled":  refreshConfig.SyncEnabled,
	}).Info("Configuração do agendador de recarga de preços carregada")

	return &PricingConfigRefreshService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    refreshConfig,
		reloader:  reloader,
	}
}

// Start inicia o agendador
func (s *PricingConfigRefreshService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Recarga periódica da configuração de preços desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de recarga da configuração de preços")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.refresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar recarga da configuração de preços: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de recarga da configuração de preços")
		s.scheduler.Stop()
	}()

	return nil
}

// refresh recarrega a configuração. Uma versão inválida na origem não derruba a vigente.
func (s *PricingConfigRefreshService) refresh(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recarga da configuração de preços já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	snapshot, err := s.reloader.Reload(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()

	if err != nil {
		s.lastError = err.Error()
		logrus.WithError(err).Error("Erro ao recarregar a configuração de preços, mantendo a versão vigente")
		return
	}

	s.lastError = ""
	s.lastVersion = snapshot.Version
	logrus.WithFields(logrus.Fields{
		"config_version": snapshot.Version,
		"duration_ms":    s.lastSyncCompletedAt.Sub(s.lastSyncStartedAt).Milliseconds(),
	}).Debug("Recarga da configuração de preços concluída")
}

// TriggerManualSync inicia manualmente uma recarga da configuração
func (s *PricingConfigRefreshService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Recarga da configuração de preços já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando recarga manual da configuração de preços")
	go s.refresh(context.Background())
}

// GetStatus retorna o status atual da recarga
func (s *PricingConfigRefreshService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"config_version":         s.lastVersion,
		"last_error":             s.lastError,
	}
}

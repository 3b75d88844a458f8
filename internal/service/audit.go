package service

import (
	"context"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/repo"

	"go.uber.org/zap"
)

// AuditService пишет журнал действий. Запись делается после успешной
// мутации отдельным запросом и не влияет на результат операции.
type AuditService struct {
	repo   repo.LogRepository
	logger *zap.SugaredLogger
}

func NewAuditService(r repo.LogRepository, logger *zap.SugaredLogger) *AuditService {
	return &AuditService{repo: r, logger: logger}
}

// Record сохраняет запись; ошибка только логируется.
func (s *AuditService) Record(ctx context.Context, userID, acao, alvo, detalhes string) {
	if s == nil || s.repo == nil {
		return
	}
	entry := &model.LogAtividade{UserID: userID, Acao: acao, Alvo: alvo}
	if detalhes != "" {
		entry.Detalhes = &detalhes
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Warnw("audit log write failed", "acao", acao, "alvo", alvo, "user_id", userID, "error", err)
	}
}

// List — журнал от новых к старым, при пустом userID по всем пользователям.
func (s *AuditService) List(ctx context.Context, userID string) ([]model.LogAtividade, error) {
	return s.repo.List(ctx, userID)
}

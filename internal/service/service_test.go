package service

import (
	"context"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/repo"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// testEnv — сервисы поверх in-memory SQLite.
type testEnv struct {
	db       *gorm.DB
	users    repo.UserRepository
	cadernos repo.CadernoRepository
	esps     repo.EspRepository
	arquivos repo.ArquivoRepository
	items    repo.ItemRepository
	logs     repo.LogRepository

	audit      *AuditService
	cadernoSvc *CadernoService
	espSvc     *EspService
	arquivoSvc *ArquivoService
	itemSvc    *ItemService
}

func newTestEnv(t *testing.T, strictStatus bool) *testEnv {
	t.Helper()
	db, err := repo.InitDB("file:"+uuid.NewString()+"?mode=memory&cache=shared", zap.NewNop().Sugar())
	require.NoError(t, err)
	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })

	logger := zap.NewNop().Sugar()
	env := &testEnv{
		db:       db,
		users:    repo.NewUserRepository(db),
		cadernos: repo.NewCadernoRepository(db),
		esps:     repo.NewEspRepository(db),
		arquivos: repo.NewArquivoRepository(db),
		items:    repo.NewItemRepository(db),
		logs:     repo.NewLogRepository(db),
	}
	env.audit = NewAuditService(env.logs, logger)
	env.cadernoSvc = NewCadernoService(env.cadernos, env.audit, logger, strictStatus)
	env.espSvc = NewEspService(env.esps, env.cadernos, env.audit, logger)
	env.arquivoSvc = NewArquivoService(env.arquivos, env.esps, env.audit, logger, 1024)
	env.itemSvc = NewItemService(env.items, env.audit)
	return env
}

func (e *testEnv) user(t *testing.T, nome string, perfil model.Perfil) *model.User {
	t.Helper()
	u, err := e.users.CreateUser(context.Background(), &model.User{
		Nome: nome, Email: uuid.NewString() + "@seedf.df.gov.br", HashSenha: "x", Perfil: perfil, Ativo: true,
	})
	require.NoError(t, err)
	return u
}

func (e *testEnv) caderno(t *testing.T, autorID, titulo string, status model.StatusCaderno) *model.Caderno {
	t.Helper()
	c, err := e.cadernoSvc.Create(context.Background(), autorID, CadernoInput{Titulo: titulo, Status: &status})
	require.NoError(t, err)
	return c
}

func (e *testEnv) countLogs(t *testing.T, acao string) int {
	t.Helper()
	all, err := e.logs.List(context.Background(), "")
	require.NoError(t, err)
	n := 0
	for _, l := range all {
		if l.Acao == acao {
			n++
		}
	}
	return n
}

func ptr[T any](v T) *T { return &v }

func espFields(codigo, cadernoID string, published time.Time) EspFields {
	return EspFields{
		Codigo:         ptr(codigo),
		Titulo:         ptr("Especificação " + codigo),
		Tipologia:      ptr("Revestimento"),
		Revisao:        ptr("1.0"),
		DataPublicacao: ptr(published),
		CadernoID:      ptr(cadernoID),
	}
}

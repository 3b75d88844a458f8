package repo

import (
	"context"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogRepository_ListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	r := NewLogRepository(db)
	ctx := context.Background()

	a := seedUser(t, db, "a@seedf.df.gov.br", model.PerfilArquiteto)
	b := seedUser(t, db, "b@seedf.df.gov.br", model.PerfilDiretor)

	base := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, r.Create(ctx, &model.LogAtividade{UserID: a.ID, Acao: model.AcaoCriarEsp, Alvo: "ESP-001", CreatedAt: base}))
	require.NoError(t, r.Create(ctx, &model.LogAtividade{UserID: b.ID, Acao: model.AcaoDeletarEsp, Alvo: "ESP-001", CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, r.Create(ctx, &model.LogAtividade{UserID: a.ID, Acao: model.AcaoAtualizarEsp, Alvo: "ESP-002", CreatedAt: base.Add(2 * time.Minute)}))

	all, err := r.List(ctx, "")
	require.NoError(t, err)
	if assert.Len(t, all, 3) {
		assert.Equal(t, model.AcaoAtualizarEsp, all[0].Acao)
		assert.Equal(t, model.AcaoCriarEsp, all[2].Acao)
		require.NotNil(t, all[0].User)
		assert.Equal(t, a.Email, all[0].User.Email)
	}

	onlyA, err := r.List(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, onlyA, 2)
}

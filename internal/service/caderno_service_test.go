package service

import (
	"context"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/repo"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to model.StatusCaderno
		want     bool
	}{
		{model.StatusEmAndamento, model.StatusEmAndamento, true},
		{model.StatusEmAndamento, model.StatusAprovado, true},
		{model.StatusAprovado, model.StatusObsoleto, true},
		{model.StatusEmAndamento, model.StatusObsoleto, false},
		{model.StatusAprovado, model.StatusEmAndamento, false},
		{model.StatusObsoleto, model.StatusAprovado, false},
		{model.StatusObsoleto, model.StatusObsoleto, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestCadernoService_CreateDefaults(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	u := env.user(t, "Arq", model.PerfilArquiteto)

	c, err := env.cadernoSvc.Create(ctx, u.ID, CadernoInput{Titulo: "  Edificações  "})
	require.NoError(t, err)
	assert.Equal(t, "Edificações", c.Titulo)
	assert.Equal(t, model.StatusEmAndamento, c.Status)
	assert.Equal(t, u.ID, c.AutorID)
	require.NotNil(t, c.Autor)
	assert.Equal(t, 1, env.countLogs(t, model.AcaoCriarCaderno))

	_, err = env.cadernoSvc.Create(ctx, u.ID, CadernoInput{Titulo: " "})
	assert.ErrorIs(t, err, ErrValidation)

	bad := model.StatusCaderno("RASCUNHO")
	_, err = env.cadernoSvc.Create(ctx, u.ID, CadernoInput{Titulo: "x", Status: &bad})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCadernoService_StatusFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("permissive by default", func(t *testing.T) {
		env := newTestEnv(t, false)
		u := env.user(t, "Arq", model.PerfilArquiteto)
		c := env.caderno(t, u.ID, "C", model.StatusEmAndamento)

		got, err := env.cadernoSvc.Update(ctx, u.ID, c.ID, CadernoPatch{Status: ptr(model.StatusObsoleto)})
		require.NoError(t, err)
		assert.Equal(t, model.StatusObsoleto, got.Status)

		got, err = env.cadernoSvc.Update(ctx, u.ID, c.ID, CadernoPatch{Status: ptr(model.StatusEmAndamento)})
		require.NoError(t, err)
		assert.Equal(t, model.StatusEmAndamento, got.Status)
	})

	t.Run("strict table", func(t *testing.T) {
		env := newTestEnv(t, true)
		u := env.user(t, "Arq", model.PerfilArquiteto)
		c := env.caderno(t, u.ID, "C", model.StatusEmAndamento)

		_, err := env.cadernoSvc.Update(ctx, u.ID, c.ID, CadernoPatch{Status: ptr(model.StatusObsoleto)})
		assert.ErrorIs(t, err, ErrInvalidTransition)

		got, err := env.cadernoSvc.Update(ctx, u.ID, c.ID, CadernoPatch{Status: ptr(model.StatusAprovado), Titulo: ptr("C aprovado")})
		require.NoError(t, err)
		assert.Equal(t, model.StatusAprovado, got.Status)
		assert.Equal(t, "C aprovado", got.Titulo)

		// тот же статус допустим всегда
		_, err = env.cadernoSvc.Update(ctx, u.ID, c.ID, CadernoPatch{Status: ptr(model.StatusAprovado)})
		assert.NoError(t, err)
		assert.Equal(t, 2, env.countLogs(t, model.AcaoAtualizarCaderno))

		// создание сразу в APROVADO/OBSOLETO обходит таблицу переходов
		for _, st := range []model.StatusCaderno{model.StatusAprovado, model.StatusObsoleto} {
			_, err = env.cadernoSvc.Create(ctx, u.ID, CadernoInput{Titulo: "Novo", Status: ptr(st)})
			assert.ErrorIs(t, err, ErrInvalidTransition, st)
		}
		assert.Equal(t, 1, env.countLogs(t, model.AcaoCriarCaderno))
	})
}

func TestCadernoService_Delete(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	u := env.user(t, "Arq", model.PerfilArquiteto)
	full := env.caderno(t, u.ID, "Com ESP", model.StatusEmAndamento)
	empty := env.caderno(t, u.ID, "Vazio", model.StatusEmAndamento)

	_, err := env.espSvc.Create(ctx, u.ID, espFields("ESP-001", full.ID, time.Now()))
	require.NoError(t, err)

	err = env.cadernoSvc.Delete(ctx, u.ID, full.ID)
	assert.ErrorIs(t, err, ErrInUse)

	require.NoError(t, env.cadernoSvc.Delete(ctx, u.ID, empty.ID))
	_, err = env.cadernoSvc.Get(ctx, empty.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	assert.Equal(t, 1, env.countLogs(t, model.AcaoDeletarCaderno))

	err = env.cadernoSvc.Delete(ctx, u.ID, "missing")
	assert.ErrorIs(t, err, repo.ErrNotFound)
	assert.EqualError(t, err, "caderno not found")
}

func TestCadernoService_ListFilters(t *testing.T) {
	env := newTestEnv(t, false)
	ctx := context.Background()
	a := env.user(t, "A", model.PerfilArquiteto)
	b := env.user(t, "B", model.PerfilChefeDeNucleo)
	env.caderno(t, a.ID, "A1", model.StatusAprovado)
	env.caderno(t, b.ID, "B1", model.StatusAprovado)
	env.caderno(t, b.ID, "B2", model.StatusObsoleto)

	got, err := env.cadernoSvc.List(ctx, repo.CadernoFilter{Status: model.StatusAprovado, AutorID: b.ID})
	require.NoError(t, err)
	if assert.Len(t, got, 1) {
		assert.Equal(t, "B1", got[0].Titulo)
	}

	_, err = env.cadernoSvc.List(ctx, repo.CadernoFilter{Status: "X"})
	assert.ErrorIs(t, err, ErrValidation)
}

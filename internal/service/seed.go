package service

import (
	"context"
	"errors"
	"fmt"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/model"
	"github.com/dudsmessias/new-automacao-esp-seedf/internal/repo"
	"time"

	"go.uber.org/zap"
)

// SeedUser — тестовая учётная запись.
type SeedUser struct {
	Nome   string
	Email  string
	Senha  string
	Perfil model.Perfil
}

// SeedUsers — по одному пользователю на профиль.
var SeedUsers = []SeedUser{
	{Nome: "João Arquiteto", Email: "arquiteto@seedf.df.gov.br", Senha: "Arquiteto123!", Perfil: model.PerfilArquiteto},
	{Nome: "Maria Chefe", Email: "chefe@seedf.df.gov.br", Senha: "Chefe123!", Perfil: model.PerfilChefeDeNucleo},
	{Nome: "Pedro Gerente", Email: "gerente@seedf.df.gov.br", Senha: "Gerente123!", Perfil: model.PerfilGerente},
	{Nome: "Ana Diretora", Email: "diretor@seedf.df.gov.br", Senha: "Diretor123!", Perfil: model.PerfilDiretor},
}

const seedCadernoTitulo = "Caderno de Especificações - Edificações 2025"

// SeedResult — что было создано за прогон.
type SeedResult struct {
	UsersCreated    int `json:"usersCreated"`
	CadernosCreated int `json:"cadernosCreated"`
	EspsCreated     int `json:"espsCreated"`
}

// Seeder заполняет пустую БД начальными данными. Повторный запуск ничего не дублирует.
type Seeder struct {
	users    repo.UserRepository
	cadernos repo.CadernoRepository
	esps     repo.EspRepository
	audit    *AuditService
	logger   *zap.SugaredLogger
}

func NewSeeder(users repo.UserRepository, cadernos repo.CadernoRepository, esps repo.EspRepository, audit *AuditService, logger *zap.SugaredLogger) *Seeder {
	return &Seeder{users: users, cadernos: cadernos, esps: esps, audit: audit, logger: logger}
}

// Seed заполняет базу начальными данными. actorID — кто запустил seed;
// пустой при старте сервера, тогда запись в журнале идёт от seed-архитектора.
func (s *Seeder) Seed(ctx context.Context, actorID string) (SeedResult, error) {
	var res SeedResult

	var arquiteto *model.User
	for _, su := range SeedUsers {
		u, created, err := s.ensureUser(ctx, su)
		if err != nil {
			return res, err
		}
		if created {
			res.UsersCreated++
		}
		if su.Perfil == model.PerfilArquiteto {
			arquiteto = u
		}
	}
	if arquiteto == nil {
		return res, errors.New("seed: arquiteto user missing")
	}

	caderno, created, err := s.ensureCaderno(ctx, arquiteto.ID)
	if err != nil {
		return res, err
	}
	if created {
		res.CadernosCreated++
	}

	existing, err := s.esps.List(ctx, repo.EspFilter{CadernoID: caderno.ID})
	if err != nil {
		return res, fmt.Errorf("seed: list esps: %w", err)
	}
	codigos := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		codigos[e.Codigo] = struct{}{}
	}
	for _, e := range seedEsps(arquiteto.ID, caderno.ID) {
		if _, ok := codigos[e.Codigo]; ok {
			continue
		}
		normalizeLists(e)
		if err := s.esps.Create(ctx, e); err != nil {
			if errors.Is(err, repo.ErrConflict) {
				continue
			}
			return res, fmt.Errorf("seed: create %s: %w", e.Codigo, err)
		}
		res.EspsCreated++
		s.logger.Infow("seed: ESP created", "codigo", e.Codigo)
	}

	if actorID == "" {
		actorID = arquiteto.ID
	}
	s.audit.Record(ctx, actorID, model.AcaoSeedDatabase, "SYSTEM", "Banco de dados populado com dados iniciais")
	s.logger.Infow("seed completed",
		"users_created", res.UsersCreated,
		"cadernos_created", res.CadernosCreated,
		"esps_created", res.EspsCreated,
	)
	return res, nil
}

func (s *Seeder) ensureUser(ctx context.Context, su SeedUser) (*model.User, bool, error) {
	u, err := s.users.GetUserByEmail(ctx, su.Email)
	if err == nil && u != nil {
		return u, false, nil
	}
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, false, fmt.Errorf("seed: lookup %s: %w", su.Email, err)
	}
	hash, err := HashPassword(su.Senha)
	if err != nil {
		return nil, false, err
	}
	u, err = s.users.CreateUser(ctx, &model.User{
		Nome:      su.Nome,
		Email:     su.Email,
		HashSenha: hash,
		Perfil:    su.Perfil,
		Ativo:     true,
	})
	if err != nil {
		return nil, false, fmt.Errorf("seed: create %s: %w", su.Email, err)
	}
	s.logger.Infow("seed: user created", "email", su.Email, "perfil", su.Perfil)
	return u, true, nil
}

func (s *Seeder) ensureCaderno(ctx context.Context, autorID string) (*model.Caderno, bool, error) {
	all, err := s.cadernos.List(ctx, repo.CadernoFilter{})
	if err != nil {
		return nil, false, fmt.Errorf("seed: list cadernos: %w", err)
	}
	for i := range all {
		if all[i].Titulo == seedCadernoTitulo {
			return &all[i], false, nil
		}
	}
	descricao := "Caderno principal para especificações de edificações escolares"
	c := &model.Caderno{
		Titulo:    seedCadernoTitulo,
		Descricao: &descricao,
		Status:    model.StatusEmAndamento,
		AutorID:   autorID,
	}
	if err := s.cadernos.Create(ctx, c); err != nil {
		return nil, false, fmt.Errorf("seed: create caderno: %w", err)
	}
	return c, true, nil
}

func seedEsps(autorID, cadernoID string) []*model.Esp {
	str := func(v string) *string { return &v }
	return []*model.Esp{
		{
			Codigo:             "ESP-001",
			Titulo:             "Especificação de Pintura Interna",
			Tipologia:          "Acabamento",
			Revisao:            "v1.0",
			DataPublicacao:     time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			AutorID:            autorID,
			Selo:               model.SeloAmbiental,
			CadernoID:          cadernoID,
			CadernosIDs:        model.IDList{cadernoID},
			Visivel:            true,
			DescricaoAplicacao: str("Pintura interna para ambientes escolares, utilizando tintas de baixo VOC."),
			Execucao:           str("1. Preparação da superfície\n2. Aplicação de fundo\n3. Duas demãos de tinta látex"),
			FichasReferencia:   str("NBR 15079:2011 - Tintas para edificações"),
			CriteriosMedicao:   str("Medição por m² de área pintada"),
		},
		{
			Codigo:             "ESP-002",
			Titulo:             "Especificação de Alvenaria de Vedação",
			Tipologia:          "Estrutura",
			Revisao:            "v1.0",
			DataPublicacao:     time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
			AutorID:            autorID,
			Selo:               model.SeloNenhum,
			CadernoID:          cadernoID,
			CadernosIDs:        model.IDList{cadernoID},
			Visivel:            true,
			DescricaoAplicacao: str("Alvenaria de vedação em blocos cerâmicos para divisão de ambientes."),
			Execucao:           str("1. Marcação da alvenaria\n2. Assentamento dos blocos\n3. Fixação nas estruturas"),
			Legislacao:         str("Lei Distrital nº 5.920/2017 - Código de Edificações do DF"),
		},
	}
}

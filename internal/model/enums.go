package model

// Perfil — организационная роль пользователя.
// Старшинство ARQUITETO < CHEFE_DE_NUCLEO < GERENTE < DIRETOR нигде не вычисляется:
// права задаются явными списками в пакете rbac.
type Perfil string

const (
	PerfilArquiteto     Perfil = "ARQUITETO"
	PerfilChefeDeNucleo Perfil = "CHEFE_DE_NUCLEO"
	PerfilGerente       Perfil = "GERENTE"
	PerfilDiretor       Perfil = "DIRETOR"
)

// Perfis возвращает все роли в порядке старшинства.
func Perfis() []Perfil {
	return []Perfil{PerfilArquiteto, PerfilChefeDeNucleo, PerfilGerente, PerfilDiretor}
}

func (p Perfil) Valid() bool {
	switch p {
	case PerfilArquiteto, PerfilChefeDeNucleo, PerfilGerente, PerfilDiretor:
		return true
	}
	return false
}

// StatusCaderno — жизненный цикл caderno.
type StatusCaderno string

const (
	StatusEmAndamento StatusCaderno = "EM_ANDAMENTO"
	StatusAprovado    StatusCaderno = "APROVADO"
	StatusObsoleto    StatusCaderno = "OBSOLETO"
)

func (s StatusCaderno) Valid() bool {
	switch s {
	case StatusEmAndamento, StatusAprovado, StatusObsoleto:
		return true
	}
	return false
}

// Selo — экологическая отметка ESP.
type Selo string

const (
	SeloNenhum    Selo = "NENHUM"
	SeloAmbiental Selo = "AMBIENTAL"
)

func (s Selo) Valid() bool {
	return s == SeloNenhum || s == SeloAmbiental
}

// TipoArquivo — тип вложения.
type TipoArquivo string

const (
	TipoImagem TipoArquivo = "IMAGEM"
	TipoPDF    TipoArquivo = "PDF"
	TipoDOCX   TipoArquivo = "DOCX"
)

// CategoriaItem — раздел ESP, к которому относится элемент каталога.
type CategoriaItem string

const (
	CategoriaDescricao         CategoriaItem = "DESCRICAO"
	CategoriaAplicacao         CategoriaItem = "APLICACAO"
	CategoriaExecucao          CategoriaItem = "EXECUCAO"
	CategoriaRecebimento       CategoriaItem = "RECEBIMENTO"
	CategoriaServicosIncluidos CategoriaItem = "SERVICOS_INCLUIDOS"
	CategoriaCriteriosMedicao  CategoriaItem = "CRITERIOS_MEDICAO"
	CategoriaLegislacao        CategoriaItem = "LEGISLACAO"
	CategoriaReferencia        CategoriaItem = "REFERENCIA"
	CategoriaFichaReferencia   CategoriaItem = "FICHA_REFERENCIA"
)

func (c CategoriaItem) Valid() bool {
	switch c {
	case CategoriaDescricao, CategoriaAplicacao, CategoriaExecucao, CategoriaRecebimento,
		CategoriaServicosIncluidos, CategoriaCriteriosMedicao, CategoriaLegislacao,
		CategoriaReferencia, CategoriaFichaReferencia:
		return true
	}
	return false
}

// SubcategoriaItem уточняет категорию.
type SubcategoriaItem string

const (
	SubcategoriaConstituintes      SubcategoriaItem = "CONSTITUINTES"
	SubcategoriaAcessorios         SubcategoriaItem = "ACESSORIOS"
	SubcategoriaAcabamentos        SubcategoriaItem = "ACABAMENTOS"
	SubcategoriaPrototipoComercial SubcategoriaItem = "PROTOTIPO_COMERCIAL"
	SubcategoriaTextoGeral         SubcategoriaItem = "TEXTO_GERAL"
	SubcategoriaCatalogoServicos   SubcategoriaItem = "CATALOGO_SERVICOS"
)

// AllowedFor проверяет сочетание категории и подкатегории.
// DESCRICAO требует одну из пяти своих подкатегорий, CATALOGO_SERVICOS
// допустима только в SERVICOS_INCLUIDOS, остальные категории без подкатегории.
func (s SubcategoriaItem) AllowedFor(c CategoriaItem) bool {
	switch c {
	case CategoriaDescricao:
		switch s {
		case SubcategoriaConstituintes, SubcategoriaAcessorios, SubcategoriaAcabamentos,
			SubcategoriaPrototipoComercial, SubcategoriaTextoGeral:
			return true
		}
		return false
	case CategoriaServicosIncluidos:
		return s == "" || s == SubcategoriaCatalogoServicos
	default:
		return s == ""
	}
}

// SituacaoItem — признак жизненного цикла элемента каталога (мягкое удаление).
type SituacaoItem string

const (
	SituacaoAtivo   SituacaoItem = "ATIVO"
	SituacaoInativo SituacaoItem = "INATIVO"
)

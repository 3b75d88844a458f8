package model

import (
	"time"

	"gorm.io/datatypes"
)

// IDList — упорядоченный список ссылок на элементы каталога, хранится как JSON.
type IDList = datatypes.JSONSlice[string]

// Esp — документ технической спецификации.
type Esp struct {
	ID             string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Codigo         string    `gorm:"uniqueIndex;not null" json:"codigo"`
	Titulo         string    `gorm:"not null" json:"titulo"`
	Tipologia      string    `gorm:"not null" json:"tipologia"`
	Revisao        string    `gorm:"not null" json:"revisao"`
	DataPublicacao time.Time `gorm:"not null" json:"dataPublicacao"`
	AutorID        string    `gorm:"type:varchar(36);not null;index" json:"autorId"`
	Selo           Selo      `gorm:"type:varchar(16);not null" json:"selo"`
	CadernoID      string    `gorm:"type:varchar(36);not null;index" json:"cadernoId"` // основной caderno
	CadernosIDs    IDList    `json:"cadernosIds"`                                      // все cadernos для multi-caderno ESP
	Visivel        bool      `gorm:"not null" json:"visivel"`

	// Связи
	Autor    *User          `gorm:"foreignKey:AutorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"autor,omitempty"`
	Caderno  *Caderno       `gorm:"foreignKey:CadernoID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"caderno,omitempty"`
	Arquivos []ArquivoMidia `gorm:"foreignKey:EspID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"arquivos,omitempty"`

	// Текстовые разделы
	DescricaoAplicacao   *string `json:"descricaoAplicacao"`
	Execucao             *string `json:"execucao"`
	FichasReferencia     *string `json:"fichasReferencia"`
	Recebimento          *string `json:"recebimento"`
	ServicosIncluidos    *string `json:"servicosIncluidos"`
	CriteriosMedicao     *string `json:"criteriosMedicao"`
	Legislacao           *string `json:"legislacao"`
	Referencias          *string `json:"referencias"`
	IntroduzirComponente *string `json:"introduzirComponente"`

	// Ссылки на каталог (без внешних ключей)
	ConstituentesIDs         IDList `json:"constituentesIds"`
	AcessoriosIDs            IDList `json:"acessoriosIds"`
	AcabamentosIDs           IDList `json:"acabamentosIds"`
	PrototiposIDs            IDList `json:"prototiposIds"`
	AplicacoesIDs            IDList `json:"aplicacoesIds"`
	ConstituintesExecucaoIDs IDList `json:"constituintesExecucaoIds"`
	FichasReferenciaIDs      IDList `json:"fichasReferenciaIds"`
	FichasRecebimentoIDs     IDList `json:"fichasRecebimentoIds"`
	ServicosIncluidosIDs     IDList `json:"servicosIncluidosIds"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

package model

import (
	"encoding/json"
	"time"
)

// ItemEspecificacao — элемент справочника, на который ссылаются списки ESP.
type ItemEspecificacao struct {
	ID           string           `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Titulo       string           `gorm:"not null" json:"titulo"`
	Categoria    CategoriaItem    `gorm:"type:varchar(32);not null;index" json:"categoria"`
	Subcategoria SubcategoriaItem `gorm:"type:varchar(32);index" json:"subcategoria,omitempty"`
	Descricao    *string          `json:"descricao"`
	Situacao     SituacaoItem     `gorm:"type:varchar(16);not null;index" json:"situacao"`
	CreatedAt    time.Time        `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time        `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (ItemEspecificacao) TableName() string {
	return "itens_especificacao"
}

// Ativo — производный признак для клиентов, ожидающих булево поле.
func (i ItemEspecificacao) Ativo() bool {
	return i.Situacao == SituacaoAtivo
}

// MarshalJSON добавляет поле "ativo" к сериализации.
func (i ItemEspecificacao) MarshalJSON() ([]byte, error) {
	type plain ItemEspecificacao
	return json.Marshal(struct {
		plain
		Ativo bool `json:"ativo"`
	}{plain: plain(i), Ativo: i.Ativo()})
}

package model

import "time"

// Caderno — сборник ESP со своим статусом согласования.
type Caderno struct {
	ID        string        `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Titulo    string        `gorm:"not null" json:"titulo"`
	Descricao *string       `json:"descricao"`
	Status    StatusCaderno `gorm:"type:varchar(32);not null;index" json:"status"`
	AutorID   string        `gorm:"type:varchar(36);not null;index" json:"autorId"`

	// Связи
	Autor *User `gorm:"foreignKey:AutorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"autor,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

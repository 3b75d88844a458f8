package model

import "time"

// ArquivoMidia — вложение ESP. Содержимое хранится в строке как base64.
type ArquivoMidia struct {
	ID          string      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	EspID       string      `gorm:"type:varchar(36);not null;index" json:"espId"`
	Tipo        TipoArquivo `gorm:"type:varchar(16);not null" json:"tipo"`
	Filename    string      `gorm:"not null" json:"filename"`
	ContentType string      `gorm:"not null" json:"contentType"`
	FileSize    int64       `gorm:"not null" json:"fileSize"`
	FileData    string      `gorm:"type:text;not null" json:"fileData,omitempty"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"createdAt"`
}

func (ArquivoMidia) TableName() string {
	return "arquivos_midia"
}

package model

import "time"

// LogAtividade — запись журнала аудита. Только добавление.
type LogAtividade struct {
	ID       string  `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID   string  `gorm:"type:varchar(36);not null;index" json:"userId"`
	Acao     string  `gorm:"not null" json:"acao"`
	Alvo     string  `gorm:"not null" json:"alvo"`
	Detalhes *string `json:"detalhes"`

	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"user,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
}

func (LogAtividade) TableName() string {
	return "logs_atividade"
}

// Коды действий журнала.
const (
	AcaoCriarEsp             = "CRIAR_ESP"
	AcaoCriarEspMultiCaderno = "CRIAR_ESP_MULTI_CADERNO"
	AcaoAtualizarEsp         = "ATUALIZAR_ESP"
	AcaoDeletarEsp           = "DELETAR_ESP"
	AcaoCriarCaderno         = "CRIAR_CADERNO"
	AcaoAtualizarCaderno     = "ATUALIZAR_CADERNO"
	AcaoDeletarCaderno       = "DELETAR_CADERNO"
	AcaoUploadArquivo        = "UPLOAD_ARQUIVO"
	AcaoDeletarArquivo       = "DELETAR_ARQUIVO"
	AcaoCriarItem            = "CRIAR_ITEM"
	AcaoAtualizarItem        = "ATUALIZAR_ITEM"
	AcaoDesativarItem        = "DESATIVAR_ITEM"
	AcaoDesativarUsuario     = "DESATIVAR_USUARIO"
	AcaoSeedDatabase         = "SEED_DATABASE"
)

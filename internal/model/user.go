package model

import "time"

// User — учётная запись сотрудника. Удаления нет: доступ отзывается через Ativo=false.
type User struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Nome      string    `gorm:"not null" json:"nome"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	HashSenha string    `gorm:"column:hash_senha;not null" json:"-"`
	Perfil    Perfil    `gorm:"type:varchar(32);not null" json:"perfil"`
	Ativo     bool      `gorm:"not null" json:"ativo"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

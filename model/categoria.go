package model

import (
	"time"

	"gorm.io/gorm"
)

type Categoria struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Nome      string         `gorm:"size:255;not null" json:"nome"`
	Descricao string         `gorm:"type:text" json:"descricao"`
	Ativo     bool           `gorm:"not null" json:"ativo"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Categoria) TableName() string {
	return "categorias"
}

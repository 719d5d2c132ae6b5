package model

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	Cliente UserRole = "cliente"
	Admin   UserRole = "admin"
)

type Usuario struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Nome      string         `gorm:"size:255;not null" json:"nome"`
	Email     string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Senha     string         `gorm:"size:255;not null" json:"-"`
	Tipo      UserRole       `gorm:"size:20;not null;default:'cliente'" json:"tipo"`
	Telefone  string         `gorm:"size:20" json:"telefone"`
	// No column default: a bool zero value with a default tag would be
	// replaced on insert, so callers set Ativo explicitly.
	Ativo     bool           `gorm:"not null" json:"ativo"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Usuario) TableName() string {
	return "usuarios"
}

package model

import (
	"time"

	"gorm.io/gorm"
)

// Cardapio is a menu item. Preco is copied into ItemPedido.PrecoUnitario when
// an order is placed, so later price changes never affect existing orders.
type Cardapio struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Nome        string         `gorm:"size:255;not null" json:"nome"`
	Descricao   string         `gorm:"type:text" json:"descricao"`
	Preco       float64        `gorm:"not null;check:preco >= 0" json:"preco"`
	CategoriaID *uint          `gorm:"index" json:"categoria_id"`
	Categoria   *Categoria     `gorm:"foreignKey:CategoriaID" json:"categoria,omitempty"`
	ImagemURL   string         `gorm:"size:500" json:"imagem_url"`
	Disponivel  bool           `gorm:"not null" json:"disponivel"`
	// TempoPreparo is in minutes.
	TempoPreparo int            `gorm:"not null;default:30" json:"tempo_preparo"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Cardapio) TableName() string {
	return "cardapio"
}

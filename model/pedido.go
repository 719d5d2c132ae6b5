package model

import (
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"
)

type StatusPedido string

const (
	StatusRecebido   StatusPedido = "recebido"
	StatusPreparando StatusPedido = "preparando"
	StatusPronto     StatusPedido = "pronto"
	StatusEntregue   StatusPedido = "entregue"
	StatusCancelado  StatusPedido = "cancelado"
)

type TipoEntrega string

const (
	EntregaDelivery TipoEntrega = "delivery"
	EntregaRetirada TipoEntrega = "retirada"
	EntregaBalcao   TipoEntrega = "balcao"
)

// StatusValido reports whether s belongs to the fixed status set. Any valid
// status may follow any other; there is no transition graph.
func StatusValido(s string) bool {
	switch StatusPedido(s) {
	case StatusRecebido, StatusPreparando, StatusPronto, StatusEntregue, StatusCancelado:
		return true
	}
	return false
}

func TipoEntregaValido(t string) bool {
	switch TipoEntrega(t) {
	case EntregaDelivery, EntregaRetirada, EntregaBalcao:
		return true
	}
	return false
}

type Pedido struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	NumeroPedido    string         `gorm:"size:20;uniqueIndex" json:"numero_pedido"`
	ClienteNome     string         `gorm:"size:255;not null" json:"cliente_nome"`
	ClienteTelefone string         `gorm:"size:20" json:"cliente_telefone"`
	ClienteEmail    string         `gorm:"size:255" json:"cliente_email"`
	Status          StatusPedido   `gorm:"size:20;not null;default:'recebido'" json:"status"`
	Total           float64        `gorm:"not null;check:total >= 0" json:"total"`
	Observacoes     string         `gorm:"type:text" json:"observacoes"`
	TipoEntrega     TipoEntrega    `gorm:"size:20;not null;default:'balcao'" json:"tipo_entrega"`
	EnderecoEntrega string         `gorm:"type:text" json:"endereco_entrega"`
	Itens           []ItemPedido   `gorm:"foreignKey:PedidoID" json:"itens"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Pedido) TableName() string {
	return "pedidos"
}

// BeforeCreate generates the human-readable order number. Uniqueness is
// best-effort: the last six digits of the current unix millis plus a random
// three-digit suffix, backed by a unique index on the column.
func (p *Pedido) BeforeCreate(tx *gorm.DB) error {
	if p.NumeroPedido != "" {
		return nil
	}
	ts := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(ts) > 6 {
		ts = ts[len(ts)-6:]
	}
	p.NumeroPedido = fmt.Sprintf("PED%s%03d", ts, rand.Intn(1000))
	return nil
}

// ItemPedido is an order line. PrecoUnitario is the menu price captured at
// order time and is never recalculated afterwards.
type ItemPedido struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	PedidoID      uint           `gorm:"not null;index" json:"pedido_id"`
	CardapioID    uint           `gorm:"not null;index" json:"cardapio_id"`
	Produto       *Cardapio      `gorm:"foreignKey:CardapioID" json:"produto,omitempty"`
	Quantidade    int            `gorm:"not null;check:quantidade >= 1" json:"quantidade"`
	PrecoUnitario float64        `gorm:"not null;check:preco_unitario >= 0" json:"preco_unitario"`
	Observacoes   string         `gorm:"type:text" json:"observacoes"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ItemPedido) TableName() string {
	return "itens_pedido"
}

package controller

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cardapio/model"
)

type PedidoController struct {
	DB *gorm.DB
}

type criarPedidoRequest struct {
	ClienteNome     string              `json:"cliente_nome"`
	ClienteTelefone string              `json:"cliente_telefone"`
	ClienteEmail    string              `json:"cliente_email"`
	Observacoes     string              `json:"observacoes"`
	TipoEntrega     string              `json:"tipo_entrega"`
	EnderecoEntrega string              `json:"endereco_entrega"`
	Itens           []itemPedidoRequest `json:"itens"`
}

type itemPedidoRequest struct {
	CardapioID  uint   `json:"cardapio_id"`
	Quantidade  int    `json:"quantidade"`
	Observacoes string `json:"observacoes"`
}

// CriarPedido validates the request, snapshots menu prices into order lines
// and persists the order plus all lines in one transaction. Availability is
// checked before the transaction and not re-checked inside it, so an admin
// disabling an item concurrently can still race a placement.
func (pc *PedidoController) CriarPedido(c *gin.Context) {
	var req criarPedidoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dados inválidos",
			"details": []gin.H{{"msg": "Corpo da requisição inválido"}},
		})
		return
	}

	if len(strings.TrimSpace(req.ClienteNome)) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dados inválidos",
			"details": []gin.H{{"msg": "Nome do cliente é obrigatório"}},
		})
		return
	}

	if !model.TipoEntregaValido(req.TipoEntrega) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dados inválidos",
			"details": []gin.H{{"msg": "Tipo de entrega deve ser: delivery, retirada ou balcao"}},
		})
		return
	}

	// Address is validated before any menu lookup happens.
	endereco := strings.TrimSpace(req.EnderecoEntrega)
	if req.TipoEntrega == string(model.EntregaDelivery) && endereco == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dados inválidos",
			"details": []gin.H{{"msg": "Endereço é obrigatório para delivery"}},
		})
		return
	}
	if req.TipoEntrega != string(model.EntregaDelivery) {
		endereco = ""
	}

	if len(req.Itens) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dados inválidos",
			"details": []gin.H{{"msg": "Pedido deve ter pelo menos um item"}},
		})
		return
	}

	var total float64
	itens := make([]model.ItemPedido, 0, len(req.Itens))
	for _, item := range req.Itens {
		if item.CardapioID == 0 || item.Quantidade == 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Dados inválidos",
				"details": []gin.H{{"msg": "Cada item deve ter cardapio_id e quantidade"}},
			})
			return
		}

		var produto model.Cardapio
		if err := pc.DB.First(&produto, item.CardapioID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":   "Produto não encontrado",
					"details": []gin.H{{"msg": fmt.Sprintf("Produto ID %d não existe", item.CardapioID)}},
				})
				return
			}
			internalError(c, err)
			return
		}

		if !produto.Disponivel {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Produto indisponível",
				"details": []gin.H{{"msg": fmt.Sprintf("Produto %s não está disponível", produto.Nome)}},
			})
			return
		}

		if item.Quantidade <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Dados inválidos",
				"details": []gin.H{{"msg": "Quantidade deve ser maior que zero"}},
			})
			return
		}

		total += produto.Preco * float64(item.Quantidade)
		itens = append(itens, model.ItemPedido{
			CardapioID:    produto.ID,
			Quantidade:    item.Quantidade,
			PrecoUnitario: produto.Preco,
			Observacoes:   item.Observacoes,
		})
	}
	total = math.Round(total*100) / 100

	pedido := model.Pedido{
		ClienteNome:     strings.TrimSpace(req.ClienteNome),
		ClienteTelefone: req.ClienteTelefone,
		ClienteEmail:    req.ClienteEmail,
		Status:          model.StatusRecebido,
		Total:           total,
		Observacoes:     req.Observacoes,
		TipoEntrega:     model.TipoEntrega(req.TipoEntrega),
		EnderecoEntrega: endereco,
	}

	// The order row and every line land together or not at all.
	tx := pc.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno do servidor"})
		}
	}()

	if err := tx.Create(&pedido).Error; err != nil {
		tx.Rollback()
		internalError(c, err)
		return
	}

	for i := range itens {
		itens[i].PedidoID = pedido.ID
		if err := tx.Create(&itens[i]).Error; err != nil {
			tx.Rollback()
			internalError(c, err)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		internalError(c, err)
		return
	}

	var completo model.Pedido
	if err := pc.DB.Preload("Itens.Produto.Categoria").First(&completo, pedido.ID).Error; err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Pedido criado com sucesso",
		"pedido":  completo,
	})
}

// ListarPedidos lists orders newest first, with status and date filters and
// page/limit pagination. Admin only.
func (pc *PedidoController) ListarPedidos(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	query := pc.DB.Model(&model.Pedido{})

	if status := c.Query("status"); status != "" && status != "todos" {
		query = query.Where("status = ?", status)
	}

	dataInicio := c.Query("data_inicio")
	dataFim := c.Query("data_fim")
	if dataInicio != "" && dataFim != "" {
		inicio, errInicio := time.Parse("2006-01-02", dataInicio)
		fim, errFim := time.Parse("2006-01-02", dataFim)
		if errInicio != nil || errFim != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Dados inválidos",
				"details": []gin.H{{"msg": "Datas devem estar no formato AAAA-MM-DD"}},
			})
			return
		}
		query = query.Where("created_at >= ? AND created_at < ?", inicio, fim.AddDate(0, 0, 1))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		internalError(c, err)
		return
	}

	var pedidos []model.Pedido
	if err := query.
		Preload("Itens.Produto").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&pedidos).Error; err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pedidos": pedidos,
		"pagination": gin.H{
			"total": total,
			"page":  page,
			"limit": limit,
			"pages": int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// ObterPedido returns a single order with all its lines. The stored totals
// and unit prices are returned as persisted; nothing is recomputed.
func (pc *PedidoController) ObterPedido(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}

	var pedido model.Pedido
	if err := pc.DB.Preload("Itens.Produto.Categoria").First(&pedido, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pedido não encontrado"})
			return
		}
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, pedido)
}

// AtualizarStatus sets an order's status to any value in the fixed set. No
// transition graph is enforced. Admin only.
func (pc *PedidoController) AtualizarStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !model.StatusValido(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dados inválidos",
			"details": []gin.H{{"msg": "Status inválido"}},
		})
		return
	}

	var pedido model.Pedido
	if err := pc.DB.First(&pedido, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pedido não encontrado"})
			return
		}
		internalError(c, err)
		return
	}

	if err := pc.DB.Model(&pedido).Update("status", req.Status).Error; err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Status do pedido atualizado com sucesso",
		"pedido": gin.H{
			"id":            pedido.ID,
			"numero_pedido": pedido.NumeroPedido,
			"status":        pedido.Status,
		},
	})
}

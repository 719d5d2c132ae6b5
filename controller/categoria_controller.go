package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cardapio/model"
)

type categoriaRequest struct {
	Nome      string `json:"nome"`
	Descricao string `json:"descricao"`
	Ativo     *bool  `json:"ativo"`
}

// CriarCategoria creates a category. Admin only.
func (cc *CardapioController) CriarCategoria(c *gin.Context) {
	var req categoriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dados inválidos",
			"details": []gin.H{{"msg": "Corpo da requisição inválido"}},
		})
		return
	}

	nome := strings.TrimSpace(req.Nome)
	if len(nome) < 2 || len(nome) > 255 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dados inválidos",
			"details": []gin.H{{"msg": "Nome deve ter entre 2 e 255 caracteres"}},
		})
		return
	}

	categoria := model.Categoria{
		Nome:      nome,
		Descricao: req.Descricao,
		Ativo:     true,
	}
	if req.Ativo != nil {
		categoria.Ativo = *req.Ativo
	}

	if err := cc.DB.Create(&categoria).Error; err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Categoria criada com sucesso",
		"categoria": categoria,
	})
}

// AtualizarCategoria updates a category's name, description and active flag.
func (cc *CardapioController) AtualizarCategoria(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}

	var categoria model.Categoria
	if err := cc.DB.First(&categoria, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Categoria não encontrada"})
			return
		}
		internalError(c, err)
		return
	}

	var req categoriaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dados inválidos",
			"details": []gin.H{{"msg": "Corpo da requisição inválido"}},
		})
		return
	}

	nome := strings.TrimSpace(req.Nome)
	if len(nome) < 2 || len(nome) > 255 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dados inválidos",
			"details": []gin.H{{"msg": "Nome deve ter entre 2 e 255 caracteres"}},
		})
		return
	}

	categoria.Nome = nome
	categoria.Descricao = req.Descricao
	if req.Ativo != nil {
		categoria.Ativo = *req.Ativo
	}

	if err := cc.DB.Save(&categoria).Error; err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Categoria atualizada com sucesso",
		"categoria": categoria,
	})
}

// DeletarCategoria removes a category. Items keep their categoria_id but the
// category no longer appears in listings.
func (cc *CardapioController) DeletarCategoria(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}

	var categoria model.Categoria
	if err := cc.DB.First(&categoria, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Categoria não encontrada"})
			return
		}
		internalError(c, err)
		return
	}

	if err := cc.DB.Delete(&categoria).Error; err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Categoria deletada com sucesso"})
}

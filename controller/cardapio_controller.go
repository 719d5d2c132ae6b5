package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"cardapio/model"
)

type CardapioController struct {
	DB *gorm.DB
}

// ListarItens lists menu items, optionally filtered by category and
// availability. The full result set is returned, no pagination.
func (cc *CardapioController) ListarItens(c *gin.Context) {
	query := cc.DB.Model(&model.Cardapio{}).Preload("Categoria")

	if categoriaID := c.Query("categoria_id"); categoriaID != "" {
		id, err := strconv.ParseUint(categoriaID, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Dados inválidos",
				"details": []gin.H{{"msg": "categoria_id deve ser um número inteiro"}},
			})
			return
		}
		query = query.Where("categoria_id = ?", uint(id))
	}

	if disponivel := c.Query("disponivel"); disponivel != "" {
		query = query.Where("disponivel = ?", disponivel == "true")
	}

	var itens []model.Cardapio
	if err := query.Order("nome ASC").Find(&itens).Error; err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"itens": itens,
		"total": len(itens),
	})
}

// ListarCategorias returns the active categories as a bare array.
func (cc *CardapioController) ListarCategorias(c *gin.Context) {
	var categorias []model.Categoria
	if err := cc.DB.Where("ativo = ?", true).Order("nome ASC").Find(&categorias).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, categorias)
}

// ObterItem returns a single menu item with its category.
func (cc *CardapioController) ObterItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}

	var item model.Cardapio
	if err := cc.DB.Preload("Categoria").First(&item, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item não encontrado"})
			return
		}
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

type itemRequest struct {
	Nome         string   `json:"nome"`
	Descricao    string   `json:"descricao"`
	Preco        *float64 `json:"preco"`
	CategoriaID  *uint    `json:"categoria_id"`
	ImagemURL    string   `json:"imagem_url"`
	Disponivel   *bool    `json:"disponivel"`
	TempoPreparo *int     `json:"tempo_preparo"`
}

func (cc *CardapioController) validarItem(req *itemRequest) []gin.H {
	var details []gin.H
	nome := strings.TrimSpace(req.Nome)
	if len(nome) < 2 || len(nome) > 255 {
		details = append(details, gin.H{"msg": "Nome deve ter entre 2 e 255 caracteres"})
	}
	if req.Preco == nil {
		details = append(details, gin.H{"msg": "Preço deve ser um valor decimal válido"})
	} else if *req.Preco < 0 {
		details = append(details, gin.H{"msg": "Preço não pode ser negativo"})
	}
	if req.CategoriaID != nil {
		var count int64
		if err := cc.DB.Model(&model.Categoria{}).Where("id = ?", *req.CategoriaID).Count(&count).Error; err == nil && count == 0 {
			details = append(details, gin.H{"msg": "Categoria não encontrada"})
		}
	}
	return details
}

// CriarItem creates a menu item. Admin only.
func (cc *CardapioController) CriarItem(c *gin.Context) {
	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dados inválidos",
			"details": []gin.H{{"msg": "Corpo da requisição inválido"}},
		})
		return
	}

	if details := cc.validarItem(&req); len(details) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos", "details": details})
		return
	}

	item := model.Cardapio{
		Nome:        strings.TrimSpace(req.Nome),
		Descricao:   req.Descricao,
		Preco:       *req.Preco,
		CategoriaID: req.CategoriaID,
		ImagemURL:   req.ImagemURL,
		Disponivel:  true,
	}
	if req.Disponivel != nil {
		item.Disponivel = *req.Disponivel
	}
	if req.TempoPreparo != nil && *req.TempoPreparo > 0 {
		item.TempoPreparo = *req.TempoPreparo
	} else {
		item.TempoPreparo = 30
	}

	if err := cc.DB.Create(&item).Error; err != nil {
		internalError(c, err)
		return
	}

	var completo model.Cardapio
	if err := cc.DB.Preload("Categoria").First(&completo, item.ID).Error; err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Item criado com sucesso",
		"item":    completo,
	})
}

// AtualizarItem updates a menu item, including the availability flag.
func (cc *CardapioController) AtualizarItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}

	var item model.Cardapio
	if err := cc.DB.First(&item, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item não encontrado"})
			return
		}
		internalError(c, err)
		return
	}

	var req itemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dados inválidos",
			"details": []gin.H{{"msg": "Corpo da requisição inválido"}},
		})
		return
	}

	if details := cc.validarItem(&req); len(details) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos", "details": details})
		return
	}

	item.Nome = strings.TrimSpace(req.Nome)
	item.Descricao = req.Descricao
	item.Preco = *req.Preco
	if req.CategoriaID != nil {
		item.CategoriaID = req.CategoriaID
	}
	item.ImagemURL = req.ImagemURL
	if req.Disponivel != nil {
		item.Disponivel = *req.Disponivel
	}
	if req.TempoPreparo != nil && *req.TempoPreparo > 0 {
		item.TempoPreparo = *req.TempoPreparo
	}

	if err := cc.DB.Save(&item).Error; err != nil {
		internalError(c, err)
		return
	}

	var completo model.Cardapio
	if err := cc.DB.Preload("Categoria").First(&completo, item.ID).Error; err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item atualizado com sucesso",
		"item":    completo,
	})
}

// DeletarItem removes a menu item.
func (cc *CardapioController) DeletarItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID inválido"})
		return
	}

	var item model.Cardapio
	if err := cc.DB.First(&item, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item não encontrado"})
			return
		}
		internalError(c, err)
		return
	}

	if err := cc.DB.Delete(&item).Error; err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deletado com sucesso"})
}

// ImportarItens bulk-creates menu items from an uploaded spreadsheet.
// Expected columns: nome, preco, categoria_id (optional), descricao,
// tempo_preparo. The header row and malformed rows are skipped.
func (cc *CardapioController) ImportarItens(c *gin.Context) {
	fileHeader, err := c.FormFile("arquivo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Arquivo Excel é obrigatório"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		internalError(c, err)
		return
	}
	defer file.Close()

	xl, err := excelize.OpenReader(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Falha ao ler o arquivo Excel"})
		return
	}
	defer xl.Close()

	rows, err := xl.GetRows(xl.GetSheetName(0))
	if err != nil || len(rows) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Planilha deve ter ao menos uma linha de dados"})
		return
	}

	var itens []model.Cardapio
	ignorados := 0
	for _, row := range rows[1:] {
		if len(row) < 2 {
			ignorados++
			continue
		}

		nome := strings.TrimSpace(row[0])
		preco, err := strconv.ParseFloat(strings.ReplaceAll(row[1], ",", "."), 64)
		if len(nome) < 2 || err != nil || preco < 0 {
			ignorados++
			continue
		}

		item := model.Cardapio{
			Nome:         nome,
			Preco:        preco,
			Disponivel:   true,
			TempoPreparo: 30,
		}
		if len(row) > 2 && row[2] != "" {
			categoriaID, err := strconv.ParseUint(row[2], 10, 32)
			if err != nil {
				ignorados++
				continue
			}
			id := uint(categoriaID)
			item.CategoriaID = &id
		}
		if len(row) > 3 {
			item.Descricao = row[3]
		}
		if len(row) > 4 && row[4] != "" {
			if tempo, err := strconv.Atoi(row[4]); err == nil && tempo > 0 {
				item.TempoPreparo = tempo
			}
		}

		itens = append(itens, item)
	}

	if len(itens) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nenhuma linha válida na planilha"})
		return
	}

	if err := cc.DB.Create(&itens).Error; err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Itens importados com sucesso",
		"importados": len(itens),
		"ignorados":  ignorados,
	})
}

package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"cardapio/model"
	"cardapio/utils"
)

func setupCardapioRouter(db *gorm.DB) *gin.Engine {
	cc := &CardapioController{DB: db}
	auth := utils.AuthMiddleware(db, testSecret)
	admin := utils.AdminOnly()

	router := gin.New()
	router.GET("/api/cardapio", cc.ListarItens)
	router.GET("/api/cardapio/categorias", cc.ListarCategorias)
	router.GET("/api/cardapio/:id", cc.ObterItem)
	router.POST("/api/cardapio", auth, admin, cc.CriarItem)
	router.POST("/api/cardapio/import", auth, admin, cc.ImportarItens)
	router.PUT("/api/cardapio/:id", auth, admin, cc.AtualizarItem)
	router.DELETE("/api/cardapio/:id", auth, admin, cc.DeletarItem)
	router.POST("/api/cardapio/categorias", auth, admin, cc.CriarCategoria)
	router.PUT("/api/cardapio/categorias/:id", auth, admin, cc.AtualizarCategoria)
	router.DELETE("/api/cardapio/categorias/:id", auth, admin, cc.DeletarCategoria)
	return router
}

func TestListarItens(t *testing.T) {
	db := setupTestDB(t)
	router := setupCardapioRouter(db)

	lanches := createTestCategoria(t, db, "Lanches")
	bebidas := createTestCategoria(t, db, "Bebidas")
	createTestItem(t, db, "X-Burger", 18.90, &lanches.ID, true)
	createTestItem(t, db, "X-Salada", 20.50, &lanches.ID, false)
	createTestItem(t, db, "Guaraná", 6.00, &bebidas.ID, true)

	listar := func(query string) map[string]interface{} {
		req, _ := http.NewRequest(http.MethodGet, "/api/cardapio"+query, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		return response
	}

	t.Run("sem filtros", func(t *testing.T) {
		response := listar("")
		assert.Equal(t, float64(3), response["total"])

		itens := response["itens"].([]interface{})
		assert.Len(t, itens, 3)
		// Ordered by name.
		assert.Equal(t, "Guaraná", itens[0].(map[string]interface{})["nome"])
		// Category comes joined.
		assert.Equal(t, "Bebidas", itens[0].(map[string]interface{})["categoria"].(map[string]interface{})["nome"])
	})

	t.Run("filtro por categoria", func(t *testing.T) {
		response := listar(fmt.Sprintf("?categoria_id=%d", lanches.ID))
		assert.Equal(t, float64(2), response["total"])
	})

	t.Run("filtro por disponibilidade", func(t *testing.T) {
		response := listar("?disponivel=false")
		itens := response["itens"].([]interface{})
		assert.Len(t, itens, 1)
		assert.Equal(t, "X-Salada", itens[0].(map[string]interface{})["nome"])
	})

	t.Run("filtros combinados", func(t *testing.T) {
		response := listar(fmt.Sprintf("?categoria_id=%d&disponivel=true", lanches.ID))
		itens := response["itens"].([]interface{})
		assert.Len(t, itens, 1)
		assert.Equal(t, "X-Burger", itens[0].(map[string]interface{})["nome"])
	})

	t.Run("categoria_id inválido", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/api/cardapio?categoria_id=abc", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListarCategorias(t *testing.T) {
	db := setupTestDB(t)
	router := setupCardapioRouter(db)

	createTestCategoria(t, db, "Lanches")
	inativa := model.Categoria{Nome: "Antiga", Ativo: false}
	assert.NoError(t, db.Create(&inativa).Error)

	req, _ := http.NewRequest(http.MethodGet, "/api/cardapio/categorias", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var categorias []map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &categorias))
	assert.Len(t, categorias, 1)
	assert.Equal(t, "Lanches", categorias[0]["nome"])
}

func TestObterItem(t *testing.T) {
	db := setupTestDB(t)
	router := setupCardapioRouter(db)

	categoria := createTestCategoria(t, db, "Lanches")
	item := createTestItem(t, db, "X-Burger", 18.90, &categoria.ID, true)

	t.Run("existente", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/cardapio/%d", item.ID), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "X-Burger", response["nome"])
		assert.Equal(t, "Lanches", response["categoria"].(map[string]interface{})["nome"])
	})

	t.Run("inexistente", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/api/cardapio/9999", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Item não encontrado", response["error"])
	})
}

func TestCriarItem(t *testing.T) {
	db := setupTestDB(t)
	router := setupCardapioRouter(db)

	_, adminToken := createTestUser(t, db, "admin@cardapio.com", model.Admin, true)
	_, clienteToken := createTestUser(t, db, "cliente@cardapio.com", model.Cliente, true)
	categoria := createTestCategoria(t, db, "Lanches")

	criar := func(body map[string]interface{}, token string) *httptest.ResponseRecorder {
		payload, _ := json.Marshal(body)
		req, _ := http.NewRequest(http.MethodPost, "/api/cardapio", bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("como admin", func(t *testing.T) {
		w := criar(map[string]interface{}{
			"nome":          "X-Burger",
			"preco":         18.90,
			"categoria_id":  categoria.ID,
			"tempo_preparo": 15,
		}, adminToken)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		item := response["item"].(map[string]interface{})
		assert.Equal(t, "X-Burger", item["nome"])
		assert.InDelta(t, 18.90, item["preco"].(float64), 0.001)
		assert.Equal(t, true, item["disponivel"])
		assert.Equal(t, float64(15), item["tempo_preparo"])
	})

	t.Run("sem token", func(t *testing.T) {
		w := criar(map[string]interface{}{"nome": "X-Burger", "preco": 18.90}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("cliente não pode criar", func(t *testing.T) {
		w := criar(map[string]interface{}{"nome": "X-Burger", "preco": 18.90}, clienteToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("preço ausente", func(t *testing.T) {
		w := criar(map[string]interface{}{"nome": "X-Burger"}, adminToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("preço negativo", func(t *testing.T) {
		w := criar(map[string]interface{}{"nome": "X-Burger", "preco": -1.0}, adminToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("categoria inexistente", func(t *testing.T) {
		w := criar(map[string]interface{}{"nome": "X-Burger", "preco": 18.90, "categoria_id": 9999}, adminToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAtualizarItem(t *testing.T) {
	db := setupTestDB(t)
	router := setupCardapioRouter(db)

	_, adminToken := createTestUser(t, db, "admin@cardapio.com", model.Admin, true)
	item := createTestItem(t, db, "X-Burger", 18.90, nil, true)

	payload, _ := json.Marshal(map[string]interface{}{
		"nome":       "X-Burger Duplo",
		"preco":      24.90,
		"disponivel": false,
	})
	req, _ := http.NewRequest(http.MethodPut, fmt.Sprintf("/api/cardapio/%d", item.ID), bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var atualizado model.Cardapio
	assert.NoError(t, db.First(&atualizado, item.ID).Error)
	assert.Equal(t, "X-Burger Duplo", atualizado.Nome)
	assert.InDelta(t, 24.90, atualizado.Preco, 0.001)
	assert.False(t, atualizado.Disponivel)
}

func TestDeletarItem(t *testing.T) {
	db := setupTestDB(t)
	router := setupCardapioRouter(db)

	_, adminToken := createTestUser(t, db, "admin@cardapio.com", model.Admin, true)
	item := createTestItem(t, db, "X-Burger", 18.90, nil, true)

	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("/api/cardapio/%d", item.ID), nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&model.Cardapio{}).Where("id = ?", item.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCategoriasCRUD(t *testing.T) {
	db := setupTestDB(t)
	router := setupCardapioRouter(db)

	_, adminToken := createTestUser(t, db, "admin@cardapio.com", model.Admin, true)

	var categoriaID float64
	t.Run("criar", func(t *testing.T) {
		payload, _ := json.Marshal(map[string]interface{}{"nome": "Lanches", "descricao": "Sanduíches"})
		req, _ := http.NewRequest(http.MethodPost, "/api/cardapio/categorias", bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+adminToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		categoria := response["categoria"].(map[string]interface{})
		assert.Equal(t, "Lanches", categoria["nome"])
		assert.Equal(t, true, categoria["ativo"])
		categoriaID = categoria["id"].(float64)
	})

	t.Run("nome curto é rejeitado", func(t *testing.T) {
		payload, _ := json.Marshal(map[string]interface{}{"nome": "X"})
		req, _ := http.NewRequest(http.MethodPost, "/api/cardapio/categorias", bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+adminToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("atualizar", func(t *testing.T) {
		payload, _ := json.Marshal(map[string]interface{}{"nome": "Hambúrgueres", "ativo": false})
		req, _ := http.NewRequest(http.MethodPut, fmt.Sprintf("/api/cardapio/categorias/%d", int(categoriaID)), bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+adminToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var categoria model.Categoria
		assert.NoError(t, db.First(&categoria, int(categoriaID)).Error)
		assert.Equal(t, "Hambúrgueres", categoria.Nome)
		assert.False(t, categoria.Ativo)
	})

	t.Run("deletar", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("/api/cardapio/categorias/%d", int(categoriaID)), nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var count int64
		db.Model(&model.Categoria{}).Where("id = ?", int(categoriaID)).Count(&count)
		assert.Equal(t, int64(0), count)
	})
}

func TestImportarItens(t *testing.T) {
	db := setupTestDB(t)
	router := setupCardapioRouter(db)

	_, adminToken := createTestUser(t, db, "admin@cardapio.com", model.Admin, true)
	categoria := createTestCategoria(t, db, "Lanches")

	xl := excelize.NewFile()
	sheet := xl.GetSheetName(0)
	rows := [][]interface{}{
		{"nome", "preco", "categoria_id", "descricao", "tempo_preparo"},
		{"X-Burger", 18.90, fmt.Sprintf("%d", categoria.ID), "Pão, carne e queijo", 15},
		{"Suco de Laranja", "7,50", "", "Natural", ""},
		{"X", "abc", "", "", ""}, // malformed row, must be skipped
	}
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			assert.NoError(t, err)
			assert.NoError(t, xl.SetCellValue(sheet, cell, value))
		}
	}

	var fileBuf bytes.Buffer
	assert.NoError(t, xl.Write(&fileBuf))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("arquivo", "cardapio.xlsx")
	assert.NoError(t, err)
	_, err = part.Write(fileBuf.Bytes())
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req, _ := http.NewRequest(http.MethodPost, "/api/cardapio/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(2), response["importados"])
	assert.Equal(t, float64(1), response["ignorados"])

	var itens []model.Cardapio
	assert.NoError(t, db.Order("nome ASC").Find(&itens).Error)
	assert.Len(t, itens, 2)
	assert.Equal(t, "Suco de Laranja", itens[0].Nome)
	assert.InDelta(t, 7.50, itens[0].Preco, 0.001)
	assert.Equal(t, "X-Burger", itens[1].Nome)
	assert.NotNil(t, itens[1].CategoriaID)
	assert.Equal(t, categoria.ID, *itens[1].CategoriaID)
	assert.Equal(t, 15, itens[1].TempoPreparo)
}

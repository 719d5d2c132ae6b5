package controller

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"cardapio/model"
)

type DashboardController struct {
	DB *gorm.DB
}

type statusCount struct {
	Status     string `json:"status"`
	Quantidade int    `json:"quantidade"`
}

// Stats returns today's order count and revenue, pending orders, available
// menu items and per-status order counts. All values are derived on read.
func (dc *DashboardController) Stats(c *gin.Context) {
	agora := time.Now()
	inicioHoje := time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, agora.Location())
	fimHoje := inicioHoje.AddDate(0, 0, 1)

	var pedidosHoje int64
	if err := dc.DB.Model(&model.Pedido{}).
		Where("created_at >= ? AND created_at < ?", inicioHoje, fimHoje).
		Count(&pedidosHoje).Error; err != nil {
		internalError(c, err)
		return
	}

	var faturamentoHoje float64
	if err := dc.DB.Model(&model.Pedido{}).
		Select("COALESCE(SUM(total), 0)").
		Where("created_at >= ? AND created_at < ?", inicioHoje, fimHoje).
		Where("status <> ?", model.StatusCancelado).
		Scan(&faturamentoHoje).Error; err != nil {
		internalError(c, err)
		return
	}

	var pedidosPendentes int64
	if err := dc.DB.Model(&model.Pedido{}).
		Where("status IN ?", []model.StatusPedido{model.StatusRecebido, model.StatusPreparando}).
		Count(&pedidosPendentes).Error; err != nil {
		internalError(c, err)
		return
	}

	var totalItensCardapio int64
	if err := dc.DB.Model(&model.Cardapio{}).
		Where("disponivel = ?", true).
		Count(&totalItensCardapio).Error; err != nil {
		internalError(c, err)
		return
	}

	var porStatus []statusCount
	if err := dc.DB.Model(&model.Pedido{}).
		Select("status, COUNT(id) AS quantidade").
		Group("status").
		Scan(&porStatus).Error; err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pedidos_hoje":         pedidosHoje,
		"faturamento_hoje":     fmt.Sprintf("%.2f", faturamentoHoje),
		"pedidos_pendentes":    pedidosPendentes,
		"total_itens_cardapio": totalItensCardapio,
		"pedidos_por_status":   porStatus,
	})
}

type vendaDia struct {
	Data        string  `json:"data"`
	Faturamento float64 `json:"-"`
	Pedidos     int     `json:"pedidos"`
}

type produtoVendido struct {
	CardapioID   uint    `json:"-"`
	Produto      string  `json:"produto"`
	TotalVendido int     `json:"total_vendido"`
	Faturamento  float64 `json:"-"`
}

type relatorioVendas struct {
	VendasPorDia         []vendaDia
	ProdutosMaisVendidos []produtoVendido
}

// Vendas returns the sales report: revenue and order count per day plus the
// ten best-selling items, over an optional date range.
func (dc *DashboardController) Vendas(c *gin.Context) {
	relatorio, errResp := dc.montarRelatorio(c)
	if errResp {
		return
	}

	vendas := make([]gin.H, 0, len(relatorio.VendasPorDia))
	for _, v := range relatorio.VendasPorDia {
		vendas = append(vendas, gin.H{
			"data":        v.Data,
			"faturamento": fmt.Sprintf("%.2f", v.Faturamento),
			"pedidos":     v.Pedidos,
		})
	}

	produtos := make([]gin.H, 0, len(relatorio.ProdutosMaisVendidos))
	for _, p := range relatorio.ProdutosMaisVendidos {
		produtos = append(produtos, gin.H{
			"produto":       p.Produto,
			"total_vendido": p.TotalVendido,
			"faturamento":   fmt.Sprintf("%.2f", p.Faturamento),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"vendas_por_dia":         vendas,
		"produtos_mais_vendidos": produtos,
	})
}

// VendasExport writes the same sales report as a spreadsheet.
func (dc *DashboardController) VendasExport(c *gin.Context) {
	relatorio, errResp := dc.montarRelatorio(c)
	if errResp {
		return
	}

	xl := excelize.NewFile()
	defer xl.Close()

	sheet := xl.GetSheetName(0)
	xl.SetSheetName(sheet, "Vendas por dia")
	xl.SetCellValue("Vendas por dia", "A1", "Data")
	xl.SetCellValue("Vendas por dia", "B1", "Faturamento")
	xl.SetCellValue("Vendas por dia", "C1", "Pedidos")
	for i, v := range relatorio.VendasPorDia {
		row := i + 2
		xl.SetCellValue("Vendas por dia", fmt.Sprintf("A%d", row), v.Data)
		xl.SetCellValue("Vendas por dia", fmt.Sprintf("B%d", row), v.Faturamento)
		xl.SetCellValue("Vendas por dia", fmt.Sprintf("C%d", row), v.Pedidos)
	}

	if _, err := xl.NewSheet("Produtos mais vendidos"); err != nil {
		internalError(c, err)
		return
	}
	xl.SetCellValue("Produtos mais vendidos", "A1", "Produto")
	xl.SetCellValue("Produtos mais vendidos", "B1", "Total vendido")
	xl.SetCellValue("Produtos mais vendidos", "C1", "Faturamento")
	for i, p := range relatorio.ProdutosMaisVendidos {
		row := i + 2
		xl.SetCellValue("Produtos mais vendidos", fmt.Sprintf("A%d", row), p.Produto)
		xl.SetCellValue("Produtos mais vendidos", fmt.Sprintf("B%d", row), p.TotalVendido)
		xl.SetCellValue("Produtos mais vendidos", fmt.Sprintf("C%d", row), p.Faturamento)
	}

	c.Header("Content-Disposition", `attachment; filename="relatorio-vendas.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := xl.Write(c.Writer); err != nil {
		internalError(c, err)
	}
}

// montarRelatorio computes the sales report. The second return value is true
// when an error response has already been written.
func (dc *DashboardController) montarRelatorio(c *gin.Context) (*relatorioVendas, bool) {
	query := dc.DB.Model(&model.Pedido{}).Where("status <> ?", model.StatusCancelado)
	itensQuery := dc.DB.Model(&model.ItemPedido{}).
		Joins("JOIN pedidos ON pedidos.id = itens_pedido.pedido_id").
		Where("pedidos.status <> ?", model.StatusCancelado).
		Where("pedidos.deleted_at IS NULL")

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
			return nil, true
		}
		query = query.Where("created_at >= ? AND created_at < ?", inicio, fim.AddDate(0, 0, 1))
		itensQuery = itensQuery.Where("pedidos.created_at >= ? AND pedidos.created_at < ?", inicio, fim.AddDate(0, 0, 1))
	}

	// Day buckets are built in Go so the report works the same against
	// postgres and the sqlite test database.
	var pedidos []model.Pedido
	if err := query.Select("created_at, total").Find(&pedidos).Error; err != nil {
		internalError(c, err)
		return nil, true
	}

	porDia := make(map[string]*vendaDia)
	for _, p := range pedidos {
		dia := p.CreatedAt.Format("2006-01-02")
		bucket, ok := porDia[dia]
		if !ok {
			bucket = &vendaDia{Data: dia}
			porDia[dia] = bucket
		}
		bucket.Faturamento += p.Total
		bucket.Pedidos++
	}

	vendas := make([]vendaDia, 0, len(porDia))
	for _, v := range porDia {
		vendas = append(vendas, *v)
	}
	sort.Slice(vendas, func(i, j int) bool { return vendas[i].Data > vendas[j].Data })

	var maisVendidos []produtoVendido
	if err := itensQuery.
		Select("itens_pedido.cardapio_id, SUM(itens_pedido.quantidade) AS total_vendido, SUM(itens_pedido.quantidade * itens_pedido.preco_unitario) AS faturamento").
		Group("itens_pedido.cardapio_id").
		Order("total_vendido DESC").
		Limit(10).
		Scan(&maisVendidos).Error; err != nil {
		internalError(c, err)
		return nil, true
	}

	for i := range maisVendidos {
		var produto model.Cardapio
		if err := dc.DB.Select("nome").First(&produto, maisVendidos[i].CardapioID).Error; err == nil {
			maisVendidos[i].Produto = produto.Nome
		}
	}

	return &relatorioVendas{VendasPorDia: vendas, ProdutosMaisVendidos: maisVendidos}, false
}

package route

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cardapio/config"
	"cardapio/controller"
	"cardapio/utils"
)

// Register wires every API route. Controllers receive the database handle
// explicitly; nothing is resolved from package-level state.
func Register(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	authCtrl := &controller.AuthController{DB: db, Secret: cfg.JWTSecret, TokenTTL: cfg.TokenTTL}
	cardapioCtrl := &controller.CardapioController{DB: db}
	pedidoCtrl := &controller.PedidoController{DB: db}
	dashboardCtrl := &controller.DashboardController{DB: db}

	auth := utils.AuthMiddleware(db, cfg.JWTSecret)
	admin := utils.AdminOnly()

	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"service":   "cardapio-backend",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authCtrl.Login)
		authGroup.POST("/register", authCtrl.Register)
		authGroup.GET("/me", auth, authCtrl.Me)
	}

	cardapioGroup := api.Group("/cardapio")
	{
		cardapioGroup.GET("", cardapioCtrl.ListarItens)
		cardapioGroup.GET("/categorias", cardapioCtrl.ListarCategorias)
		cardapioGroup.GET("/:id", cardapioCtrl.ObterItem)

		cardapioGroup.POST("", auth, admin, cardapioCtrl.CriarItem)
		cardapioGroup.POST("/import", auth, admin, cardapioCtrl.ImportarItens)
		cardapioGroup.PUT("/:id", auth, admin, cardapioCtrl.AtualizarItem)
		cardapioGroup.DELETE("/:id", auth, admin, cardapioCtrl.DeletarItem)

		cardapioGroup.POST("/categorias", auth, admin, cardapioCtrl.CriarCategoria)
		cardapioGroup.PUT("/categorias/:id", auth, admin, cardapioCtrl.AtualizarCategoria)
		cardapioGroup.DELETE("/categorias/:id", auth, admin, cardapioCtrl.DeletarCategoria)
	}

	pedidosGroup := api.Group("/pedidos")
	{
		pedidosGroup.POST("", pedidoCtrl.CriarPedido)
		pedidosGroup.GET("/:id", pedidoCtrl.ObterPedido)

		pedidosGroup.GET("", auth, admin, pedidoCtrl.ListarPedidos)
		pedidosGroup.PUT("/:id/status", auth, admin, pedidoCtrl.AtualizarStatus)
	}

	dashboardGroup := api.Group("/dashboard", auth, admin)
	{
		dashboardGroup.GET("/stats", dashboardCtrl.Stats)
		dashboardGroup.GET("/vendas", dashboardCtrl.Vendas)
		dashboardGroup.GET("/vendas/export", dashboardCtrl.VendasExport)
	}
}

package controller

import (
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cardapio/database"
	"cardapio/model"
	"cardapio/utils"
)

const testSecret = "test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, tipo model.UserRole, ativo bool) (model.Usuario, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("senha123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	usuario := model.Usuario{
		Nome:  "Usuário de Teste",
		Email: email,
		Senha: string(hash),
		Tipo:  tipo,
		Ativo: ativo,
	}
	if err := db.Create(&usuario).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	token, err := utils.GenerateToken(testSecret, usuario.ID, time.Hour)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	return usuario, token
}

func createTestCategoria(t *testing.T, db *gorm.DB, nome string) model.Categoria {
	t.Helper()

	categoria := model.Categoria{Nome: nome, Ativo: true}
	if err := db.Create(&categoria).Error; err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}
	return categoria
}

func createTestItem(t *testing.T, db *gorm.DB, nome string, preco float64, categoriaID *uint, disponivel bool) model.Cardapio {
	t.Helper()

	item := model.Cardapio{
		Nome:         nome,
		Preco:        preco,
		CategoriaID:  categoriaID,
		Disponivel:   disponivel,
		TempoPreparo: 30,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("Failed to create test item: %v", err)
	}
	return item
}

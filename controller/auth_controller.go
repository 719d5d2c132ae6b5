package controller

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cardapio/model"
	"cardapio/utils"
)

const bcryptCost = 12

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthController struct {
	DB       *gorm.DB
	Secret   string
	TokenTTL time.Duration
}

type usuarioResponse struct {
	ID       uint           `json:"id"`
	Nome     string         `json:"nome"`
	Email    string         `json:"email"`
	Tipo     model.UserRole `json:"tipo"`
	Telefone string         `json:"telefone,omitempty"`
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password answer with the same message so user enumeration is not possible.
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
		Senha string `json:"senha"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dados inválidos",
			"details": []gin.H{{"msg": "Email e senha são obrigatórios"}},
		})
		return
	}

	if !emailRegex.MatchString(req.Email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dados inválidos",
			"details": []gin.H{{"msg": "Email inválido"}},
		})
		return
	}
	if len(req.Senha) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dados inválidos",
			"details": []gin.H{{"msg": "Senha deve ter pelo menos 6 caracteres"}},
		})
		return
	}

	var usuario model.Usuario
	if err := ac.DB.Where("email = ? AND ativo = ?", req.Email, true).First(&usuario).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas"})
			return
		}
		internalError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.Senha), []byte(req.Senha)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciais inválidas"})
		return
	}

	token, err := utils.GenerateToken(ac.Secret, usuario.ID, ac.TokenTTL)
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login realizado com sucesso",
		"token":   token,
		"usuario": usuarioResponse{
			ID:    usuario.ID,
			Nome:  usuario.Nome,
			Email: usuario.Email,
			Tipo:  usuario.Tipo,
		},
	})
}

// Register creates an admin user and logs it in immediately.
func (ac *AuthController) Register(c *gin.Context) {
	var req struct {
		Nome     string `json:"nome"`
		Email    string `json:"email"`
		Senha    string `json:"senha"`
		Telefone string `json:"telefone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Dados inválidos",
			"details": []gin.H{{"msg": "Nome, email e senha são obrigatórios"}},
		})
		return
	}

	var details []gin.H
	if len(strings.TrimSpace(req.Nome)) < 2 {
		details = append(details, gin.H{"msg": "Nome deve ter entre 2 e 255 caracteres"})
	}
	if !emailRegex.MatchString(req.Email) {
		details = append(details, gin.H{"msg": "Email inválido"})
	}
	if len(req.Senha) < 6 {
		details = append(details, gin.H{"msg": "Senha deve ter pelo menos 6 caracteres"})
	}
	if len(details) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dados inválidos", "details": details})
		return
	}

	var count int64
	if err := ac.DB.Model(&model.Usuario{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		internalError(c, err)
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Email já cadastrado"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcryptCost)
	if err != nil {
		internalError(c, err)
		return
	}

	usuario := model.Usuario{
		Nome:     strings.TrimSpace(req.Nome),
		Email:    req.Email,
		Senha:    string(hash),
		Tipo:     model.Admin,
		Telefone: req.Telefone,
		Ativo:    true,
	}
	if err := ac.DB.Create(&usuario).Error; err != nil {
		// The unique index can still fire between the check and the insert.
		if isDuplicateKey(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email já cadastrado"})
			return
		}
		internalError(c, err)
		return
	}

	token, err := utils.GenerateToken(ac.Secret, usuario.ID, ac.TokenTTL)
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Usuário criado com sucesso",
		"token":   token,
		"usuario": usuarioResponse{
			ID:    usuario.ID,
			Nome:  usuario.Nome,
			Email: usuario.Email,
			Tipo:  usuario.Tipo,
		},
	})
}

// Me returns the authenticated user's profile.
func (ac *AuthController) Me(c *gin.Context) {
	usuario, ok := utils.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token de acesso requerido"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"usuario": usuarioResponse{
			ID:       usuario.ID,
			Nome:     usuario.Nome,
			Email:    usuario.Email,
			Tipo:     usuario.Tipo,
			Telefone: usuario.Telefone,
		},
	})
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

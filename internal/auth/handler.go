package auth

import (
	"strings"
	"time"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/apperr"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/config"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/database"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type RegisterAdminRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"nombre" validate:"required,max=100"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"nombre"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Name: u.Name}
}

func normalizeUsername(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}

// -------------------------------------------------
// POST /api/auth/registrar-admin
// -------------------------------------------------
func RegisterAdminHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterAdminRequest
		if err := validation.Body(c, &body); err != nil {
			return err
		}
		body.Username = normalizeUsername(body.Username)
		if err := validation.Struct(body); err != nil {
			return err
		}

		// solo sirve para crear el primer administrador
		var count int64
		if err := database.DB.Model(&models.User{}).Count(&count).Error; err != nil {
			return apperr.FromDB(err, "")
		}
		if count > 0 {
			return apperr.Conflict("Ya existe un administrador")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return apperr.Internal("No se pudo procesar la contraseña", err)
		}

		user := models.User{
			Username:     body.Username,
			Name:         body.Name,
			PasswordHash: string(hash),
		}
		if err := database.DB.Create(&user).Error; err != nil {
			return apperr.FromDB(err, "")
		}

		zap.L().Info("administrador inicial creado", zap.String("username", user.Username))
		return c.Status(fiber.StatusCreated).JSON(toUserResponse(&user))
	}
}

// -------------------------------------------------
// POST /api/auth/login
// -------------------------------------------------
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := validation.Body(c, &body); err != nil {
			return err
		}
		body.Username = normalizeUsername(body.Username)
		if err := validation.Struct(body); err != nil {
			return err
		}

		var user models.User
		if err := database.DB.Where("username = ?", body.Username).First(&user).Error; err != nil {
			return apperr.Unauthorized("Usuario o contraseña incorrectos")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return apperr.Unauthorized("Usuario o contraseña incorrectos")
		}

		ttl := time.Duration(cfg.JWTExpirationHours) * time.Hour
		token, err := GenerateToken(cfg.JWTSecret, ttl, &user)
		if err != nil {
			return apperr.Internal("No se pudo generar el token", err)
		}

		return c.JSON(LoginResponse{Token: token, User: toUserResponse(&user)})
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := Actor(c)

		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			return apperr.FromDB(err, "Usuario no encontrado")
		}
		return c.JSON(toUserResponse(&user))
	}
}

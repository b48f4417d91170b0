package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/activos-api/internal/application/dto"
	"github.com/jhoicas/activos-api/internal/domain/authz"
	"github.com/jhoicas/activos-api/pkg/jwt"
)

// Local key para el principal en Fiber.
const LocalPrincipal = "principal"

// AuthMiddleware valida el Bearer Token JWT y reconstruye el principal en
// c.Locals. El token trae rol y permisos, así ningún handler consulta la DB
// para autorizar.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalPrincipal, authz.Principal{
			UserID:      claims.UserID,
			TenantID:    claims.CompanyID,
			Role:        authz.Role(claims.Role),
			Permissions: claims.Permissions,
			Active:      true, // un token vigente implica principal activo al emitirlo
		})
		return c.Next()
	}
}

// GetPrincipal devuelve el principal del contexto (después del middleware).
func GetPrincipal(c *fiber.Ctx) authz.Principal {
	v := c.Locals(LocalPrincipal)
	if v == nil {
		return authz.Principal{}
	}
	p, _ := v.(authz.Principal)
	return p
}

package middleware

import (
	"strings"

	"website-stats-service/internal/platform/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// CORS answers preflight requests and sets the cross-origin headers.
func CORS(cfg config.CORSConfig) fiber.Handler {
	origins := strings.Join(cfg.AllowOrigins, ",")
	if origins == "" {
		origins = "*"
	}

	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: strings.Join([]string{
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodOptions,
		}, ","),
		AllowHeaders: "Content-Type, Authorization, X-Share-Token",
		MaxAge:       86400,
	})
}

package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/rs/cors"
)

// CORS wraps rs/cors so it runs inside the fiber chain.
func CORS(allowedOrigins []string) fiber.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	credentials := true
	for _, o := range allowedOrigins {
		if o == "*" {
			// browsers reject a wildcard origin on credentialed requests
			credentials = false
		}
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete, fiber.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", HeaderRequestID},
		ExposedHeaders:   []string{HeaderRequestID},
		AllowCredentials: credentials,
		MaxAge:           600,
	})
	return adaptor.HTTPMiddleware(c.Handler)
}

package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LoggingMiddleware пишет одну строку на запрос: ip, метод, путь, статус, время
func LoggingMiddleware(logger *log.Logger, colors bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		method := c.Method()

		var statusColor, methodColor, resetColor string
		if colors {
			statusColor, methodColor, resetColor = getStatusColor(status), getMethodColor(method), "\033[0m"
		}

		if err != nil {
			logger.Printf("%s %s%s%s %s %s%d%s %s error=%v",
				c.IP(), methodColor, method, resetColor, c.Path(), statusColor, status, resetColor, time.Since(start), err)
			return err
		}
		logger.Printf("%s %s%s%s %s %s%d%s %s",
			c.IP(), methodColor, method, resetColor, c.Path(), statusColor, status, resetColor, time.Since(start))
		return nil
	}
}

func getStatusColor(status int) string {
	switch {
	case status >= 500:
		return "\033[31m" // Красный
	case status >= 400:
		return "\033[33m" // Желтый
	case status >= 300:
		return "\033[36m"
	default:
		return "\033[32m" // Зеленый
	}
}

func getMethodColor(method string) string {
	switch method {
	case fiber.MethodGet:
		return "\033[34m"
	case fiber.MethodPost:
		return "\033[33m"
	case fiber.MethodPatch:
		return "\033[32m"
	case fiber.MethodDelete:
		return "\033[31m"
	default:
		return "\033[37m"
	}
}

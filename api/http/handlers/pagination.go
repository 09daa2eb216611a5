package handlers

import "github.com/gofiber/fiber/v2"

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pageParams reads limit/offset. Out-of-range values fall back to the defaults.
func pageParams(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", defaultPageSize)
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}
	if offset = c.QueryInt("offset", 0); offset < 0 {
		offset = 0
	}
	return limit, offset
}

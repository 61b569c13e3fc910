package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParseUintParam reads a numeric path parameter. The second return is false
// when the value is missing or malformed, so handlers can answer 400 instead
// of treating garbage as ID zero.
func ParseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(value), true
}

// ParseIntQuery reads an integer query parameter with a default.
func ParseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

package utils

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ParsePagination reads page/pageSize query params with sane bounds.
func ParsePagination(c *gin.Context) (page, pageSize, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset = (page - 1) * pageSize
	return page, pageSize, offset
}

// ParseUintParam parses a numeric path parameter.
func ParseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(value), true
}

// KeyBelongsToUser checks the owner ID embedded in a storage key.
// Keys look like uploads/{mediaType}/{userID}/... or users/{userID}/...
func KeyBelongsToUser(key string, userID uint) bool {
	parts := strings.Split(key, "/")
	owner := strconv.FormatUint(uint64(userID), 10)
	switch {
	case len(parts) >= 3 && parts[0] == "uploads":
		return parts[2] == owner
	case len(parts) >= 2 && parts[0] == "users":
		return parts[1] == owner
	}
	return false
}

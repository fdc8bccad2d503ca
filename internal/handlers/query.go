package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mzhuravlev/shopcourse/internal/platform/apierr"
)

const defaultPageLimit = 10

// Query parsing mirrors the validation constraints the course API declares:
// offset >= 0, limit > 0, price and quantity bounds >= 0. Violations are
// answered with 422 like any other malformed input.

func queryOffset(c *gin.Context) (int, error) {
	v := c.Query("offset")
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, apierr.Validation("offset must be a non-negative integer")
	}
	return n, nil
}

func queryLimit(c *gin.Context) (int, error) {
	v := c.Query("limit")
	if v == "" {
		return defaultPageLimit, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, apierr.Validation("limit must be a positive integer")
	}
	return n, nil
}

func queryFloat(c *gin.Context, name string) (*float64, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return nil, apierr.Validation(name + " must be a non-negative number")
	}
	return &f, nil
}

func queryQuantity(c *gin.Context, name string) (*int64, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return nil, apierr.Validation(name + " must be a non-negative integer")
	}
	return &n, nil
}

func queryBool(c *gin.Context, name string) (bool, error) {
	switch c.Query(name) {
	case "", "false", "0":
		return false, nil
	case "true", "1":
		return true, nil
	default:
		return false, apierr.Validation(name + " must be a boolean")
	}
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, apierr.Validation("Invalid path parameter.")
	}
	return id, nil
}

package handlers

import (
	"encoding/json"
	"math/big"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CalcHandler serves the arithmetic micro-service. Its responses are flat
// {"result": ...} / {"error": "..."} pairs, not the shop services' error
// envelope.
type CalcHandler struct{}

func NewCalcHandler() *CalcHandler {
	return &CalcHandler{}
}

func (h *CalcHandler) Factorial(c *gin.Context) {
	nStr, ok := c.GetQuery("n")
	n, err := strconv.ParseInt(nStr, 10, 64)
	if !ok || err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Parameter 'n' is required and must be a valid integer."})
		return
	}
	if n < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Value must be non-negative."})
		return
	}
	// MulRange(1, 0) is the empty product, so 0! comes out as 1.
	c.JSON(http.StatusOK, gin.H{"result": new(big.Int).MulRange(1, n)})
}

func (h *CalcHandler) Fibonacci(c *gin.Context) {
	n, err := strconv.ParseInt(c.Param("n"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid path parameter."})
		return
	}
	if n < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Value must be non-negative."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": fibonacci(n)})
}

func fibonacci(n int64) *big.Int {
	a, b := big.NewInt(0), big.NewInt(1)
	for i := int64(0); i < n; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}

func (h *CalcHandler) Mean(c *gin.Context) {
	var values []float64
	if err := json.NewDecoder(c.Request.Body).Decode(&values); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request body."})
		return
	}
	if len(values) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "List cannot be empty."})
		return
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	c.JSON(http.StatusOK, gin.H{"result": sum / float64(len(values))})
}

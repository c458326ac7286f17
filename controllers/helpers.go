package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tablemate/waiterd/services"
	"github.com/tablemate/waiterd/utils"
)

func parseOptionalBool(c *gin.Context, name string) (*bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &value, nil
}

func parseOptionalFloat(c *gin.Context, name string) (*float64, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", name)
	}
	return &value, nil
}

// respondServiceError maps service failures onto HTTP statuses: absent
// rows are 404, everything else 500.
func respondServiceError(c *gin.Context, err error) {
	var notFound services.NotFoundError
	if errors.As(err, &notFound) {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondError(c, http.StatusInternalServerError, err)
}

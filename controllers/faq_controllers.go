package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tablemate/waiterd/services"
	"github.com/tablemate/waiterd/utils"
)

type FAQController struct {
	FAQ *services.FAQService
}

func NewFAQController(faq *services.FAQService) *FAQController {
	return &FAQController{FAQ: faq}
}

// GetKeys lists the FAQ topics customers can ask about.
func (fc *FAQController) GetKeys(c *gin.Context) {
	keys, err := fc.FAQ.Keys()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if keys == nil {
		keys = []string{}
	}

	utils.RespondJSON(c, http.StatusOK, "List of FAQ keys", gin.H{"keys": keys})
}

// GetValue returns the answer stored under one FAQ key.
func (fc *FAQController) GetValue(c *gin.Context) {
	key := c.Param("key")

	value, err := fc.FAQ.Value(key)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "FAQ entry", gin.H{"key": key, "value": value})
}

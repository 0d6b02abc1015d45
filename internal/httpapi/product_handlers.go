package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/veldbloem/storefront/internal/i18n"
	"github.com/veldbloem/storefront/internal/models"
)

func (s *Server) listProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))

	query := models.ProductQuery{
		Page:       page,
		PageSize:   pageSize,
		Category:   c.Query("category"),
		Type:       c.Query("type"),
		ActiveOnly: c.DefaultQuery("active", "true") == "true",
	}

	products, err := s.products.ListProducts(c.Request.Context(), query)
	if err != nil {
		log.WithError(err).Warn("Product listing unavailable")
		c.JSON(http.StatusBadGateway, gin.H{
			"message": i18n.T(localeFrom(c), i18n.MsgOrderFailed),
		})
		return
	}
	c.JSON(http.StatusOK, products)
}

package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/veldbloem/storefront/internal/cart"
	"github.com/veldbloem/storefront/internal/i18n"
	"github.com/veldbloem/storefront/internal/models"
)

func (s *Server) getCart(c *gin.Context) {
	summary, err := s.cart.Summary(c.Request.Context(), cartKeyFrom(c))
	if err != nil {
		log.WithError(err).Error("Failed to load cart")
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": i18n.T(localeFrom(c), i18n.MsgOrderFailed),
		})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) addItem(c *gin.Context) {
	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request: " + err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	key := cartKeyFrom(c)
	locale := localeFrom(c)

	notice, err := s.cart.Add(ctx, key, req)
	if err != nil {
		log.WithError(err).Error("Failed to add cart item")
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": i18n.T(locale, i18n.MsgOrderFailed),
		})
		return
	}

	if notice.Kind == cart.NoticeStockLimit {
		c.JSON(http.StatusConflict, gin.H{
			"message": i18n.Tf(locale, i18n.MsgStockLimit, notice.ProductName),
		})
		return
	}

	summary, err := s.cart.Summary(ctx, key)
	if err != nil {
		log.WithError(err).Error("Failed to load cart after add")
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": i18n.T(locale, i18n.MsgOrderFailed),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": i18n.Tf(locale, i18n.MsgAddedToCart, notice.ProductName),
		"cart":    summary,
	})
}

func (s *Server) setQuantity(c *gin.Context) {
	var req models.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request: " + err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	key := cartKeyFrom(c)

	if err := s.cart.SetQuantity(ctx, key, c.Param("id"), req.Quantity); err != nil {
		log.WithError(err).Error("Failed to set cart quantity")
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": i18n.T(localeFrom(c), i18n.MsgOrderFailed),
		})
		return
	}
	s.respondSummary(c, ctx, key)
}

func (s *Server) removeItem(c *gin.Context) {
	ctx := c.Request.Context()
	key := cartKeyFrom(c)

	if err := s.cart.Remove(ctx, key, c.Param("id")); err != nil {
		log.WithError(err).Error("Failed to remove cart item")
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": i18n.T(localeFrom(c), i18n.MsgOrderFailed),
		})
		return
	}
	s.respondSummary(c, ctx, key)
}

func (s *Server) clearCart(c *gin.Context) {
	ctx := c.Request.Context()
	key := cartKeyFrom(c)

	if err := s.cart.Clear(ctx, key); err != nil {
		log.WithError(err).Error("Failed to clear cart")
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": i18n.T(localeFrom(c), i18n.MsgOrderFailed),
		})
		return
	}
	s.respondSummary(c, ctx, key)
}

func (s *Server) respondSummary(c *gin.Context, ctx context.Context, key string) {
	summary, err := s.cart.Summary(ctx, key)
	if err != nil {
		log.WithError(err).Error("Failed to load cart")
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": i18n.T(localeFrom(c), i18n.MsgOrderFailed),
		})
		return
	}
	c.JSON(http.StatusOK, summary)
}

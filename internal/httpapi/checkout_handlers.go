package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/veldbloem/storefront/internal/checkout"
	"github.com/veldbloem/storefront/internal/i18n"
	"github.com/veldbloem/storefront/internal/models"
)

func (s *Server) postCheckout(c *gin.Context) {
	var form models.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid request: " + err.Error(),
		})
		return
	}

	result := s.checkout.Submit(c.Request.Context(), cartKeyFrom(c), form, localeFrom(c))

	switch result.Status {
	case checkout.StatusPlaced:
		c.JSON(http.StatusCreated, gin.H{"order_number": result.OrderNumber})
	case checkout.StatusFieldErrors:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": result.FieldErrors})
	case checkout.StatusEmptyCart:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": result.Message})
	case checkout.StatusInFlight:
		c.JSON(http.StatusConflict, gin.H{"message": result.Message})
	case checkout.StatusRateLimited:
		c.JSON(http.StatusTooManyRequests, gin.H{"message": result.Message})
	case checkout.StatusRejected:
		c.JSON(http.StatusBadRequest, gin.H{"message": result.Message})
	case checkout.StatusTransportError:
		c.JSON(http.StatusBadGateway, gin.H{"message": result.Message})
	}
}

func (s *Server) getConfirmation(c *gin.Context) {
	confirmation, err := s.checkout.Confirmation(c.Request.Context(), c.Param("number"))
	if err != nil {
		log.WithError(err).Error("Failed to resolve confirmation")
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": i18n.T(localeFrom(c), i18n.MsgOrderFailed),
		})
		return
	}
	c.JSON(http.StatusOK, confirmation)
}

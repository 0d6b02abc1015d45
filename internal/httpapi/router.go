// Package httpapi exposes the storefront over HTTP: cart, checkout,
// product listing, and the order confirmation view.
package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/veldbloem/storefront/internal/cart"
	"github.com/veldbloem/storefront/internal/checkout"
	"github.com/veldbloem/storefront/internal/i18n"
	"github.com/veldbloem/storefront/internal/metrics"
	"github.com/veldbloem/storefront/internal/models"
)

const (
	serviceName = "storefront"

	// cartCookie carries the cart key, one cart per browser session.
	cartCookie       = "veldbloem_cart"
	cartCookieMaxAge = 30 * 24 * 60 * 60

	ctxCartKey = "cart_key"
	ctxLocale  = "locale"
)

// ProductLister is the slice of the backend client the product routes use.
type ProductLister interface {
	ListProducts(ctx context.Context, query models.ProductQuery) (models.ProductPage, error)
}

// Server wires the stores and clients into gin handlers.
type Server struct {
	cart          *cart.Store
	checkout      *checkout.Service
	products      ProductLister
	defaultLocale string
}

func NewServer(cartStore *cart.Store, checkoutSvc *checkout.Service, products ProductLister, defaultLocale string) *Server {
	return &Server{
		cart:          cartStore,
		checkout:      checkoutSvc,
		products:      products,
		defaultLocale: i18n.Normalize(defaultLocale),
	}
}

// Router builds the gin engine with all storefront routes.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(metrics.PrometheusMiddleware(serviceName))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api", s.cartSession(), s.locale())
	api.GET("/products", s.listProducts)
	api.GET("/cart", s.getCart)
	api.POST("/cart/items", s.addItem)
	api.PUT("/cart/items/:id", s.setQuantity)
	api.DELETE("/cart/items/:id", s.removeItem)
	api.DELETE("/cart", s.clearCart)
	api.POST("/checkout", s.postCheckout)
	api.GET("/orders/:number/confirmation", s.getConfirmation)

	return router
}

// cartSession resolves the cart key from the session cookie, minting a
// fresh one for first-time visitors.
func (s *Server) cartSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		key, err := c.Cookie(cartCookie)
		if err != nil || key == "" {
			key = uuid.New().String()
			c.SetCookie(cartCookie, key, cartCookieMaxAge, "/", "", false, true)
		}
		c.Set(ctxCartKey, key)
		c.Next()
	}
}

// locale picks the response language: explicit lang param first, then the
// Accept-Language header, then the shop default.
func (s *Server) locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := c.Query("lang")
		if locale == "" {
			accept := c.GetHeader("Accept-Language")
			switch {
			case strings.HasPrefix(accept, "en"):
				locale = i18n.LocaleEnglish
			case strings.HasPrefix(accept, "nl"):
				locale = i18n.LocaleDutch
			default:
				locale = s.defaultLocale
			}
		}
		c.Set(ctxLocale, i18n.Normalize(locale))
		c.Next()
	}
}

func cartKeyFrom(c *gin.Context) string {
	return c.GetString(ctxCartKey)
}

func localeFrom(c *gin.Context) string {
	return c.GetString(ctxLocale)
}

package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mentorbit/lms-api/internal/container"
	handlers "github.com/mentorbit/lms-api/internal/interface/http"
	"github.com/mentorbit/lms-api/internal/interface/middleware"
	"github.com/mentorbit/lms-api/pkg/helpers"
)

// PaymentModule wires checkout routes. All routes require a session; the
// per-user limit is tight since each call hits the payment provider.
type PaymentModule struct {
	Handler *handlers.PaymentHandler
	JWT     *helpers.JWTManager
}

func NewPaymentModule(h *handlers.PaymentHandler, jwt *helpers.JWTManager) *PaymentModule {
	return &PaymentModule{Handler: h, JWT: jwt}
}

func (m *PaymentModule) Register(rg *gin.RouterGroup) {
	pay := rg.Group("/payments")
	pay.Use(middleware.Auth(container.GetRedis(), m.JWT))
	pay.Use(middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyByUserID()))
	{
		pay.POST("/intents", m.Handler.CreateIntent)
		pay.PUT("/intents/:id", m.Handler.UpdateIntent)
	}
}

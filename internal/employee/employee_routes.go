package employee

import (
	"github.com/SchlottiP/employee-test/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterRoutes wires the employee endpoints. Reads are open, mutating
// verbs sit behind the credential check and tighter rate limits.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	employees := r.Group("/employees")
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("",
			middleware.RateLimitByIP(3, 10),
			handler.GetAll,
		)

		employees.GET("/:id",
			middleware.RateLimitByIP(3, 10),
			handler.GetById,
		)

		employees.POST("",
			middleware.AuthMiddleware(),
			middleware.RateLimitByUser(0.5, 2),
			handler.Create,
		)

		employees.PUT("/:id",
			middleware.AuthMiddleware(),
			middleware.RateLimitByUser(0.5, 2),
			handler.Update,
		)

		employees.DELETE("/:id",
			middleware.AuthMiddleware(),
			middleware.RateLimitByUser(0.5, 2),
			handler.Delete,
		)
	}
}

package api

import (
	"github.com/gin-gonic/gin"

	"github.com/qs3c/billing_go_server/config"
	"github.com/qs3c/billing_go_server/internal/api/handler"
	"github.com/qs3c/billing_go_server/internal/api/middleware"
	"github.com/qs3c/billing_go_server/internal/repository"
)

type Router struct {
	revenueHandler      *handler.RevenueHandler
	subscriptionHandler *handler.SubscriptionHandler
	couponHandler       *handler.CouponHandler
	payrollHandler      *handler.PayrollHandler
	checkoutHandler     *handler.CheckoutHandler
	userRepo            *repository.UserRepository
	cfg                 *config.Config
}

func NewRouter(
	revenueHandler *handler.RevenueHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	couponHandler *handler.CouponHandler,
	payrollHandler *handler.PayrollHandler,
	checkoutHandler *handler.CheckoutHandler,
	userRepo *repository.UserRepository,
	cfg *config.Config,
) *Router {
	return &Router{
		revenueHandler:      revenueHandler,
		subscriptionHandler: subscriptionHandler,
		couponHandler:       couponHandler,
		payrollHandler:      payrollHandler,
		checkoutHandler:     checkoutHandler,
		userRepo:            userRepo,
		cfg:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// 公开接口 - 结账前卡信息校验
		api.POST("/checkout/validate", r.checkoutHandler.Validate)

		// 管理后台
		admin := api.Group("/admin")
		admin.Use(middleware.Auth(r.cfg.JWT.Secret), middleware.AdminOnly(r.userRepo))
		{
			revenue := admin.Group("/revenue")
			{
				revenue.GET("/mrr", r.revenueHandler.MRR)
				revenue.GET("/projections", r.revenueHandler.Projections)
			}

			subscriptions := admin.Group("/subscriptions")
			{
				subscriptions.GET("/:id/projection", r.revenueHandler.SubscriptionProjection)
				subscriptions.POST("/:id/cancel", r.subscriptionHandler.Cancel)
				subscriptions.POST("/:id/coupon", r.subscriptionHandler.ApplyCoupon)
			}

			coupons := admin.Group("/coupons")
			{
				coupons.GET("", r.couponHandler.List)
				coupons.POST("", r.couponHandler.Create)
				coupons.GET("/:id/resolve", r.couponHandler.Resolve)
			}

			payroll := admin.Group("/payroll")
			{
				payroll.POST("/withholding", r.payrollHandler.Withholding)
				payroll.POST("/extra", r.payrollHandler.Extra)
			}
		}
	}

	return engine
}

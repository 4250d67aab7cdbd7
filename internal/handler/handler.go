/**
* Name: 			handler.go
* Description: 		Gin 프레임워크의 HTTP 핸들러 공통 구성
* Workflow: 		의존성 주입, 라우트 등록
 */
package handler

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"MedAI_LandingSite/internal/app"
	"MedAI_LandingSite/internal/archiver"
	"MedAI_LandingSite/internal/auth"
	"MedAI_LandingSite/internal/form"
	"MedAI_LandingSite/internal/middleware"
	"MedAI_LandingSite/internal/variants"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

type Deps struct {
	Submitter *form.Submitter
	Stores    *app.Stores
	Tokens    *auth.Manager
	Archiver  *archiver.Archiver
	Logger    *zap.Logger

	SuccessResetDelay time.Duration
	AdminEnabled      bool
	RateLimit         int
	CORSOrigins       []string
	TrustedProxies    []string

	Now func() time.Time
}

type Handler struct {
	submitter  *form.Submitter
	registry   *variants.Registry
	views      map[string]app.View
	tokens     *auth.Manager
	archiver   *archiver.Archiver
	logger     *zap.Logger
	resetDelay time.Duration
	now        func() time.Time

	adminEnabled bool
	rateLimit    int
	corsOrigins  []string
	proxies      []string
}

type SuccessResponse struct {
	Message string `json:"message" example:"All demo requests cleared"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"에러 원인 및 설명"`
}

func New(d Deps) *Handler {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	h := &Handler{
		submitter:  d.Submitter,
		registry:   d.Stores.Registry,
		views:      d.Stores.Views(),
		tokens:     d.Tokens,
		archiver:   d.Archiver,
		logger:     d.Logger,
		resetDelay: d.SuccessResetDelay,
		now:        d.Now,

		adminEnabled: d.AdminEnabled,
		rateLimit:    d.RateLimit,
		corsOrigins:  d.CORSOrigins,
		proxies:      d.TrustedProxies,
	}
	return h
}

// Router wires every route onto a fresh gin engine.
func Router(h *Handler) *gin.Engine {
	router := gin.New()
	// 신뢰하지 않는 X-Forwarded-For로 rate limit 키를 바꿀 수 없도록
	if err := router.SetTrustedProxies(h.proxies); err != nil {
		h.logger.Error("Router(): invalid trusted proxies, trusting none", zap.Strings("proxies", h.proxies), zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(gin.Recovery(), middleware.RequestLogger(h.logger))

	corsConfig := cors.DefaultConfig()
	if len(h.corsOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = h.corsOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.ExposeHeaders = []string{"Content-Disposition"}
	router.Use(cors.New(corsConfig))

	router.SetHTMLTemplate(template.Must(template.New("").Funcs(template.FuncMap{
		"displayTime": displayTime,
	}).ParseFS(templateFS, "templates/*.tmpl")))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		api.GET("/forms", h.ListForms)
		api.GET("/forms/:variant", h.GetForm)

		limited := api.Group("", middleware.RateLimit(h.rateLimit))
		limited.POST("/demo-requests", h.SubmitDemoRequest)
		limited.POST("/call-requests", h.SubmitCallRequest)
	}

	router.GET("/ws/forms", h.HandleFormSession)

	admin := router.Group("/admin", middleware.AdminGate(h.adminEnabled))
	{
		admin.POST("/login", h.Login)
		// 토큰이 없으면 로그인 폼을 보여주므로 인증 그룹 밖에 둠
		admin.GET("", h.AdminPage)

		protected := admin.Group("", middleware.AuthMiddleware(h.tokens))
		protected.GET("/api/:collection", h.ListRecords)
		protected.GET("/api/:collection/export.json", h.ExportJSON)
		protected.GET("/api/:collection/export.csv", h.ExportCSV)
		protected.DELETE("/api/:collection", h.ClearRecords)
	}

	return router
}

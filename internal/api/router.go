package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/gradepeek/svue-api/internal/api/handler"
	"github.com/gradepeek/svue-api/internal/api/middleware"
	"github.com/gradepeek/svue-api/internal/core/ports"
)

// RouterDeps carries everything NewRouter wires into routes.
type RouterDeps struct {
	Log             zerolog.Logger
	Gateway         ports.GatewayService
	Sealer          ports.TokenSealer
	Versions        ports.VersionKeyProvider
	Districts       ports.DistrictService
	Health          *handler.HealthHandler
	DefaultDistrict string
	TokenTTL        time.Duration
	// AdminSecret enables /admin routes when non-empty.
	AdminSecret string
	// AllowOrigins defaults to "*".
	AllowOrigins []string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps RouterDeps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	origins := deps.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:  origins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderAuthorization, echo.HeaderContentType, middleware.HeaderDistrict},
		ExposeHeaders: []string{handler.HeaderSetToken, echo.HeaderContentDisposition, echo.HeaderXRequestID},
	}))
	e.Use(echomiddleware.Gzip())
	e.Use(prometheusMiddleware())

	// --- Operational routes (no auth required) ---
	if deps.Health == nil {
		deps.Health = handler.NewHealthHandler("")
	}
	e.GET("/health", deps.Health.Liveness)
	e.GET("/health/ready", deps.Health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	gateway := handler.NewGatewayHandler(deps.Gateway, deps.Sealer, deps.Versions, deps.Log)
	e.GET("/akey", gateway.AccessKey)

	// --- StudentVue routes ---
	svue := e.Group("", middleware.Credentials(middleware.CredentialsConfig{
		Sealer:          deps.Sealer,
		Districts:       deps.Districts,
		DefaultDistrict: deps.DefaultDistrict,
		TokenTTL:        deps.TokenTTL,
	}))
	svue.GET("/grades", gateway.Grades)
	svue.GET("/documents", gateway.Documents)
	svue.GET("/document", gateway.Document)
	svue.GET("/student", gateway.Student)
	svue.GET("/photo", gateway.Photo)
	svue.GET("/school", gateway.School)

	// --- District directory ---
	districts := handler.NewDistrictHandler(deps.Districts)
	e.GET("/districts", districts.List)
	e.GET("/districts/:id", districts.Get)

	if deps.AdminSecret != "" {
		admin := e.Group("/admin", middleware.AdminAuth(deps.AdminSecret), middleware.RBAC(middleware.RoleAdmin))
		admin.POST("/districts", districts.Create)
		admin.DELETE("/districts/:id", districts.Delete)
	}

	return e
}

var (
	promOnce       sync.Once
	promMiddleware echo.MiddlewareFunc
)

// prometheusMiddleware registers the HTTP collectors with the default
// registry once per process.
func prometheusMiddleware() echo.MiddlewareFunc {
	promOnce.Do(func() {
		promMiddleware = echoprometheus.NewMiddleware("svue")
	})
	return promMiddleware
}

// requestLogger logs one line per request. Request headers are never logged
// so credentials stay out of the log.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURIPath:   true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("path", v.URIPath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

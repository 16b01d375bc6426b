package routes

import (
	"net/http"

	"github.com/cherryshop/cherryshop-api/app/handlers"
	"github.com/cherryshop/cherryshop-api/app/helpers"
	"github.com/cherryshop/cherryshop-api/app/middlewares"
	"github.com/cherryshop/cherryshop-api/app/models"
	"github.com/cherryshop/cherryshop-api/app/repositories"
	"github.com/cherryshop/cherryshop-api/app/services"
	"github.com/cherryshop/cherryshop-api/app/utils/renderer"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	DB      *gorm.DB
	Tokens  *services.TokenIssuer
	Limiter services.LoginLimiter
	Logger  *zap.Logger
	// Registry receives the HTTP metrics. A fresh registry is used when nil.
	Registry   *prometheus.Registry
	IndentJSON bool
}

type catalogRoutes interface {
	List(http.ResponseWriter, *http.Request)
	Get(http.ResponseWriter, *http.Request)
	Create(http.ResponseWriter, *http.Request)
	Update(http.ResponseWriter, *http.Request)
	Delete(http.ResponseWriter, *http.Request)
}

func NewRouter(opts Options) (*mux.Router, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	metrics, err := middlewares.NewMetrics(registry)
	if err != nil {
		return nil, err
	}

	rnd := renderer.New(opts.IndentJSON)
	validate := helpers.NewValidator()

	brandRepo := repositories.NewBrandRepository(opts.DB)
	categoryRepo := repositories.NewCategoryRepository(opts.DB)
	productRepo := repositories.NewProductRepository(opts.DB)
	imageRepo := repositories.NewImageRepository(opts.DB)
	userRepo := repositories.NewUserRepository(opts.DB)

	authService := services.NewAuthService(userRepo, opts.Tokens, opts.Limiter, logger)

	userHandler := handlers.NewUserHandler(authService, rnd, validate, logger)
	brandHandler := handlers.NewBrandHandler(services.NewBrandService(brandRepo, validate, logger), rnd, validate, logger)
	categoryHandler := handlers.NewCategoryHandler(services.NewCategoryService(categoryRepo, validate, logger), rnd, validate, logger)
	productHandler := handlers.NewProductHandler(services.NewProductService(productRepo, brandRepo, categoryRepo, validate, logger), rnd, validate, logger)
	imageHandler := handlers.NewImageHandler(services.NewImageService(imageRepo, productRepo, validate, logger), rnd, validate, logger)

	router := mux.NewRouter()
	router.Use(metrics.Middleware)
	router.Use(middlewares.RequestLogger(logger))

	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/users/register", userHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/users/login", userHandler.Login).Methods(http.MethodPost)

	secured := api.NewRoute().Subrouter()
	secured.Use(middlewares.AuthMiddleware(opts.Tokens, rnd, logger))

	writers := middlewares.RequireRoles(rnd, models.RoleAdministrator, models.RoleStaff)
	admins := middlewares.RequireRoles(rnd, models.RoleAdministrator)

	for path, h := range map[string]catalogRoutes{
		"/brands":     brandHandler,
		"/categories": categoryHandler,
		"/products":   productHandler,
		"/images":     imageHandler,
	} {
		item := path + "/{id:[0-9]+}"
		secured.HandleFunc(path, h.List).Methods(http.MethodGet)
		secured.HandleFunc(item, h.Get).Methods(http.MethodGet)
		secured.Handle(path, writers(http.HandlerFunc(h.Create))).Methods(http.MethodPost)
		secured.Handle(item, writers(http.HandlerFunc(h.Update))).Methods(http.MethodPut)
		secured.Handle(item, admins(http.HandlerFunc(h.Delete))).Methods(http.MethodDelete)
	}

	return router, nil
}

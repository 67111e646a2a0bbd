package bootstrap

import (
	"database/sql"
	"math/rand"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/ReqLens-25-26J-441/req-lens-backend/internal/api/http"
	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/api/http/middleware"
	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/auth"
	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/documents"
	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/figma"
	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/projects"
	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/storage/postgres"
	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/users"
	vwhttp "github.com/ReqLens-25-26J-441/req-lens-backend/internal/validation_workflow/http"
	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/validation_workflow/repository"
	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/validation_workflow/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	APIKey      string

	Redis *redis.Client

	// SQLDB switches users and projects onto the durable postgres stores.
	// Documents, designs, validations and test cases stay on redis.
	SQLDB *sql.DB

	// Pool is only probed by the health endpoint.
	Pool *pgxpool.Pool

	// Rand seeds the test case synthesizer; nil means time-seeded.
	Rand *rand.Rand
}

// Stores bundles the persistence handles the router and the seeder share.
type Stores struct {
	Users    users.Store
	Projects projects.Store
}

// BuildStores picks the backing implementation per feature.
func BuildStores(dep RouterDeps) Stores {
	if dep.SQLDB != nil {
		return Stores{
			Users:    postgres.NewUserStore(dep.SQLDB),
			Projects: postgres.NewProjectStore(dep.SQLDB),
		}
	}
	return Stores{
		Users:    users.NewRepo(dep.Redis),
		Projects: projects.NewRepo(dep.Redis),
	}
}

func BuildRouter(dep RouterDeps, st Stores) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-User", "X-Request-Id", "X-API-Key"},
		AllowCredentials: true,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Redis, dep.Pool)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestIDMiddleware())
	api.Use(middleware.APIKeyMiddleware(dep.APIKey))

	usersGroup := api.Group("/users")
	users.Register(usersGroup, st.Users)

	api.Use(auth.WithUser(st.Users))

	projectsGroup := api.Group("/projects")
	projects.Register(projectsGroup, st.Projects)

	documentHandler := documents.NewHandler(documents.NewRepo(dep.Redis), st.Projects)
	documentHandler.RegisterProjectSubroutes(projectsGroup)
	documentHandler.Register(api)

	figmaHandler := figma.NewHandler(figma.NewRepo(dep.Redis), st.Projects)
	figmaHandler.RegisterProjectSubroutes(projectsGroup)
	figmaHandler.Register(api)

	validationRepo := repository.NewValidationRepository(dep.Redis)
	testCaseRepo := repository.NewTestCaseRepository(dep.Redis)
	validationService := service.NewValidationService(validationRepo, st.Projects)
	testCaseService := service.NewTestCaseService(validationRepo, testCaseRepo, dep.Rand)

	validationHandler := vwhttp.NewHandler(validationService, testCaseService)
	validationHandler.RegisterProjectSubroutes(projectsGroup)
	validationHandler.Register(api)

	return r
}

package routes

import (
	"context"
	"log"
	"os"

	_ "estimate_service/docs"
	"estimate_service/internal/adapter/http/handlers"
	"estimate_service/internal/adapter/persistence/repository"
	"estimate_service/internal/infrastructure/database"
	"estimate_service/internal/infrastructure/session"
	"estimate_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const defaultPort = "8080"

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	sessions := getRoutes()
	defer func() {
		if err := sessions.Close(); err != nil {
			log.Printf("[estimate][routes] closing session store: %v", err)
		}
	}()

	if err := router.Run(":" + getenvDefault("PORT", defaultPort)); err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() *session.RedisSessionStore {
	ddb, err := database.ConnectDynamoDB(context.Background())
	if err != nil {
		log.Fatalf("Failed to connect to DynamoDB: %v", err)
	}

	sessions, err := session.NewRedisSessionStore(
		getenvDefault("REDIS_URL", "redis://localhost:6379/0"),
		getenvDefault("SESSION_PREFIX", "session:"),
	)
	if err != nil {
		log.Fatalf("Failed to connect to the session store: %v", err)
	}

	estimateRepo := repository.NewEstimateDynamoRepository(ddb)
	catalogRepo := repository.NewCatalogDynamoRepository(ddb)

	estimateUseCase := usecase.NewEstimateUseCase(estimateRepo, catalogRepo)
	estimateHandler := handlers.NewEstimateHandler(estimateUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addEstimateRoutes(v1, estimateHandler, sessions)
	return sessions
}

func setMiddlewares() {
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// server/internal/api/routes/routes.go
package routes

import (
	"asset-verse-api-server/config"
	"asset-verse-api-server/internal/api/handlers"
	"asset-verse-api-server/internal/api/middleware"
	"asset-verse-api-server/internal/core"
	"asset-verse-api-server/internal/models"
	"asset-verse-api-server/internal/s3"
	"asset-verse-api-server/internal/socket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupRouter wires the handlers onto the route tree.
func SetupRouter(
	cfg config.Config,
	db *mongo.Database,
	service *core.RequestService,
	s3Uploader *s3.Uploader,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	authHandler := &handlers.AuthHandler{DB: db}
	assetHandler := &handlers.AssetHandler{DB: db, Service: service}
	requestHandler := &handlers.RequestHandler{DB: db, Service: service, Hub: wsHub}
	assignmentHandler := &handlers.AssignmentHandler{DB: db, Service: service, Hub: wsHub}
	hrHandler := &handlers.HRHandler{DB: db}
	uploadHandler := &handlers.UploadHandler{S3Uploader: s3Uploader}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub}

	apiV1 := router.Group("/api/v1")
	{
		// WebSocket route (token via query param)
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		// === PUBLIC ROUTES ===
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// === PROTECTED ROUTES ===
		authed := apiV1.Group("/")
		authed.Use(middleware.Authenticate())
		{
			authed.POST("/uploads", uploadHandler.UploadImage)

			// Requests visible to both sides
			authed.GET("/requests/:id", requestHandler.GetRequestByID)

			// Employee routes
			employee := authed.Group("/")
			employee.Use(middleware.Authorize(models.RoleEmployee))
			{
				employee.POST("/requests", requestHandler.SubmitRequest)
				employee.GET("/requests/my", requestHandler.GetMyRequests)
				employee.GET("/assignments/my", assignmentHandler.GetMyAssignments)
			}

			// HR routes
			hr := authed.Group("/hr")
			hr.Use(middleware.Authorize(models.RoleHR))
			{
				hr.GET("/account", hrHandler.GetMyAccount)
				hr.GET("/employees", hrHandler.GetMyEmployees)
				hr.POST("/upgrade", hrHandler.UpgradePackage)

				hr.GET("/requests", requestHandler.GetEmployerRequests)
				hr.POST("/requests/:id/decide", requestHandler.DecideRequest)

				hr.POST("/assignments/:id/return", assignmentHandler.ReturnAssignment)

				assets := hr.Group("/assets")
				{
					assets.POST("/", assetHandler.CreateAsset)
					assets.GET("/", assetHandler.GetMyAssets)
					assets.PUT("/:id/quantity", assetHandler.AdjustQuantity)
					assets.DELETE("/:id", assetHandler.DeleteAsset)
				}
			}
		}
	}

	return router
}

// Package rest est l'adapter primaire HTTP : il traduit la surface JSON
// historique vers les ports du core et mappe les erreurs du domaine en
// statuts HTTP.
package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/adapters/secondary/media"
	"github.com/ranjansharma1412/funAIconnectBackend/internal/core/ports"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const ServiceName = "funaiconnect-backend"

type Handlers struct {
	relations  ports.RelationshipService
	engagement ports.EngagementService
	feed       ports.FeedService
	identity   ports.IdentityService
	tokens     ports.TokenProvider
	generator  *media.Generator
}

func NewHandlers(
	relations ports.RelationshipService,
	engagement ports.EngagementService,
	feed ports.FeedService,
	identity ports.IdentityService,
	tokens ports.TokenProvider,
	generator *media.Generator,
) *Handlers {
	return &Handlers{
		relations:  relations,
		engagement: engagement,
		feed:       feed,
		identity:   identity,
		tokens:     tokens,
		generator:  generator,
	}
}

// NewRouter assemble le routeur avec le tracing et la surface /api.
func NewRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(ServiceName))
	r.Use(ViewerExtractor(h.tokens))

	h.RegisterRoutes(r.Group("/api"))
	return r
}

func (h *Handlers) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/health", h.HandleHealth)

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.HandleRegister)
		auth.POST("/login", h.HandleLogin)
	}

	users := api.Group("/users")
	{
		users.GET("/:id", h.HandleGetUser)
		users.PATCH("/:id", h.HandleUpdateProfile)
	}

	friends := api.Group("/friends")
	{
		friends.POST("/request", h.HandleSendRequest)
		friends.GET("/requests", h.HandleListRequests)
		friends.POST("/accept", h.HandleAcceptRequest)
		friends.GET("", h.HandleListFriends)
		friends.GET("/suggestions", h.HandleSuggestions)
	}

	posts := api.Group("/posts")
	{
		posts.GET("", h.HandleListPosts)
		posts.POST("", h.HandleCreatePost)
		posts.GET("/:id", h.HandleGetPost)
		posts.DELETE("/:id", h.HandleDeletePost)
		posts.POST("/:id/like", h.HandleToggleLike)
		posts.GET("/:id/comments", h.HandleListComments)
		posts.POST("/:id/comments", h.HandleCreateComment)
		posts.DELETE("/:id/comments/:commentId", h.HandleDeleteComment)
	}

	api.POST("/image/generate", h.HandleGenerateImage)
}

func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "FunAIConnectBackend is running"})
}

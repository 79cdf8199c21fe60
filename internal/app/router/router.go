// Package router assembles the HTTP route table.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	assethandler "github.com/SeraphielSpark/contentcreator/internal/feature/assets/transport/handler"
	authhandler "github.com/SeraphielSpark/contentcreator/internal/feature/auth/transport/handler"
	contenthandler "github.com/SeraphielSpark/contentcreator/internal/feature/content/transport/handler"
	generationhandler "github.com/SeraphielSpark/contentcreator/internal/feature/generation/transport/handler"
	historyhandler "github.com/SeraphielSpark/contentcreator/internal/feature/history/transport/handler"
	"github.com/SeraphielSpark/contentcreator/internal/platform/http/handler"
	jwtmw "github.com/SeraphielSpark/contentcreator/internal/platform/jwt"
)

// NewRouter wires all handlers into a gin engine. allowedOrigins configures
// CORS; an empty list allows none (same-origin only).
func NewRouter(
	auth *authhandler.AuthHandler,
	content *contenthandler.ContentHandler,
	generation *generationhandler.GenerationHandler,
	history *historyhandler.HistoryHandler,
	assets *assethandler.AssetHandler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.Default()

	if len(allowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     allowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Public routes
	r.GET("/healthz", handler.Health)
	r.POST("/auth/register", auth.Register)
	r.POST("/auth/login", auth.Login)
	r.POST("/auth/verify", auth.Verify)
	r.POST("/auth/resend-code", auth.ResendCode)
	r.GET("/uploads/:filename", assets.ServeUpload)
	r.GET("/generated/:filename", assets.ServeGenerated)

	// Optional-auth routes: anonymous allowed, authenticated calls get
	// history recording.
	optional := r.Group("/")
	optional.Use(jwtmw.AuthOptional())
	{
		optional.POST("/generate", content.GenerateHashtags)
		optional.POST("/respond", content.Respond)
		optional.POST("/upload-reference", assets.Upload)
	}

	// Authenticated routes
	authed := r.Group("/")
	authed.Use(jwtmw.AuthRequired())
	{
		authed.POST("/generate-image", generation.GenerateImage)
		authed.GET("/api/history", history.List)
		authed.POST("/api/history", history.Save)
		authed.GET("/api/history/:id", history.Get)
	}

	return r
}

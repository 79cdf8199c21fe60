package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"github.com/SeraphielSpark/contentcreator/internal/app/di"
	"github.com/SeraphielSpark/contentcreator/internal/app/router"
	assetadapters "github.com/SeraphielSpark/contentcreator/internal/feature/assets/adapters"
	assethandler "github.com/SeraphielSpark/contentcreator/internal/feature/assets/transport/handler"
	assetusecase "github.com/SeraphielSpark/contentcreator/internal/feature/assets/usecase"
	authadapters "github.com/SeraphielSpark/contentcreator/internal/feature/auth/adapters"
	authhandler "github.com/SeraphielSpark/contentcreator/internal/feature/auth/transport/handler"
	authusecase "github.com/SeraphielSpark/contentcreator/internal/feature/auth/usecase"
	contentgenai "github.com/SeraphielSpark/contentcreator/internal/feature/content/adapters/genai"
	contenthandler "github.com/SeraphielSpark/contentcreator/internal/feature/content/transport/handler"
	contentusecase "github.com/SeraphielSpark/contentcreator/internal/feature/content/usecase"
	generationadapters "github.com/SeraphielSpark/contentcreator/internal/feature/generation/adapters"
	generationhandler "github.com/SeraphielSpark/contentcreator/internal/feature/generation/transport/handler"
	generationusecase "github.com/SeraphielSpark/contentcreator/internal/feature/generation/usecase"
	historyadapters "github.com/SeraphielSpark/contentcreator/internal/feature/history/adapters"
	historyhandler "github.com/SeraphielSpark/contentcreator/internal/feature/history/transport/handler"
	historyusecase "github.com/SeraphielSpark/contentcreator/internal/feature/history/usecase"
	infradb "github.com/SeraphielSpark/contentcreator/internal/platform/db"
	jwtmw "github.com/SeraphielSpark/contentcreator/internal/platform/jwt"
	"github.com/SeraphielSpark/contentcreator/internal/platform/mail"
	infraredis "github.com/SeraphielSpark/contentcreator/internal/platform/redis"
)

const tokenExpiration = 72 * time.Hour

func main() {
	// Local development convenience; missing .env is fine.
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env not loaded", "error", err)
	}

	ctx := context.Background()

	// db
	db := infradb.OpenDB()

	// Redis (conversation transcripts)
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Conversation transcripts will not survive restarts.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// JWT_SECRET check (development warning)
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}
	tokenGen := jwtmw.NewGenerator(secret, tokenExpiration)

	// Asset stores
	uploadStore, err := assetadapters.NewDiskStore(envOr("UPLOAD_DIR", "uploads"))
	if err != nil {
		log.Fatal(err)
	}
	generatedStore, err := assetadapters.NewDiskStore(envOr("GENERATED_DIR", "generated"))
	if err != nil {
		log.Fatal(err)
	}

	// OTP delivery
	var sender authusecase.CodeSender
	if mailCfg := mail.LoadConfig(); mailCfg.Enabled() {
		sender = mail.NewSMTPSender(mailCfg)
	} else {
		log.Println("[WARN] SMTP not configured. Verification codes will not be delivered.")
	}

	// Repository
	userRepo := authadapters.NewUserMySQL(db)
	verificationRepo := authadapters.NewVerificationMySQL(db)
	historyRepo := historyadapters.NewHistoryMySQL(db)
	ledger := generationadapters.NewLedgerMySQL(db)

	// External clients
	textClient, err := contentgenai.NewTextClient(ctx)
	if err != nil {
		log.Fatal(err)
	}
	imageGateway := di.NewImageGateway()

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, verificationRepo, tokenGen, sender)
	historyUC := historyusecase.NewHistoryUsecase(historyRepo)
	contentUC := contentusecase.NewContentUsecase(textClient, di.NewConversationStore(rdb), historyUC)
	assetUC := assetusecase.NewAssetUsecase(uploadStore, generatedStore)
	generateUC := generationusecase.NewGenerateUsecase(userRepo, uploadStore, generatedStore, imageGateway, ledger)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	contentH := contenthandler.NewContentHandler(contentUC)
	generationH := generationhandler.NewGenerationHandler(generateUC)
	historyH := historyhandler.NewHistoryHandler(historyUC)
	assetH := assethandler.NewAssetHandler(assetUC)

	origins := splitOrigins(os.Getenv("ALLOWED_ORIGINS"))
	r := router.NewRouter(authH, contentH, generationH, historyH, assetH, origins)

	if err := r.Run(":" + envOr("PORT", "8080")); err != nil {
		log.Fatal(err)
	}
}

// envOr returns the environment value or a default when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitOrigins parses the comma-separated ALLOWED_ORIGINS value.
func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// @title           MedAI Landing API
// @version         1.0
// @description     MedAI 랜딩 사이트의 데모/콜백 요청 접수 및 관리자 API
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description "Bearer " 뒤에 JWT 토큰을 붙여 입력하세요.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "MedAI_LandingSite/docs"
	"MedAI_LandingSite/internal/app"
	"MedAI_LandingSite/internal/archiver"
	"MedAI_LandingSite/internal/auth"
	"MedAI_LandingSite/internal/config"
	"MedAI_LandingSite/internal/form"
	"MedAI_LandingSite/internal/handler"
	"MedAI_LandingSite/internal/logging"
	"MedAI_LandingSite/internal/models"
	"MedAI_LandingSite/internal/relay"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.Server.Env, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("main(): failed to build logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting MedAI landing API",
		zap.String("env", cfg.Server.Env),
		zap.String("addr", cfg.GetAddr()),
		zap.Bool("adminPanel", cfg.Admin.Panel))

	stores, err := app.OpenStores(cfg.Storage.DBPath, logger)
	if err != nil {
		logger.Fatal("main(): failed to open storage", zap.Error(err))
	}
	defer stores.Close()

	arch, err := archiver.NewArchiver(cfg.Storage.ArchiveDir)
	if err != nil {
		logger.Fatal("main(): failed to prepare archive directory", zap.Error(err))
	}

	submitterCfg := form.SubmitterConfig{
		Demo:         stores.Demo,
		Calls:        stores.Calls,
		RelayTimeout: cfg.Relay.Timeout,
		SubmitDelay:  cfg.Form.SubmitDelay,
		Logger:       logger,
	}
	// nil 인터페이스를 유지해야 릴레이가 비활성화됨
	if cfg.Relay.URL != "" {
		submitterCfg.Relay = relay.NewClient(cfg.Relay.URL, cfg.Relay.Timeout, cfg.RelayLocation())
	} else {
		logger.Warn("RELAY_URL is not set, submissions are stored locally only")
	}
	submitter := form.NewSubmitter(submitterCfg)

	tokens, err := adminTokens(cfg, logger)
	if err != nil {
		logger.Fatal("main(): failed to prepare admin credentials", zap.Error(err))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	h := handler.New(handler.Deps{
		Submitter:         submitter,
		Stores:            stores,
		Tokens:            tokens,
		Archiver:          arch,
		Logger:            logger,
		SuccessResetDelay: cfg.Form.SuccessResetDelay,
		AdminEnabled:      cfg.Admin.Panel,
		RateLimit:         cfg.Server.RateLimitPerMinute,
		CORSOrigins:       cfg.Server.CORSOrigins,
		TrustedProxies:    cfg.Server.TrustedProxies,
	})

	server := &http.Server{
		Addr:              cfg.GetAddr(),
		Handler:           handler.Router(h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGracePeriod)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	// 진행 중인 릴레이 전송 대기
	if err := submitter.Wait(ctx); err != nil {
		logger.Warn("relay tasks still running at shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

// adminTokens hashes the configured admin password. Without a password the
// login endpoint rejects everyone; without a secret tokens only live as long
// as the process.
func adminTokens(cfg *config.Config, logger *zap.Logger) (*auth.Manager, error) {
	admin := models.AdminUser{Username: cfg.Admin.Username}
	if cfg.Admin.Password != "" {
		hash, err := auth.HashPassword(cfg.Admin.Password)
		if err != nil {
			return nil, err
		}
		admin.PasswordHash = hash
	} else if cfg.Admin.Panel {
		logger.Warn("ADMIN_PASSWORD is not set, admin login is disabled")
	}

	secret := cfg.Admin.JWTSecret
	if secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, err
		}
		secret = hex.EncodeToString(buf)
		if cfg.Admin.Panel {
			logger.Warn("JWT_SECRET_KEY is not set, using a per-process secret")
		}
	}

	return auth.NewManager(secret, cfg.Admin.TokenTTL, admin), nil
}

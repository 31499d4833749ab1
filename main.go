package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notesapi/config"
	rediscfg "notesapi/config/cache"
	"notesapi/config/database"
	authHandler "notesapi/internal/auth"
	authRepo "notesapi/internal/auth/repository"
	authService "notesapi/internal/auth/service"
	"notesapi/internal/cache"
	collabHandler "notesapi/internal/collaboration"
	collabRepo "notesapi/internal/collaboration/repository"
	collabService "notesapi/internal/collaboration/service"
	exportHandler "notesapi/internal/export"
	"notesapi/internal/export/producer"
	exportService "notesapi/internal/export/service"
	noteHandler "notesapi/internal/note"
	noteRepo "notesapi/internal/note/repository"
	noteService "notesapi/internal/note/service"
	uploadHandler "notesapi/internal/upload"
	uploadService "notesapi/internal/upload/service"
	"notesapi/internal/upload/storage"
	userHandler "notesapi/internal/user"
	userRepo "notesapi/internal/user/repository"
	userService "notesapi/internal/user/service"
	"notesapi/internal/visibility"
	"notesapi/pkg/logger"
	"notesapi/pkg/token"
	"notesapi/router"
	"notesapi/socket"
	"notesapi/store"
)

const shutdownGrace = 10 * time.Second

func main() {
	cfg := mustLoadConfig()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Sugar.Fatalf("Could not connect to database: %v", err)
	}
	defer db.Close()

	if err := store.Migrate(ctx, db); err != nil {
		logger.Sugar.Fatalf("Migration failed: %v", err)
	}

	redisClient := rediscfg.NewRedisClient(ctx, cfg)
	defer redisClient.Close()

	var notesCache cache.Cache = cache.NewRedisCache(redisClient)
	if cfg.CacheDriver == "memory" {
		notesCache = cache.NewMemory()
	}

	fileStorage, err := newStorage(ctx, cfg)
	if err != nil {
		logger.Sugar.Fatalf("Could not set up upload storage: %v", err)
	}

	hub := socket.NewHub()
	go hub.Run(ctx)

	// Every visibility change drops the cached listing first, then tells the
	// user's open sockets to refetch.
	bus := visibility.NewBus()
	bus.Subscribe(cache.NewInvalidator(notesCache).VisibilityChanged)
	bus.Subscribe(hub.NotifyUser)

	tokens := token.NewManager(cfg.AccessTokenKey, cfg.RefreshTokenKey, cfg.AccessTokenAge)

	users := userService.NewUserService(userRepo.NewUserRepository(db))
	collaborations := collabService.NewCollaborationService(collabRepo.NewCollaborationRepository(db), bus)
	notes := noteService.NewNoteService(noteRepo.NewNoteRepository(db), collaborations, notesCache, bus, cfg.CacheTTL)
	auth := authService.NewAuthService(authRepo.NewAuthRepository(db), users, tokens)
	exports := exportService.NewExportService(producer.NewRedisProducer(redisClient), cfg.ExportQueue)
	uploads := uploadService.NewUploadService(fileStorage)

	handler := router.Setup(router.Handlers{
		Auth:           authHandler.NewAuthHandler(auth),
		Users:          userHandler.NewUserHandler(users),
		Notes:          noteHandler.NewNoteHandler(notes),
		Collaborations: collabHandler.NewCollaborationHandler(collaborations, notes, users),
		Exports:        exportHandler.NewExportHandler(exports),
		Uploads:        uploadHandler.NewUploadHandler(uploads, cfg.UploadMaxBytes),
		UploadDir:      cfg.UploadDir,
	}, tokens, hub, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Sugar.Infof("Notes API listening on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Sugar.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar.Errorf("Graceful shutdown failed: %v", err)
	}
}

// mustLoadConfig starts logging from LOG_LEVEL before the config is read so
// that load failures reach the operator, then applies the configured level.
func mustLoadConfig() *config.Config {
	logger.Init(os.Getenv("LOG_LEVEL"))
	cfg, err := config.Load()
	if err != nil {
		logger.Sugar.Fatalf("Invalid configuration: %v", err)
	}
	logger.Init(cfg.LogLevel)
	return cfg
}

func newStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	if cfg.StorageDriver != "s3" {
		return storage.NewLocal(cfg.UploadDir, cfg.PublicURL()+"/upload/images"), nil
	}
	opts := storage.S3Options{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	}
	client, err := storage.NewS3Client(ctx, opts)
	if err != nil {
		return nil, err
	}
	return storage.NewS3(client, opts), nil
}

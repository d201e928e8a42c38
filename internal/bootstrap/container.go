package bootstrap

import (
	"log"
	"time"

	"doc-chat-shell/internal/config"
	"doc-chat-shell/internal/constant"
	"doc-chat-shell/internal/controller"
	"doc-chat-shell/internal/mapper"
	"doc-chat-shell/internal/pkg/logger"
	"doc-chat-shell/internal/repository/local"
	"doc-chat-shell/internal/service"
	"doc-chat-shell/internal/websocket"
	"doc-chat-shell/pkg/bridge"
	"doc-chat-shell/pkg/chatbackend"
	"doc-chat-shell/pkg/kvstore"
	"doc-chat-shell/pkg/sessionstore"

	"github.com/ThreeDotsLabs/watermill"
)

type Container struct {
	// Controllers
	SessionController controller.ISessionController
	ChatController    controller.IChatController
	UploadController  controller.IUploadController

	// Background Services (Exposed for main.go to run)
	Coordinator service.ICoordinatorService

	// WebSockets
	WebSocketHub *websocket.Hub
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Persistence (injected capability, file-backed by default)
	var store kvstore.Store
	if cfg.Cache.FilePath != "" {
		fileStore, err := kvstore.NewFileStore(cfg.Cache.FilePath)
		if err != nil {
			log.Printf("[WARN] Failed to open cache file %s: %v. Falling back to in-memory cache", cfg.Cache.FilePath, err)
			store = kvstore.NewMemoryStore()
		} else {
			store = fileStore
		}
	} else {
		store = kvstore.NewMemoryStore()
	}

	summaryRepo := local.NewSummaryRepository(store, sysLogger)

	// 3. Reconciliation Bridge (watermill in-process channel)
	watermillLogger := watermill.NewStdLogger(false, false)
	reconBridge := bridge.New(watermillLogger)

	// 4. Remote clients (base URLs injected, never ambient)
	timeout := time.Duration(cfg.Remote.TimeoutSeconds) * time.Second
	sessionClient := sessionstore.NewClient(cfg.Remote.SessionStoreURL, timeout)
	chatClient := chatbackend.NewClient(cfg.Remote.ChatBackendURL, timeout)

	// 5. WebSocket Hub
	wsHub := websocket.NewHub(sysLogger)
	go wsHub.Run()

	// 6. Services
	convMapper := mapper.NewConversationMapper()
	conversationService := service.NewConversationService(
		sessionClient,
		chatClient,
		reconBridge,
		convMapper,
		sysLogger,
	)
	coordinatorService := service.NewCoordinatorService(
		conversationService,
		summaryRepo,
		sessionClient,
		reconBridge,
		wsHub,
		sysLogger,
	)
	uploadService := service.NewUploadService(
		chatClient,
		constant.UploadContentType,
		cfg.Upload.MaxBytes,
		sysLogger,
	)

	// 7. Controllers
	return &Container{
		SessionController: controller.NewSessionController(coordinatorService, convMapper),
		ChatController:    controller.NewChatController(conversationService, convMapper),
		UploadController:  controller.NewUploadController(uploadService),

		Coordinator:  coordinatorService,
		WebSocketHub: wsHub,
	}
}

package main

import (
	"log"

	"github.com/BassemGalal/QuickReceipt-clean/internal/bot"
	"github.com/BassemGalal/QuickReceipt-clean/internal/config"
	"github.com/BassemGalal/QuickReceipt-clean/internal/handler"
	"github.com/BassemGalal/QuickReceipt-clean/internal/mail"
	"github.com/BassemGalal/QuickReceipt-clean/internal/pdf"
	"github.com/BassemGalal/QuickReceipt-clean/internal/repository"
	"github.com/BassemGalal/QuickReceipt-clean/internal/service"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load() // a .env file is optional

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	requestRepo := repository.NewRequestRepository(cfg.PendingFile)
	chatMapRepo := repository.NewChatMapRepository(cfg.TelegramUsersFile)
	requestService := service.NewRequestService(requestRepo)

	tokens := mail.NewTokenStore(cfg.GmailTokenFile, cfg.GmailClientID, cfg.GmailClientSecret)
	gateway := mail.NewGateway(cfg.SenderEmail, tokens)
	receipts := pdf.NewGenerator(cfg.PDFDir)

	// With a bot token present the web process pushes new-request notices to
	// the admin chats; without one submissions are still accepted.
	var notifier handler.AdminNotifier
	if cfg.BotToken != "" {
		api, err := tgbotapi.NewBotAPI(cfg.BotToken)
		if err != nil {
			log.Printf("telegram notifications disabled: %v", err)
		} else {
			notifier = bot.New(api, requestService, chatMapRepo, cfg.AdminChatIDs)
		}
	}

	h := handler.NewHandler(requestService, gateway, receipts, notifier, cfg.RecipientEmail, cfg.UploadDir)

	router := gin.Default()
	router.LoadHTMLGlob("templates/*")
	router.Static("/static", "./static")
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	router.Use(sessions.Sessions("hospitality", store))

	router.GET("/", h.Index)
	router.POST("/submit", h.Submit)
	router.GET("/pending", h.Pending)
	router.GET("/health", h.Health)

	if err := router.Run(":" + cfg.APIPort); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

package main

import (
	"log"

	"github.com/BassemGalal/QuickReceipt-clean/internal/bot"
	"github.com/BassemGalal/QuickReceipt-clean/internal/config"
	"github.com/BassemGalal/QuickReceipt-clean/internal/repository"
	"github.com/BassemGalal/QuickReceipt-clean/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if cfg.BotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is not set")
	}
	if len(cfg.AdminChatIDs) == 0 {
		// Deliberate prototype permissiveness, kept from the deployed system.
		log.Print("ADMIN_CHAT_IDS is empty: every chat may approve and reject requests")
	}

	requestRepo := repository.NewRequestRepository(cfg.PendingFile)
	chatMapRepo := repository.NewChatMapRepository(cfg.TelegramUsersFile)
	requestService := service.NewRequestService(requestRepo)

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("bot init failed: %v", err)
	}
	log.Printf("bot %s started", api.Self.UserName)

	b := bot.New(api, requestService, chatMapRepo, cfg.AdminChatIDs)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	for update := range api.GetUpdatesChan(u) {
		b.HandleUpdate(update)
	}
}

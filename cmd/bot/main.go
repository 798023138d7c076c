package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/minecash/discord-bot/config"
	"github.com/minecash/discord-bot/db"
	"github.com/minecash/discord-bot/internal/bot"
	"github.com/minecash/discord-bot/internal/discord"
	"github.com/minecash/discord-bot/internal/repository"
	"github.com/minecash/discord-bot/internal/server"
	"github.com/minecash/discord-bot/internal/service"
	"github.com/minecash/discord-bot/utils"
)

func main() {
	logger := utils.InitLogger()
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		logger.Fatal("Failed to load config: ", err)
	}

	database, err := db.ConnectDb(cfg.DB_URL, logger)
	if err != nil {
		logger.Fatal(err)
	}

	if err := db.Migrate(database, true, logger); err != nil {
		logger.Fatal(err)
	}

	session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
	if err != nil {
		logger.Fatal("Failed to create Discord session: ", err)
	}

	repo := repository.NewRepository(database, logger)
	discordClient := discord.NewClient(session, &cfg, logger)
	svc := service.NewService(repo, discordClient, logger)

	discordBot := bot.NewBot(session, svc, logger, &cfg)
	if err := discordBot.Start(); err != nil {
		logger.Fatal("Failed to open Discord session: ", err)
	}

	if err := discordBot.RegisterCommands(); err != nil {
		logger.Errorf("Failed to register commands: %v", err)
	}

	srv := server.NewServer(&cfg, svc, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("HTTP server error: ", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("HTTP shutdown error: %v", err)
	}
	if err := discordBot.Stop(); err != nil {
		logger.Errorf("Discord shutdown error: %v", err)
	}
}

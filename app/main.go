package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gorilla/sessions"

	"github.com/wrenlet/inkwell/internal/aiservice"
	"github.com/wrenlet/inkwell/internal/blogservice"
	"github.com/wrenlet/inkwell/internal/common"
	"github.com/wrenlet/inkwell/internal/mailservice"
	"github.com/wrenlet/inkwell/internal/supabase"
	"github.com/wrenlet/inkwell/internal/userservice"
)

type application struct {
	config      *Config
	logger      *slog.Logger
	sessions    *sessions.CookieStore
	cache       *common.Cache
	userService *userservice.UserService
	blogService *blogservice.BlogService
	aiService   *aiservice.AIService
	mailService *mailservice.MailService
	broker      *common.MessageBroker
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Every missing credential degrades one feature; none of them stops
	// the process.
	db := supabase.New(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	if !db.Enabled() {
		logger.Error("supabase credentials missing: accounts and posts are disabled")
	}

	adm := supabase.New(cfg.SupabaseURL, cfg.SupabaseServiceKey)
	if !adm.Enabled() {
		logger.Warn("service role key missing: admin operations fall back to the restricted client")
		adm = db
	}

	ai := aiservice.NewAIService(cfg.GeminiAPIKey)
	if !ai.Enabled() {
		logger.Warn("gemini api key missing: AI assistance is disabled")
	}

	secret := cfg.SessionSecret
	if secret == "" {
		logger.Warn("session secret missing: using an ephemeral secret, sessions reset on restart")
		secret = randomSecret()
	}

	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	var broker *common.MessageBroker
	if cfg.MQHost != "" {
		URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
		broker, err = common.NewMessageBroker(URI)
		if err != nil {
			logger.Warn("failed to connect to the message broker: registration emails are disabled", slog.String("error", err.Error()))
			broker = nil
		} else {
			defer broker.Close()

			if err := common.SetupUserExchange(broker); err != nil {
				logger.Warn("failed to setup the user exchange", slog.String("error", err.Error()))
			}
		}
	} else {
		logger.Warn("rabbitmq host missing: registration emails are disabled")
	}

	app := &application{
		config:      cfg,
		logger:      logger,
		sessions:    newSessionStore(secret),
		cache:       cache,
		blogService: blogservice.NewBlogService(db, adm, cache),
		aiService:   ai,
		broker:      broker,
	}

	var producer common.MessageProducer
	if broker != nil {
		producer = broker
	}
	app.userService = userservice.NewUserService(db, adm, producer, cache, cfg.AdminEmail, cfg.AdminPasswordHash)

	if broker != nil && cfg.MailHost != "" {
		app.mailService = mailservice.NewMailService(broker, adm, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailPort, logger)
		defer app.mailService.Close()

		go app.mailService.SendWelcomeEmail()
	} else if broker != nil {
		logger.Warn("mail credentials missing: welcome emails are disabled")
	}

	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}

	return hex.EncodeToString(b)
}

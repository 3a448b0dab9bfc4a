package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/egxadev/wa-webhook/internal/api"
	"github.com/egxadev/wa-webhook/internal/conversation"
	"github.com/egxadev/wa-webhook/internal/faq"
	"github.com/egxadev/wa-webhook/internal/form"
	"github.com/egxadev/wa-webhook/internal/genai"
	"github.com/egxadev/wa-webhook/internal/messaging"
	"github.com/egxadev/wa-webhook/internal/scheduler"
	"github.com/egxadev/wa-webhook/internal/store"
	"github.com/egxadev/wa-webhook/internal/util"
	"github.com/egxadev/wa-webhook/internal/whatsapp"
	"github.com/joho/godotenv"
)

// Default configuration constants
const (
	// DefaultTreePath is the default conversation definition location.
	DefaultTreePath = "conversation-tree.json"
	// DefaultBackend selects the outbound messaging backend.
	DefaultBackend = "qontak"
)

func main() {
	initializeLogger()

	config := loadEnvironmentConfig()
	flags := parseCommandLineFlags(config)

	def, err := conversation.LoadDefinition(*flags.treePath)
	if err != nil {
		slog.Error("Failed to load conversation definition", "error", err, "path", *flags.treePath)
		os.Exit(1)
	}

	inquiryStore, err := buildStore(flags)
	if err != nil {
		slog.Error("Failed to initialize inquiry store", "error", err)
		os.Exit(1)
	}
	defer inquiryStore.Close()

	engine := form.NewEngine(
		form.WithInquirySink(inquiryStore),
		form.WithTimeout(config.FormTimeout),
	)
	tracker := faq.NewTracker()

	var resolverOpts []conversation.Option
	if *flags.openaiKey != "" {
		gaClient, err := genai.NewClient(genai.WithAPIKey(*flags.openaiKey))
		if err != nil {
			slog.Warn("GenAI client unavailable, AI states will use canned fallbacks", "error", err)
		} else {
			resolverOpts = append(resolverOpts, conversation.WithGenerator(gaClient))
		}
	}
	resolver := conversation.NewResolver(def, engine, tracker, resolverOpts...)

	msgService, err := buildMessagingService(flags)
	if err != nil {
		slog.Error("Failed to initialize messaging backend", "error", err, "backend", *flags.backend)
		os.Exit(1)
	}
	defer msgService.Stop()

	sched := scheduler.NewScheduler()
	if err := sched.AddJob(scheduler.DefaultSweepSpec, func() {
		engine.CleanupExpired()
	}); err != nil {
		slog.Error("Failed to schedule session sweep", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	server := api.NewServer(resolver, msgService,
		api.WithAddr(*flags.apiAddr),
		api.WithStore(inquiryStore),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Bootstrapping wa-webhook",
		"backend", *flags.backend, "addr", *flags.apiAddr,
		"definition_version", def.Version, "states", def.StateCount())
	if err := server.Run(ctx); err != nil {
		slog.Error("wa-webhook failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("wa-webhook exited successfully")
}

// Config holds environment configuration
type Config struct {
	TreePath      string
	Backend       string
	APIAddr       string
	DatabaseURL   string
	QontakToken   string
	QontakBaseURL string
	OpenAIKey     string
	WhatsAppDSN   string
	NumericCode   bool
	FormTimeout   time.Duration
}

// Flags holds command line flag values
type Flags struct {
	treePath      *string
	backend       *string
	apiAddr       *string
	dbDSN         *string
	qontakToken   *string
	qontakBaseURL *string
	openaiKey     *string
	waDSN         *string
	qrOutput      *string
	numeric       *bool
}

// initializeLogger sets up structured logging with debug level
func initializeLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		TreePath:      os.Getenv("CONVERSATION_TREE_PATH"),
		Backend:       os.Getenv("MESSAGING_BACKEND"),
		APIAddr:       os.Getenv("API_ADDR"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		QontakToken:   os.Getenv("QONTAK_TOKEN"),
		QontakBaseURL: os.Getenv("QONTAK_BASE_URL"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		WhatsAppDSN:   os.Getenv("WHATSAPP_DB_DSN"),
		NumericCode:   util.ParseBoolEnv("WHATSAPP_NUMERIC_CODE", false),
		FormTimeout:   util.ParseDurationEnv("FORM_SESSION_TIMEOUT", form.DefaultSessionTimeout),
	}
	if config.TreePath == "" {
		config.TreePath = DefaultTreePath
	}
	if config.Backend == "" {
		config.Backend = DefaultBackend
	}

	slog.Debug("environment variables loaded",
		"CONVERSATION_TREE_PATH", config.TreePath,
		"MESSAGING_BACKEND", config.Backend,
		"API_ADDR", config.APIAddr,
		"DATABASE_URL_SET", config.DatabaseURL != "",
		"QONTAK_TOKEN_SET", config.QontakToken != "",
		"OPENAI_API_KEY_SET", config.OpenAIKey != "",
		"FORM_SESSION_TIMEOUT", config.FormTimeout)

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		treePath:      flag.String("tree", config.TreePath, "conversation definition path (overrides $CONVERSATION_TREE_PATH)"),
		backend:       flag.String("backend", config.Backend, "messaging backend: qontak, twilio or whatsapp (overrides $MESSAGING_BACKEND)"),
		apiAddr:       flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
		dbDSN:         flag.String("db-dsn", config.DatabaseURL, "inquiry database DSN (overrides $DATABASE_URL)"),
		qontakToken:   flag.String("qontak-token", config.QontakToken, "Qontak bearer token (overrides $QONTAK_TOKEN)"),
		qontakBaseURL: flag.String("qontak-base-url", config.QontakBaseURL, "Qontak API base URL (overrides $QONTAK_BASE_URL)"),
		openaiKey:     flag.String("openai-api-key", config.OpenAIKey, "OpenAI API key (overrides $OPENAI_API_KEY)"),
		waDSN:         flag.String("wa-db-dsn", config.WhatsAppDSN, "WhatsApp session database DSN (overrides $WHATSAPP_DB_DSN)"),
		qrOutput:      flag.String("qr-output", "", "path to write WhatsApp login QR code"),
		numeric:       flag.Bool("numeric-code", config.NumericCode, "use numeric WhatsApp login code instead of QR code"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"tree", *flags.treePath,
		"backend", *flags.backend,
		"apiAddr", *flags.apiAddr,
		"dbDSN_set", *flags.dbDSN != "",
		"openaiKeySet", *flags.openaiKey != "")

	return flags
}

// buildStore selects the inquiry store backend by DSN type. No DSN means
// in-memory.
func buildStore(flags Flags) (store.Store, error) {
	dsn := *flags.dbDSN
	if dsn == "" {
		slog.Debug("No database DSN provided, using in-memory inquiry store")
		return store.NewInMemoryStore(), nil
	}
	if store.DetectDSNType(dsn) == store.DSNTypePostgres {
		slog.Debug("Detected PostgreSQL DSN, configuring PostgreSQL inquiry store")
		return store.NewPostgresStore(store.WithDSN(dsn))
	}
	slog.Debug("Detected SQLite DSN, configuring SQLite inquiry store", "db_path", dsn)
	return store.NewSQLiteStore(store.WithDSN(dsn))
}

// buildMessagingService constructs the configured outbound backend.
func buildMessagingService(flags Flags) (messaging.Service, error) {
	switch *flags.backend {
	case "qontak":
		var opts []messaging.QontakOption
		if *flags.qontakBaseURL != "" {
			opts = append(opts, messaging.WithQontakBaseURL(*flags.qontakBaseURL))
		}
		return messaging.NewQontakService(*flags.qontakToken, opts...)
	case "twilio":
		return messaging.NewTwilioService()
	case "whatsapp":
		var waOpts []whatsapp.Option
		if *flags.waDSN != "" {
			waOpts = append(waOpts, whatsapp.WithDBDSN(*flags.waDSN))
		}
		if *flags.qrOutput != "" {
			waOpts = append(waOpts, whatsapp.WithQRCodeOutput(*flags.qrOutput))
		}
		if *flags.numeric {
			waOpts = append(waOpts, whatsapp.WithNumericCode())
		}
		client, err := whatsapp.NewClient(waOpts...)
		if err != nil {
			return nil, err
		}
		return messaging.NewWhatsAppService(client), nil
	default:
		return nil, fmt.Errorf("unknown messaging backend %q", *flags.backend)
	}
}

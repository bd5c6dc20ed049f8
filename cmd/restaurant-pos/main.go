package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	flag "github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"restaurant-pos/internal/catalog"
	"restaurant-pos/internal/common/config"
	"restaurant-pos/internal/common/httpx"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/connections/database"
	"restaurant-pos/internal/connections/masterdb"
	"restaurant-pos/internal/connections/rabbitmq"
	"restaurant-pos/internal/domain"
	"restaurant-pos/internal/kitchen"
	"restaurant-pos/internal/notify"
	"restaurant-pos/internal/orderbook"
	"restaurant-pos/internal/repository"
	"restaurant-pos/internal/server"
	"restaurant-pos/internal/waiter"
)

func main() {
	mode := flag.String("mode", "api-server", "api-server | notification-subscriber")
	port := flag.Int("port", 0, "HTTP port override")
	configPath := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path := *configPath
	if path == "" {
		var err error
		if path, err = config.FindConfig(); err != nil {
			fmt.Fprintln(os.Stderr, "no config file found, pass --config")
			os.Exit(1)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.HTTP.Port = *port
	}

	switch *mode {
	case "api-server":
		err = runAPIServer(ctx, cfg)
	case "notification-subscriber":
		err = runSubscriber(ctx, cfg)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runAPIServer(ctx context.Context, cfg config.App) error {
	lg := logger.New("api-server")

	masters, err := masterdb.Open(cfg.Masters.Path)
	if err != nil {
		return err
	}
	menu := catalog.New(masters)
	if err := menu.Seed(); err != nil {
		return err
	}
	if err := bootstrapAdmin(masters, lg); err != nil {
		return err
	}

	// Postgres keeps the order history; without it the history lives in
	// memory only (demo setups).
	var history repository.Orders = repository.NewMemory()
	if cfg.Database.Host != "" {
		db, err := database.Connect(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		history = repository.NewOrdersPG(db)
		lg.Info("database_connected", map[string]any{"host": cfg.Database.Host})
	}

	var mq *rabbitmq.Client
	if cfg.Rabbit.Host != "" {
		mq, err = rabbitmq.Dial(cfg.Rabbit)
		if err != nil {
			return err
		}
		defer mq.Close()
		if err := mq.DeclareTopology(); err != nil {
			return err
		}
		lg.Info("rabbitmq_connected", map[string]any{"host": cfg.Rabbit.Host})
	}

	notifications := notify.NewStore()
	ledger := waiter.NewLedger(masters)
	relay := notify.NewRelay(mq, lg, notifications, ledger)
	kds := kitchen.NewStore(relay)
	orders := orderbook.NewStore(kds, history, relay, lg)

	engine := server.New(server.Deps{
		Catalog:       menu,
		Orders:        orders,
		Kitchen:       kds,
		Notifications: notifications,
		Waiters:       ledger,
		History:       history,
		MasterDB:      masters,
		JWTSecret:     cfg.Auth.JWTSecret,
		TokenTTL:      time.Duration(cfg.Auth.TokenTTL) * time.Hour,
		Log:           lg,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	lg.Info("server_started", map[string]any{"addr": addr})
	return httpx.New(addr, engine).Run(ctx)
}

func runSubscriber(ctx context.Context, cfg config.App) error {
	lg := logger.New("notification-subscriber")

	mq, err := rabbitmq.Dial(cfg.Rabbit)
	if err != nil {
		return err
	}
	defer mq.Close()
	if err := mq.DeclareTopology(); err != nil {
		return err
	}

	notifications := notify.NewStore()
	sub := notify.NewSubscriber(mq, "notification-subscriber", 1, lg, notifications)
	return sub.Run(ctx)
}

// bootstrapAdmin creates the first admin login on an empty users table so a
// fresh install can reach the admin screens.
func bootstrapAdmin(db *gorm.DB, lg *logger.Logger) error {
	var count int64
	if err := db.Model(&domain.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	password := os.Getenv("POS_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := domain.User{
		ID:           uuid.NewString(),
		Name:         "Administrator",
		Email:        "admin@restaurant.local",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	lg.Info("admin_bootstrapped", map[string]any{"email": admin.Email})
	return nil
}

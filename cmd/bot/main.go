package main

import (
	"context"
	"flag"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"go.uber.org/zap"

	"github.com/GoodboyDm/bubble-tea-bot/pkg/auth"
	"github.com/GoodboyDm/bubble-tea-bot/pkg/config"
	"github.com/GoodboyDm/bubble-tea-bot/pkg/flow"
	"github.com/GoodboyDm/bubble-tea-bot/pkg/menu"
	"github.com/GoodboyDm/bubble-tea-bot/pkg/report"
	"github.com/GoodboyDm/bubble-tea-bot/pkg/session"
	"github.com/GoodboyDm/bubble-tea-bot/pkg/storage"
	"github.com/GoodboyDm/bubble-tea-bot/pkg/storage/postgres"
	"github.com/GoodboyDm/bubble-tea-bot/pkg/storage/sqlite"
	"github.com/GoodboyDm/bubble-tea-bot/pkg/telegram"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Init(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	loc, err := cfg.Location()
	if err != nil {
		sugar.Fatal(err)
	}

	var ledger storage.Ledger
	switch cfg.Database.Driver {
	case "postgres":
		ledger, err = postgres.New(cfg.Database.PostgresURL, loc)
	default:
		ledger, err = sqlite.New(cfg.Database.SQLitePath, loc)
	}
	if err != nil {
		sugar.Fatal("can't connect to storage: ", err)
	}
	defer ledger.Close()
	if err := ledger.Init(context.Background()); err != nil {
		sugar.Fatal("can't init storage: ", err)
	}

	catalog, err := menu.Load(cfg.MenuPath)
	if err != nil {
		sugar.Fatal("can't load menu: ", err)
	}

	botApi, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		sugar.Fatal(err)
	}

	sessions := session.NewStore(cfg.SessionTTL.Std())
	machine := flow.NewMachine(catalog, sessions, ledger, cfg.Messages)
	reporter := report.NewReporter(ledger, loc, cfg.Messages.Responses)
	policy := auth.NewPolicy(cfg.AdminIDs)

	bot := telegram.NewBot(botApi, machine, reporter, policy, cfg.Messages, sugar)

	sugar.Infow("bot started", "driver", cfg.Database.Driver, "timezone", cfg.Timezone)
	if err := bot.Start(); err != nil {
		sugar.Fatal(err)
	}
}

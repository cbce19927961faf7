package main

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/sngm3741/medibook-services/api/internal/config"
	mongodoc "github.com/sngm3741/medibook-services/api/internal/infrastructure/mongo"
	"github.com/sngm3741/medibook-services/api/internal/infrastructure/seed"
	"github.com/sngm3741/medibook-services/api/internal/logging"
	publicapp "github.com/sngm3741/medibook-services/api/internal/public/application"
	"github.com/sngm3741/medibook-services/api/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("ロガーの初期化に失敗: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	var (
		client *mongo.Client
		source publicapp.DirectorySource
	)
	switch cfg.DirectorySource {
	case config.SourceMongo:
		clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
		client, err = mongo.Connect(ctx, clientOptions)
		if err != nil {
			logger.Fatal("MongoDB 接続に失敗しました", zap.Error(err))
		}
		source = mongodoc.NewDirectoryRepository(client.Database(cfg.MongoDatabase), cfg.DoctorCollection, cfg.SlotCollection, cfg.ReviewCollection)
	default:
		source = seed.NewSource()
	}

	dir, err := source.Load(ctx)
	if err != nil {
		logger.Fatal("ディレクトリの読み込みに失敗しました", zap.String("source", cfg.DirectorySource), zap.Error(err))
	}

	app := server.New(cfg, logger, dir, client)
	if err := app.Run(); err != nil {
		logger.Fatal("サーバー起動に失敗", zap.Error(err))
	}
}

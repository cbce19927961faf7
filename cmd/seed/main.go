package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/sngm3741/medibook-services/api/internal/config"
	mongodoc "github.com/sngm3741/medibook-services/api/internal/infrastructure/mongo"
	"github.com/sngm3741/medibook-services/api/internal/infrastructure/seed"
	"github.com/sngm3741/medibook-services/api/internal/logging"
	"github.com/sngm3741/medibook-services/api/internal/public/domain"
)

type seedOptions struct {
	mongoURI    string
	database    string
	doctors     string
	slots       string
	reviews     string
	file        string
	timeout     time.Duration
	logLevel    string
	skipIndexes bool
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定の読み込みに失敗しました。既定値を使用します: %v\n", err)
		cfg = config.Config{
			MongoURI:         "mongodb://localhost:27017",
			MongoDatabase:    "medibook",
			DoctorCollection: "doctors",
			SlotCollection:   "available_slots",
			ReviewCollection: "reviews",
			LogLevel:         "info",
		}
	}

	opts := seedOptions{}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the doctor directory into MongoDB",
		Long: `seed replaces the doctors, available slots and reviews collections
with the embedded directory (or a YAML file given with --file), so the API can
run with DIRECTORY_SOURCE=mongo.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd.Context(), opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.file, "file", "", "YAML directory file (default: embedded seed)")
	flags.StringVar(&opts.logLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", cfg.MongoURI, "MongoDB connection URI")
	cmd.Flags().StringVar(&opts.database, "db", cfg.MongoDatabase, "MongoDB database name")
	cmd.Flags().StringVar(&opts.doctors, "doctors", cfg.DoctorCollection, "Doctor collection")
	cmd.Flags().StringVar(&opts.slots, "slots", cfg.SlotCollection, "Available slot collection")
	cmd.Flags().StringVar(&opts.reviews, "reviews", cfg.ReviewCollection, "Review collection")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 60*time.Second, "Overall timeout")
	cmd.Flags().BoolVar(&opts.skipIndexes, "skip-indexes", false, "Do not create doctorId indexes")

	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Validate the directory file without touching MongoDB",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := loadDirectory(opts.file)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "doctors=%d slots=%d reviews=%d\n",
				len(dir.Doctors()), len(dir.Slots()), len(dir.Reviews()))
			return nil
		},
	})

	return cmd
}

func runSeed(ctx context.Context, opts seedOptions) error {
	logger, err := logging.New("development", opts.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	dir, err := loadDirectory(opts.file)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.mongoURI))
	if err != nil {
		return fmt.Errorf("MongoDB 接続に失敗しました: %w", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	repo := mongodoc.NewDirectoryRepository(client.Database(opts.database), opts.doctors, opts.slots, opts.reviews)
	if err := repo.Replace(ctx, dir); err != nil {
		return fmt.Errorf("ディレクトリの投入に失敗しました: %w", err)
	}
	if !opts.skipIndexes {
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
	}

	logger.Info("directory seeded",
		zap.String("db", opts.database),
		zap.Int("doctors", len(dir.Doctors())),
		zap.Int("slots", len(dir.Slots())),
		zap.Int("reviews", len(dir.Reviews())),
	)
	return nil
}

func loadDirectory(path string) (*domain.Directory, error) {
	if path == "" {
		return seed.NewSource().Load(context.Background())
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return seed.Decode(f)
}

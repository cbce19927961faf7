package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/sngm3741/medibook-services/api/internal/config"
	commonhttp "github.com/sngm3741/medibook-services/api/internal/interfaces/http/common"
	publichttp "github.com/sngm3741/medibook-services/api/internal/interfaces/http/public"
	publicapp "github.com/sngm3741/medibook-services/api/internal/public/application"
	"github.com/sngm3741/medibook-services/api/internal/public/domain"
)

// Server は HTTP サーバーのライフサイクルを管理し、Public の各ハンドラへ依存注入するコンポジションルート。
// ディレクトリのスナップショットは起動前に読み込み済みのものを受け取る。
type Server struct {
	logger          *zap.Logger
	client          *mongo.Client
	directory       *domain.Directory
	source          string
	addr            string
	allowedOrigins  []string
	location        *time.Location
	metrics         *metrics
	formLimiter     *clientLimiter
	directoryQuery  publicapp.DirectoryQueryService
	bookingService  publicapp.BookingService
	formService     publicapp.FormService
	shutdownTimeout time.Duration
}

// New は Config と読み込み済みディレクトリを受け取り、アプリケーションサービスとハンドラを組み立てた Server を返す。
// client は DIRECTORY_SOURCE=mongo のときのみ非 nil。
func New(cfg config.Config, logger *zap.Logger, dir *domain.Directory, client *mongo.Client) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	loc := cfg.Location()
	validator := publicapp.NewValidator()

	srv := &Server{
		logger:          logger,
		client:          client,
		directory:       dir,
		source:          cfg.DirectorySource,
		addr:            cfg.Addr,
		allowedOrigins:  append([]string(nil), cfg.AllowedOrigins...),
		location:        loc,
		metrics:         newMetrics(len(dir.Doctors())),
		directoryQuery:  publicapp.NewDirectoryQueryService(dir),
		shutdownTimeout: 10 * time.Second,
	}
	srv.formLimiter = newClientLimiter(cfg.FormRatePerMinute, cfg.FormRateBurst, logger, srv.metrics.limited.Inc)
	srv.metrics.trackLimiterClients(srv.formLimiter.size)
	srv.bookingService = publicapp.NewBookingService(publicapp.BookingConfig{
		Directory: dir,
		Validator: validator,
		Logger:    logger.Named("booking"),
		Location:  loc,
	})
	srv.formService = publicapp.NewFormService(publicapp.FormConfig{
		Validator: validator,
		Logger:    logger.Named("forms"),
	})
	return srv
}

// Routes はミドルウェアとルーティングを組み立てたハンドラを返す。
func (s *Server) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(s.logger))
	router.Use(middleware.Recoverer)
	router.Use(s.metrics.middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Retry-After"},
		MaxAge:         300,
	}))

	router.Get("/healthz", s.healthHandler())
	router.Method(http.MethodGet, "/metrics", s.metrics.handler())

	publicHandler := publichttp.NewHandler(publichttp.Config{
		Logger:    s.logger.Named("http"),
		Directory: s.directoryQuery,
		Bookings:  s.bookingService,
		Forms:     s.formService,
	})
	publicHandler.Register(router, s.formLimiter.middleware)

	return router
}

// Run はHTTPサーバーを起動し、シグナルを受けるまでブロックする。
func (s *Server) Run() error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP サーバー起動",
			zap.String("addr", s.addr),
			zap.String("source", s.source),
			zap.Int("doctors", len(s.directory.Doctors())),
		)
		errChan <- httpServer.ListenAndServe()
	}()

	return waitForShutdown(httpServer, errChan, s)
}

// healthHandler はインフラ状態のみを返す。Mongo を使っていない場合は ping しない。
// ping の失敗理由はログにのみ出し、レスポンスには含めない。
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.client != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
				s.logger.Warn("MongoDB ping failed", zap.Error(err))
				commonhttp.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
					"source": s.source,
				})
				return
			}
		}

		commonhttp.WriteJSON(s.logger, w, http.StatusOK, map[string]any{
			"status":  "ok",
			"source":  s.source,
			"doctors": len(s.directory.Doctors()),
			"time":    time.Now().In(s.location).Format(time.RFC3339),
		})
	}
}

// shutdown は MongoDB クライアントをタイムアウト付きで切断する。
func (s *Server) shutdown(ctx context.Context) {
	if s.client == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(shutdownCtx); err != nil {
		s.logger.Warn("MongoDB 切断時にエラー", zap.Error(err))
	}
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視し、graceful shutdown を実現する。
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var runErr error
	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			srv.logger.Error("サーバーが異常終了", zap.Error(err))
			runErr = err
		}
	case sig := <-sigChan:
		srv.logger.Info("シグナルを受信。サーバー停止処理を開始します。", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), srv.shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Warn("サーバー停止時にエラー", zap.Error(err))
			runErr = err
		}
	}

	srv.shutdown(context.Background())
	return runErr
}

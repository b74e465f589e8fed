package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/St1cky1/taskmanager/internal/api"
	grpcapi "github.com/St1cky1/taskmanager/internal/api/grpc"
	"github.com/St1cky1/taskmanager/internal/config"
	"github.com/St1cky1/taskmanager/internal/infrastructure/auth"
	"github.com/St1cky1/taskmanager/internal/infrastructure/client"
	"github.com/St1cky1/taskmanager/internal/migrations"
	"github.com/St1cky1/taskmanager/internal/repository"
	"github.com/St1cky1/taskmanager/internal/usecase"
	"github.com/St1cky1/taskmanager/internal/worker"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout = 10 * time.Second
	cleanupInterval = time.Hour
)

func serveCmd(current func() *config.Config) *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP API, gRPC сервер, gateway и audit worker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, current(), !skipMigrations, newPrinter(cmd.OutOrStdout()))
		},
	}
	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "не применять миграции при старте")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config, migrate bool, p *printer) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if migrate {
		if err := migrations.Up(cfg.DatabaseURL()); err != nil {
			p.Error("Ошибка миграций", err)
			return err
		}
		p.Success("Миграции выполнены успешно")
	}

	db, err := client.NewPostgresClient(ctx, cfg.DatabaseURL())
	if err != nil {
		p.Error("Ошибка подключения к БД", err)
		return err
	}
	defer db.Close()
	p.Success("Подключение к БД установлено")

	var publisher usecase.RabbitMQPublisher = client.LogPublisher{}
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := client.NewRabbitMQClient(cfg.RabbitMQURL(), cfg.RabbitMQ.Queue)
		if err != nil {
			p.Error("Ошибка подключения к RabbitMQ", err)
			return err
		}
		defer rabbitMQ.Close()
		publisher = rabbitMQ
		p.Success("Подключение к RabbitMQ установлено")
	} else {
		p.Warning("RabbitMQ отключён, аудит пишется только в лог")
	}

	// Инициализируем репозитории
	txManager := repository.NewTxManager(db.Pool)
	userRepo := repository.NewUserRepository(db.Pool)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db.Pool)
	taskRepo := repository.NewTaskRepository(db.Pool)
	subtaskRepo := repository.NewSubtaskRepository(db.Pool)
	historyRepo := repository.NewTaskHistoryRepository(db.Pool)
	categoryRepo := repository.NewCategoryRepository(db.Pool)
	tagRepo := repository.NewTagRepository(db.Pool)
	listRepo := repository.NewTaskListRepository(db.Pool)
	auditRepo := repository.NewTaskAuditRepository(db.Pool)

	// Инициализируем сервисы
	clock := usecase.NewClock(cfg.Location())
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)

	authService := usecase.NewAuthService(userRepo, refreshTokenRepo, auth.NewPasswordManager(), jwtManager, clock)
	userService := usecase.NewUserService(userRepo, taskRepo, categoryRepo, tagRepo, listRepo, clock)
	taskService := usecase.NewTaskService(txManager, taskRepo, subtaskRepo, historyRepo, listRepo, categoryRepo, tagRepo, publisher, clock)
	subtaskService := usecase.NewSubtaskService(taskRepo, subtaskRepo, publisher, clock)
	categoryService := usecase.NewCategoryService(categoryRepo, taskRepo, publisher, clock)
	tagService := usecase.NewTagService(tagRepo, taskRepo, publisher, clock)
	listService := usecase.NewTaskListService(listRepo, taskRepo, publisher, clock)
	auditService := usecase.NewAuditService(auditRepo, taskRepo)

	if cfg.RabbitMQ.Enabled {
		auditWorker := worker.NewAuditWorker(cfg.RabbitMQURL(), cfg.RabbitMQ.Queue, auditRepo)
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Success("Audit Worker запущен")
			auditWorker.Start(ctx)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		cleanupRefreshTokens(ctx, refreshTokenRepo)
	}()

	// HTTP API
	httpServer := &http.Server{
		Addr: ":" + cfg.HTTP.Port,
		Handler: api.NewRouter(api.Services{
			Auth:       authService,
			Users:      userService,
			Tasks:      taskService,
			Subtasks:   subtaskService,
			Audit:      auditService,
			Categories: categoryService,
			Tags:       tagService,
			Lists:      listService,
			Health:     db.HealthCheck,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// gRPC сервер с CompletionService
	grpcServer := grpcapi.NewGRPCServer(grpcapi.NewCompletionServer(taskService), authService)

	gatewayHandler, closeGateway, err := grpcapi.NewGatewayHandler("localhost:" + cfg.GRPC.Port)
	if err != nil {
		p.Error("Ошибка создания gRPC Gateway", err)
		return err
	}
	defer closeGateway()
	gatewayServer := &http.Server{
		Addr:              ":" + cfg.GRPC.GatewayPort,
		Handler:           gatewayHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 3)

	wg.Add(3)
	go func() {
		defer wg.Done()
		log.Printf("HTTP API слушает :%s", cfg.HTTP.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := grpcServer.Start(cfg.GRPC.Port); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()
	go func() {
		defer wg.Done()
		log.Printf("gRPC Gateway слушает :%s", cfg.GRPC.GatewayPort)
		if err := gatewayServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("gateway: %w", err)
		}
	}()

	p.Title("Сервис готов к работе")
	p.Field("HTTP API", "http://localhost:"+cfg.HTTP.Port+"/api/v1")
	p.Field("gRPC", "localhost:"+cfg.GRPC.Port)
	p.Field("gRPC Gateway", "http://localhost:"+cfg.GRPC.GatewayPort+"/v1/tasks/{id}/progress")
	p.Field("Часовой пояс", cfg.Location().String())
	fmt.Fprintln(p.out, "Для остановки нажмите Ctrl+C")

	var runErr error
	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out, "Завершение работы...")
	case runErr = <-errCh:
		p.Error("Сервер остановлен с ошибкой", runErr)
	}

	cancel()
	shutdown(ctx, httpServer, gatewayServer, grpcServer)
	wg.Wait()

	if runErr == nil {
		p.Success("Приложение завершено корректно")
	}
	return runErr
}

// shutdown гасит серверы; воркер и очистка токенов выходят по ctx
func shutdown(ctx context.Context, httpServer, gatewayServer *http.Server, grpcServer *grpcapi.GRPCServer) {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Ошибка остановки HTTP API: %v", err)
	}
	if err := gatewayServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Ошибка остановки gRPC Gateway: %v", err)
	}
	grpcServer.Stop()
}

func cleanupRefreshTokens(ctx context.Context, repo repository.IRefreshTokenRepository) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := repo.CleanupExpired(ctx); err != nil {
				log.Printf("❌ Ошибка очистки refresh токенов: %v", err)
			}
		}
	}
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "blog_platform/internal/domain/article"
	_ "blog_platform/internal/domain/comment"
	_ "blog_platform/internal/domain/like"
	_ "blog_platform/internal/domain/notification"
	_ "blog_platform/internal/domain/user"
	"blog_platform/internal/pkg/config"
	"blog_platform/internal/pkg/events"
	"blog_platform/internal/pkg/middleware"
	"blog_platform/internal/pkg/registry"
	"blog_platform/internal/realtime"
	"blog_platform/pkg/database"
	"blog_platform/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	config.LoadConfig()

	logger.Init(config.GlobalConfig.Server.Mode)
	defer logger.Sync()

	gin.SetMode(config.GlobalConfig.Server.Mode)

	db := database.InitDatabase()
	rdb := database.InitRedis()

	bus := events.NewBus(256)
	defer bus.Close()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.RateLimitMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"X-Trace-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// 实时广播层：不走模块注册表，直接订阅事件总线
	hub := realtime.NewHub()
	bus.Subscribe("realtime", hub.HandleEvent)
	r.GET("/ws", realtime.ServeWS(hub))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 按优先级初始化各领域模块
	if err := registry.InitModules(&registry.ModuleContext{
		DB:     db,
		Redis:  rdb,
		Router: r,
		Bus:    bus,
	}); err != nil {
		log.Fatalf("Failed to initialize modules: %v", err)
	}

	srv := &http.Server{
		Addr:    ":" + config.GlobalConfig.Server.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// 优雅退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

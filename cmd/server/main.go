// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dos-azul-go/internal/config"
	"dos-azul-go/internal/handler"
	"dos-azul-go/internal/middleware"
	"dos-azul-go/internal/repository"
	"dos-azul-go/internal/service"
	"dos-azul-go/pkg/es"
	"dos-azul-go/pkg/log"
)

func main() {
	// 1. 读取配置；必填项缺失时进程拒绝启动
	cfg, err := config.Init()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// 2. 初始化日志记录器
	log.Init(cfg.Server.Debug)
	defer log.Sync()
	log.Infof("配置加载完成, es_host: %s, region: %s, 对象索引: %s, 数据包索引: %s",
		cfg.Elasticsearch.Host, cfg.Elasticsearch.Region,
		cfg.Elasticsearch.ObjectIndex, cfg.Elasticsearch.BundleIndex)

	// 3. 初始化 Elasticsearch 客户端
	esClient, err := es.NewClient(cfg.Elasticsearch)
	if err != nil {
		log.Fatalf("Elasticsearch 客户端初始化失败: %v", err)
	}

	// 4. 初始化 Repository 与 Service (依赖注入)
	azulRepo := repository.NewAzulRepository(esClient)
	objectService := service.NewObjectService(azulRepo, cfg.Elasticsearch)
	bundleService := service.NewBundleService(azulRepo, cfg.Elasticsearch)

	// 5. 设置 Gin 模式并创建路由引擎
	if cfg.Server.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.Metrics(), gin.Recovery())

	// 6. 注册路由
	serviceHandler := handler.NewServiceHandler(azulRepo, cfg.Auth.AccessToken)
	r.GET("/", serviceHandler.Index)
	r.GET("/test_token", serviceHandler.TestToken)
	r.POST("/test_token", serviceHandler.TestToken)
	r.GET("/swagger.json", serviceHandler.Swagger)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	dos := r.Group("/ga4gh/dos/v1")
	{
		objects := handler.NewObjectHandler(objectService)
		dos.GET("/dataobjects", objects.List)
		dos.GET("/dataobjects/:data_object_id", objects.Get)

		// 变更类接口需要共享密钥
		authed := dos.Group("/")
		authed.Use(middleware.AccessTokenAuth(cfg.Auth.AccessToken))
		{
			authed.PUT("/dataobjects/:data_object_id", objects.Update)
		}

		bundles := handler.NewBundleHandler(bundleService)
		dos.GET("/databundles", bundles.List)
		dos.GET("/databundles/:data_bundle_id", bundles.Get)

		dos.GET("/service-info", serviceHandler.ServiceInfo)
	}

	// 7. 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}
	log.Info("服务已优雅关闭")
}

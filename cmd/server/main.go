package main

import (
	"flag"
	"log"
	"os"

	"k8s.io/klog/v2"

	"github.com/apper-apps/agencyflowapi/config"
	"github.com/apper-apps/agencyflowapi/internal/builder"
	"github.com/apper-apps/agencyflowapi/internal/embedcode"
	"github.com/apper-apps/agencyflowapi/internal/eventbus"
	"github.com/apper-apps/agencyflowapi/internal/formkit"
	"github.com/apper-apps/agencyflowapi/internal/handler"
	"github.com/apper-apps/agencyflowapi/internal/pkg/database"
	"github.com/apper-apps/agencyflowapi/internal/repository"
	"github.com/apper-apps/agencyflowapi/internal/router"
	"github.com/apper-apps/agencyflowapi/internal/service"
	"github.com/apper-apps/agencyflowapi/internal/subscriber"
)

func main() {
	// 初始化 klog
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	klog.V(6).Info("服务启动中...")

	cfg := config.GetConfig()

	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// 初始化数据库
	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	klog.V(6).Infof("数据库已初始化: type=%s", cfg.Database.Type)

	// 初始化 Repository，开发环境按配置模拟存储延迟
	formRepo := repository.WithLatency(repository.NewFormRepository(db), repository.Latency(cfg.Store.Latency))
	subRepo := repository.NewSubmissionRepository(db)

	// 事件总线与订阅者
	bus := eventbus.NewFormEventBus()
	subscriber.NewFormEventSubscriber(formRepo).Register(bus)

	formService := service.NewFormService(formRepo, subRepo, bus)

	ids, err := formkit.NewSnowflakeIDs(cfg.Builder.NodeID)
	if err != nil {
		log.Fatalf("Failed to create id generator: %v", err)
	}
	registry := formkit.NewRegistry(ids)
	workspace := builder.NewWorkspace(registry, formkit.DelaySubmitter{Delay: cfg.Preview.SubmitDelay})
	embed := embedcode.NewGenerator(cfg.Server.PublicOrigin)

	// 初始化 Handler
	formHandler := handler.NewFormHandler(formService, embed)
	catalogHandler := handler.NewCatalogHandler(registry)
	builderHandler := handler.NewBuilderHandler(workspace, formService, embed)

	// 设置路由
	r := router.Setup(cfg, formHandler, catalogHandler, builderHandler)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

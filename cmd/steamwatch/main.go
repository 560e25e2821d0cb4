package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"steamwatch/internal/config"
	"steamwatch/internal/logger"
	"steamwatch/internal/monitor"
	"steamwatch/internal/notifier"
	"steamwatch/internal/scheduler"
	"steamwatch/internal/steam"
	"steamwatch/internal/storage"
)

func main() {
	defaultPath := os.Getenv("STEAMWATCH_CONFIG")
	if defaultPath == "" {
		defaultPath = "configs/config.yaml"
	}
	var cfgPath string
	flag.StringVar(&cfgPath, "config", defaultPath, "YAML 配置文件路径")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("读取配置失败: %v", err)
	}
	logFile, err := setupLogOutput(cfg.App.LogPath)
	if err != nil {
		log.Fatalf("初始化日志文件失败: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}
	logger.SetLevel(cfg.App.LogLevel)

	fetcher := buildFetcher(cfg)
	store, err := storage.Open(cfg.Monitor.SnapshotPath)
	if err != nil {
		log.Fatalf("初始化快照存储失败: %v", err)
	}
	push, err := buildNotifier(cfg)
	if err != nil {
		log.Fatalf("初始化推送失败: %v", err)
	}
	if push == nil {
		logger.Warnf("未配置推送服务，库存变化只会写入日志")
	}

	svc, err := monitor.NewService(fetcher, store, push, cfg.Push.Title)
	if err != nil {
		log.Fatalf("初始化监控失败: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sched := scheduler.NewFixedIntervalScheduler(ctx, cfg.Monitor.Interval())
	sched.RunImmediately = cfg.Monitor.RunFirstTickImmediately()

	logger.Infof("开始监控 SteamID=%s app=%d 间隔=%s 推送=%s",
		cfg.Steam.SteamID, cfg.Steam.AppID, cfg.Monitor.Interval(), providerName(cfg.Push.Provider))
	svc.Run(ctx, sched)
	logger.Infof("监控已停止")
}

func buildFetcher(cfg *config.Config) steam.Fetcher {
	if cfg.Steam.UseSession {
		return steam.NewSessionClient(cfg.Steam.SteamID, cfg.Steam.DevtoolsURL, cfg.Steam.RequestTimeout())
	}
	return steam.NewClient(cfg.Steam.SteamID, cfg.Steam.AppID, cfg.Steam.ContextID, cfg.Steam.RequestTimeout())
}

func buildNotifier(cfg *config.Config) (notifier.ChangeNotifier, error) {
	switch cfg.Push.Provider {
	case "":
		return nil, nil
	case "pushplus":
		return notifier.NewPushPlus(cfg.Push.Token), nil
	case "serverchan":
		return notifier.NewServerChan(cfg.Push.Token), nil
	case "bark":
		return notifier.NewBark(cfg.Push.Token), nil
	default:
		return nil, fmt.Errorf("未知的推送服务商: %s", cfg.Push.Provider)
	}
}

func providerName(p string) string {
	if p == "" {
		return "未配置"
	}
	return p
}

func setupLogOutput(path string) (*os.File, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, nil
	}
	dir := filepath.Dir(trimmed)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	mw := io.MultiWriter(os.Stdout, file)
	log.SetOutput(mw)
	logger.SetOutput(mw)
	return file, nil
}

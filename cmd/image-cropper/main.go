package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/menta2k/image-cropper/internal/config"
	"github.com/menta2k/image-cropper/internal/logging"
	"github.com/menta2k/image-cropper/internal/ui"
	"github.com/menta2k/image-cropper/pkg/session"
)

func main() {
	var configPath, in string
	var initConfig bool
	flag.StringVar(&configPath, "config", "", "config file (default ~/.config/image-cropper/config.json)")
	flag.StringVar(&in, "in", "", "image to open at startup")
	flag.BoolVar(&initConfig, "init-config", false, "write the effective configuration to the config file and exit")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if initConfig {
		if configPath == "" {
			configPath = config.GetConfigPath()
		}
		if err := cfg.SaveToFile(configPath); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		log.Printf("wrote %s", configPath)
		return
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	opts, err := cfg.SessionOptions()
	if err != nil {
		logger.Fatal("Invalid output settings", zap.Error(err))
	}
	suggester, err := cfg.Suggester()
	if err != nil {
		logger.Fatal("Invalid placement settings", zap.Error(err))
	}

	s := session.New(opts, logger)
	if in != "" {
		// the window still opens on failure; the status label reports it
		_ = s.Load(in)
	}

	logger.Info("Starting image cropper",
		zap.String("session", s.ID()),
		zap.String("placement", cfg.Placement.Mode))

	ui.New(cfg, logger, s, suggester).Run()
}

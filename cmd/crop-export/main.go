package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/menta2k/image-cropper/internal/config"
	"github.com/menta2k/image-cropper/internal/logging"
	"github.com/menta2k/image-cropper/internal/utils"
	"github.com/menta2k/image-cropper/pkg/export"
	"github.com/menta2k/image-cropper/pkg/session"
)

func main() {
	var in, out, size, place, preview, configPath string
	var dx, dy, side float64
	var quality int

	flag.StringVar(&in, "in", "", "input image path (png/jpg/bmp)")
	flag.StringVar(&out, "out", "", "output JPEG path (default: next suggested name in output.dir)")
	flag.StringVar(&size, "size", "", "export size: 512, 1024 or 2048 (default from config)")
	flag.StringVar(&place, "place", "", "initial placement: center|saliency|vision (default from config)")
	flag.Float64Var(&dx, "dx", 0, "move the box right by this many image pixels")
	flag.Float64Var(&dy, "dy", 0, "move the box down by this many image pixels")
	flag.Float64Var(&side, "side", 0, "resize the box to this side, keeping its top-left corner")
	flag.IntVar(&quality, "quality", 0, "JPEG quality (1-100, default from config)")
	flag.StringVar(&preview, "preview", "", "also write the source with the crop box drawn on it")
	flag.StringVar(&configPath, "config", "", "config file")

	flag.Parse()
	if in == "" {
		log.Fatalf("usage: %s -in input.png [-out crop.jpg] [-size 512|1024|2048] [-place center|saliency|vision] [-dx N -dy N] [-side N] [-preview preview.png]", filepath.Base(os.Args[0]))
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if size != "" {
		cfg.Output.DefaultTarget = targetLabel(size)
	}
	if place != "" {
		cfg.Placement.Mode = place
	}
	if quality != 0 {
		cfg.Output.Quality = quality
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
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
	if err := s.Load(in); err != nil {
		logger.Fatal("Failed to load image", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Placement.Timeout)
	defer cancel()
	if err := s.Place(ctx, suggester); err != nil {
		logger.Fatal("Failed to place crop box", zap.Error(err))
	}

	if dx != 0 || dy != 0 {
		s.Move(dx, dy)
	}
	if side > 0 {
		box, _ := s.Box()
		s.ResizeFromCorner(box.X+side, box.Y+side)
	}

	if out == "" {
		if err := utils.EnsureDir(cfg.Output.Dir); err != nil {
			logger.Fatal("Failed to create output directory", zap.Error(err))
		}
		out = utils.OutputPath(cfg.Output.Dir, s.SuggestedFilename())
	}

	if err := s.Save(out); err != nil {
		logger.Fatal("Failed to save crop", zap.String("path", out), zap.Error(err))
	}

	box, _ := s.Box()
	size := "?"
	if stat, err := os.Stat(out); err == nil {
		size = utils.FormatFileSize(stat.Size())
	}
	log.Printf("wrote %s (%s, %s, box %.0fx%.0f@%.0f,%.0f)", out, size, s.Target(), box.Side, box.Side, box.X, box.Y)

	if preview != "" {
		overlay := export.Overlay(s.Image(), box, export.DefaultOverlayOptions(s.Image()))
		if err := imaging.Save(overlay, preview); err != nil {
			log.Printf("preview save failed: %v", err)
		} else {
			log.Printf("wrote %s", preview)
		}
	}
}

// targetLabel accepts the selector label or just the side, e.g. "512"
func targetLabel(size string) string {
	size = strings.TrimSpace(size)
	if strings.Contains(size, "x") {
		return size
	}
	return fmt.Sprintf("%s x %s", size, size)
}

package config

import (
	"fmt"

	"github.com/menta2k/image-cropper/pkg/cropbox"
	"github.com/menta2k/image-cropper/pkg/ollama"
	"github.com/menta2k/image-cropper/pkg/placement"
	"github.com/menta2k/image-cropper/pkg/session"
)

// Suggester builds the placement suggester selected by Mode
func (c *Config) Suggester() (placement.Suggester, error) {
	mode, err := placement.ParseMode(c.Placement.Mode)
	if err != nil {
		return nil, err
	}

	switch mode {
	case placement.ModeSaliency:
		return placement.NewSaliency(c.Output.ResampleFilter()), nil
	case placement.ModeVision:
		client, err := ollama.NewClient(c.Placement.OllamaURL)
		if err != nil {
			return nil, fmt.Errorf("placement.ollama_url: %w", err)
		}
		return &placement.Vision{
			Client:  client,
			Model:   c.Placement.Model,
			MaxDim:  c.Placement.SendSize,
			Quality: c.Output.Quality,
		}, nil
	default:
		return placement.Center{}, nil
	}
}

// SessionOptions returns the session settings taken from Output
func (c *Config) SessionOptions() (session.Options, error) {
	target, err := cropbox.ParseTarget(c.Output.DefaultTarget)
	if err != nil {
		return session.Options{}, fmt.Errorf("output.default_target: %w", err)
	}
	return session.Options{
		Quality:      c.Output.Quality,
		Filter:       c.Output.ResampleFilter(),
		SeedFilename: c.Output.SeedFilename,
		Target:       target,
	}, nil
}

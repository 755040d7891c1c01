package videoproc

import (
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig() failed validation: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*VideoProcessingConfig)
		wantErr bool
	}{
		{
			name:    "default is valid",
			mutate:  func(c *VideoProcessingConfig) {},
			wantErr: false,
		},
		{
			name:    "zero frames per scene",
			mutate:  func(c *VideoProcessingConfig) { c.FramesPerScene = 0 },
			wantErr: true,
		},
		{
			name:    "negative frames per scene",
			mutate:  func(c *VideoProcessingConfig) { c.FramesPerScene = -3 },
			wantErr: true,
		},
		{
			name:    "zero max frames total",
			mutate:  func(c *VideoProcessingConfig) { c.MaxFramesTotal = 0 },
			wantErr: true,
		},
		{
			name:    "zero min scene length",
			mutate:  func(c *VideoProcessingConfig) { c.MinSceneLength = 0 },
			wantErr: true,
		},
		{
			name:    "threshold above 100",
			mutate:  func(c *VideoProcessingConfig) { c.SceneThreshold = 150 },
			wantErr: true,
		},
		{
			name:    "threshold zero",
			mutate:  func(c *VideoProcessingConfig) { c.SceneThreshold = 0 },
			wantErr: true,
		},
		{
			name:    "quality floor above 1",
			mutate:  func(c *VideoProcessingConfig) { c.MinFrameQuality = 1.5 },
			wantErr: true,
		},
		{
			name:    "quality floor zero is valid",
			mutate:  func(c *VideoProcessingConfig) { c.MinFrameQuality = 0 },
			wantErr: false,
		},
		{
			name:    "zero target width",
			mutate:  func(c *VideoProcessingConfig) { c.TargetWidth = 0 },
			wantErr: true,
		},
		{
			name:    "zero file size ceiling",
			mutate:  func(c *VideoProcessingConfig) { c.MaxFileSizeGB = 0 },
			wantErr: true,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *VideoProcessingConfig) { c.ProcessingTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "unsupported output format",
			mutate:  func(c *VideoProcessingConfig) { c.OutputFormat = "bmp" },
			wantErr: true,
		},
		{
			name:    "webp output format",
			mutate:  func(c *VideoProcessingConfig) { c.OutputFormat = OutputFormatWebP },
			wantErr: false,
		},
		{
			name:    "output quality out of range",
			mutate:  func(c *VideoProcessingConfig) { c.OutputQuality = 0 },
			wantErr: true,
		},
		{
			name: "small but positive bounds",
			mutate: func(c *VideoProcessingConfig) {
				c.MinSceneLength = 0.1
				c.MaxFileSizeGB = 0.001
				c.ProcessingTimeout = time.Second
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

package config

import (
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "defaults are valid",
			cfg:  Config{PriceStalenessWindow: 24 * time.Hour},
		},
		{
			name:    "zero staleness window rejected",
			cfg:     Config{PriceStalenessWindow: 0},
			wantErr: true,
		},
		{
			name: "remote sync without endpoint rejected",
			cfg: Config{
				PriceStalenessWindow: time.Hour,
				Remote:               &RemoteCatalogConfig{Enabled: true, Bucket: "fits"},
			},
			wantErr: true,
		},
		{
			name: "remote sync without credentials rejected",
			cfg: Config{
				PriceStalenessWindow: time.Hour,
				Remote: &RemoteCatalogConfig{
					Enabled:  true,
					Endpoint: "https://example.r2.cloudflarestorage.com",
					Bucket:   "fits",
				},
			},
			wantErr: true,
		},
		{
			name: "complete remote config accepted",
			cfg: Config{
				PriceStalenessWindow: time.Hour,
				Remote: &RemoteCatalogConfig{
					Enabled:   true,
					Endpoint:  "https://example.r2.cloudflarestorage.com",
					Bucket:    "fits",
					AccessKey: "key",
					SecretKey: "secret",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("QM_DATA_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Port != 8010 {
		t.Errorf("expected default port 8010, got %d", cfg.Port)
	}
	if cfg.PriceStalenessWindow != 24*time.Hour {
		t.Errorf("expected default staleness window 24h, got %s", cfg.PriceStalenessWindow)
	}
	if cfg.Remote != nil {
		t.Error("remote sync should be disabled by default")
	}
}

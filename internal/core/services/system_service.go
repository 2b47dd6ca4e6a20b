package services

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/docuglot/backend/internal/config"
	"github.com/docuglot/backend/internal/domain"
	"github.com/docuglot/backend/internal/infrastructure/logger"
)

// HostInfo describes the process and the machine it runs on.
type HostInfo struct {
	Hostname      string `json:"hostname"`
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	CPUs          int    `json:"cpus"`
	GoVersion     string `json:"goVersion"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
}

// StorageUsage is the on-disk footprint of the working directories.
type StorageUsage struct {
	UploadDirBytes int64 `json:"uploadDirBytes"`
	TempDirBytes   int64 `json:"tempDirBytes"`
	OutputDirBytes int64 `json:"outputDirBytes"`
}

// ConfigSummary is the operator-facing configuration view. Secrets are
// redacted before they leave the process.
type ConfigSummary struct {
	Model              string `json:"model"`
	BaseURL            string `json:"baseUrl"`
	APIKey             string `json:"apiKey"`
	MaxConcurrentTasks int    `json:"maxConcurrentTasks"`
	MaxRetry           int    `json:"maxRetry"`
	MaxUploadSize      int    `json:"maxUploadSize"`
	TaskExpiry         string `json:"taskExpiry"`
	CleanupCron        string `json:"cleanupCron"`
}

// SystemReport is the full status-endpoint payload.
type SystemReport struct {
	Host             HostInfo      `json:"host"`
	Tasks            SystemStatus  `json:"tasks"`
	Storage          StorageUsage  `json:"storage"`
	Config           ConfigSummary `json:"config"`
	SupportedFormats []string      `json:"supportedFormats"`
}

// SystemService assembles the operator status view: host facts, queue depth,
// directory sizes and a redacted configuration summary.
type SystemService struct {
	translation *TranslationService
	cfg         *config.Config
	startedAt   time.Time
	log         *logger.Logger
}

func NewSystemService(translation *TranslationService, cfg *config.Config, log *logger.Logger) *SystemService {
	return &SystemService{translation: translation, cfg: cfg, startedAt: time.Now(), log: log}
}

func (s *SystemService) Report(ctx context.Context) (*SystemReport, error) {
	tasks, err := s.translation.Status(ctx)
	if err != nil {
		return nil, err
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	return &SystemReport{
		Host: HostInfo{
			Hostname:      hostname,
			OS:            runtime.GOOS,
			Arch:          runtime.GOARCH,
			CPUs:          runtime.NumCPU(),
			GoVersion:     runtime.Version(),
			UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
		},
		Tasks: *tasks,
		Storage: StorageUsage{
			UploadDirBytes: s.dirSize(s.cfg.Files.UploadDir),
			TempDirBytes:   s.dirSize(s.cfg.Files.TempDir),
			OutputDirBytes: s.dirSize(s.cfg.Files.OutputDir),
		},
		Config: ConfigSummary{
			Model:              s.cfg.OpenAI.Model,
			BaseURL:            s.cfg.OpenAI.BaseURL,
			APIKey:             redactSecret(s.cfg.OpenAI.APIKey),
			MaxConcurrentTasks: s.cfg.Tasks.MaxConcurrent,
			MaxRetry:           s.cfg.Tasks.MaxRetry,
			MaxUploadSize:      s.cfg.Files.MaxUploadSize,
			TaskExpiry:         s.cfg.Tasks.Expiry.String(),
			CleanupCron:        s.cfg.Tasks.CleanupCron,
		},
		SupportedFormats: domain.SupportedExtensions(),
	}, nil
}

// dirSize sums regular file sizes under dir. Unreadable entries and a missing
// directory count as zero so the status endpoint never fails on disk state.
func (s *SystemService) dirSize(dir string) int64 {
	var total int64
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil || !entry.Type().IsRegular() {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return nil
		}
		total += info.Size()
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		s.log.Warnw("system_dir_size_failed", "dir", dir, "error", err)
	}
	return total
}

func redactSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}

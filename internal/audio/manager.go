package audio

import (
	"log/slog"
	"sync"

	"github.com/jmylchreest/snackbars/internal/config"
	"github.com/jmylchreest/snackbars/internal/model"
)

// Manager plays the configured sound for a snackbar severity.
type Manager struct {
	mu     sync.RWMutex
	logger *slog.Logger
	player *Player
	config *config.Config
}

// NewManager creates a new audio manager. cfg may be nil for defaults (audio off).
func NewManager(cfg *config.Config, logger *slog.Logger) *Manager {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		logger: logger,
		player: NewPlayer(logger),
		config: cfg,
	}
	m.applyVolume(cfg)
	return m
}

// Start preloads the configured sounds. Missing or broken files are logged
// and left for PlayFor to report.
func (m *Manager) Start() {
	m.mu.RLock()
	cfg := m.config
	m.mu.RUnlock()

	if !cfg.Audio.Enabled {
		return
	}
	loaded := 0
	for _, s := range model.Severities() {
		path := cfg.SoundFor(s)
		if path == "" {
			continue
		}
		if err := m.player.Preload(path); err != nil {
			m.logger.Warn("failed to preload sound", "severity", s.String(), "path", path, "error", err)
			continue
		}
		loaded++
	}
	m.logger.Debug("audio manager started", "sounds", loaded)
}

// Enabled reports whether sound cues are switched on.
func (m *Manager) Enabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.Audio.Enabled
}

// PlayFor plays the sound configured for the severity.
// It is a no-op when audio is disabled or no sound is configured.
func (m *Manager) PlayFor(s model.Severity) error {
	m.mu.RLock()
	cfg := m.config
	m.mu.RUnlock()

	if !cfg.Audio.Enabled {
		return nil
	}
	path := cfg.SoundFor(s)
	if path == "" {
		m.logger.Debug("no sound configured for severity", "severity", s.String())
		return nil
	}
	return m.player.Play(path)
}

// UpdateConfig applies a reloaded configuration.
func (m *Manager) UpdateConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.mu.Lock()
	m.config = cfg
	m.mu.Unlock()

	m.applyVolume(cfg)
	m.player.ClearCache()
	m.Start()
}

// Stop releases the speaker.
func (m *Manager) Stop() {
	m.player.Close()
	m.logger.Debug("audio manager stopped")
}

// applyVolume converts the 0-100 config volume for the player.
func (m *Manager) applyVolume(cfg *config.Config) {
	m.player.SetVolume(float64(cfg.Audio.Volume) / 100.0)
}

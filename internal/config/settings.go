package config

import (
	"path/filepath"
	"strings"
)

// Settings are the runtime options read from the environment.
type Settings struct {
	SaveFile   string // Local save (cmd/game, cmd/desktop)
	SaveDir    string // Per-user saves (cmd/ssh)
	SaveFormat string // json or msgpack
	HistoryDB  string // SQLite run history; empty disables it
	LogLevel   string
	LogFile    string // Empty keeps the entry point's default output
	Resume     bool   // Restore the save when a local game starts
	Player     string // Name recorded in the run history

	SSHHost    string
	SSHPort    string
	SSHHostKey string
}

// Load reads Settings from the environment, applying defaults.
func Load() Settings {
	return Settings{
		SaveFile:   GetEnv("SAVE_FILE", "game_state.json"),
		SaveDir:    GetEnv("SAVE_DIR", "saves"),
		SaveFormat: GetEnv("SAVE_FORMAT", "json"),
		HistoryDB:  GetEnv("HISTORY_DB", "asteroids.db"),
		LogLevel:   GetEnv("LOG_LEVEL", "info"),
		LogFile:    GetEnv("LOG_FILE", ""),
		Resume:     GetEnvBool("RESUME", false),
		Player:     GetEnv("PLAYER", GetEnv("USER", "player")),
		SSHHost:    GetEnv("SSH_HOST", "::"),
		SSHPort:    GetEnv("SSH_PORT", "2222"),
		SSHHostKey: GetEnv("SSH_HOST_KEY", "/app/keys/host_key"),
	}
}

// UserSaveFile returns the save path for an SSH user inside SaveDir.
// The name is reduced to a safe file name.
func (s Settings) UserSaveFile(user string) string {
	ext := ".json"
	if strings.EqualFold(s.SaveFormat, "msgpack") {
		ext = ".msgpack"
	}
	return filepath.Join(s.SaveDir, safeName(user)+ext)
}

func safeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "anonymous"
	}
	return b.String()
}

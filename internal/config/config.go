package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates all service configuration.
type Config struct {
	Server ServerConfig
	Game   GameConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	game, err := loadGameConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Game: game}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" as-is.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// GameConfig carries every tunable the engine reads, environment-driven
// with one canonical default set.
type GameConfig struct {
	// ScriptPath optionally points at a YAML stage-script override.
	ScriptPath string

	// TypingDelayMin/Max bound the randomized delay before each scripted
	// line is delivered.
	TypingDelayMin time.Duration
	TypingDelayMax time.Duration

	// PuzzleTimeout is the per-puzzle countdown.
	PuzzleTimeout time.Duration
	// StrictAnswers makes any wrong exact-mode answer immediately fatal
	// instead of retryable within the countdown.
	StrictAnswers bool

	// SpamTimeout is how long the stage-0 spam burst runs before the
	// possessive ending fires; SpamInterval is the initial gap between
	// burst messages, which shrinks as the burst escalates.
	SpamTimeout  time.Duration
	SpamInterval time.Duration

	// EscalationChance is the probability that a player message triggers a
	// random visual escalation.
	EscalationChance float64

	// EscapeSolved and EscapeWindow feed the ending classifier.
	EscapeSolved int
	EscapeWindow time.Duration
}

func loadGameConfig() (GameConfig, error) {
	cfg := GameConfig{
		ScriptPath:       strings.TrimSpace(os.Getenv("SCRIPT_PATH")),
		TypingDelayMin:   3 * time.Second,
		TypingDelayMax:   8 * time.Second,
		PuzzleTimeout:    30 * time.Second,
		SpamTimeout:      5 * time.Second,
		SpamInterval:     800 * time.Millisecond,
		EscalationChance: 0.3,
		EscapeSolved:     2,
		EscapeWindow:     time.Minute,
	}

	var err error
	if cfg.TypingDelayMin, err = durationEnv("GAME_TYPING_DELAY_MIN_MS", cfg.TypingDelayMin); err != nil {
		return GameConfig{}, err
	}
	if cfg.TypingDelayMax, err = durationEnv("GAME_TYPING_DELAY_MAX_MS", cfg.TypingDelayMax); err != nil {
		return GameConfig{}, err
	}
	if cfg.PuzzleTimeout, err = durationEnv("GAME_PUZZLE_TIMEOUT_MS", cfg.PuzzleTimeout); err != nil {
		return GameConfig{}, err
	}
	if cfg.SpamTimeout, err = durationEnv("GAME_SPAM_TIMEOUT_MS", cfg.SpamTimeout); err != nil {
		return GameConfig{}, err
	}
	if cfg.SpamInterval, err = durationEnv("GAME_SPAM_INTERVAL_MS", cfg.SpamInterval); err != nil {
		return GameConfig{}, err
	}
	if cfg.EscapeWindow, err = durationEnv("GAME_ESCAPE_WINDOW_MS", cfg.EscapeWindow); err != nil {
		return GameConfig{}, err
	}

	if cfg.StrictAnswers, err = parseBoolEnv("GAME_STRICT_ANSWERS", false); err != nil {
		return GameConfig{}, err
	}

	if solved, err := parseOptionalIntEnv("GAME_ESCAPE_SOLVED"); err != nil {
		return GameConfig{}, err
	} else if solved != nil {
		cfg.EscapeSolved = *solved
	}

	if chance, err := parseOptionalFloatEnv("GAME_ESCALATION_CHANCE"); err != nil {
		return GameConfig{}, err
	} else if chance != nil {
		if *chance < 0 || *chance > 1 {
			return GameConfig{}, fmt.Errorf("GAME_ESCALATION_CHANCE must be in [0,1], got %v", *chance)
		}
		cfg.EscalationChance = *chance
	}

	if cfg.TypingDelayMax < cfg.TypingDelayMin {
		return GameConfig{}, fmt.Errorf("typing delay range inverted: min %s > max %s", cfg.TypingDelayMin, cfg.TypingDelayMax)
	}

	return cfg, nil
}

func durationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	ms, err := parseOptionalIntEnv(key)
	if err != nil {
		return 0, err
	}
	if ms == nil {
		return defaultValue, nil
	}
	if *ms <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, *ms)
	}
	return time.Duration(*ms) * time.Millisecond, nil
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

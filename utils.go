/* utils.go
 * Utility functions used by main.go to read the configuration
 */

package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

// config is the runtime configuration of the console, read from the environment and overridable by flags
type config struct {
	BackendURL        string
	ListenAddr        string
	PrefsURI          string
	DiscordToken      string
	EnableBot         bool
	CORSOrigins       []string
	RequestsPerSecond float64
}

// convertStrToBool converts a string of true or false into a boolean for comparisons
// Preconditions: Receives string containing either true or false (case insensitive)
// Postconditions: Returns boolean value or an error if the string is not true or false
func convertStrToBool(str string) (bool, error) {
	str = strings.TrimSpace(str)
	str = strings.ToLower(str)

	if str == "true" {
		return true, nil
	} else if str == "false" {
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean string")
}

// splitList splits a comma separated list, dropping empty entries
func splitList(str string) []string {
	var out []string
	for _, part := range strings.Split(str, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// loadConfig reads the configuration from getenv, then applies the command line flags in args.
// Preconditions: getenv returns "" for unset variables
// Postconditions: returns the configuration, or an error naming the first invalid value
func loadConfig(getenv func(string) string, args []string) (config, error) {
	cfg := config{
		BackendURL:   getenv("BACKEND_URL"),
		ListenAddr:   getenv("LISTEN_ADDR"),
		PrefsURI:     getenv("PREFS_URI"),
		DiscordToken: getenv("DISCORD_TOKEN"),
		CORSOrigins:  splitList(getenv("CORS_ORIGINS")),
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = "http://localhost:8000"
	}

	enableBot := getenv("ENABLE_BOT")
	if enableBot == "" {
		enableBot = "false"
	}
	rps := getenv("REQUESTS_PER_SECOND")
	if rps == "" {
		rps = "0"
	}

	fs := flag.NewFlagSet("chess-console", flag.ContinueOnError)
	fs.StringVar(&cfg.BackendURL, "backend", cfg.BackendURL, "Base URL of the tournament backend, e.g. http://localhost:8000")
	fs.StringVar(&cfg.ListenAddr, "addr", cfg.ListenAddr, "Address the web console listens on")
	fs.StringVar(&cfg.PrefsURI, "prefs", cfg.PrefsURI, "Preference store: memory://, mongodb://... or postgres://...")
	fs.StringVar(&enableBot, "bot", enableBot, "Run the Discord bot: takes true or false as argument")
	fs.StringVar(&rps, "rps", rps, "Maximum requests per second sent to the backend, 0 for no limit")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	var err error
	if cfg.EnableBot, err = convertStrToBool(enableBot); err != nil {
		return config{}, fmt.Errorf("ENABLE_BOT: %w", err)
	}
	if cfg.RequestsPerSecond, err = strconv.ParseFloat(strings.TrimSpace(rps), 64); err != nil || cfg.RequestsPerSecond < 0 {
		return config{}, fmt.Errorf("REQUESTS_PER_SECOND: invalid rate %q", rps)
	}
	if cfg.EnableBot && cfg.DiscordToken == "" {
		return config{}, fmt.Errorf("DISCORD_TOKEN is required when the bot is enabled")
	}
	return cfg, nil
}

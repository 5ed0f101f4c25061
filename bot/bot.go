/* bot.go
 * Contains the Discord companion bot that posts the schedule, standings and news of the current tournament to
 * the channels it is in. The bot only reads; every mutation goes through the web console
 */

package bot

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"chess-tournament-ui/api/api"
)

// commandTimeout bounds the backend calls made for one command
const commandTimeout = 10 * time.Second

// Discord rejects messages longer than this
const maxMessageLength = 2000

type Bot struct {
	BotToken string
	APIPtr   *api.API
	Logger   *slog.Logger
}

func NewBot(botToken string, apiPtr *api.API, logger *slog.Logger) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}
	if apiPtr == nil {
		return nil, fmt.Errorf("apiPtr is required but none was provided")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Bot{
		BotToken: botToken,
		APIPtr:   apiPtr,
		Logger:   logger,
	}, nil
}

// Helper function to check if a string starts with a given substring
// Preconditions: Receives an input string and a substring
// Postconditions: Returns true if the substring is at the start of the string, else returns false
func startsWith(inputString string, substring string) bool {
	return strings.HasPrefix(inputString, substring)
}

// truncate shortens a message to what Discord accepts, marking the cut
func truncate(message string) string {
	if len(message) <= maxMessageLength {
		return message
	}
	const marker = "\n..."
	cut := maxMessageLength - len(marker)
	for cut > 0 && !isRuneStart(message[cut]) {
		cut--
	}
	return message[:cut] + marker
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

package discord

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// authGuidance maps REST statuses that indicate credential problems to
// advice for resolving them.
var authGuidance = map[int]string{
	http.StatusUnauthorized: "The bot token was rejected. Please refresh DISCORD_TOKEN.",
	http.StatusForbidden:    "The bot lacks permission for this guild or channel. Check its role and channel overrides.",
}

// AuthError represents a Discord authentication or permission error with
// guidance for resolution
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("DISCORD AUTHENTICATION ERROR: %s (status: %d)", e.Message, e.Status)
}

// matchAuthError checks if an error is a REST error with an auth status.
// Returns nil if no auth error is found.
func matchAuthError(err error) *AuthError {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Response == nil {
		return nil
	}
	if guidance, ok := authGuidance[restErr.Response.StatusCode]; ok {
		return &AuthError{Status: restErr.Response.StatusCode, Message: guidance}
	}
	return nil
}

// WrapError checks for auth errors and returns an enhanced error with
// logging. Call it at the API boundary so callers see clear guidance.
func WrapError(logger *zap.Logger, operation string, err error) error {
	if err == nil {
		return nil
	}

	if authErr := matchAuthError(err); authErr != nil {
		logger.Error("Discord authentication failed",
			zap.String("operation", operation),
			zap.String("guidance", authErr.Message),
			zap.Error(err))
		return authErr
	}

	return fmt.Errorf("%s: %w", operation, err)
}

package commands

import (
	"strings"

	"github.com/goliatone/go-mdraft/internal/logging"
	"github.com/goliatone/go-mdraft/pkg/interfaces"
)

// CommandLogger returns the commands logger tagged with the command group.
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	group = strings.TrimSpace(group)
	if group == "" {
		group = "core"
	}
	return logging.WithFields(logging.CommandsLogger(provider), map[string]any{
		"component":     "command",
		"command_group": group,
	})
}

package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/splinterlabs/splinter/internal/config"
	"github.com/splinterlabs/splinter/internal/output"
)

// CommandContext carries the per-invocation dependencies commands need.
type CommandContext struct {
	Cfg ConfigProvider
	Log LogWriter
	Fmt FormatProvider
}

// NewCommandContext builds a CommandContext from concrete globals.
func NewCommandContext(cfg *config.Config, logger *config.Logger, formatter *output.Formatter) *CommandContext {
	return &CommandContext{
		Cfg: cfg,
		Log: logger,
		Fmt: formatter,
	}
}

// cmdContextKey keys the CommandContext inside a command's context.Context.
type cmdContextKey struct{}

// SetCmdContext attaches a CommandContext to the command. Tests use this to
// inject fakes without touching package globals.
func SetCmdContext(cmd *cobra.Command, cc *CommandContext) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, cmdContextKey{}, cc))
}

// GetCmdContext returns the context for a command invocation. A context
// attached with SetCmdContext wins; otherwise the globals initialized by
// PersistentPreRunE apply.
func GetCmdContext(cmd *cobra.Command) *CommandContext {
	if cmd != nil {
		if ctx := cmd.Context(); ctx != nil {
			if cc, ok := ctx.Value(cmdContextKey{}).(*CommandContext); ok {
				return cc
			}
		}
	}
	if cmdCtx != nil {
		return cmdCtx
	}
	return NewCommandContext(cfg, logger, formatter)
}

package mdraft

import "github.com/goliatone/go-mdraft/internal/runtimeconfig"

var (
	ErrParserExtensionUnknown = runtimeconfig.ErrParserExtensionUnknown
	ErrMaxNestingInvalid      = runtimeconfig.ErrMaxNestingInvalid
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
	ErrBlockStyleEmpty        = runtimeconfig.ErrBlockStyleEmpty
	ErrInlineStyleEmpty       = runtimeconfig.ErrInlineStyleEmpty
	ErrOutputPatternInvalid   = runtimeconfig.ErrOutputPatternInvalid
)

type (
	Config            = runtimeconfig.Config
	StylesConfig      = runtimeconfig.StylesConfig
	InlineStyleConfig = runtimeconfig.InlineStyleConfig
	ParserConfig      = runtimeconfig.ParserConfig
	FrontMatterConfig = runtimeconfig.FrontMatterConfig
	LimitsConfig      = runtimeconfig.LimitsConfig
	LoggingConfig     = runtimeconfig.LoggingConfig
	ValidationConfig  = runtimeconfig.ValidationConfig
	OutputConfig      = runtimeconfig.OutputConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

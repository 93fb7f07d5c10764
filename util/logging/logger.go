package logging

import "go.uber.org/zap"

const (
	FormatProduction  = "production"
	FormatDevelopment = "development"
)

// New builds the application logger. Unknown levels fall back to info and
// every format but development logs json.
func New(app, level, format string) (*zap.Logger, error) {
	var config zap.Config
	if format == FormatDevelopment {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}

	config.InitialFields = map[string]any{
		"app": app,
	}

	config.Level = parseLevel(level)

	return config.Build()
}

func parseLevel(lvl string) zap.AtomicLevel {
	if atom, err := zap.ParseAtomicLevel(lvl); err == nil && lvl != "" {
		return atom
	}

	return zap.NewAtomicLevelAt(zap.InfoLevel)
}

package logger

import "go.uber.org/zap"

// New builds the application logger: development config for readable
// console output locally, production JSON otherwise.
func New(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

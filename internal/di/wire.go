//go:build wireinject
// +build wireinject

package di

import (
	"Afluencia/pkg/config"
	"Afluencia/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation (wire_gen.go).
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvidePatterns,
		ProvidePredictor,
		ProvideClassifier,
		ProvideCache,
		ProvideUsecase,
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}

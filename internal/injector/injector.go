//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/holoscene/holoscene/internal/core/engine"
	"github.com/holoscene/holoscene/internal/core/observability/log"
	"github.com/holoscene/holoscene/internal/server"
)

func provideLogger() log.Log {
	return log.New(log.LevelInfo)
}

func provideEngine(logger log.Log) (*engine.Engine, error) {
	return engine.New(engine.WithLogger(logger))
}

// ProvideServer wires a pose-stream server with the default config.
func ProvideServer() (*server.Server, error) {
	wire.Build(
		provideLogger,
		wire.Value(server.DefaultConfig()),
		server.NewServer,
	)
	return nil, nil
}

// ProvideEngine wires a standalone layout engine for embedding.
func ProvideEngine() (*engine.Engine, error) {
	wire.Build(provideLogger, provideEngine)
	return nil, nil
}

package main

import (
	"context"
	"log/slog"
	"os"

	"salespulse/config"
	"salespulse/internal/domain/repository"
	"salespulse/internal/domain/service"
	"salespulse/internal/infra/export"
	logs "salespulse/internal/infra/log"
	"salespulse/internal/infra/persistence/postgres"
	"salespulse/internal/infra/snapshot"
	"salespulse/internal/usecase"
	"salespulse/internal/usecase/impl"

	"go.uber.org/fx"
)

type snapshotSourceParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

type runPipelineParams struct {
	fx.In
	fx.Shutdowner

	Pipeline  usecase.PipelineUsecase
	Publisher service.DocumentPublisher
	Logger    *slog.Logger
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectUsecase(),
		fx.Invoke(
			runPipeline,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		export.NewBlobPublisher,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newSnapshotSource,
		),
	)
}

// newSnapshotSource selects the snapshot source from the config. The postgres
// client is only constructed when the postgres source is active, so csv runs
// need no database at all.
func newSnapshotSource(params snapshotSourceParams) (repository.SnapshotRepository, error) {
	if params.Config.Snapshot.Source == config.SourceCSV {
		return snapshot.NewCSVLoader(params.Config.Snapshot.CSVDir, params.Logger), nil
	}

	db, err := postgres.New(postgres.Params{
		Lifecycle: params.Lifecycle,
		Config:    params.Config,
		Logger:    params.Logger,
	})
	if err != nil {
		return nil, err
	}

	return postgres.NewSnapshotRepository(db, params.Logger), nil
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewPipelineService,
		),
	)
}

// runPipeline executes one pipeline run and then triggers a graceful shutdown.
func runPipeline(ctx context.Context, params runPipelineParams) {
	go func() {
		if _, err := params.Pipeline.Run(ctx); err != nil {
			params.Logger.Error("pipeline run failed", slog.Any("error", err))
		}

		if err := params.Publisher.Close(); err != nil {
			params.Logger.Error("failed to close publisher", slog.Any("error", err))
		}

		// Trigger graceful shutdown to execute all OnStop hooks
		if shutdownErr := params.Shutdown(); shutdownErr != nil {
			params.Logger.Error("failed to shutdown gracefully", slog.Any("error", shutdownErr))
			os.Exit(1)
		}
	}()
}

package cli

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/mameset/internal/app"
)

// runnerNames returns every app-layer runner name, for building one cobra
// command per registered runner.
func runnerNames() []string {
	return app.RunnerList()
}

// newRunnerCommand adapts a registered app.IRunner into a cobra.Command,
// running PreRun/Run/PostRun under a 30-minute timeout. A per-invocation
// correlation id is logged once at the start; later log lines do not carry it.
func newRunnerCommand(name string) *cobra.Command {
	runner, err := app.ResolveRunner(name)
	if err != nil {
		panic(err)
	}

	cmd := &cobra.Command{
		Use:   runner.Name(),
		Short: runner.Desc(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaulter, ok := runner.(app.StorePathDefaulter); ok {
				cfgPath, _ := cmd.Root().PersistentFlags().GetString(ConfigFlag)
				defaulter.SetDefaultStorePath(loadConfig(cfgPath).Store.Path)
			}

			ctx, cancel := context.WithTimeout(withCorrelationID(commandContext(cmd)), 30*time.Minute)
			defer cancel()

			if err := runner.PreRun(ctx); err != nil {
				return err
			}
			if err := runner.Run(ctx); err != nil {
				return err
			}
			return runner.PostRun(ctx)
		},
	}
	runner.Init(cmd.Flags())
	return cmd
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func withCorrelationID(ctx context.Context) context.Context {
	id := uuid.NewString()
	logutil.GetLogger(ctx).Info("invocation", zap.String("request_id", id))
	return ctx
}

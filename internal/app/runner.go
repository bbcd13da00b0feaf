// Package app holds the business logic behind each mameset CLI command,
// independent of cobra's flag/argument plumbing.
package app

import (
	"context"

	"github.com/spf13/pflag"
)

// IRunner represents one runnable command in the application layer.
type IRunner interface {
	Name() string
	Desc() string
	Init(fs *pflag.FlagSet)
	PreRun(ctx context.Context) error
	Run(ctx context.Context) error
	PostRun(ctx context.Context) error
}

// StorePathDefaulter lets a runner accept a fallback store path sourced
// from configuration when its own --store flag was left unset.
type StorePathDefaulter interface {
	SetDefaultStorePath(path string)
}

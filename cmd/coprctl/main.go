package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/ralt/coprctl/internal/cli"
	"github.com/ralt/coprctl/internal/models"
	"github.com/sirupsen/logrus"
)

func main() {
	// Messages go to stderr so list and debug output stay parseable
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	// Interrupting aborts a pending descriptor download
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

func run(ctx context.Context) int {
	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		var coprErr *models.CoprError
		if errors.As(err, &coprErr) {
			logrus.WithFields(logrus.Fields{
				"kind":    coprErr.Type.String(),
				"project": coprErr.Project,
			}).Error(coprErr.Err)
		} else {
			logrus.Error(err)
		}
		return 1
	}
	return 0
}

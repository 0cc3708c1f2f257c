package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/epoint/springlab/application"
	"github.com/epoint/springlab/cmd/springlab/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := commands.Execute(ctx, os.Args[1:], run)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// run builds the application from args and serves until ctx is done
func run(ctx context.Context, args []string) error {
	app, cleanup, err := InitializeApplication(args)
	if err != nil {
		application.ReportFailure(ctx, nil, application.Analyze(err))
		return err
	}
	defer cleanup()

	return app.Run(ctx)
}

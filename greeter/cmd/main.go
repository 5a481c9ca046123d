// Package main provides the greeter CLI, a web service
// answering "/" with "Hello from <application>!".
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/byte4ever/scaffolder/greeter"
)

func main() {
	var (
		port        = flag.Int("port", 8080, "IP port")
		application = flag.String("application", "Greeter", "application name used in the greeting")
		timeout     = flag.Duration("shutdown_timeout", greeter.DefaultShutdownTimeout, "graceful shutdown timeout")
	)

	flag.Parse()

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	srv := greeter.Server{
		Addr:            fmt.Sprintf(":%d", *port),
		Application:     *application,
		ShutdownTimeout: *timeout,
	}

	if err := srv.Run(ctx); err != nil {
		slog.Error(err.Error())
		stop()
		os.Exit(1)
	}
}

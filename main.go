package main

import (
	"context"

	"github.com/procurehub/procurement-gateway/internal/bootstrap"
	"github.com/procurehub/procurement-gateway/internal/logger"
)

func main() {
	ctx := context.Background()

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		panic(err)
	}

	logger.InfoLog(ctx, "Starting procurement gateway")
	if err := app.Run(); err != nil {
		logger.ErrorLog(ctx, "Server stopped: %v", err)
	}
}

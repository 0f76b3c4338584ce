package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/pcalc/cli"
	"github.com/ardnew/pcalc/cli/cmd"
	"github.com/ardnew/pcalc/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		// Evaluation failures were already reported by the session.
		if !cmd.IsEvaluation(err) {
			log.Error("run failed", slog.Any("error", err))
		}

		os.Exit(1)
	}
}

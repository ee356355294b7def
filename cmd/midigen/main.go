package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"midigen/internal/logger"
	"midigen/sdk/contracts"
	"midigen/sdk/emitter"
	"midigen/sdk/midi"
)

func main() {
	log := logger.NewZapLogger()

	client, err := midi.NewMIDIClient(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
	)
	if err != nil {
		log.Fatal("Failed to initialize MIDI client", log.Field().Error("error", err))
	}
	defer client.Stop()

	port, err := client.SelectDefaultOutput()
	if err != nil {
		log.Fatal("Failed to open a MIDI output", log.Field().Error("error", err))
	}
	log.Info("MIDI output ready",
		log.Field().String("port", port.Name),
		log.Field().Int("portID", port.Number))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := emitter.New(client, log).Run(ctx); !errors.Is(err, context.Canceled) {
		log.Fatal("Note emitter stopped", log.Field().Error("error", err))
	}
	log.Info("Interrupted; shutting down")
}

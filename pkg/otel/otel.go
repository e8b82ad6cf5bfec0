package otel

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.38.0"
)

type shutdownFunc func(context.Context) error

// SetupLogging installs the default slog logger. Diagnostics always go to w,
// never to stdout, which carries the stdio transport.
func SetupLogging(w io.Writer) *slog.Logger {
	level := slog.LevelInfo

	if EnableDebug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))

	slog.SetDefault(logger)

	return logger
}

// Setup configures OTLP exporters for traces, metrics and logs when telemetry
// is enabled. The returned function flushes and stops all providers.
func Setup(ctx context.Context, service, version string) (func(context.Context) error, error) {
	if !EnableTelemetry {
		return func(context.Context) error { return nil }, nil
	}

	resource, err := sdkresource.New(ctx,
		sdkresource.WithFromEnv(),
		sdkresource.WithTelemetrySDK(),
		sdkresource.WithAttributes(
			semconv.ServiceName(service),
			semconv.ServiceVersion(version),
		),
	)

	if err != nil {
		return nil, err
	}

	var shutdowns []shutdownFunc

	shutdown := func(ctx context.Context) error {
		var errs []error

		for _, fn := range shutdowns {
			errs = append(errs, fn(ctx))
		}

		return errors.Join(errs...)
	}

	for _, setup := range []func(context.Context, *sdkresource.Resource) (shutdownFunc, error){
		setupTracer,
		setupMeter,
		setupLogger,
	} {
		fn, err := setup(ctx, resource)

		if err != nil {
			shutdown(ctx)
			return nil, err
		}

		shutdowns = append(shutdowns, fn)
	}

	return shutdown, nil
}

// grpcProtocol reports whether the OTLP exporter of a signal should use gRPC
// instead of the default http/protobuf.
func grpcProtocol(signal string) bool {
	for _, key := range []string{
		"OTEL_EXPORTER_OTLP_" + strings.ToUpper(signal) + "_PROTOCOL",
		"OTEL_EXPORTER_OTLP_PROTOCOL",
	} {
		if v := strings.ToLower(os.Getenv(key)); v != "" {
			return v == "grpc"
		}
	}

	return false
}

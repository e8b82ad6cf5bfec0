package otel

import (
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/misc"
)

const instrumentationName = "github.com/adrianliechti/emailbison-mcp"

var (
	EnableDebug     = false
	EnableTelemetry = false
)

func init() {
	EnableDebug = misc.Truthy(os.Getenv("DEBUG"))
	EnableTelemetry = misc.Truthy(os.Getenv("TELEMETRY"))
}

type Observable interface {
	otelSetup()
}

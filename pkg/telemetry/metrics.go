package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// InstrumentationName scopes every tracer and meter created by this module.
const InstrumentationName = "github.com/ghuser/organcare"

// Metric names. Prometheus exposes them with dots replaced by underscores.
const (
	MetricMutations       = "organcare.mutations"
	MetricGateSubmissions = "organcare.gate.submissions"
	MetricOrgans          = "organcare.organs"
	MetricEventsHandled   = "organcare.events.handled"
)

// Meter returns the module meter from the global provider. Before Setup runs
// it delegates to a no-op meter, so instruments can be created at any time.
func Meter() metric.Meter {
	return otel.Meter(InstrumentationName)
}

// NewCounter creates a module counter. A failure yields a no-op counter and
// the error, so callers can log and carry on.
func NewCounter(name, description string) (metric.Int64Counter, error) {
	c, err := Meter().Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		return noop.Int64Counter{}, err
	}
	return c, nil
}

// ObserveOrgans registers the organcare.organs gauge, labelled status=up_to_date
// and status=pending. counts runs at every collection. Unregister the returned
// registration when its source is closed.
func ObserveOrgans(counts func() (upToDate, pending int64)) (metric.Registration, error) {
	m := Meter()
	gauge, err := m.Int64ObservableGauge(MetricOrgans,
		metric.WithDescription("Organs by maintenance status"))
	if err != nil {
		return nil, err
	}
	upToDateAttrs := metric.WithAttributes(attribute.String("status", "up_to_date"))
	pendingAttrs := metric.WithAttributes(attribute.String("status", "pending"))

	return m.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		upToDate, pending := counts()
		o.ObserveInt64(gauge, upToDate, upToDateAttrs)
		o.ObserveInt64(gauge, pending, pendingAttrs)
		return nil
	}, gauge)
}

// Package telemetry instruments the campaign cycle through the OpenTelemetry
// metric API. It records campaigns created, recommendations served (with
// batch sizes by recommender), and measurements added.
//
// The package uses the global meter provider: without an SDK installed by
// the host process every instrument is a no-op, so the library never forces
// an observability stack on its users.
package telemetry

package internal

import "expvar"

var (
	requestsTotal    = expvar.NewMap("hookrelay_requests_total")
	parseErrors      = expvar.NewMap("hookrelay_parse_errors_total")
	renderedLines    = expvar.NewMap("hookrelay_rendered_lines_total")
	suppressedEvents = expvar.NewMap("hookrelay_suppressed_events_total")
	publishErrors    = expvar.NewMap("hookrelay_publish_errors_total")
	shortenFailures  = expvar.NewInt("hookrelay_shorten_failures_total")
)

func IncRequest(event string) {
	requestsTotal.Add(event, 1)
}

func IncParseError(event string) {
	parseErrors.Add(event, 1)
}

func AddRenderedLines(event string, n int) {
	renderedLines.Add(event, int64(n))
}

// IncSuppressedEvent counts events that decoded fine but rendered nothing,
// whether filtered out or simply unknown.
func IncSuppressedEvent(event string) {
	suppressedEvents.Add(event, 1)
}

func IncPublishError(topic string) {
	publishErrors.Add(topic, 1)
}

func IncShortenFailure() {
	shortenFailures.Add(1)
}

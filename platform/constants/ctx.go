// Description: Delimiters and reserved names shared by the resolver packages.
package constants

const (
	// PlaceholderPrefix opens a placeholder token, e.g. ${name}.
	PlaceholderPrefix = "${"

	// PlaceholderSuffix closes a placeholder token.
	PlaceholderSuffix = "}"

	// DefaultSeparator splits a placeholder body into key and default text.
	DefaultSeparator = ":"

	// ExpressionPrefix opens an expression token, e.g. #{a + b}.
	ExpressionPrefix = "#{"

	// ExpressionSuffix closes an expression token.
	ExpressionSuffix = "}"

	// ConfigProperty is the reserved template property holding a definition's JSON predicate data.
	ConfigProperty = "__config__"
)

const (
	// MeterName is the OpenTelemetry instrumentation scope of the resolver.
	MeterName = "polytemplate"

	// MetricResolveCount counts Resolve calls.
	MetricResolveCount = "polytemplate.resolve.count"

	// MetricResolveDuration records Resolve latency in milliseconds.
	MetricResolveDuration = "polytemplate.resolve.duration_ms"

	// MetricExpressionCache counts expression cache lookups, split by hit.
	MetricExpressionCache = "polytemplate.expression.cache"
)

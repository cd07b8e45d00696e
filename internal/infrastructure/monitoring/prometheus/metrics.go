package prometheus

// AppMetrics holds all engine metrics.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Requirement resolution
	ResolutionsTotal    CounterVec
	ResolutionDuration  HistogramVec
	ResolutionCacheHits CounterVec
	ResolutionCacheMiss CounterVec

	// Timeline & feasibility
	TimelinesComputedTotal   CounterVec
	FeasibilityChecksTotal   CounterVec
	FeasibilityCheckDuration HistogramVec
	RiskLevelsTotal          CounterVec

	// Application tracking
	TransitionsTotal         CounterVec
	TransitionConflictsTotal CounterVec
	MilestoneRecomputesTotal CounterVec
	EventsPublishedTotal     CounterVec

	// Infrastructure
	DBQueryDuration   HistogramVec
	HealthCheckStatus GaugeVec
}

// Default buckets
var (
	DefaultHTTPDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultDBDurationBuckets   = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5}
)

// NewAppMetrics registers all metrics and returns the AppMetrics struct.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	// HTTP
	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "Active HTTP requests", "method", "path")

	// Requirement resolution
	m.ResolutionsTotal = collector.RegisterCounter("requirement_resolutions_total", "Requirement lookups", "result")
	m.ResolutionDuration = collector.RegisterHistogram("requirement_resolution_duration_seconds", "Requirement lookup duration", DefaultDBDurationBuckets, "result")
	m.ResolutionCacheHits = collector.RegisterCounter("requirement_cache_hits_total", "Requirement cache hits")
	m.ResolutionCacheMiss = collector.RegisterCounter("requirement_cache_misses_total", "Requirement cache misses")

	// Timeline & feasibility
	m.TimelinesComputedTotal = collector.RegisterCounter("timelines_computed_total", "Timelines computed", "visa_type")
	m.FeasibilityChecksTotal = collector.RegisterCounter("feasibility_checks_total", "Feasibility checks", "scope", "status")
	m.FeasibilityCheckDuration = collector.RegisterHistogram("feasibility_check_duration_seconds", "Feasibility check duration", DefaultHTTPDurationBuckets, "scope")
	m.RiskLevelsTotal = collector.RegisterCounter("risk_levels_total", "Risk classifications by level", "scheme", "level")

	// Application tracking
	m.TransitionsTotal = collector.RegisterCounter("application_transitions_total", "Application status transitions", "from", "to", "result")
	m.TransitionConflictsTotal = collector.RegisterCounter("application_transition_conflicts_total", "Optimistic lock conflicts")
	m.MilestoneRecomputesTotal = collector.RegisterCounter("milestone_recomputes_total", "Milestone recomputations")
	m.EventsPublishedTotal = collector.RegisterCounter("events_published_total", "Events published to the bus", "topic", "result")

	// Infrastructure
	m.DBQueryDuration = collector.RegisterHistogram("db_query_duration_seconds", "Database query duration", DefaultDBDurationBuckets, "query")
	m.HealthCheckStatus = collector.RegisterGauge("health_check_status", "Health check status per dependency (1 healthy, 0 unhealthy)", "dependency")

	return m
}

//Personal.AI order the ending

// Package iometrics registers Prometheus metrics of degportal.
package iometrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes of a document fetch.
const (
	FetchNetwork = "network"
	FetchFile    = "file"
	FetchCache   = "cache"
	FetchFailed  = "failed"
)

var (
	DocumentFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "degportal_document_fetches_total",
		Help: "The total number of catalog document fetches",
	}, []string{"document", "outcome"})

	DocumentFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "degportal_document_fetch_duration_seconds",
		Help:    "Duration of catalog document fetches",
		Buckets: prometheus.DefBuckets,
	}, []string{"document"})

	RecordsLoaded = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "degportal_records_loaded",
		Help: "Number of records in the store after merging documents",
	}, []string{"kind"})

	DuplicateRecords = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "degportal_duplicate_records",
		Help: "Number of records dropped because their key repeated",
	}, []string{"kind"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "degportal_http_requests_total",
		Help: "The total number of API requests",
	}, []string{"route", "code"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "degportal_http_request_duration_seconds",
		Help:    "Duration of API requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	Exports = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "degportal_exports_total",
		Help: "The total number of exported tables",
	}, []string{"kind", "format"})
)

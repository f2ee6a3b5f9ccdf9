package main

import (
	"net/http"
	_ "net/http/pprof"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	recordsDecoded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "plopaf",
		Name:      "records_decoded_total",
		Help:      "Alignment records whose cigar was decoded.",
	})
	recordsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "plopaf",
		Name:      "records_skipped_total",
		Help:      "Secondary alignment records skipped by -primary.",
	})
	segmentsEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "plopaf",
		Name:      "segments_emitted_total",
		Help:      "Match segments produced.",
	})

	debugServerOnce sync.Once
)

// startDebugServer serves Go profile data and Prometheus metrics at
// addr, in the background.
func startDebugServer(addr string) {
	debugServerOnce.Do(func() {
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			log.Println(http.ListenAndServe(addr, nil))
		}()
	})
}

package scheme

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes chunk encoder activity as Prometheus collectors.
//
// A single Metrics value may be shared by any number of encoders.
type Metrics struct {
	sectionsEncoded  *prometheus.CounterVec
	chunksEncoded    *prometheus.CounterVec
	payloadBytes     prometheus.Counter
	frameBytes       prometheus.Counter
	compressionRatio prometheus.Histogram
	chunksDecoded    *prometheus.CounterVec
}

// NewMetrics creates the encoder metrics and registers them with reg.
// A nil reg creates unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		sectionsEncoded: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "voxpack",
			Name:      "sections_encoded_total",
			Help:      "Total number of sections encoded, by packed index width in bits.",
		}, []string{"width"}),
		chunksEncoded: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "voxpack",
			Name:      "chunks_encoded_total",
			Help:      "Total number of chunk frames encoded, by compression type.",
		}, []string{"compression"}),
		payloadBytes: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: "voxpack",
			Name:      "chunk_payload_bytes_total",
			Help:      "Total size of uncompressed chunk payloads in bytes.",
		}),
		frameBytes: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: "voxpack",
			Name:      "chunk_frame_bytes_total",
			Help:      "Total size of encoded chunk frames in bytes, headers included.",
		}),
		compressionRatio: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Namespace: "voxpack",
			Name:      "chunk_compression_ratio",
			Help:      "Raw section bytes divided by frame bytes, per chunk.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		chunksDecoded: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "voxpack",
			Name:      "chunks_decoded_total",
			Help:      "Total number of chunk frames decoded, by outcome.",
		}, []string{"status"}),
	}
}

var widthLabels = [...]string{"0", "1", "2", "3", "4", "5", "6", "7", "8"}

func (m *Metrics) observeChunk(compression string, s *Stats) {
	if m == nil {
		return
	}

	for width, n := range s.SectionsByWidth {
		if n > 0 {
			m.sectionsEncoded.WithLabelValues(widthLabels[width]).Add(float64(n))
		}
	}

	m.chunksEncoded.WithLabelValues(compression).Inc()
	m.payloadBytes.Add(float64(s.PackedBytes))
	m.frameBytes.Add(float64(s.FrameBytes))
	if s.FrameBytes > 0 {
		m.compressionRatio.Observe(s.Ratio())
	}
}

func (m *Metrics) observeDecode(err error) {
	if m == nil {
		return
	}

	status := "success"
	if err != nil {
		status = "failure"
	}
	m.chunksDecoded.WithLabelValues(status).Inc()
}

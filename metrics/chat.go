package metrics

import (
	"encoding/json"
	"time"

	"github.com/midc-land-bank/ragserver/common/logger"
)

// ChatMetrics records one chat request end to end. Marshalled to JSON
// and written to the log so latency and rewrite behavior can be
// analyzed offline.
type ChatMetrics struct {
	QueryID   string    `json:"query_id"`
	SessionID string    `json:"session_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`

	Query                   string `json:"query"`
	RewrittenQuery          string `json:"rewritten_query,omitempty"`
	RewriteLatencyMs        int64  `json:"rewrite_latency_ms"`
	ImprovementCount        int    `json:"improvement_count"`
	TransliterationDetected bool   `json:"transliteration_detected"`
	RegionalLanguage        bool   `json:"regional_language"`
	CacheHit                bool   `json:"cache_hit"`
	Greeting                bool   `json:"greeting"`

	RetrievedCount int     `json:"retrieved_count"`
	Confidence     float64 `json:"confidence"`

	GenerationLatencyMs int64 `json:"generation_latency_ms,omitempty"`
	TotalLatencyMs      int64 `json:"total_latency_ms"`

	Success  bool   `json:"success"`
	ErrorMsg string `json:"error_msg,omitempty"`
}

// Log writes the metrics record as JSON.
func (m *ChatMetrics) Log() {
	data, err := json.Marshal(m)
	if err != nil {
		logger.Warnf("failed to marshal chat metrics: %v", err)
		return
	}
	logger.Infof("[CHAT_METRICS] %s", string(data))
}

package llm

import "github.com/rs/zerolog"

// LLMCallEvent records metadata about a single LLM invocation.
type LLMCallEvent struct {
	Task      TaskType
	Model     string
	LatencyMs int64
	Success   bool
	ErrorCode string
	Attempts  int
}

// Observer receives events about LLM calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes LLM call events to a zerolog logger.
type LogObserver struct {
	log zerolog.Logger
}

// NewLogObserver creates an Observer that logs events through log.
func NewLogObserver(log zerolog.Logger) *LogObserver {
	return &LogObserver{log: log.With().Str("component", "llm").Logger()}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	ev := o.log.Info()
	if !event.Success {
		ev = o.log.Warn().Str("error_code", event.ErrorCode)
	}
	ev.Str("task", string(event.Task)).
		Str("model", event.Model).
		Int64("latency_ms", event.LatencyMs).
		Int("attempts", event.Attempts).
		Bool("success", event.Success).
		Msg("llm_call")
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}

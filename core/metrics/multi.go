package metrics

// MultiSink fans simulation metrics out to multiple sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSimulation forwards the record to all sinks, returning the first error encountered.
func (m *MultiSink) RecordSimulation(rec SimulationRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordSimulation(rec); err != nil {
			return err
		}
	}
	return nil
}

// RecordTailUtilization forwards tail snapshots to sinks that support them.
func (m *MultiSink) RecordTailUtilization(tails []TailUtilization) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(TailUtilizationRecorder); ok {
			if err := rec.RecordTailUtilization(tails); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordSimulationFailure forwards failure events.
func (m *MultiSink) RecordSimulationFailure(ev SimulationFailure) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(FailureRecorder); ok {
			if err := rec.RecordSimulationFailure(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordRouteFetch forwards route source reads.
func (m *MultiSink) RecordRouteFetch(ev RouteFetch) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(RouteFetchRecorder); ok {
			if err := rec.RecordRouteFetch(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close closes every sink that holds resources.
func (m *MultiSink) Close() {
	for _, s := range m.Sinks {
		if c, ok := s.(interface{ Close() }); ok {
			c.Close()
		}
	}
}

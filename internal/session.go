package internal

// SessionRow is a saved session as listed by the store
type SessionRow struct {
	ID            int64  `json:"id" yaml:"id"`
	CarModel      string `json:"car_model" yaml:"car_model"`
	TrackName     string `json:"track_name" yaml:"track_name"`
	DateTime      string `json:"date_time" yaml:"date_time"`
	BestLapMs     int64  `json:"best_lap_ms" yaml:"best_lap_ms"`
	TheoreticalMs int64  `json:"theoretical_ms" yaml:"theoretical_ms"`
}

// StoredSession is a saved session together with all of its laps
type StoredSession struct {
	Session SessionRow  `json:"session" yaml:"session"`
	Laps    []LapRecord `json:"laps" yaml:"laps"`
}

// Stats recomputes the aggregates of a stored session from its laps
func (s *StoredSession) Stats() SessionStats {
	return ComputeStats(s.Laps)
}

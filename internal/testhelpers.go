package internal

// CreateTestLap creates a LapRecord with the validity flag derived from time and cuts
func CreateTestLap(lapNumber int, timeMs int64, sectors []int64, cuts int) LapRecord {
	return LapRecord{
		LapNumber: lapNumber,
		TimeMs:    timeMs,
		Sectors:   sectors,
		Cuts:      cuts,
		IsValid:   IsValidLap(timeMs, cuts),
	}
}

// CreateTestStoredSession creates a stored session with a mix of valid and invalid laps
func CreateTestStoredSession(id int64) *StoredSession {
	return &StoredSession{
		Session: SessionRow{
			ID:            id,
			CarModel:      "Bmw M3 E30",
			TrackName:     "Monza",
			DateTime:      "2024-05-01T18:30:00",
			BestLapMs:     109500,
			TheoreticalMs: 109000,
		},
		Laps: []LapRecord{
			CreateTestLap(1, 112000, []int64{36000, 40000, 36000}, 0),
			CreateTestLap(2, 109500, []int64{35500, 38500, 35500}, 0),
			CreateTestLap(3, 108000, []int64{35000, 38000, 35000}, 2),
			CreateTestLap(4, 110000, []int64{35200, 39000, 35800}, 0),
		},
	}
}

// CreateTestSummary creates a summary as produced by analyzing a simple session
func CreateTestSummary(track, car, dateTime string, laps []LapRecord) *SessionSummary {
	summary := NewSessionSummary()
	summary.Document = &SessionDocument{
		Track:   &track,
		Players: []Player{{Car: &car}},
	}
	summary.AllLaps = laps
	summary.SessionDateTime = dateTime

	stats := ComputeStats(laps)
	summary.BestLapMs = stats.BestLapMs
	summary.TheoreticalMs = stats.TheoreticalMs
	return summary
}

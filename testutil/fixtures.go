package testutil

import (
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// LapFixture describes one lap of a generated session log. Nil Sectors omits
// the field and a negative Cuts omits the cuts field.
type LapFixture struct {
	Time    float64
	Sectors []float64
	Cuts    int
}

// SessionFixture describes a generated session log
type SessionFixture struct {
	Track string
	Car   string
	// DTV is the quick drive timestamp; empty omits the __quickDrive field
	DTV  string
	Laps []LapFixture
}

// SessionJSON renders a session log in the simulator's race_out layout
func SessionJSON(t *testing.T, fx SessionFixture) []byte {
	t.Helper()

	laps := make([]map[string]interface{}, 0, len(fx.Laps))
	for i, lap := range fx.Laps {
		entry := map[string]interface{}{
			"car":  0,
			"lap":  i,
			"time": lap.Time,
			"tyre": "M",
		}
		if lap.Sectors != nil {
			entry["sectors"] = lap.Sectors
		}
		if lap.Cuts >= 0 {
			entry["cuts"] = lap.Cuts
		}
		laps = append(laps, entry)
	}

	doc := map[string]interface{}{
		"track":   fx.Track,
		"players": []map[string]interface{}{{"name": "Driver", "car": fx.Car, "skin": "red"}},
		"sessions": []map[string]interface{}{
			{"name": "Practice", "type": 1, "laps": laps},
		},
	}
	if fx.DTV != "" {
		qd, err := json.Marshal(map[string]interface{}{"dtv": fx.DTV, "mode": "practice"})
		if err != nil {
			t.Fatalf("Failed to marshal quick drive: %v", err)
		}
		doc["__quickDrive"] = string(qd)
	}

	return JSONMarshal(t, doc)
}

// WriteSessionFile writes a generated session log into dir
func WriteSessionFile(t *testing.T, dir, name string, fx SessionFixture) string {
	t.Helper()
	return WriteFile(t, dir, name, SessionJSON(t, fx))
}

// TempDatabasePath returns a database path inside a fresh temporary directory
func TempDatabasePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(CreateTempDir(t), "sim_data.db")
}

// CreateLegacyDatabase creates a database in the layout written by the first
// release: REAL time columns and a laps table without sector_3.
func CreateLegacyDatabase(t *testing.T, dbPath string) {
	t.Helper()

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	stmts := []string{
		`CREATE TABLE sessions (
			id INTEGER PRIMARY KEY,
			car_model TEXT NOT NULL,
			track_name TEXT NOT NULL,
			date_time TEXT NOT NULL DEFAULT (strftime('%Y-%m-%d %H:%M:%S', 'now')),
			best_lap_time REAL,
			theoretical_lap_time REAL
		)`,
		`CREATE TABLE laps (
			id INTEGER PRIMARY KEY,
			session_id INTEGER,
			lap_number INTEGER NOT NULL,
			lap_time REAL NOT NULL,
			sector_1 REAL,
			sector_2 REAL,
			cuts INTEGER,
			is_valid INTEGER,
			FOREIGN KEY (session_id) REFERENCES sessions (id)
		)`,
		`INSERT INTO sessions (id, car_model, track_name, date_time, best_lap_time, theoretical_lap_time)
		 VALUES (1, 'Abarth500', 'Magione', '2023-01-01 10:00:00', 80000.0, 79000.0)`,
		`INSERT INTO laps (session_id, lap_number, lap_time, sector_1, sector_2, cuts, is_valid)
		 VALUES (1, 1, 80000.0, 40000.0, 39000.0, 0, 1)`,
		`INSERT INTO laps (session_id, lap_number, lap_time, sector_1, sector_2, cuts, is_valid)
		 VALUES (1, 2, 1000000.0, 40000.75, 960000.0, 2, 0)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to create legacy schema: %v", err)
		}
	}
}

package internal

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the layout of stored session timestamps
const TimestampLayout = "2006-01-02T15:04:05"

// Store persists analyzed sessions in SQLite
type Store struct {
	db *sql.DB
}

type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

// NewStore creates a new Store instance on an already migrated database
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// OpenStore opens the database at path and returns a Store for it
func OpenStore(path string) (*Store, error) {
	db, err := OpenDatabase(path)
	if err != nil {
		return nil, &StoreError{Op: "open", Err: err}
	}
	return NewStore(db), nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection
func (s *Store) Ping() error {
	return s.db.Ping()
}

// CreateSession inserts a session row and returns its id. An empty timestamp
// records the current local time.
func (s *Store) CreateSession(car, track string, bestLapMs, theoreticalMs int64, timestamp string) (int64, error) {
	return createSession(s.db, car, track, bestLapMs, theoreticalMs, timestamp)
}

func createSession(ex execer, car, track string, bestLapMs, theoreticalMs int64, timestamp string) (int64, error) {
	if timestamp == "" {
		timestamp = time.Now().Format(TimestampLayout)
	}

	res, err := ex.Exec(`
		INSERT INTO sessions (car_model, track_name, best_lap_time, theoretical_lap_time, date_time)
		VALUES (?, ?, ?, ?, ?)`,
		car, track, bestLapMs, theoreticalMs, timestamp)
	if err != nil {
		return 0, &StoreError{Op: "insert", Err: fmt.Errorf("failed to insert session: %w", err)}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, &StoreError{Op: "insert", Err: fmt.Errorf("failed to read session id: %w", err)}
	}
	return id, nil
}

// InsertLaps stores every lap of a session with the validity flag as given
func (s *Store) InsertLaps(sessionID int64, laps []LapRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return &StoreError{Op: "insert", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertLaps(tx, sessionID, laps); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return &StoreError{Op: "insert", Err: fmt.Errorf("commit failed: %w", err)}
	}
	return nil
}

func insertLaps(tx *sql.Tx, sessionID int64, laps []LapRecord) error {
	stmt, err := tx.Prepare(`
		INSERT INTO laps (session_id, lap_number, lap_time, sector_1, sector_2, sector_3, cuts, is_valid)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return &StoreError{Op: "insert", Err: fmt.Errorf("failed to prepare lap insert: %w", err)}
	}
	defer stmt.Close()

	for _, lap := range laps {
		var sectors [maxSectors]interface{}
		for i := range sectors {
			if i < len(lap.Sectors) {
				sectors[i] = lap.Sectors[i]
			}
		}
		valid := 0
		if lap.IsValid {
			valid = 1
		}
		if _, err := stmt.Exec(sessionID, lap.LapNumber, lap.TimeMs, sectors[0], sectors[1], sectors[2], lap.Cuts, valid); err != nil {
			return &StoreError{Op: "insert", Err: fmt.Errorf("failed to insert lap %d: %w", lap.LapNumber, err)}
		}
	}
	return nil
}

// SaveSummary stores an analyzed session and all of its laps in one transaction
func (s *Store) SaveSummary(summary *SessionSummary) (int64, error) {
	if !summary.CanSave() {
		if summary == nil || len(summary.AllLaps) == 0 {
			return 0, fmt.Errorf("%w: %w", ErrNothingToSave, ErrNoLapData)
		}
		return 0, fmt.Errorf("%w: %w", ErrNothingToSave, ErrNoValidLaps)
	}

	car := NormalizeName(summary.Document.CarName())
	track := NormalizeName(summary.Document.TrackName())

	tx, err := s.db.Begin()
	if err != nil {
		return 0, &StoreError{Op: "insert", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	id, err := createSession(tx, car, track, summary.BestLapMs, summary.TheoreticalMs, summary.SessionDateTime)
	if err != nil {
		return 0, err
	}
	if err := insertLaps(tx, id, summary.AllLaps); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, &StoreError{Op: "insert", Err: fmt.Errorf("commit failed: %w", err)}
	}

	LogDebug("Saved session %d (%s @ %s) with %d lap(s)", id, car, track, len(summary.AllLaps))
	return id, nil
}

// Time columns are cast because databases created by earlier releases declare them REAL
const selectSessionSQL = `SELECT id, car_model, track_name, date_time,
	CAST(best_lap_time AS INTEGER), CAST(theoretical_lap_time AS INTEGER) FROM sessions`

// ListSessions returns saved sessions, newest first. Empty filters match everything.
func (s *Store) ListSessions(carFilter, trackFilter string) ([]SessionRow, error) {
	var (
		where []string
		args  []interface{}
	)
	if carFilter != "" {
		where = append(where, "car_model = ?")
		args = append(args, carFilter)
	}
	if trackFilter != "" {
		where = append(where, "track_name = ?")
		args = append(args, trackFilter)
	}

	query := selectSessionSQL
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date_time DESC, id DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, &StoreError{Op: "query", Err: fmt.Errorf("query failed: %w", err)}
	}
	defer rows.Close()

	sessions := make([]SessionRow, 0)
	for rows.Next() {
		row, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, row)
	}

	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "query", Err: fmt.Errorf("rows iteration error: %w", err)}
	}

	return sessions, nil
}

// GetSession returns a single saved session
func (s *Store) GetSession(id int64) (*SessionRow, error) {
	row, err := scanSession(s.db.QueryRow(selectSessionSQL+" WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", ErrSessionNotFound, id)
		}
		return nil, err
	}
	return &row, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(sc scanner) (SessionRow, error) {
	var (
		row         SessionRow
		best, theor sql.NullInt64
	)
	if err := sc.Scan(&row.ID, &row.CarModel, &row.TrackName, &row.DateTime, &best, &theor); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return row, err
		}
		return row, &StoreError{Op: "query", Err: fmt.Errorf("scan failed: %w", err)}
	}
	row.BestLapMs = nullToSentinel(best)
	row.TheoreticalMs = nullToSentinel(theor)
	return row, nil
}

func nullToSentinel(v sql.NullInt64) int64 {
	if !v.Valid {
		return NotRecorded
	}
	return v.Int64
}

// ListLaps returns the laps of a session ordered by lap number
func (s *Store) ListLaps(sessionID int64) ([]LapRecord, error) {
	rows, err := s.db.Query(`
		SELECT lap_number, CAST(lap_time AS INTEGER),
			CAST(sector_1 AS INTEGER), CAST(sector_2 AS INTEGER), CAST(sector_3 AS INTEGER),
			CAST(cuts AS INTEGER), CAST(is_valid AS INTEGER)
		FROM laps
		WHERE session_id = ?
		ORDER BY lap_number ASC`, sessionID)
	if err != nil {
		return nil, &StoreError{Op: "query", Err: fmt.Errorf("query failed: %w", err)}
	}
	defer rows.Close()

	laps := make([]LapRecord, 0)
	for rows.Next() {
		var (
			lap     LapRecord
			sectors [maxSectors]sql.NullInt64
			cuts    sql.NullInt64
			valid   int
		)
		if err := rows.Scan(&lap.LapNumber, &lap.TimeMs, &sectors[0], &sectors[1], &sectors[2], &cuts, &valid); err != nil {
			return nil, &StoreError{Op: "query", Err: fmt.Errorf("scan failed: %w", err)}
		}

		n := 0
		for i, sector := range sectors {
			if sector.Valid {
				n = i + 1
			}
		}
		lap.Sectors = make([]int64, n)
		for i := 0; i < n; i++ {
			lap.Sectors[i] = nullToSentinel(sectors[i])
		}
		lap.Cuts = int(cuts.Int64)
		lap.IsValid = valid != 0

		laps = append(laps, lap)
	}

	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "query", Err: fmt.Errorf("rows iteration error: %w", err)}
	}

	return laps, nil
}

// LoadSession returns a saved session with all of its laps
func (s *Store) LoadSession(id int64) (*StoredSession, error) {
	row, err := s.GetSession(id)
	if err != nil {
		return nil, err
	}
	laps, err := s.ListLaps(id)
	if err != nil {
		return nil, err
	}
	return &StoredSession{Session: *row, Laps: laps}, nil
}

// DeleteSession removes a session and all of its laps. Either both go or neither does.
func (s *Store) DeleteSession(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return &StoreError{Op: "delete", Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM laps WHERE session_id = ?", id); err != nil {
		return &StoreError{Op: "delete", Err: fmt.Errorf("failed to delete laps: %w", err)}
	}

	res, err := tx.Exec("DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return &StoreError{Op: "delete", Err: fmt.Errorf("failed to delete session: %w", err)}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &StoreError{Op: "delete", Err: err}
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrSessionNotFound, id)
	}

	if err := tx.Commit(); err != nil {
		return &StoreError{Op: "delete", Err: fmt.Errorf("commit failed: %w", err)}
	}
	return nil
}

// SessionCount returns the number of saved sessions
func (s *Store) SessionCount() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count); err != nil {
		return 0, &StoreError{Op: "query", Err: err}
	}
	return count, nil
}

// DistinctCarsAndTracks returns the car and track names usable as list filters
func (s *Store) DistinctCarsAndTracks() (cars, tracks []string, err error) {
	cars, err = s.distinct("car_model")
	if err != nil {
		return nil, nil, err
	}
	tracks, err = s.distinct("track_name")
	if err != nil {
		return nil, nil, err
	}
	return cars, tracks, nil
}

func (s *Store) distinct(column string) ([]string, error) {
	rows, err := s.db.Query(fmt.Sprintf("SELECT DISTINCT %[1]s FROM sessions ORDER BY %[1]s", column))
	if err != nil {
		return nil, &StoreError{Op: "query", Err: fmt.Errorf("query failed: %w", err)}
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, &StoreError{Op: "query", Err: fmt.Errorf("scan failed: %w", err)}
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "query", Err: fmt.Errorf("rows iteration error: %w", err)}
	}
	return values, nil
}

package internal

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func float64Ptr(v float64) *float64 { return &v }

func TestNewLapRecord(t *testing.T) {
	tests := []struct {
		name string
		raw  RawLap
		want LapRecord
	}{
		{
			name: "complete valid lap",
			raw:  RawLap{Time: float64Ptr(90000), Sectors: []float64{30000, 30000, 30000}, Cuts: float64Ptr(0)},
			want: LapRecord{LapNumber: 1, TimeMs: 90000, Sectors: []int64{30000, 30000, 30000}, IsValid: true},
		},
		{
			name: "missing fields use defaults",
			raw:  RawLap{},
			want: LapRecord{LapNumber: 1, TimeMs: NotRecorded, Sectors: []int64{NotRecorded, NotRecorded, NotRecorded}},
		},
		{
			name: "cuts invalidate a timed lap",
			raw:  RawLap{Time: float64Ptr(90000), Sectors: []float64{30000, 30000}, Cuts: float64Ptr(2)},
			want: LapRecord{LapNumber: 1, TimeMs: 90000, Sectors: []int64{30000, 30000}, Cuts: 2},
		},
		{
			name: "fractional cuts count whole cuts",
			raw:  RawLap{Time: float64Ptr(90000), Sectors: []float64{30000, 30000, 30000}, Cuts: float64Ptr(1.0)},
			want: LapRecord{LapNumber: 1, TimeMs: 90000, Sectors: []int64{30000, 30000, 30000}, Cuts: 1},
		},
		{
			name: "extra sectors are dropped",
			raw:  RawLap{Time: float64Ptr(90000), Sectors: []float64{20000, 20000, 20000, 30000}},
			want: LapRecord{LapNumber: 1, TimeMs: 90000, Sectors: []int64{20000, 20000, 20000}, IsValid: true},
		},
		{
			name: "incomplete sectors do not affect validity",
			raw:  RawLap{Time: float64Ptr(90000), Sectors: []float64{-1, 0}},
			want: LapRecord{LapNumber: 1, TimeMs: 90000, Sectors: []int64{-1, 0}, IsValid: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewLapRecord(1, tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NewLapRecord() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestIsValidLap(t *testing.T) {
	tests := []struct {
		timeMs int64
		cuts   int
		want   bool
	}{
		{timeMs: 90000, cuts: 0, want: true},
		{timeMs: 1, cuts: 0, want: true},
		{timeMs: 0, cuts: 0, want: false},
		{timeMs: -1, cuts: 0, want: false},
		{timeMs: 90000, cuts: 1, want: false},
		{timeMs: -1, cuts: 5, want: false},
	}

	for _, tt := range tests {
		if got := IsValidLap(tt.timeMs, tt.cuts); got != tt.want {
			t.Errorf("IsValidLap(%d, %d) = %v, want %v", tt.timeMs, tt.cuts, got, tt.want)
		}
	}
}

func TestLapRecord_ValidityTag(t *testing.T) {
	tests := []struct {
		name string
		lap  LapRecord
		want string
	}{
		{name: "valid", lap: CreateTestLap(1, 90000, nil, 0), want: "YES"},
		{name: "cuts", lap: CreateTestLap(1, 90000, nil, 3), want: "CUTS (3)"},
		{name: "cuts take precedence over missing time", lap: CreateTestLap(1, -1, nil, 1), want: "CUTS (1)"},
		{name: "missing time", lap: CreateTestLap(1, -1, nil, 0), want: "INVALID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.lap.ValidityTag(); got != tt.want {
				t.Errorf("ValidityTag() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLapRecord_Sector(t *testing.T) {
	lap := CreateTestLap(1, 90000, []int64{30000, 0, -1}, 0)

	for i, want := range []int64{30000, NotRecorded, NotRecorded, NotRecorded, NotRecorded} {
		if got := lap.Sector(i); got != want {
			t.Errorf("Sector(%d) = %d, want %d", i, got, want)
		}
	}
	if got := lap.Sector(-1); got != NotRecorded {
		t.Errorf("Sector(-1) = %d, want %d", got, NotRecorded)
	}
}

func TestDecodeSessionDocument(t *testing.T) {
	doc, err := DecodeSessionDocument(strings.NewReader(`{
		"track": "ks_monza",
		"players": [{"name": "Driver", "car": "ks_audi_r8_lms"}],
		"__quickDrive": "{\"dtv\": \"2024-01-01T10:00:00\"}",
		"sessions": [{"name": "Practice", "laps": [{"time": 110000, "sectors": [35000, 40000, 35000], "cuts": 0}]}],
		"extras": []
	}`))
	if err != nil {
		t.Fatalf("DecodeSessionDocument() error = %v", err)
	}

	if doc.TrackName() != "ks_monza" {
		t.Errorf("TrackName() = %q, want ks_monza", doc.TrackName())
	}
	if doc.CarName() != "ks_audi_r8_lms" {
		t.Errorf("CarName() = %q, want ks_audi_r8_lms", doc.CarName())
	}
	if text, ok := doc.QuickDriveText(); !ok || text != `{"dtv": "2024-01-01T10:00:00"}` {
		t.Errorf("QuickDriveText() = %q, %v, want embedded document", text, ok)
	}
	if len(doc.Laps()) != 1 {
		t.Errorf("Laps() has %d laps, want 1", len(doc.Laps()))
	}

	_, err = DecodeSessionDocument(strings.NewReader(`[1, 2, 3]`))
	if !errors.Is(err, ErrMalformedDocument) {
		t.Errorf("DecodeSessionDocument(array) error = %v, want ErrMalformedDocument", err)
	}
}

func TestSessionDocument_Defaults(t *testing.T) {
	var nilDoc *SessionDocument
	if nilDoc.TrackName() != DefaultTrack || nilDoc.CarName() != DefaultCar || nilDoc.Laps() != nil {
		t.Error("nil document should yield defaults")
	}

	doc := &SessionDocument{Players: []Player{{}}}
	if doc.CarName() != DefaultCar {
		t.Errorf("CarName() = %q, want %q", doc.CarName(), DefaultCar)
	}
}

func TestSessionSummary_CanSave(t *testing.T) {
	var nilSummary *SessionSummary
	if nilSummary.CanSave() {
		t.Error("nil summary should not be savable")
	}

	summary := NewSessionSummary()
	if summary.CanSave() {
		t.Error("default summary should not be savable")
	}

	summary.BestLapMs = 90000
	if !summary.CanSave() {
		t.Error("summary with a best lap should be savable")
	}
}

func TestSessionDocument_QuickDriveText(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "string", input: `{"__quickDrive": "{}"}`, want: "{}", wantOK: true},
		{name: "absent", input: `{}`},
		{name: "null", input: `{"__quickDrive": null}`},
		{name: "object", input: `{"__quickDrive": {"dtv": "2024-01-01T10:00:00"}}`},
		{name: "number", input: `{"__quickDrive": 42}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := DecodeSessionDocument(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("DecodeSessionDocument() error = %v", err)
			}
			got, ok := doc.QuickDriveText()
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("QuickDriveText() = %q, %v, want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDecodeSessionDocument_FloatCuts(t *testing.T) {
	doc, err := DecodeSessionDocument(strings.NewReader(`{"sessions": [{"laps": [{"time": 90000, "cuts": 1.0}]}]}`))
	if err != nil {
		t.Fatalf("DecodeSessionDocument() error = %v", err)
	}
	lap := NewLapRecord(1, doc.Laps()[0])
	if lap.Cuts != 1 || lap.IsValid {
		t.Errorf("NewLapRecord() = %+v, want 1 cut and invalid", lap)
	}
}

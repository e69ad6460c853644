package internal

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// vendorPrefix is prepended by the simulator to first-party content ids
const vendorPrefix = "ks_"

var (
	separatorReplacer = strings.NewReplacer("-", " ", "_", " ")
	titleCaser        = cases.Title(language.English)
)

// NormalizeName turns a content id such as "ks_nurburgring-gp" into a display
// name ("Nurburgring Gp"). The persistence layer stores the same form.
func NormalizeName(raw string) string {
	name := strings.ReplaceAll(raw, vendorPrefix, "")
	name = separatorReplacer.Replace(name)
	return titleCaser.String(name)
}

type quickDrive struct {
	DTV *string `json:"dtv"`
}

// TryParseTimestamp extracts the session timestamp from the embedded quick drive
// document. It returns false on any malformation and never fails otherwise.
func TryParseTimestamp(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}

	var qd quickDrive
	if err := json.Unmarshal([]byte(text), &qd); err != nil {
		LogDebug("Ignoring unparseable quick drive metadata: %v", err)
		return "", false
	}
	if qd.DTV == nil || *qd.DTV == "" {
		return "", false
	}

	ts := truncateTimestamp(*qd.DTV)
	date, clock, ok := strings.Cut(ts, "T")
	if !ok || date == "" || clock == "" {
		return "", false
	}
	return ts, true
}

// truncateTimestamp drops the timezone offset and any fractional seconds
func truncateTimestamp(ts string) string {
	ts = strings.TrimSuffix(ts, "Z")
	if date, clock, ok := strings.Cut(ts, "T"); ok {
		if i := strings.IndexAny(clock, "+-"); i >= 0 {
			clock = clock[:i]
		}
		ts = date + "T" + clock
	}
	if i := strings.Index(ts, "."); i >= 0 {
		ts = ts[:i]
	}
	return ts
}

// SplitTimestamp splits a truncated timestamp into its date and time of day
func SplitTimestamp(ts string) (date, clock string) {
	date, clock, _ = strings.Cut(ts, "T")
	return date, clock
}

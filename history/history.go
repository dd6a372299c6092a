package history

import "time"

// Entry is a diff that was applied successfully.
type Entry struct {
	ID        string    `json:"id"`
	Target    string    `json:"target"`
	Diff      string    `json:"diff"`
	Hunks     int       `json:"hunks"`
	Fallback  int       `json:"fallback"`
	Timestamp time.Time `json:"timestamp"`
}

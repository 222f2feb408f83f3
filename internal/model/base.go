package model

import "github.com/google/uuid"

// ensureID assigns a fresh UUID when the caller did not provide one.
// IDs are generated app-side so the same models work on Postgres and SQLite.
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// All lists every persisted model, in migration order.
func All() []any {
	return []any{
		&User{},
		&Porter{},
		&Location{},
		&Carrier{},
		&CommuteCost{},
		&AttendanceEntry{},
		&Payment{},
		&Activity{},
	}
}

package store

import (
	"gameplan.app/gameplan/core/db"
)

// Store bundles all data access interfaces behind a single factory.
type Store struct {
	Plans PlanStore
}

func New(database *db.DB) *Store {
	return &Store{
		Plans: newPlanStore(database),
	}
}

package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent          RoleType = "STUDENT"
	RolePlacementRep     RoleType = "PLACEMENT_REP"
	RolePlacementOfficer RoleType = "PLACEMENT_OFFICER"
)

// IsStaff reports whether the role may browse the full drive listing.
func (r RoleType) IsStaff() bool {
	return r == RolePlacementRep || r == RolePlacementOfficer
}

// PlacementStatus defines whether a student already holds an offer
type PlacementStatus string

const (
	PlacementStatusPlaced   PlacementStatus = "PLACED"
	PlacementStatusUnplaced PlacementStatus = "UNPLACED"
)

// ApplicationStatus defines the state of a drive application.
// Only APPLIED is produced today; the type exists so richer statuses can be
// added without a schema change.
type ApplicationStatus string

const (
	ApplicationStatusApplied ApplicationStatus = "APPLIED"
)

// RoundStatus defines the state of a selection round
type RoundStatus string

const (
	RoundStatusPending    RoundStatus = "PENDING"
	RoundStatusInProgress RoundStatus = "IN_PROGRESS"
	RoundStatusCompleted  RoundStatus = "COMPLETED"
)

// Actor is the authenticated principal handed into every authorization and
// mutation call. It is built from validated JWT claims by the auth middleware;
// engine code never reads session state on its own.
type Actor struct {
	ID         int64    `json:"id"`
	Role       RoleType `json:"role"`
	Department string   `json:"department"`
}

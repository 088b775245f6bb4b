package models

// RegistrationStatus is the lifecycle status shared by captains, department players and players.
type RegistrationStatus string

const (
	StatusPending  RegistrationStatus = "pending"
	StatusApproved RegistrationStatus = "approved"
	StatusRejected RegistrationStatus = "rejected"
	StatusActive   RegistrationStatus = "active"
	StatusInactive RegistrationStatus = "inactive"
)

// Approve и reject доступны из любого статуса: админ может отклонить уже активную запись.
var registrationTransitions = map[RegistrationStatus][]RegistrationStatus{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusActive, StatusInactive, StatusRejected},
	StatusRejected: {StatusApproved, StatusPending},
	StatusActive:   {StatusInactive, StatusApproved, StatusRejected},
	StatusInactive: {StatusActive, StatusApproved, StatusRejected},
}

func (s RegistrationStatus) Valid() bool {
	_, ok := registrationTransitions[s]
	return ok
}

// CanTransitionTo reports whether s may move to next. Moving to the same status is allowed.
func (s RegistrationStatus) CanTransitionTo(next RegistrationStatus) bool {
	if s == next {
		return next.Valid()
	}
	for _, allowed := range registrationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CanSignIn reports whether an account in this status may obtain a token.
func (s RegistrationStatus) CanSignIn() bool {
	return s == StatusApproved || s == StatusActive
}

// UserRole is the role embedded in issued tokens.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleCaptain UserRole = "captain"
	RolePlayer  UserRole = "player"
)

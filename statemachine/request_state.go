package statemachine

import (
	"errors"

	"helphub-api/models"
)

// Transition defines a valid state change and which role may perform it.
type Transition struct {
	From models.RequestStatus
	To   models.RequestStatus
	Role models.UserRole
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// CSR triages a new request
	{From: models.RequestPending, To: models.RequestAccepted, Role: models.RoleCSR},
	// CSR assigns a volunteer, with or without prior triage
	{From: models.RequestPending, To: models.RequestAssigned, Role: models.RoleCSR},
	{From: models.RequestAccepted, To: models.RequestAssigned, Role: models.RoleCSR},
	// Assigned volunteer starts working
	{From: models.RequestAssigned, To: models.RequestInProgress, Role: models.RoleVolunteer},
	// Assigned volunteer declines, returning the request to the pool
	{From: models.RequestAssigned, To: models.RequestPending, Role: models.RoleVolunteer},
	{From: models.RequestAssigned, To: models.RequestAccepted, Role: models.RoleVolunteer},
	{From: models.RequestInProgress, To: models.RequestPending, Role: models.RoleVolunteer},
	{From: models.RequestInProgress, To: models.RequestAccepted, Role: models.RoleVolunteer},
	// Completion: CSR closes out an assigned request, volunteer closes out
	// their own assigned or in-progress one
	{From: models.RequestAssigned, To: models.RequestCompleted, Role: models.RoleCSR},
	{From: models.RequestAssigned, To: models.RequestCompleted, Role: models.RoleVolunteer},
	{From: models.RequestInProgress, To: models.RequestCompleted, Role: models.RoleVolunteer},
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From models.RequestStatus
	To   models.RequestStatus
	Role models.UserRole
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Role}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.RequestStatus) []models.RequestStatus {
	var nexts []models.RequestStatus
	seen := map[models.RequestStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if the given role may move a request from one state
// to another
func CanTransition(from, to models.RequestStatus, role models.UserRole) error {
	key := transitionKey{From: from, To: to, Role: role}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for role '" + string(role) + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.RequestStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}

package models

// EntityType names the kind of business object an event refers to.
type EntityType string

const (
	EntityClient  EntityType = "client"
	EntityInvoice EntityType = "invoice"
	EntitySystem  EntityType = "system"
)

// EntityTypes lists every accepted entity type.
var EntityTypes = []EntityType{EntityClient, EntityInvoice, EntitySystem}

func (t EntityType) Valid() bool {
	switch t {
	case EntityClient, EntityInvoice, EntitySystem:
		return true
	}
	return false
}

// Action is the verb recorded by an event.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionError  Action = "error"
)

var Actions = []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionError}

func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionError:
		return true
	}
	return false
}

// Status is the outcome of the recorded action.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

var Statuses = []Status{StatusSuccess, StatusFailed}

func (s Status) Valid() bool {
	switch s {
	case StatusSuccess, StatusFailed:
		return true
	}
	return false
}

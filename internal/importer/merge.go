package importer

import (
	"strings"

	"candidate-sync/internal/storage"
)

// IdentityKey is the import-time dedup key of a sheet-sourced candidate.
func IdentityKey(name, phone, position string) string {
	return name + "_" + phone + "_" + position
}

// Action is what the merge engine decided for one incoming row.
type Action int

const (
	ActionCreate Action = iota
	ActionUpdate
	ActionUnchanged
	ActionSkipDeleted
	ActionDuplicate
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionUnchanged:
		return "unchanged"
	case ActionSkipDeleted:
		return "skip_deleted"
	case ActionDuplicate:
		return "duplicate"
	}
	return "unknown"
}

// PendingUpdate is a write the orchestrator still has to dispatch.
type PendingUpdate struct {
	ID     string
	Name   string
	Tab    string
	Update storage.Update
}

// Decision is the merge outcome of one incoming row. Create is set for
// ActionCreate, Update for ActionUpdate.
type Decision struct {
	Action Action
	Create storage.Candidate
	Update PendingUpdate
}

// Merger decides create/update/skip for incoming rows against a snapshot
// of the stored candidates. It never mutates the snapshot.
type Merger struct {
	index map[string]storage.Candidate
	seen  map[string]bool
}

// NewMerger indexes existing by identity key. When the snapshot holds
// several records with one key, the later one wins.
func NewMerger(existing []storage.Candidate) *Merger {
	m := &Merger{
		index: make(map[string]storage.Candidate, len(existing)),
		seen:  make(map[string]bool),
	}
	for _, c := range existing {
		m.index[IdentityKey(c.Name, c.Phone, c.Position)] = c
	}
	return m
}

func (m *Merger) Decide(in Incoming) Decision {
	key := IdentityKey(in.Name, in.Phone, in.Position)
	if m.seen[key] {
		return Decision{Action: ActionDuplicate}
	}
	m.seen[key] = true

	existing, ok := m.index[key]
	if !ok {
		return Decision{Action: ActionCreate, Create: storage.Candidate{
			SheetFields:    in.SheetFields.Clone(),
			Status:         storage.StatusNotHandled,
			Notes:          in.SheetNotes,
			IsDeletedByApp: false,
		}}
	}
	if existing.IsDeletedByApp {
		return Decision{Action: ActionSkipDeleted}
	}

	notes := in.SheetNotes
	if strings.TrimSpace(existing.Notes) != "" {
		notes = existing.Notes
	}
	if !differs(existing, in.SheetFields, notes) {
		return Decision{Action: ActionUnchanged}
	}

	fields := in.SheetFields.Clone()
	return Decision{Action: ActionUpdate, Update: PendingUpdate{
		ID:   existing.ID,
		Name: existing.Name,
		Tab:  in.Position,
		Update: storage.Update{
			Sheet: &fields,
			Notes: &notes,
		},
	}}
}

// differs compares every incoming field with the stored record. Extension
// keys the incoming row does not carry are ignored; a key the stored record
// lacks compares as "".
func differs(existing storage.Candidate, in storage.SheetFields, notes string) bool {
	for _, f := range storage.SheetFieldOrder {
		if in.Get(f) != existing.Get(f) {
			return true
		}
	}
	for k, v := range in.Extensions {
		if existing.Extensions[k] != v {
			return true
		}
	}
	return notes != existing.Notes
}

// Plan is the set of writes a reconciliation produced, in row order.
type Plan struct {
	ToCreate []storage.Candidate
	ToUpdate []PendingUpdate
}

// Reconcile runs the merge engine over incoming rows without any I/O.
func Reconcile(existing []storage.Candidate, incoming []Incoming) Plan {
	m := NewMerger(existing)
	var p Plan
	for _, in := range incoming {
		d := m.Decide(in)
		switch d.Action {
		case ActionCreate:
			p.ToCreate = append(p.ToCreate, d.Create)
		case ActionUpdate:
			p.ToUpdate = append(p.ToUpdate, d.Update)
		}
	}
	return p
}

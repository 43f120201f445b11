package ui

import "github.com/piwi3910/staggergrid/internal/model"

const defaultMaxDepth = 50

// Snapshot captures the editable project state at a point in time.
type Snapshot struct {
	Items     []model.Item
	Settings  model.Settings
	Container model.Container
	Label     string // Action that followed the snapshot, e.g. "Add Item"
}

// MakeSnapshot copies the items, settings and container of p.
func MakeSnapshot(p model.Project, label string) Snapshot {
	return Snapshot{
		Items:     copyItems(p.Items),
		Settings:  p.Settings,
		Container: p.Container,
		Label:     label,
	}
}

// Restore writes the snapshot back into p and drops the stale layout.
func (s Snapshot) Restore(p *model.Project) {
	p.Items = copyItems(s.Items)
	if p.Items == nil {
		p.Items = []model.Item{}
	}
	p.Settings = s.Settings
	p.Container = s.Container
	p.Result = nil
}

// History manages undo/redo stacks of project snapshots.
type History struct {
	undoStack []Snapshot
	redoStack []Snapshot
	maxDepth  int
}

func NewHistory() *History {
	return &History{maxDepth: defaultMaxDepth}
}

// Push saves the state before a modification and clears the redo stack.
func (h *History) Push(s Snapshot) {
	h.undoStack = append(h.undoStack, s)
	if len(h.undoStack) > h.maxDepth {
		h.undoStack = h.undoStack[len(h.undoStack)-h.maxDepth:]
	}
	h.redoStack = nil
}

// Undo returns the most recent snapshot and keeps current for Redo.
// It returns false when there is nothing to undo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	if len(h.undoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	current.Label = last.Label
	h.redoStack = append(h.redoStack, current)
	return last, true
}

// Redo is the inverse of Undo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	if len(h.redoStack) == 0 {
		return Snapshot{}, false
	}
	last := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	current.Label = last.Label
	h.undoStack = append(h.undoStack, current)
	return last, true
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// UndoLabel names the action Undo would revert, or "" when there is none.
func (h *History) UndoLabel() string {
	if len(h.undoStack) == 0 {
		return ""
	}
	return h.undoStack[len(h.undoStack)-1].Label
}

// RedoLabel names the action Redo would reapply, or "" when there is none.
func (h *History) RedoLabel() string {
	if len(h.redoStack) == 0 {
		return ""
	}
	return h.redoStack[len(h.redoStack)-1].Label
}

func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

func copyItems(items []model.Item) []model.Item {
	if items == nil {
		return nil
	}
	cp := make([]model.Item, len(items))
	copy(cp, items)
	return cp
}

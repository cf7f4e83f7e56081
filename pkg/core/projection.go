package core

// View is the selection-dependent slice of workspace state handed to
// presentation code. Group is nil when nothing is selected or when the
// selected id matches no group. Notes always lists the notes filed under
// the selected id, so notes of a vanished group still surface; it is nil
// when there is no selection.
type View struct {
	GroupID string
	Group   *Group
	Notes   []Note
}

// Projection derives Views from a Store and a Selection. It holds no
// state of its own: every Snapshot is recomputed from current store
// contents, so a View can never go stale, only get superseded.
type Projection struct {
	store     *Store
	selection *Selection
}

// NewProjection creates a Projection over the given store and selection.
func NewProjection(store *Store, selection *Selection) *Projection {
	return &Projection{store: store, selection: selection}
}

// Snapshot computes the current view.
func (p *Projection) Snapshot() View {
	id, ok := p.selection.Current()
	if !ok {
		return View{}
	}

	view := View{
		GroupID: id,
		Notes:   p.store.ListNotes(id),
	}
	if group, found := p.store.GetGroup(id); found {
		view.Group = &group
	}
	return view
}

package sketch

// SharedEndpointTol is the maximum distance at which two line endpoints
// count as shared for fillet and chamfer, in sketch-plane units.
const SharedEndpointTol = 0.5

// Sketch is the store for one sketch: its entities, constraints and the
// optional user-assigned names. Entities are only ever replaced whole;
// nothing patches a stored entity in place.
type Sketch struct {
	Entities    []Entity            `json:"entities"`
	Constraints []Constraint        `json:"constraints"`
	NameIndex   map[string]EntityID `json:"name_index"`
}

// New creates an empty sketch.
func New() *Sketch {
	return &Sketch{
		NameIndex: make(map[string]EntityID),
	}
}

// Entity returns the entity with the given id.
func (s *Sketch) Entity(id EntityID) (Entity, bool) {
	for _, e := range s.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}

// AddEntity appends an entity to the sketch.
func (s *Sketch) AddEntity(e Entity) {
	s.Entities = append(s.Entities, e)
}

// RemoveEntity removes the entity with the given id, along with any
// constraints and name index entries that reference it. Returns false if
// the id is unknown.
func (s *Sketch) RemoveEntity(id EntityID) bool {
	found := false
	kept := s.Entities[:0]
	for _, e := range s.Entities {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	s.Entities = kept
	if !found {
		return false
	}

	s.pruneConstraints(map[EntityID]bool{id: true})
	for name, eid := range s.NameIndex {
		if eid == id {
			delete(s.NameIndex, name)
		}
	}
	return true
}

// ReplaceEntity swaps in a new value for an existing entity id.
func (s *Sketch) ReplaceEntity(e Entity) bool {
	for i := range s.Entities {
		if s.Entities[i].ID == e.ID {
			s.Entities[i] = e
			return true
		}
	}
	return false
}

// AddConstraint appends a constraint to the sketch.
func (s *Sketch) AddConstraint(c Constraint) {
	s.Constraints = append(s.Constraints, c)
}

// RemoveConstraint removes the constraint with the given id.
func (s *Sketch) RemoveConstraint(id ConstraintID) bool {
	for i, c := range s.Constraints {
		if c.ID == id {
			s.Constraints = append(s.Constraints[:i], s.Constraints[i+1:]...)
			return true
		}
	}
	return false
}

// Name assigns a user name to an entity id.
func (s *Sketch) Name(name string, id EntityID) {
	s.NameIndex[name] = id
}

// Lookup returns the entity with the given user-assigned name.
func (s *Sketch) Lookup(name string) (Entity, bool) {
	id, ok := s.NameIndex[name]
	if !ok {
		return Entity{}, false
	}
	return s.Entity(id)
}

// EntityCount returns the number of entities.
func (s *Sketch) EntityCount() int {
	return len(s.Entities)
}

// Delta is the replace-set returned by edit operations: entities to remove
// by id, entities to add. Applying a delta is atomic from the store's
// point of view.
type Delta struct {
	RemoveIDs []EntityID `json:"remove_ids"`
	Add       []Entity   `json:"add"`
}

// Apply commits a delta: removals first, then additions. Constraints
// referencing a removed entity are dropped with it.
func (s *Sketch) Apply(d Delta) {
	if len(d.RemoveIDs) > 0 {
		removed := make(map[EntityID]bool, len(d.RemoveIDs))
		for _, id := range d.RemoveIDs {
			removed[id] = true
		}

		kept := s.Entities[:0]
		for _, e := range s.Entities {
			if !removed[e.ID] {
				kept = append(kept, e)
			}
		}
		s.Entities = kept

		s.pruneConstraints(removed)
		for name, eid := range s.NameIndex {
			if removed[eid] {
				delete(s.NameIndex, name)
			}
		}
	}
	s.Entities = append(s.Entities, d.Add...)
}

// pruneConstraints drops constraints that reference any of the given ids.
func (s *Sketch) pruneConstraints(removed map[EntityID]bool) {
	kept := s.Constraints[:0]
	for _, c := range s.Constraints {
		refsRemoved := false
		for _, ref := range c.EntityRefs() {
			if removed[ref] {
				refsRemoved = true
				break
			}
		}
		if !refsRemoved {
			kept = append(kept, c)
		}
	}
	s.Constraints = kept
}

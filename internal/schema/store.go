package schema

import (
	"fmt"

	"github.com/gopatchy/jsv/internal/utils"
	"github.com/gopatchy/jsv/pkg/errors"
	"github.com/gopatchy/jsv/pkg/log"
)

// SelfRef resolves to the schema currently being validated.
const SelfRef = "#"

// Store maps schema ids to schemas. It does no locking; callers that mutate
// it while validating concurrently must synchronize.
type Store struct {
	schemas map[string]*Schema
}

func NewStore() *Store {
	return &Store{
		schemas: map[string]*Schema{},
	}
}

func (st *Store) Add(id string, s *Schema) *Store {
	st.schemas[id] = s
	return st
}

func (st *Store) Remove(id string) *Store {
	delete(st.schemas, id)
	return st
}

func (st *Store) Get(id string) (*Schema, bool) {
	s, found := st.schemas[id]
	return s, found
}

// Resolve looks up id, with SelfRef meaning self.
func (st *Store) Resolve(id string, self *Schema) (*Schema, error) {
	if id == SelfRef {
		if self == nil {
			return nil, fmt.Errorf("%s outside validation: %w", id, errors.ErrSchemaNotFound)
		}

		return self, nil
	}

	s, found := st.schemas[id]
	if !found {
		return nil, fmt.Errorf("%s: %w", id, errors.ErrSchemaNotFound)
	}

	return s, nil
}

// Deref follows $ref until it reaches a schema without one.
func (st *Store) Deref(s *Schema, self *Schema) (*Schema, error) {
	seen := map[*Schema]bool{}

	for s.Ref != "" {
		if seen[s] {
			return nil, fmt.Errorf("%s: %w", s.Ref, errors.ErrRefCycle)
		}

		seen[s] = true

		log.Debugf("resolving $ref %s", s.Ref)

		next, err := st.Resolve(s.Ref, self)
		if err != nil {
			return nil, err
		}

		s = next
	}

	return s, nil
}

func (st *Store) IDs() []string {
	return utils.SortedKeys(st.schemas)
}

func (st *Store) Len() int {
	return len(st.schemas)
}

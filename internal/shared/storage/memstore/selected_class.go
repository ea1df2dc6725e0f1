package memstore

import (
	"context"
	"slices"

	"go.mongodb.org/mongo-driver/v2/bson"

	"dancefusion/internal/shared/model"
)

// ============================================================================
// SelectedClassStore
// ============================================================================

func (s *Store) ListSelectedClasses(ctx context.Context) ([]*model.SelectedClass, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.selected, copySelectedClass), nil
}

func (s *Store) InsertSelectedClass(ctx context.Context, sc *model.SelectedClass) (*model.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc.ID = bson.NewObjectID()
	s.selected = append(s.selected, copySelectedClass(sc))
	return inserted(sc.ID), nil
}

func (s *Store) DeleteSelectedClass(ctx context.Context, id string) (*model.DeleteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.selected)
	s.selected = slices.DeleteFunc(s.selected, func(sc *model.SelectedClass) bool {
		return sc.ID == oid
	})
	return &model.DeleteResult{Acknowledged: true, DeletedCount: int64(before - len(s.selected))}, nil
}

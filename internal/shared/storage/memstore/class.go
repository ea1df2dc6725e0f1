package memstore

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"dancefusion/internal/shared/model"
)

// ============================================================================
// ClassStore
// ============================================================================

func (s *Store) findClass(oid bson.ObjectID) *model.Class {
	for _, c := range s.classes {
		if c.ID == oid {
			return c
		}
	}
	return nil
}

func (s *Store) ListClasses(ctx context.Context) ([]*model.Class, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.classes, copyClass), nil
}

func (s *Store) GetClassView(ctx context.Context, id string) (*model.ClassView, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.findClass(oid)
	if c == nil {
		return nil, nil
	}
	view := &model.ClassView{
		ID:             c.ID,
		Image:          c.Image,
		Name:           c.Name,
		AvailableSeats: c.AvailableSeats,
		Price:          c.Price,
	}
	if c.Feedback != nil {
		fb := *c.Feedback
		view.Feedback = &fb
	}
	return view, nil
}

func (s *Store) InsertClass(ctx context.Context, class *model.Class) (*model.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	class.ID = bson.NewObjectID()
	class.Normalize()
	s.classes = append(s.classes, copyClass(class))
	return inserted(class.ID), nil
}

func (s *Store) UpdateClass(ctx context.Context, id string, update *model.ClassUpdate) (*model.UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if update.Empty() {
		return nil, model.ErrValidation
	}
	return s.upsertClass(oid, func(c *model.Class) bool {
		modified := false
		if update.Name != nil && c.Name != *update.Name {
			c.Name, modified = *update.Name, true
		}
		if update.Image != nil && c.Image != *update.Image {
			c.Image, modified = *update.Image, true
		}
		if update.AvailableSeats != nil && c.AvailableSeats != *update.AvailableSeats {
			c.AvailableSeats, modified = *update.AvailableSeats, true
		}
		if update.Price != nil && c.Price != *update.Price {
			c.Price, modified = *update.Price, true
		}
		if update.Feedback != nil {
			modified = setFeedback(c, *update.Feedback) || modified
		}
		return modified
	}), nil
}

func (s *Store) SetClassFeedback(ctx context.Context, id, feedback string) (*model.UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.upsertClass(oid, func(c *model.Class) bool {
		return setFeedback(c, feedback)
	}), nil
}

func (s *Store) SetClassStatus(ctx context.Context, id string, status model.ClassStatus) (*model.UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findClass(oid)
	if c == nil {
		return &model.UpdateResult{Acknowledged: true}, nil
	}
	modified := c.Status != status
	c.Status = status
	return matched(modified), nil
}

// upsertClass 对已有课程应用 apply；不存在时以 oid 新建 pending 课程
func (s *Store) upsertClass(oid bson.ObjectID, apply func(*model.Class) bool) *model.UpdateResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c := s.findClass(oid); c != nil {
		return matched(apply(c))
	}
	c := &model.Class{ID: oid, Status: model.ClassStatusPending}
	apply(c)
	s.classes = append(s.classes, c)
	return upserted(oid)
}

func setFeedback(c *model.Class, feedback string) bool {
	if c.Feedback != nil && *c.Feedback == feedback {
		return false
	}
	c.Feedback = &feedback
	return true
}

package memstore

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"dancefusion/internal/shared/model"
)

// ============================================================================
// UserStore
// ============================================================================

func (s *Store) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.users, copyUser), nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

// InsertUserIfAbsent 检查与插入在同一把写锁内完成
func (s *Store) InsertUserIfAbsent(ctx context.Context, user *model.User) (*model.InsertResult, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, false, nil
		}
	}
	user.ID = bson.NewObjectID()
	s.users = append(s.users, copyUser(user))
	return inserted(user.ID), true, nil
}

func (s *Store) SetUserRole(ctx context.Context, id string, role model.UserRole) (*model.UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == oid {
			modified := u.Role != role
			u.Role = role
			return matched(modified), nil
		}
	}
	return &model.UpdateResult{Acknowledged: true}, nil
}

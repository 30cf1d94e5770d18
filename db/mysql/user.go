package mysql

import (
	"context"
	"math/rand"
	"strings"
	"time"

	db2 "github.com/sociallyapp/socially-be/db"
	"github.com/sociallyapp/socially-be/model"
	"github.com/upper/db/v4"
)

// suggestedScanCap bounds how many candidate rows are pulled before sampling.
const suggestedScanCap = 50

type UserDB struct {
	sess db.Session
}

func getUserDB(sess db.Session) *UserDB {
	return &UserDB{sess}
}

func (udb *UserDB) GetUser(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := udb.sess.SQL().
		Select("*").
		From("person").
		Where("id = ?", id).
		IteratorContext(ctx).
		One(&user); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// UpsertUser updates the row keyed on the auth id or inserts it when absent.
// The update-then-insert runs in one transaction; a concurrent insert on the
// same id surfaces as a dup key and resolves to a retried update, so
// simultaneous onboarding submissions never yield two profiles.
func (udb *UserDB) UpsertUser(ctx context.Context, req *db2.UpsertUser) (*model.User, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	if req.Id == "" || username == "" {
		return nil, db2.ErrInvalid
	}
	now := time.Now().UTC()
	err := udb.sess.TxContext(ctx, func(sess db.Session) error {
		res, err := sess.SQL().
			Update("person").
			Set("username = ?, name = ?, bio = ?, image = ?, onboarded = ?, updated_at = ?",
				username, req.Name, req.Bio, req.Image, true, now).
			Where("id = ?", req.Id).
			ExecContext(ctx)
		if err != nil {
			return classifyUserWriteErr(err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			return nil
		}

		_, err = sess.SQL().
			InsertInto("person").
			Columns("id", "username", "name", "bio", "image", "onboarded", "created_at", "updated_at").
			Values(req.Id, username, req.Name, req.Bio, req.Image, true, now, now).
			ExecContext(ctx)
		if err == nil {
			return nil
		}
		if db2.IsDupKeyErr(err) && !isUsernameDup(err) {
			// The row exists after all: either a concurrent upsert created it
			// or the earlier update matched but changed nothing. Either way
			// the profile is present; re-apply the update.
			_, err = sess.SQL().
				Update("person").
				Set("username = ?, name = ?, bio = ?, image = ?, onboarded = ?, updated_at = ?",
					username, req.Name, req.Bio, req.Image, true, now).
				Where("id = ?", req.Id).
				ExecContext(ctx)
			return classifyUserWriteErr(err)
		}
		return classifyUserWriteErr(err)
	}, nil)
	if err != nil {
		return nil, err
	}
	return udb.GetUser(ctx, req.Id)
}

func classifyUserWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if db2.IsDupKeyErr(err) && isUsernameDup(err) {
		return db2.Conflict("username already taken")
	}
	return err
}

func isUsernameDup(err error) bool {
	return strings.Contains(err.Error(), "username")
}

func (udb *UserDB) GetSuggestedUsers(ctx context.Context, excludeId string, limit int) ([]*model.UserSummary, error) {
	if limit <= 0 {
		return []*model.UserSummary{}, nil
	}
	var candidates []*model.UserSummary
	if err := udb.sess.SQL().
		Select("id", "name", "username", "image").
		From("person").
		Where("onboarded = ? AND id != ?", true, excludeId).
		Limit(suggestedScanCap).
		IteratorContext(ctx).
		All(&candidates); err != nil {
		return nil, err
	}
	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

func (udb *UserDB) SearchUsers(ctx context.Context, prefix string, limit int) ([]*model.UserSummary, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" || limit <= 0 {
		return []*model.UserSummary{}, nil
	}
	pattern := escapeLikePrefix(prefix)
	var users []*model.UserSummary
	if err := udb.sess.SQL().
		Select("id", "name", "username", "image").
		From("person").
		Where("LOWER(username) LIKE ? ESCAPE '!' OR LOWER(name) LIKE ? ESCAPE '!'", pattern, pattern).
		OrderBy("username").
		Limit(limit).
		IteratorContext(ctx).
		All(&users); err != nil {
		return nil, err
	}
	return users, nil
}

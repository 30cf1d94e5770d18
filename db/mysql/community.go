package mysql

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	db2 "github.com/sociallyapp/socially-be/db"
	"github.com/sociallyapp/socially-be/model"
	"github.com/upper/db/v4"
)

type CommunityDB struct {
	sess db.Session
}

func getCommunityDB(sess db.Session) *CommunityDB {
	return &CommunityDB{sess}
}

func (cdb *CommunityDB) CreateCommunity(ctx context.Context, req *db2.CreateCommunity) (string, error) {
	if strings.TrimSpace(req.Name) == "" {
		return "", db2.ErrInvalid
	}
	communityId := uuid.NewString()
	err := cdb.sess.TxContext(ctx, func(sess db.Session) error {
		if err := requireUser(ctx, sess, req.CreatedBy); err != nil {
			return err
		}
		if _, err := sess.SQL().
			InsertInto("community").
			Columns("id", "name", "image", "created_by", "created_at").
			Values(communityId, req.Name, req.Image, req.CreatedBy, time.Now().UTC()).
			ExecContext(ctx); err != nil {
			return err
		}
		// The creator is the first member.
		_, err := sess.SQL().
			InsertInto("community_member").
			Columns("community_id", "user_id", "created_at").
			Values(communityId, req.CreatedBy, time.Now().UTC()).
			ExecContext(ctx)
		return err
	}, nil)
	if err != nil {
		return "", err
	}
	return communityId, nil
}

func (cdb *CommunityDB) GetCommunityById(ctx context.Context, id string) (*model.Community, error) {
	var community model.Community
	if err := cdb.sess.SQL().
		Select("*").
		From("community").
		Where("id = ?", id).
		IteratorContext(ctx).
		One(&community); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, db2.NotFound("community", id)
		}
		return nil, err
	}
	return &community, nil
}

func (cdb *CommunityDB) AddMember(ctx context.Context, communityId, userId string) error {
	return cdb.sess.TxContext(ctx, func(sess db.Session) error {
		if err := requireCommunity(ctx, sess, communityId); err != nil {
			return err
		}
		if err := requireUser(ctx, sess, userId); err != nil {
			return err
		}
		_, err := sess.SQL().
			InsertInto("community_member").
			Columns("community_id", "user_id", "created_at").
			Values(communityId, userId, time.Now().UTC()).
			ExecContext(ctx)
		if err != nil && db2.IsDupKeyErr(err) {
			// Already a member; joining twice is a no-op.
			return nil
		}
		return err
	}, nil)
}

func (cdb *CommunityDB) RemoveMember(ctx context.Context, communityId, userId string) error {
	_, err := cdb.sess.SQL().
		DeleteFrom("community_member").
		Where("community_id = ? AND user_id = ?", communityId, userId).
		ExecContext(ctx)
	return err
}

func (cdb *CommunityDB) GetCommunitiesForUser(ctx context.Context, userId string) ([]*model.Community, error) {
	var communities []*model.Community
	if err := cdb.sess.SQL().
		Select("c.id", "c.name", "c.image", "c.created_by", "c.created_at").
		From("community AS c").
		Join("community_member AS cm").On("c.id = cm.community_id").
		Where("cm.user_id = ?", userId).
		OrderBy("c.name").
		IteratorContext(ctx).
		All(&communities); err != nil {
		return nil, err
	}
	return communities, nil
}

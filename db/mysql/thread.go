package mysql

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	db2 "github.com/sociallyapp/socially-be/db"
	"github.com/sociallyapp/socially-be/db/dao"
	"github.com/sociallyapp/socially-be/model"
	"github.com/sociallyapp/socially-be/util"
	"github.com/upper/db/v4"
)

const (
	// childLimit caps how many first-level replies a single populated thread
	// carries.
	childLimit = 50
	// parentSnippetLen bounds the parent-thread text shown next to a reply.
	parentSnippetLen = 30
)

type ThreadDB struct {
	sess db.Session
}

func getThreadDB(sess db.Session) *ThreadDB {
	return &ThreadDB{sess}
}

type flattenedThread struct {
	Id             string         `db:"id"`
	Body           string         `db:"body"`
	ParentId       dao.NullString `db:"parent_id"`
	CreatedAt      time.Time      `db:"created_at"`
	AuthorId       string         `db:"author_id"`
	AuthorName     string         `db:"author_name"`
	AuthorUsername string         `db:"author_username"`
	AuthorImage    string         `db:"author_image"`
	CommunityId    dao.NullString `db:"community_id"`
	CommunityName  dao.NullString `db:"community_name"`
	CommunityImage dao.NullString `db:"community_image"`
}

var threadColumns = []interface{}{
	"t.id",
	"t.body",
	"t.parent_id",
	"t.created_at",
	"p.id AS author_id",
	"p.name AS author_name",
	"p.username AS author_username",
	"p.image AS author_image",
	"c.id AS community_id",
	"c.name AS community_name",
	"c.image AS community_image",
}

// threadSelect joins a thread with its author and optional community tag.
func (tdb *ThreadDB) threadSelect(sess db.Session) db.Selector {
	return sess.SQL().
		Select(threadColumns...).
		From("thread AS t").
		Join("person AS p").On("t.author_id = p.id").
		LeftJoin("community AS c").On("t.community_id = c.id")
}

func (tdb *ThreadDB) CreateThread(ctx context.Context, req *db2.CreateThread) (string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return "", db2.ErrInvalid
	}
	threadId := uuid.NewString()
	err := tdb.sess.TxContext(ctx, func(sess db.Session) error {
		if err := requireUser(ctx, sess, req.AuthorId); err != nil {
			return err
		}
		communityId := interface{}(nil)
		if req.CommunityId != "" {
			if err := requireCommunity(ctx, sess, req.CommunityId); err != nil {
				return err
			}
			communityId = req.CommunityId
		}
		_, err := sess.SQL().
			InsertInto("thread").
			Columns("id", "body", "author_id", "community_id", "parent_id", "created_at").
			Values(threadId, req.Text, req.AuthorId, communityId, nil, time.Now().UTC()).
			ExecContext(ctx)
		return err
	}, nil)
	if err != nil {
		return "", err
	}
	return threadId, nil
}

// CreateComment inserts the reply with its parent reference in a single row
// write. The reply is reachable from its parent through the parent_id index,
// so there is no second linking write to get out of sync.
func (tdb *ThreadDB) CreateComment(ctx context.Context, req *db2.CreateComment) (string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return "", db2.ErrInvalid
	}
	commentId := uuid.NewString()
	err := tdb.sess.TxContext(ctx, func(sess db.Session) error {
		exists, err := sess.Collection("thread").
			Find(db.Cond{"id": req.ParentId}).
			Exists()
		if err != nil {
			return err
		}
		if !exists {
			return db2.NotFound("thread", req.ParentId)
		}
		if err := requireUser(ctx, sess, req.AuthorId); err != nil {
			return err
		}
		_, err = sess.SQL().
			InsertInto("thread").
			Columns("id", "body", "author_id", "community_id", "parent_id", "created_at").
			Values(commentId, req.Text, req.AuthorId, nil, req.ParentId, time.Now().UTC()).
			ExecContext(ctx)
		return err
	}, nil)
	if err != nil {
		return "", err
	}
	return commentId, nil
}

func (tdb *ThreadDB) GetPosts(ctx context.Context, page, pageSize int) (*model.Feed, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	skip := (page - 1) * pageSize

	var flattened []flattenedThread
	if err := tdb.threadSelect(tdb.sess).
		Where("t.parent_id IS NULL").
		OrderBy("t.created_at DESC", "t.id DESC").
		Offset(skip).
		Limit(pageSize).
		IteratorContext(ctx).
		All(&flattened); err != nil {
		return nil, err
	}

	total, err := tdb.sess.WithContext(ctx).
		Collection("thread").
		Find(db.Cond{"parent_id": nil}).
		Count()
	if err != nil {
		return nil, err
	}

	threads, err := tdb.populate(ctx, flattened)
	if err != nil {
		return nil, err
	}
	return &model.Feed{
		Threads: threads,
		HasNext: total > uint64(skip+len(threads)),
	}, nil
}

func (tdb *ThreadDB) GetThreadById(ctx context.Context, id string) (*model.Thread, error) {
	var flattened flattenedThread
	if err := tdb.threadSelect(tdb.sess).
		Where("t.id = ?", id).
		IteratorContext(ctx).
		One(&flattened); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, db2.NotFound("thread", id)
		}
		return nil, err
	}
	threads, err := tdb.populate(ctx, []flattenedThread{flattened})
	if err != nil {
		return nil, err
	}
	return threads[0], nil
}

// ToggleLike flips the (thread, user) like row inside one transaction. The
// delete-then-insert is guarded by the pair's unique key, so two concurrent
// togglers cannot clobber each other: each either removes an existing row or
// races on the insert, and the loser's dup key still leaves the like present.
func (tdb *ThreadDB) ToggleLike(ctx context.Context, threadId, userId string) (int, error) {
	var likes int
	err := tdb.sess.TxContext(ctx, func(sess db.Session) error {
		exists, err := sess.Collection("thread").
			Find(db.Cond{"id": threadId}).
			Exists()
		if err != nil {
			return err
		}
		if !exists {
			return db2.NotFound("thread", threadId)
		}
		if err := requireUser(ctx, sess, userId); err != nil {
			return err
		}

		res, err := sess.SQL().
			DeleteFrom("thread_like").
			Where("thread_id = ? AND user_id = ?", threadId, userId).
			ExecContext(ctx)
		if err != nil {
			return err
		}
		removed, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if removed == 0 {
			if _, err := sess.SQL().
				InsertInto("thread_like").
				Columns("thread_id", "user_id", "created_at").
				Values(threadId, userId, time.Now().UTC()).
				ExecContext(ctx); err != nil && !db2.IsDupKeyErr(err) {
				return err
			}
		}

		count, err := sess.Collection("thread_like").
			Find(db.Cond{"thread_id": threadId}).
			Count()
		if err != nil {
			return err
		}
		likes = int(count)
		return nil
	}, nil)
	if err != nil {
		return 0, err
	}
	return likes, nil
}

// DeleteThread removes the thread, its direct children, and their like rows in
// one transaction. Only the author may delete.
func (tdb *ThreadDB) DeleteThread(ctx context.Context, threadId, callerId string) error {
	return tdb.sess.TxContext(ctx, func(sess db.Session) error {
		var row struct {
			AuthorId string `db:"author_id"`
		}
		if err := sess.SQL().
			Select("author_id").
			From("thread").
			Where("id = ?", threadId).
			IteratorContext(ctx).
			One(&row); err != nil {
			if err == db.ErrNoMoreRows {
				return db2.NotFound("thread", threadId)
			}
			return err
		}
		if row.AuthorId != callerId {
			return db2.ErrForbidden
		}

		if _, err := sess.SQL().ExecContext(ctx, `
			DELETE FROM thread_like
			WHERE thread_id = ? OR thread_id IN (SELECT id FROM thread WHERE parent_id = ?)`,
			threadId, threadId); err != nil {
			return err
		}
		if _, err := sess.SQL().
			DeleteFrom("thread").
			Where("parent_id = ?", threadId).
			ExecContext(ctx); err != nil {
			return err
		}
		_, err := sess.SQL().
			DeleteFrom("thread").
			Where("id = ?", threadId).
			ExecContext(ctx)
		return err
	}, nil)
}

func (tdb *ThreadDB) GetUserThreads(ctx context.Context, userId string) (*model.UserThreads, error) {
	empty := &model.UserThreads{
		Threads: []*model.Thread{},
		Replies: []*model.ReplyWithParent{},
	}
	exists, err := tdb.sess.WithContext(ctx).
		Collection("person").
		Find(db.Cond{"id": userId}).
		Exists()
	if err != nil {
		return nil, err
	}
	if !exists {
		return empty, nil
	}

	var flattened []flattenedThread
	if err := tdb.threadSelect(tdb.sess).
		Where("t.author_id = ? AND t.parent_id IS NULL", userId).
		OrderBy("t.created_at DESC", "t.id DESC").
		IteratorContext(ctx).
		All(&flattened); err != nil {
		return nil, err
	}
	threads, err := tdb.populate(ctx, flattened)
	if err != nil {
		return nil, err
	}

	var flattenedReplies []flattenedReplyWithParent
	if err := tdb.replyWithParentSelect(tdb.sess).
		Where("t.author_id = ? AND t.parent_id IS NOT NULL", userId).
		OrderBy("t.created_at DESC", "t.id DESC").
		IteratorContext(ctx).
		All(&flattenedReplies); err != nil {
		return nil, err
	}

	replies := make([]*model.ReplyWithParent, len(flattenedReplies))
	for i, fr := range flattenedReplies {
		replies[i] = buildReplyWithParent(&fr)
	}
	return &model.UserThreads{Threads: threads, Replies: replies}, nil
}

func (tdb *ThreadDB) GetCommunityThreads(ctx context.Context, communityId string) ([]*model.Thread, error) {
	var flattened []flattenedThread
	if err := tdb.threadSelect(tdb.sess).
		Where("t.community_id = ?", communityId).
		OrderBy("t.created_at DESC", "t.id DESC").
		IteratorContext(ctx).
		All(&flattened); err != nil {
		return nil, err
	}
	return tdb.populate(ctx, flattened)
}

func (tdb *ThreadDB) SearchThreads(ctx context.Context, prefix string, limit int) ([]*model.ThreadSummary, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" || limit <= 0 {
		return []*model.ThreadSummary{}, nil
	}
	pattern := escapeLikePrefix(prefix)
	var rows []struct {
		Id   string `db:"id"`
		Body string `db:"body"`
	}
	if err := tdb.sess.SQL().
		Select("id", "body").
		From("thread").
		Where("LOWER(body) LIKE ? ESCAPE '!'", pattern).
		OrderBy("created_at DESC").
		Limit(limit).
		IteratorContext(ctx).
		All(&rows); err != nil {
		return nil, err
	}
	summaries := make([]*model.ThreadSummary, len(rows))
	for i, row := range rows {
		summaries[i] = &model.ThreadSummary{Id: row.Id, Text: row.Body}
	}
	return summaries, nil
}

func (tdb *ThreadDB) GetRepliesToUser(ctx context.Context, userId string) ([]*model.ReplyWithParent, error) {
	var flattened []flattenedReplyWithParent
	if err := tdb.replyWithParentSelect(tdb.sess).
		Where("pt.author_id = ? AND t.author_id != ?", userId, userId).
		OrderBy("t.created_at DESC", "t.id DESC").
		IteratorContext(ctx).
		All(&flattened); err != nil {
		return nil, err
	}
	replies := make([]*model.ReplyWithParent, len(flattened))
	for i, fr := range flattened {
		replies[i] = buildReplyWithParent(&fr)
	}
	return replies, nil
}

type flattenedReply struct {
	Id             string    `db:"id"`
	Body           string    `db:"body"`
	ParentId       string    `db:"parent_id"`
	CreatedAt      time.Time `db:"created_at"`
	AuthorId       string    `db:"author_id"`
	AuthorName     string    `db:"author_name"`
	AuthorUsername string    `db:"author_username"`
	AuthorImage    string    `db:"author_image"`
}

type flattenedReplyWithParent struct {
	flattenedReply `db:",inline"`
	ParentBody     string `db:"parent_body"`
}

var replyColumns = []interface{}{
	"t.id",
	"t.body",
	"t.parent_id",
	"t.created_at",
	"p.id AS author_id",
	"p.name AS author_name",
	"p.username AS author_username",
	"p.image AS author_image",
}

func (tdb *ThreadDB) replyWithParentSelect(sess db.Session) db.Selector {
	return sess.SQL().
		Select(append(replyColumns, db.Raw("pt.body AS parent_body"))...).
		From("thread AS t").
		Join("thread AS pt").On("t.parent_id = pt.id").
		Join("person AS p").On("t.author_id = p.id")
}

func buildReply(fr *flattenedReply) *model.Reply {
	return &model.Reply{
		Id:       fr.Id,
		Text:     fr.Body,
		ParentId: fr.ParentId,
		Author: &model.UserSummary{
			Id:       fr.AuthorId,
			Name:     fr.AuthorName,
			Username: fr.AuthorUsername,
			Image:    fr.AuthorImage,
		},
		CreatedAt: fr.CreatedAt,
	}
}

func buildReplyWithParent(fr *flattenedReplyWithParent) *model.ReplyWithParent {
	return &model.ReplyWithParent{
		Reply: buildReply(&fr.flattenedReply),
		Parent: &model.ParentSummary{
			Id:   fr.ParentId,
			Text: util.Truncate(fr.ParentBody, parentSnippetLen),
		},
	}
}

// populate resolves first-level children and liker ids for a batch of threads
// with one query per relation, then assembles the view structs.
func (tdb *ThreadDB) populate(ctx context.Context, flattened []flattenedThread) ([]*model.Thread, error) {
	threads := make([]*model.Thread, len(flattened))
	if len(flattened) == 0 {
		return threads, nil
	}
	ids := make([]string, len(flattened))
	for i, ft := range flattened {
		ids[i] = ft.Id
	}

	childrenByParent, err := tdb.childrenForThreads(ctx, ids)
	if err != nil {
		return nil, err
	}
	likersByThread, err := tdb.likersForThreads(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i, ft := range flattened {
		thread := &model.Thread{
			Id:   ft.Id,
			Text: ft.Body,
			Author: &model.UserSummary{
				Id:       ft.AuthorId,
				Name:     ft.AuthorName,
				Username: ft.AuthorUsername,
				Image:    ft.AuthorImage,
			},
			Children:  []*model.Reply{},
			LikedBy:   []string{},
			CreatedAt: ft.CreatedAt,
		}
		if ft.CommunityId.Valid {
			thread.Community = &model.CommunitySummary{
				Id:    ft.CommunityId.AsString(),
				Name:  ft.CommunityName.AsString(),
				Image: ft.CommunityImage.AsString(),
			}
		}
		if children, ok := childrenByParent[ft.Id]; ok {
			if len(children) > childLimit {
				children = children[:childLimit]
			}
			thread.Children = children
		}
		if likers, ok := likersByThread[ft.Id]; ok {
			thread.LikedBy = likers
		}
		threads[i] = thread
	}
	return threads, nil
}

func (tdb *ThreadDB) childrenForThreads(ctx context.Context, ids []string) (map[string][]*model.Reply, error) {
	var flattened []flattenedReply
	if err := tdb.sess.SQL().
		Select(replyColumns...).
		From("thread AS t").
		Join("person AS p").On("t.author_id = p.id").
		Where("t.parent_id IN ?", ids).
		OrderBy("t.created_at", "t.id").
		IteratorContext(ctx).
		All(&flattened); err != nil {
		return nil, err
	}
	byParent := make(map[string][]*model.Reply)
	for i := range flattened {
		reply := buildReply(&flattened[i])
		byParent[reply.ParentId] = append(byParent[reply.ParentId], reply)
	}
	return byParent, nil
}

func (tdb *ThreadDB) likersForThreads(ctx context.Context, ids []string) (map[string][]string, error) {
	var rows []struct {
		ThreadId string `db:"thread_id"`
		UserId   string `db:"user_id"`
	}
	if err := tdb.sess.SQL().
		Select("thread_id", "user_id").
		From("thread_like").
		Where("thread_id IN ?", ids).
		OrderBy("created_at").
		IteratorContext(ctx).
		All(&rows); err != nil {
		return nil, err
	}
	byThread := make(map[string][]string)
	for _, row := range rows {
		byThread[row.ThreadId] = append(byThread[row.ThreadId], row.UserId)
	}
	return byThread, nil
}

func requireUser(ctx context.Context, sess db.Session, userId string) error {
	exists, err := sess.WithContext(ctx).
		Collection("person").
		Find(db.Cond{"id": userId}).
		Exists()
	if err != nil {
		return err
	}
	if !exists {
		return db2.NotFound("user", userId)
	}
	return nil
}

func requireCommunity(ctx context.Context, sess db.Session, communityId string) error {
	exists, err := sess.WithContext(ctx).
		Collection("community").
		Find(db.Cond{"id": communityId}).
		Exists()
	if err != nil {
		return err
	}
	if !exists {
		return db2.NotFound("community", communityId)
	}
	return nil
}

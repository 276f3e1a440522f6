package repositories

import (
	"context"
	"errors"
	"fmt"

	"blogapi/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerPostRepository implements PostRepository using BadgerDB
type BadgerPostRepository struct {
	db *badger.DB
}

// NewBadgerPostRepository creates a new BadgerPostRepository
func NewBadgerPostRepository(db *badger.DB) *BadgerPostRepository {
	return &BadgerPostRepository{db: db}
}

// InsertOne assigns a new id and stores the post
func (r *BadgerPostRepository) InsertOne(_ context.Context, post *models.BlogPost) error {
	id, err := newPostID()
	if err != nil {
		return err
	}
	post.ID = id
	post.BeforeCreate()

	data, err := marshalEntity(post)
	if err != nil {
		return err
	}

	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(postKey(post.ID), data)
	})
}

// InsertMany stores a batch of posts, assigning ids in slice order
func (r *BadgerPostRepository) InsertMany(_ context.Context, posts []*models.BlogPost) error {
	wb := r.db.NewWriteBatch()
	defer wb.Cancel()

	for _, post := range posts {
		id, err := newPostID()
		if err != nil {
			return err
		}
		post.ID = id
		post.BeforeCreate()

		data, err := marshalEntity(post)
		if err != nil {
			return err
		}
		if err := wb.Set(postKey(post.ID), data); err != nil {
			return fmt.Errorf("failed to queue post %s: %w", post.ID, err)
		}
	}
	return wb.Flush()
}

// FindAll retrieves every post in key order
func (r *BadgerPostRepository) FindAll(_ context.Context) ([]*models.BlogPost, error) {
	var posts []*models.BlogPost
	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(PostKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var post models.BlogPost
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &post)
			})
			if err != nil {
				return err
			}
			posts = append(posts, &post)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// FindByID retrieves a post by ID
func (r *BadgerPostRepository) FindByID(_ context.Context, id string) (*models.BlogPost, error) {
	var post models.BlogPost

	err := r.db.View(func(txn *badger.Txn) error {
		return getPost(txn, id, &post)
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdateByID applies the patch to the stored post
func (r *BadgerPostRepository) UpdateByID(_ context.Context, id string, patch *models.PostPatch) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var post models.BlogPost
		if err := getPost(txn, id, &post); err != nil {
			return err
		}
		if patch.Empty() {
			return nil
		}

		post.Apply(patch)

		data, err := marshalEntity(&post)
		if err != nil {
			return err
		}
		return txn.Set(postKey(id), data)
	})
}

// DeleteByID deletes a post by ID
func (r *BadgerPostRepository) DeleteByID(_ context.Context, id string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		key := postKey(id)

		// Verify post exists
		_, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return txn.Delete(key)
	})
}

// DropAll removes every post key
func (r *BadgerPostRepository) DropAll(_ context.Context) error {
	return r.db.DropPrefix([]byte(PostKeyPrefix))
}

func getPost(txn *badger.Txn, id string, post *models.BlogPost) error {
	item, err := txn.Get(postKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, post)
	})
}

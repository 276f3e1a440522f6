package mock

import (
	"blogapi/app/models"
	"blogapi/app/repositories"
	"context"
	"strconv"
	"sync"
)

// PostRepository is an in-memory repositories.Store for tests.
type PostRepository struct {
	posts  map[string]*models.BlogPost
	order  []string
	nextID int
	mutex  sync.RWMutex

	// Err, when set, is returned by every operation.
	Err error
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:  make(map[string]*models.BlogPost),
		nextID: 1,
	}
}

func (m *PostRepository) insert(post *models.BlogPost) {
	post.ID = strconv.Itoa(m.nextID)
	m.nextID++
	post.BeforeCreate()
	stored := *post
	m.posts[post.ID] = &stored
	m.order = append(m.order, post.ID)
}

func (m *PostRepository) InsertOne(_ context.Context, post *models.BlogPost) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.insert(post)
	return nil
}

func (m *PostRepository) InsertMany(_ context.Context, posts []*models.BlogPost) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	for _, post := range posts {
		m.insert(post)
	}
	return nil
}

func (m *PostRepository) FindAll(_ context.Context) ([]*models.BlogPost, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	var posts []*models.BlogPost
	for _, id := range m.order {
		if post, exists := m.posts[id]; exists {
			copied := *post
			posts = append(posts, &copied)
		}
	}
	return posts, nil
}

func (m *PostRepository) FindByID(_ context.Context, id string) (*models.BlogPost, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.Err != nil {
		return nil, m.Err
	}
	post, exists := m.posts[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (m *PostRepository) UpdateByID(_ context.Context, id string, patch *models.PostPatch) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	post, exists := m.posts[id]
	if !exists {
		return repositories.ErrNotFound
	}
	post.Apply(patch)
	return nil
}

func (m *PostRepository) DeleteByID(_ context.Context, id string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	if _, exists := m.posts[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

// DropAll clears the posts but keeps the id counter so ids are never reused.
func (m *PostRepository) DropAll(_ context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return m.Err
	}
	m.posts = make(map[string]*models.BlogPost)
	m.order = nil
	return nil
}

func (m *PostRepository) Ping(_ context.Context) error {
	return m.Err
}

func (m *PostRepository) Close() error {
	return nil
}

// Count returns the number of stored posts.
func (m *PostRepository) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.posts)
}

var _ repositories.Store = (*PostRepository)(nil)

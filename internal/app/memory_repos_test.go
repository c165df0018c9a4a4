package app

import (
	"context"
	"sort"
	"sync"
	"time"

	"postboard/internal/entity"
)

// memoryStore backs the repository interfaces with maps so the router can be
// exercised end to end without Postgres. It mirrors the database constraints
// the usecases rely on: unique usernames, emails and profile owners, and
// cascading deletes.
type memoryStore struct {
	mu       sync.Mutex
	users    map[uint]*entity.User
	posts    map[uint]*entity.Post
	profiles map[uint]*entity.Profile
	nextUser uint
	nextPost uint
	nextProf uint
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    make(map[uint]*entity.User),
		posts:    make(map[uint]*entity.Post),
		profiles: make(map[uint]*entity.Profile),
	}
}

func (s *memoryStore) postCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}

func (s *memoryStore) profileCountFor(ownerID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.profiles {
		if p.OwnerID == ownerID {
			n++
		}
	}
	return n
}

func (s *memoryStore) username(id uint) string {
	if u, ok := s.users[id]; ok {
		return u.Username
	}
	return ""
}

type memoryUserRepo struct{ s *memoryStore }

func (r memoryUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return entity.ErrDuplicate
		}
	}
	r.s.nextUser++
	now := time.Now()
	user.ID = r.s.nextUser
	user.CreatedAt, user.UpdatedAt = now, now
	stored := *user
	r.s.users[user.ID] = &stored
	return nil
}

func (r memoryUserRepo) find(match func(*entity.User) bool) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			found := *u
			return &found, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (r memoryUserRepo) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id })
}

func (r memoryUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username })
}

func (r memoryUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == email })
}

func (r memoryUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return entity.ErrUserNotFound
	}
	user.UpdatedAt = time.Now()
	stored := *user
	r.s.users[user.ID] = &stored
	return nil
}

func (r memoryUserRepo) Delete(ctx context.Context, id uint) ([]uint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return nil, entity.ErrUserNotFound
	}
	delete(r.s.users, id)
	var postIDs []uint
	for pid, p := range r.s.posts {
		if p.OwnerID == id {
			delete(r.s.posts, pid)
			postIDs = append(postIDs, pid)
		}
	}
	sort.Slice(postIDs, func(i, j int) bool { return postIDs[i] < postIDs[j] })
	for pid, p := range r.s.profiles {
		if p.OwnerID == id {
			delete(r.s.profiles, pid)
		}
	}
	return postIDs, nil
}

type memoryPostRepo struct{ s *memoryStore }

func (r memoryPostRepo) Create(ctx context.Context, post *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextPost++
	now := time.Now()
	post.ID = r.s.nextPost
	post.CreatedAt, post.UpdatedAt = now, now
	post.Owner = r.s.username(post.OwnerID)
	stored := *post
	r.s.posts[post.ID] = &stored
	return nil
}

func (r memoryPostRepo) GetByID(ctx context.Context, id uint) (*entity.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, entity.ErrPostNotFound
	}
	found := *p
	return &found, nil
}

func (r memoryPostRepo) List(ctx context.Context, filter entity.PostFilter) ([]*entity.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var posts []*entity.Post
	for _, p := range r.s.posts {
		if filter.OwnerID != 0 && p.OwnerID != filter.OwnerID {
			continue
		}
		found := *p
		posts = append(posts, &found)
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
	if filter.Offset >= len(posts) {
		return []*entity.Post{}, nil
	}
	posts = posts[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(posts) {
		posts = posts[:filter.Limit]
	}
	return posts, nil
}

func (r memoryPostRepo) Count(ctx context.Context, filter entity.PostFilter) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, p := range r.s.posts {
		if filter.OwnerID == 0 || p.OwnerID == filter.OwnerID {
			n++
		}
	}
	return n, nil
}

func (r memoryPostRepo) Update(ctx context.Context, post *entity.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.posts[post.ID]
	if !ok {
		return entity.ErrPostNotFound
	}
	stored.Title = post.Title
	stored.Content = post.Content
	stored.UpdatedAt = time.Now()
	post.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r memoryPostRepo) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[id]; !ok {
		return entity.ErrPostNotFound
	}
	delete(r.s.posts, id)
	return nil
}

type memoryProfileRepo struct{ s *memoryStore }

func (r memoryProfileRepo) Create(ctx context.Context, profile *entity.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.profiles {
		if p.OwnerID == profile.OwnerID {
			return entity.ErrDuplicate
		}
	}
	r.s.nextProf++
	now := time.Now()
	profile.ID = r.s.nextProf
	profile.CreatedAt, profile.UpdatedAt = now, now
	profile.Owner = r.s.username(profile.OwnerID)
	stored := *profile
	r.s.profiles[profile.ID] = &stored
	return nil
}

func (r memoryProfileRepo) GetByID(ctx context.Context, id uint) (*entity.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[id]
	if !ok {
		return nil, entity.ErrProfileNotFound
	}
	found := *p
	return &found, nil
}

func (r memoryProfileRepo) GetByOwnerID(ctx context.Context, ownerID uint) (*entity.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.profiles {
		if p.OwnerID == ownerID {
			found := *p
			return &found, nil
		}
	}
	return nil, entity.ErrProfileNotFound
}

func (r memoryProfileRepo) List(ctx context.Context, limit, offset int) ([]*entity.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var profiles []*entity.Profile
	for _, p := range r.s.profiles {
		found := *p
		profiles = append(profiles, &found)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].ID > profiles[j].ID })
	if offset >= len(profiles) {
		return []*entity.Profile{}, nil
	}
	profiles = profiles[offset:]
	if limit > 0 && limit < len(profiles) {
		profiles = profiles[:limit]
	}
	return profiles, nil
}

func (r memoryProfileRepo) Update(ctx context.Context, profile *entity.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.profiles[profile.ID]
	if !ok {
		return entity.ErrProfileNotFound
	}
	stored.Name = profile.Name
	stored.Content = profile.Content
	stored.Image = profile.Image
	stored.UpdatedAt = time.Now()
	return nil
}

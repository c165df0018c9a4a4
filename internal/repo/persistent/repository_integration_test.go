package persistent

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"postboard/internal/entity"
	"postboard/migrations"
	"postboard/pkg/database"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

type RepositorySuite struct {
	suite.Suite
	ctx       context.Context
	container testcontainers.Container
	db        *gorm.DB

	users    UserRepository
	posts    PostRepository
	profiles ProfileRepository
}

func TestRepositorySuite(t *testing.T) {
	if os.Getenv("INTEGRATION_TESTS") != "1" {
		t.Skip("set INTEGRATION_TESTS=1 to run against a Postgres container")
	}
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupSuite() {
	s.ctx = context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postboard",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	s.Require().NoError(err)
	s.container = container

	host, err := container.Host(s.ctx)
	s.Require().NoError(err)
	port, err := container.MappedPort(s.ctx, "5432")
	s.Require().NoError(err)

	dsn := fmt.Sprintf("host=%s user=postgres password=postgres dbname=postboard port=%s sslmode=disable", host, port.Port())
	s.db, err = database.Open(dsn)
	s.Require().NoError(err)

	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	goose.SetBaseFS(migrations.FS)
	s.Require().NoError(goose.SetDialect("postgres"))
	s.Require().NoError(goose.Up(sqlDB, "."))

	s.users = NewUserRepository(s.db)
	s.posts = NewPostRepository(s.db)
	s.profiles = NewProfileRepository(s.db)
}

func (s *RepositorySuite) TearDownSuite() {
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(s.ctx))
	}
}

func (s *RepositorySuite) SetupTest() {
	s.Require().NoError(s.db.Exec("TRUNCATE profiles, posts, users RESTART IDENTITY CASCADE").Error)
}

func (s *RepositorySuite) createUser(username string) *entity.User {
	user := &entity.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hash",
		IsActive: true,
	}
	s.Require().NoError(s.users.Create(s.ctx, user))
	return user
}

func (s *RepositorySuite) TestUserDuplicate() {
	s.createUser("alice")

	err := s.users.Create(s.ctx, &entity.User{Username: "alice", Email: "other@example.com", Password: "hash"})

	s.ErrorIs(err, entity.ErrDuplicate)
}

func (s *RepositorySuite) TestUserNotFound() {
	_, err := s.users.GetByUsername(s.ctx, "nobody")
	s.ErrorIs(err, entity.ErrUserNotFound)

	_, err = s.users.Delete(s.ctx, 999)
	s.ErrorIs(err, entity.ErrUserNotFound)
}

func (s *RepositorySuite) TestPostLifecycle() {
	owner := s.createUser("alice")

	post := &entity.Post{OwnerID: owner.ID, Title: "  first  "}
	s.Require().NoError(s.posts.Create(s.ctx, post))
	s.Equal(uint(1), post.ID)
	s.Equal("first", post.Title)
	s.Equal("alice", post.Owner)
	s.False(post.CreatedAt.IsZero())

	post.Title = "renamed"
	s.Require().NoError(s.posts.Update(s.ctx, post))

	stored, err := s.posts.GetByID(s.ctx, post.ID)
	s.Require().NoError(err)
	s.Equal("renamed", stored.Title)
	s.Equal(owner.ID, stored.OwnerID)

	s.Require().NoError(s.posts.Delete(s.ctx, post.ID))
	_, err = s.posts.GetByID(s.ctx, post.ID)
	s.ErrorIs(err, entity.ErrPostNotFound)
	s.ErrorIs(s.posts.Delete(s.ctx, post.ID), entity.ErrPostNotFound)
	s.ErrorIs(s.posts.Update(s.ctx, post), entity.ErrPostNotFound)
}

func (s *RepositorySuite) TestPostListOrderAndFilter() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")

	for i, ownerID := range []uint{alice.ID, bob.ID, alice.ID} {
		s.Require().NoError(s.posts.Create(s.ctx, &entity.Post{OwnerID: ownerID, Title: fmt.Sprintf("post %d", i+1)}))
	}

	all, err := s.posts.List(s.ctx, entity.PostFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal("post 3", all[0].Title)
	s.Equal("post 1", all[2].Title)

	page, err := s.posts.List(s.ctx, entity.PostFilter{Limit: 1, Offset: 1})
	s.Require().NoError(err)
	s.Require().Len(page, 1)
	s.Equal("post 2", page[0].Title)

	byAlice, err := s.posts.List(s.ctx, entity.PostFilter{OwnerID: alice.ID})
	s.Require().NoError(err)
	s.Len(byAlice, 2)

	count, err := s.posts.Count(s.ctx, entity.PostFilter{Limit: 1})
	s.Require().NoError(err)
	s.Equal(int64(3), count)

	count, err = s.posts.Count(s.ctx, entity.PostFilter{OwnerID: bob.ID})
	s.Require().NoError(err)
	s.Equal(int64(1), count)
}

func (s *RepositorySuite) TestProfileUniquePerOwner() {
	owner := s.createUser("alice")

	profile := &entity.Profile{OwnerID: owner.ID}
	s.Require().NoError(s.profiles.Create(s.ctx, profile))
	s.Equal("../default_profile_lcovgw", profile.Image)
	s.Equal("alice", profile.Owner)

	err := s.profiles.Create(s.ctx, &entity.Profile{OwnerID: owner.ID})
	s.ErrorIs(err, entity.ErrDuplicate)

	var count int64
	s.Require().NoError(s.db.Table("profiles").Where("owner_id = ?", owner.ID).Count(&count).Error)
	s.Equal(int64(1), count)
}

func (s *RepositorySuite) TestProfileUpdate() {
	owner := s.createUser("alice")
	profile := &entity.Profile{OwnerID: owner.ID}
	s.Require().NoError(s.profiles.Create(s.ctx, profile))

	profile.Name = "Ada"
	profile.Content = "about me"
	s.Require().NoError(s.profiles.Update(s.ctx, profile))

	stored, err := s.profiles.GetByOwnerID(s.ctx, owner.ID)
	s.Require().NoError(err)
	s.Equal("Ada", stored.Name)
	s.Equal("about me", stored.Content)
}

func (s *RepositorySuite) TestUserDeleteCascades() {
	owner := s.createUser("alice")
	s.Require().NoError(s.profiles.Create(s.ctx, &entity.Profile{OwnerID: owner.ID}))
	post := &entity.Post{OwnerID: owner.ID, Title: "bye"}
	s.Require().NoError(s.posts.Create(s.ctx, post))

	postIDs, err := s.users.Delete(s.ctx, owner.ID)
	s.Require().NoError(err)
	s.Equal([]uint{post.ID}, postIDs)

	_, err = s.profiles.GetByOwnerID(s.ctx, owner.ID)
	s.ErrorIs(err, entity.ErrProfileNotFound)
	count, err := s.posts.Count(s.ctx, entity.PostFilter{})
	s.Require().NoError(err)
	s.Equal(int64(0), count)
}

package bootstrap

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/projects"
	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/storage/postgres"
	"github.com/ReqLens-25-26J-441/req-lens-backend/internal/users"
)

func testRedisClient(t *testing.T) *redis.Client {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestBuildStores(t *testing.T) {
	t.Run("redis repos without a sql handle", func(t *testing.T) {
		st := BuildStores(RouterDeps{Redis: testRedisClient(t)})

		assert.IsType(t, &users.Repo{}, st.Users)
		assert.IsType(t, &projects.Repo{}, st.Projects)
	})

	t.Run("postgres stores when a sql handle is present", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		st := BuildStores(RouterDeps{Redis: testRedisClient(t), SQLDB: db})

		assert.IsType(t, &postgres.UserStore{}, st.Users)
		assert.IsType(t, &postgres.ProjectStore{}, st.Projects)
	})
}

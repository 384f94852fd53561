package httpserver_test

import (
	"context"
	"dsmovie/auth"
	"dsmovie/httpserver"
	"dsmovie/movie"
	"dsmovie/postgres"
	"dsmovie/score"
	"dsmovie/user"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

func MustCreateServer(t testing.TB, db *gorm.DB) *httpserver.Server {
	t.Helper()

	tx := postgres.NewTransactor(db)
	movies := postgres.NewMovieRepository(db)
	users := user.NewUsecase(postgres.NewUserRepository(db), auth.ContextSecurity{})

	sqlDB, err := db.DB()
	require.NoError(t, err)

	return httpserver.Default(testConfig(),
		httpserver.WithDatabase(sqlDB),
		httpserver.WithUserService(users),
		httpserver.WithMovieService(movie.NewUsecase(movies, tx)),
		httpserver.WithScoreService(score.NewUsecase(users, movies, postgres.NewScoreRepository(db), tx)),
	)
}

// MustCreateTestDatabase creates a new testcontainer PostgreSQL database and returns a GORM DB connection
func MustCreateTestDatabase(t testing.TB) *gorm.DB {
	t.Helper()
	ctx := context.Background()
	dbName, dbUser, dbPass := "test_dsmovie", "test", "testpass"
	postgre, err := pgcontainer.RunContainer(ctx,
		testcontainers.WithImage("docker.io/postgres:15.2-alpine"),
		pgcontainer.WithDatabase(dbName),
		pgcontainer.WithUsername(dbUser),
		pgcontainer.WithPassword(dbPass),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() {
		err := postgre.Terminate(ctx)
		assert.NoError(t, err, "failed to terminate postgres container")
	})

	host, port := extractHostAndPort(t, ctx, postgre)
	db, err := postgres.NewConnection(postgres.Options{
		DBName:   dbName,
		DBUser:   dbUser,
		Password: dbPass,
		Host:     host,
		Port:     port.Port(),
	})
	require.NoError(t, err, "failed to connect to postgres database")

	return db
}

func extractHostAndPort(t testing.TB, ctx context.Context, postgre *pgcontainer.PostgresContainer) (string, nat.Port) {
	t.Helper()
	host, err := postgre.Host(ctx)
	assert.NoError(t, err, "failed to get container host")

	port, err := postgre.MappedPort(ctx, "5432")
	assert.NoError(t, err, "failed to get mapped port")
	return host, port
}

// MigrateTestDatabase runs all migration files against the test database
func MigrateTestDatabase(t testing.TB, db *gorm.DB, migrationPath string) {
	t.Helper()
	migrations := &migrate.FileMigrationSource{
		Dir: migrationPath,
	}

	sqlDB, err := db.DB()
	require.NoError(t, err, "failed to get sql.DB from gorm.DB")

	_, err = migrate.Exec(sqlDB, "postgres", migrations, migrate.Up)
	require.NoError(t, err, "failed to run database migrations")
}

func TestScoreFlow_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := MustCreateTestDatabase(t)
	MigrateTestDatabase(t, db, "../migrations")
	server := MustCreateServer(t, db)
	admin := mustSignTestToken(t, adminUsername)
	client := mustSignTestToken(t, clientUsername)

	rec := serve(server, newJSONRequest(t, http.MethodPost, "/api/movies",
		map[string]string{"title": "The Witcher"}, admin))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created movie.Detail
	decodeResult(t, rec, &created)

	saveScore := func(token string, value float64) movie.Detail {
		t.Helper()
		rec := serve(server, newJSONRequest(t, http.MethodPut, "/api/scores",
			map[string]interface{}{"movieId": created.ID, "score": value}, token))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var d movie.Detail
		decodeResult(t, rec, &d)
		return d
	}

	d := saveScore(admin, 4.0)
	assert.Equal(t, 4.0, d.Score)
	assert.Equal(t, 1, d.Count)

	d = saveScore(admin, 2.0)
	assert.Equal(t, 2.0, d.Score)
	assert.Equal(t, 1, d.Count)

	d = saveScore(client, 5.0)
	assert.Equal(t, 3.5, d.Score)
	assert.Equal(t, 2, d.Count)

	rec = serve(server, newJSONRequest(t, http.MethodPut, "/api/scores",
		map[string]interface{}{"movieId": 999999, "score": 3}, client))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(server, newJSONRequest(t, http.MethodDelete, "/api/movies/"+strconv.FormatInt(created.ID, 10), nil, admin))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(server, newJSONRequest(t, http.MethodGet, "/api/movies?title=WITCHER", nil, ""))
	require.Equal(t, http.StatusOK, rec.Code)
	var list listResult
	decodeResult(t, rec, &list)
	require.Len(t, list.Data, 1)
	assert.Equal(t, 3.5, list.Data[0].Score)

	rec = serve(server, newJSONRequest(t, http.MethodGet, "/healthcheck", nil, ""))
	assert.Equal(t, http.StatusOK, rec.Code)
}

package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/glassview/internal/model"
)

// getMongoDB connects to MONGO_URI and skips the test when no server answers.
func getMongoDB(t *testing.T) *mongo.Database {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(2*time.Second))
	if err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		t.Skipf("MongoDB not available: %v", err)
	}
	db := client.Database("glassview_test_" + time.Now().Format("20060102150405"))
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func TestMongoInventoryRoundTrip(t *testing.T) {
	db := getMongoDB(t)
	ctx := context.Background()
	require.NoError(t, EnsureMongoIndexes(ctx, db))
	repo := NewMongoInventoryRepo(db)

	created, err := repo.Create(ctx, lensA())
	require.NoError(t, err)
	assert.Len(t, created.ID, 24)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	uid, other := int64(3), int64(4)
	mine, err := repo.List(ctx, InventoryFilter{UserID: &uid})
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	theirs, err := repo.List(ctx, InventoryFilter{UserID: &other})
	require.NoError(t, err)
	assert.Empty(t, theirs)

	upd := got
	upd.Quantity = 5
	_, err = repo.Update(ctx, created.ID, upd)
	require.NoError(t, err)
	got, err = repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Quantity)
	assert.Equal(t, 20.0, got.Price)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), ErrNotFound)
	_, err = repo.Get(ctx, "zzz")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMongoLocationRoundTrip(t *testing.T) {
	db := getMongoDB(t)
	ctx := context.Background()
	repo := NewMongoLocationRepo(db)

	in := model.Location{Name: "Main", Address: "1 Main St", State: "CA", ZipCode: 94105, Capacity: 10}
	created, err := repo.Create(ctx, in)
	require.NoError(t, err)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	in.ID = created.ID
	assert.Equal(t, in, got)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = repo.Update(ctx, "0123456789abcdef01234567", in)
	assert.ErrorIs(t, err, ErrNotFound)
}

package repo

import (
	"context"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rogerio-castellano/products-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestSetFields(t *testing.T) {
	assert.Empty(t, setFields(models.ProductPatch{}))
	assert.Equal(t, bson.M{"stock": 0}, setFields(models.ProductPatch{Stock: ptr(0)}))
	assert.Equal(t,
		bson.M{"name": "n", "price": 2.5, "stock": 1},
		setFields(models.ProductPatch{Name: ptr("n"), Price: ptr(2.5), Stock: ptr(1)}),
	)
}

// liveMongoClient connects to TEST_MONGO_URL or skips the test.
func liveMongoClient(t *testing.T) *mongo.Client {
	t.Helper()
	uri := os.Getenv("TEST_MONGO_URL")
	if uri == "" {
		t.Skip("TEST_MONGO_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	return client
}

func freshMongoDatabase(t *testing.T, client *mongo.Client, n int) *mongo.Database {
	t.Helper()
	db := client.Database("products_test_" + strconv.FormatInt(time.Now().UnixNano(), 36) + "_" + strconv.Itoa(n))
	t.Cleanup(func() { _ = db.Drop(context.Background()) })
	return db
}

// TestMongoProductRepository runs against a live deployment when TEST_MONGO_URL is set.
func TestMongoProductRepository(t *testing.T) {
	client := liveMongoClient(t)

	n := 0
	runProductRepositoryContract(t, func(t *testing.T) ProductRepository {
		n++
		return NewMongoProductRepository(freshMongoDatabase(t, client, n), 3*time.Second)
	})
}

func TestMongoProductRepository_ConcurrentFirstCreates(t *testing.T) {
	client := liveMongoClient(t)
	r := NewMongoProductRepository(freshMongoDatabase(t, client, 0), 5*time.Second)

	const workers = 8
	ids := make(chan int64, workers)
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := r.Create(context.Background(), models.Product{Name: "racer", Price: 1})
			if err != nil {
				errs <- err
				return
			}
			ids <- p.ID
		}()
	}
	wg.Wait()
	close(ids)
	close(errs)

	for err := range errs {
		t.Errorf("create on a fresh database: %v", err)
	}
	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id], "id %d issued twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)
}

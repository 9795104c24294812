package repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/products-api/internal/models"
)

// RedisProductRepository keeps each product in a hash at <prefix>:<id>, a sorted
// set of ids at <prefix>:ids and the id sequence at <prefix>:seq.
type RedisProductRepository struct {
	rdb     redis.UniversalClient
	prefix  string
	timeout time.Duration
}

var createScript = redis.NewScript(`
local id = redis.call('INCR', KEYS[1])
redis.call('HSET', ARGV[1] .. id, 'name', ARGV[2], 'price', ARGV[3], 'stock', ARGV[4])
redis.call('ZADD', KEYS[2], id, id)
return id
`)

var updateScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
  return false
end
for i = 1, #ARGV, 2 do
  redis.call('HSET', KEYS[1], ARGV[i], ARGV[i + 1])
end
return redis.call('HGETALL', KEYS[1])
`)

var deleteScript = redis.NewScript(`
local fields = redis.call('HGETALL', KEYS[1])
if #fields == 0 then
  return false
end
redis.call('DEL', KEYS[1])
redis.call('ZREM', KEYS[2], ARGV[1])
return fields
`)

func NewRedisProductRepository(rdb redis.UniversalClient, prefix string, timeout time.Duration) *RedisProductRepository {
	return &RedisProductRepository{rdb: rdb, prefix: prefix, timeout: timeout}
}

func (r *RedisProductRepository) key(id int64) string {
	return r.prefix + ":" + strconv.FormatInt(id, 10)
}

func (r *RedisProductRepository) idsKey() string { return r.prefix + ":ids" }
func (r *RedisProductRepository) seqKey() string { return r.prefix + ":seq" }

func (r *RedisProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	id, err := createScript.Run(ctx, r.rdb,
		[]string{r.seqKey(), r.idsKey()},
		r.prefix+":", p.Name, formatPrice(p.Price), p.Stock,
	).Int64()
	if err != nil {
		return models.Product{}, fmt.Errorf("insert product: %w", err)
	}
	p.ID = id
	return p, nil
}

func (r *RedisProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	ids, err := r.rdb.ZRange(ctx, r.idsKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list product ids: %w", err)
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = r.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, r.prefix+":"+id)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]models.Product, 0, len(ids))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			// removed between ZRANGE and HGETALL
			continue
		}
		id, err := strconv.ParseInt(ids[i], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse product id %q: %w", ids[i], err)
		}
		p, err := productFromHash(id, fields)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func (r *RedisProductRepository) GetByID(ctx context.Context, id int64) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	fields, err := r.rdb.HGetAll(ctx, r.key(id)).Result()
	if err != nil {
		return models.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	if len(fields) == 0 {
		return models.Product{}, ErrProductNotFound
	}
	return productFromHash(id, fields)
}

func (r *RedisProductRepository) Update(ctx context.Context, id int64, patch models.ProductPatch) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	reply, err := updateScript.Run(ctx, r.rdb, []string{r.key(id)}, hashArgs(patch)...).Slice()
	if errors.Is(err, redis.Nil) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("update product %d: %w", id, err)
	}
	return productFromHash(id, pairsToMap(reply))
}

func (r *RedisProductRepository) Delete(ctx context.Context, id int64) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	reply, err := deleteScript.Run(ctx, r.rdb, []string{r.key(id), r.idsKey()}, id).Slice()
	if errors.Is(err, redis.Nil) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("delete product %d: %w", id, err)
	}
	return productFromHash(id, pairsToMap(reply))
}

func (r *RedisProductRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return r.rdb.Ping(ctx).Err()
}

// hashArgs flattens the non-nil fields of patch into HSET field/value pairs.
func hashArgs(patch models.ProductPatch) []any {
	args := []any{}
	if patch.Name != nil {
		args = append(args, "name", *patch.Name)
	}
	if patch.Price != nil {
		args = append(args, "price", formatPrice(*patch.Price))
	}
	if patch.Stock != nil {
		args = append(args, "stock", strconv.Itoa(*patch.Stock))
	}
	return args
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

func pairsToMap(reply []any) map[string]string {
	fields := make(map[string]string, len(reply)/2)
	for i := 0; i+1 < len(reply); i += 2 {
		k, _ := reply[i].(string)
		v, _ := reply[i+1].(string)
		fields[k] = v
	}
	return fields
}

func productFromHash(id int64, fields map[string]string) (models.Product, error) {
	p := models.Product{ID: id, Name: fields["name"]}

	price, err := strconv.ParseFloat(fields["price"], 64)
	if err != nil {
		return models.Product{}, fmt.Errorf("parse price of product %d: %w", id, err)
	}
	p.Price = price

	if s, ok := fields["stock"]; ok && s != "" {
		stock, err := strconv.Atoi(s)
		if err != nil {
			return models.Product{}, fmt.Errorf("parse stock of product %d: %w", id, err)
		}
		p.Stock = stock
	}
	return p, nil
}

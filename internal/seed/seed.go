// Package seed loads the initial back-office records into the stores.
//
// Records come from the JSON documents embedded in the binary and, when a
// directory is configured, from files named <collection>.json,
// <collection>.json.gz, <collection>-*.json or <collection>-*.json.gz in it.
// Files are applied in that order; a later record replaces an earlier one
// with the same id.
package seed

import (
	"context"
	"embed"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	pgzip "github.com/klauspost/pgzip"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/backoffice/internal/domain/customer"
	"github.com/xenking/backoffice/internal/domain/order"
	"github.com/xenking/backoffice/internal/domain/product"
	"github.com/xenking/backoffice/internal/wire"
)

//go:embed data/*.json
var embedded embed.FS

const (
	bloomFPR = 0.001
	// maxFileSize bounds a single decompressed seed document.
	maxFileSize = 64 << 20
)

// Seeder is a store that accepts initial records.
type Seeder[T any] interface {
	Name() string
	Seed(records ...T)
}

// Stores are the seed targets.
type Stores struct {
	Orders    Seeder[order.Order]
	Products  Seeder[product.Product]
	Customers Seeder[customer.Customer]
}

// Result counts the loaded records.
type Result struct {
	Orders    int
	Products  int
	Customers int
	// Migrated is the number of products upgraded to product.CurrentVersion.
	Migrated int
}

// Load fills s from the embedded documents and dir. An empty dir loads the
// embedded documents only. Collections are loaded concurrently.
func Load(ctx context.Context, dir string, s Stores) (Result, error) {
	var res Result

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		orders, err := collect(ctx, dir, s.Orders.Name(), order.Key, wire.DecodeOrder)
		if err != nil {
			return err
		}
		s.Orders.Seed(orders...)
		res.Orders = len(orders)
		return nil
	})
	g.Go(func() error {
		products, err := collect(ctx, dir, s.Products.Name(), product.Key, wire.DecodeProduct)
		if err != nil {
			return err
		}
		for i := range products {
			if product.Migrate(&products[i]) {
				res.Migrated++
			}
		}
		s.Products.Seed(products...)
		res.Products = len(products)
		return nil
	})
	g.Go(func() error {
		customers, err := collect(ctx, dir, s.Customers.Name(), customer.Key, wire.DecodeCustomer)
		if err != nil {
			return err
		}
		s.Customers.Seed(customers...)
		res.Customers = len(customers)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	zctx.From(ctx).Info("Seeded stores",
		zap.Int("orders", res.Orders),
		zap.Int("products", res.Products),
		zap.Int("customers", res.Customers),
		zap.Int("migrated", res.Migrated),
	)
	return res, nil
}

func collect[T any](
	ctx context.Context,
	dir, name string,
	key func(*T) string,
	dec func(*jx.Decoder) (T, error),
) ([]T, error) {
	lg := zctx.From(ctx).With(zap.String("collection", name))

	data, err := embedded.ReadFile("data/" + name + ".json")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrapf(err, "read embedded %s", name)
	}
	var records []T
	if len(data) > 0 {
		records, err = wire.DecodeList(jx.DecodeBytes(data), dec)
		if err != nil {
			return nil, errors.Wrapf(err, "decode embedded %s", name)
		}
	}

	files, err := Files(dir, name)
	if err != nil {
		return nil, err
	}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := readFile(path)
		if err != nil {
			return nil, err
		}
		more, err := wire.DecodeList(jx.DecodeBytes(data), dec)
		if err != nil {
			return nil, errors.Wrapf(err, "decode %s", path)
		}
		lg.Debug("Read seed file", zap.String("path", path), zap.Int("records", len(more)))
		records = append(records, more...)
	}

	ids := make([]string, len(records))
	for i := range records {
		ids[i] = key(&records[i])
		if ids[i] == "" {
			return nil, errors.Errorf("%s[%d]: empty id", name, i)
		}
	}
	if dup := Duplicates(ids); len(dup) > 0 {
		lg.Warn("Seed records replaced by later ones", zap.Strings("ids", dup))
	}
	return records, nil
}

// Files returns the seed files for collection name in dir, in load order.
func Files(dir, name string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	var files []string
	for _, pattern := range []string{
		name + ".json",
		name + ".json.gz",
		name + "-*.json",
		name + "-*.json.gz",
	} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, errors.Wrapf(err, "glob %s", pattern)
		}
		slices.Sort(matches)
		files = append(files, matches...)
	}
	return files, nil
}

// readFile reads a seed document, decompressing .gz files.
func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "create gzip reader for %s", path)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	data, err := io.ReadAll(io.LimitReader(r, maxFileSize+1))
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	if len(data) > maxFileSize {
		return nil, errors.Errorf("%s: larger than %d bytes", path, maxFileSize)
	}
	return data, nil
}

// Duplicates returns the ids that occur more than once, sorted.
//
// A bloom filter picks the candidates in one pass; only those are counted
// exactly.
func Duplicates(ids []string) []string {
	if len(ids) < 2 {
		return nil
	}
	filter := bloom.NewWithEstimates(uint(len(ids)), bloomFPR)
	counts := make(map[string]int)
	for _, id := range ids {
		if filter.TestOrAddString(id) {
			counts[id] = 0
		}
	}
	if len(counts) == 0 {
		return nil
	}
	for _, id := range ids {
		if _, ok := counts[id]; ok {
			counts[id]++
		}
	}

	var out []string
	for id, n := range counts {
		if n > 1 {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

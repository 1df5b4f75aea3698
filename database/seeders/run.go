// Package seeders fills a catalog with fake categories, products and orders.
//
// Everything goes through the services, so images are uploaded, category
// references are checked and order totals are priced the same way the API
// does it.
//
//	s := seeders.New(app.Services, 0, os.Stdout)
//	res, err := s.Run(ctx, seeders.Counts{Categories: 5, Products: 20, Orders: 10})
package seeders

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/shashiranjanraj/catalog/app/models"
	"github.com/shashiranjanraj/catalog/internal/server"
	"github.com/shashiranjanraj/catalog/pkg/collection"
)

// Counts is how many rows of each kind Run creates.
type Counts struct {
	Categories int
	Products   int
	Orders     int
}

// DefaultCounts matches the populate command's defaults.
var DefaultCounts = Counts{Categories: 5, Products: 20, Orders: 10}

// Result holds everything Run created.
type Result struct {
	Categories []models.Category
	Products   []models.Product
	Orders     []models.Order
}

type step struct {
	name string
	fn   func(ctx context.Context, n Counts, res *Result) error
}

type Seeder struct {
	svc   server.Services
	faker *gofakeit.Faker
	out   io.Writer
	now   func() time.Time
	steps []step
}

// New returns a seeder writing progress to out. A zero seed picks a random
// one.
func New(svc server.Services, seed uint64, out io.Writer) *Seeder {
	if out == nil {
		out = io.Discard
	}
	s := &Seeder{svc: svc, faker: gofakeit.New(seed), out: out, now: time.Now}
	s.steps = []step{
		{"categories", s.categories},
		{"products", s.products},
		{"orders", s.orders},
	}
	return s
}

// Run executes every step in order and stops on the first error.
func (s *Seeder) Run(ctx context.Context, n Counts) (Result, error) {
	var res Result
	for _, st := range s.steps {
		fmt.Fprintf(s.out, "  • Running seeder: %s … ", st.name)
		if err := st.fn(ctx, n, &res); err != nil {
			fmt.Fprintln(s.out, "FAILED")
			return res, fmt.Errorf("seeder %q: %w", st.name, err)
		}
		fmt.Fprintln(s.out, "done")
	}
	return res, nil
}

func (s *Seeder) categories(ctx context.Context, n Counts, res *Result) error {
	for range n.Categories {
		c, err := s.svc.Categories.Create(ctx, models.CategoryInput{Name: s.faker.ProductCategory()})
		if err != nil {
			return err
		}
		res.Categories = append(res.Categories, c)
	}
	return nil
}

func (s *Seeder) products(ctx context.Context, n Counts, res *Result) error {
	ids := collection.Pluck(res.Categories, func(c models.Category) string { return c.ID })

	for range n.Products {
		p, err := s.svc.Products.Create(ctx, models.ProductInput{
			Name:        s.faker.ProductName(),
			Description: s.faker.ProductDescription(),
			Price:       math.Round(s.faker.Price(5, 500)*100) / 100,
			CategoryIDs: s.sample(ids, 1, 2),
			Image: &models.Upload{
				Filename:    "seed.png",
				ContentType: "image/png",
				Content:     s.faker.ImagePng(64, 64),
			},
		})
		if err != nil {
			return err
		}
		res.Products = append(res.Products, p)
	}
	return nil
}

func (s *Seeder) orders(ctx context.Context, n Counts, res *Result) error {
	if n.Orders > 0 && len(res.Products) == 0 {
		return errors.New("orders need at least one product")
	}

	ids := collection.Pluck(res.Products, func(p models.Product) string { return p.ID })

	end := s.now()
	start := end.AddDate(-1, 0, 0)
	for range n.Orders {
		date := s.faker.DateRange(start, end)
		o, err := s.svc.Orders.Create(ctx, models.OrderInput{
			ProductIDs: s.sample(ids, 1, 5),
			Date:       &date,
		})
		if err != nil {
			return err
		}
		res.Orders = append(res.Orders, o)
	}
	return nil
}

// sample picks between lo and hi distinct items of from, capped at len(from).
func (s *Seeder) sample(from []string, lo, hi int) []string {
	if len(from) == 0 {
		return []string{}
	}
	hi = min(hi, len(from))
	lo = min(lo, hi)

	picked := append([]string(nil), from...)
	s.faker.ShuffleStrings(picked)
	return picked[:s.faker.IntRange(lo, hi)]
}

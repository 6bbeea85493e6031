// Package resolver deduplicates branches, employees and products across one
// batch of parsed invoices, assigning each distinct natural key a sequential
// synthetic id. The resolver is owned by a single batch run and mutated in
// file order; ids are therefore reproducible across runs over identical
// inputs. It is intentionally not safe for concurrent use.
package resolver

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// skuWidth is the length of a generated SKU hash.
const skuWidth = 12

// BranchKey is the natural key of a branch.
type BranchKey struct {
	Name    string
	Address string
	TaxID   string
}

// EmployeeKey is the natural key of an employee, scoped to the branch the
// employee was seen with. The same code/name pair under another branch is a
// different employee.
type EmployeeKey struct {
	BranchID int64
	Code     string
	Name     string
}

// Resolver owns the key->id maps for the duration of one batch run.
type Resolver struct {
	branches  map[BranchKey]int64
	employees map[EmployeeKey]int64
	products  map[string]int64

	nextBranch   int64
	nextEmployee int64
	nextProduct  int64

	skuProducts bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSKUProducts keys products by a stable hash of the description instead
// of the description itself.
func WithSKUProducts() Option {
	return func(r *Resolver) { r.skuProducts = true }
}

// New returns an empty Resolver; ids for every entity kind start at 1.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		branches:     make(map[BranchKey]int64),
		employees:    make(map[EmployeeKey]int64),
		products:     make(map[string]int64),
		nextBranch:   1,
		nextEmployee: 1,
		nextProduct:  1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Branch resolves a branch natural key to its id, allocating the next id on
// first occurrence. created reports whether the id was newly allocated.
func (r *Resolver) Branch(key BranchKey) (id int64, created bool) {
	if id, ok := r.branches[key]; ok {
		return id, false
	}
	id = r.nextBranch
	r.nextBranch++
	r.branches[key] = id
	return id, true
}

// Employee resolves an employee within its branch.
func (r *Resolver) Employee(key EmployeeKey) (id int64, created bool) {
	if id, ok := r.employees[key]; ok {
		return id, false
	}
	id = r.nextEmployee
	r.nextEmployee++
	r.employees[key] = id
	return id, true
}

// Product resolves a product by its trimmed description. Identical
// descriptions across branches collapse to one product.
func (r *Resolver) Product(description string) (id int64, created bool) {
	key := r.ProductKey(description)
	if id, ok := r.products[key]; ok {
		return id, false
	}
	id = r.nextProduct
	r.nextProduct++
	r.products[key] = id
	return id, true
}

// ProductKey returns the natural key used for a product description: the
// trimmed description, or its SKU hash in SKU mode.
func (r *Resolver) ProductKey(description string) string {
	description = strings.TrimSpace(description)
	if !r.skuProducts {
		return description
	}
	sum := sha256.Sum256([]byte(description))
	return hex.EncodeToString(sum[:])[:skuWidth]
}

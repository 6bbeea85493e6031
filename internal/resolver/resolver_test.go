package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBranchFirstOccurrenceOrder(t *testing.T) {
	r := New()

	b1, created := r.Branch(BranchKey{Name: "Tienda Norte", Address: "Calle A", TaxID: "B1"})
	assert.True(t, created)
	b2, created := r.Branch(BranchKey{Name: "Tienda Sur", Address: "Calle B", TaxID: "B2"})
	assert.True(t, created)

	assert.Equal(t, int64(1), b1)
	assert.Equal(t, int64(2), b2)
	assert.Less(t, b1, b2)

	again, created := r.Branch(BranchKey{Name: "Tienda Norte", Address: "Calle A", TaxID: "B1"})
	assert.False(t, created)
	assert.Equal(t, b1, again)
}

func TestBranchKeysAreExact(t *testing.T) {
	r := New()
	a, _ := r.Branch(BranchKey{Name: "Tienda", Address: "Calle A", TaxID: "B1"})
	b, _ := r.Branch(BranchKey{Name: "tienda", Address: "Calle A", TaxID: "B1"})
	assert.NotEqual(t, a, b, "keys are case-sensitive")
}

func TestEmployeeScopedToBranch(t *testing.T) {
	r := New()
	e1, created := r.Employee(EmployeeKey{BranchID: 1, Code: "007", Name: "Ana Ruiz"})
	assert.True(t, created)
	e2, created := r.Employee(EmployeeKey{BranchID: 2, Code: "007", Name: "Ana Ruiz"})
	assert.True(t, created)
	assert.NotEqual(t, e1, e2, "same code/name under another branch is a new employee")

	same, created := r.Employee(EmployeeKey{BranchID: 1, Code: "007", Name: "Ana Ruiz"})
	assert.False(t, created)
	assert.Equal(t, e1, same)
}

func TestEmployeeEmptyCode(t *testing.T) {
	r := New()
	id, created := r.Employee(EmployeeKey{BranchID: 1, Code: "", Name: "Ana Ruiz"})
	assert.True(t, created)
	assert.Equal(t, int64(1), id)
}

func TestProductCollapsesAcrossBranches(t *testing.T) {
	r := New()
	p1, _ := r.Product("Pan integral (500g)")
	p2, _ := r.Product("Pan integral (500g)")
	assert.Equal(t, p1, p2)

	p3, created := r.Product("Leche entera")
	assert.True(t, created)
	assert.Equal(t, int64(2), p3)
}

func TestProductKeyTrimsDescription(t *testing.T) {
	r := New()
	p1, _ := r.Product("  Pan  ")
	p2, _ := r.Product("Pan")
	assert.Equal(t, p1, p2)
}

func TestProductSKUMode(t *testing.T) {
	r := New(WithSKUProducts())

	key := r.ProductKey("Pan integral (500g)")
	assert.Len(t, key, skuWidth)
	assert.NotEqual(t, "Pan integral (500g)", key)
	// stable across calls
	assert.Equal(t, key, r.ProductKey("Pan integral (500g)"))

	p1, _ := r.Product("Pan integral (500g)")
	p2, created := r.Product("Pan integral (500g)")
	assert.False(t, created)
	assert.Equal(t, p1, p2)
}

func TestKindsCountIndependently(t *testing.T) {
	r := New()
	b, _ := r.Branch(BranchKey{Name: "T"})
	e, _ := r.Employee(EmployeeKey{BranchID: b, Name: "Ana"})
	p, _ := r.Product("Pan")
	assert.Equal(t, int64(1), b)
	assert.Equal(t, int64(1), e)
	assert.Equal(t, int64(1), p)
}

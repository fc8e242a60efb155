package pagination

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginate_Slices(t *testing.T) {
	p := Paginate(seq(12), 2, DefaultPageSize)
	assert.Equal(t, []int{6, 7, 8, 9, 10}, p.Items)
	assert.Equal(t, 12, p.Total)
	assert.Equal(t, 3, p.TotalPages)

	p = Paginate(seq(12), 0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, p.Items)

	p = Paginate(seq(12), 9, DefaultPageSize)
	assert.Empty(t, p.Items)
	assert.NotNil(t, p.Items)
}

func TestPaginate_LastPageSize(t *testing.T) {
	for n := 1; n <= 40; n++ {
		p := Paginate(seq(n), TotalPages(n, DefaultPageSize), DefaultPageSize)

		want := n % DefaultPageSize
		if want == 0 {
			want = DefaultPageSize
		}
		assert.Len(t, p.Items, want, "n=%d", n)
		assert.Equal(t, n, p.Items[len(p.Items)-1])
	}
}

func TestPaginate_HugePageDoesNotOverflow(t *testing.T) {
	// (page-1)*5 desborda a negativo para este page
	page := PageFromRequest(httptest.NewRequest("GET", "/patients?page=1844674407370955163", nil))
	assert.Equal(t, 1844674407370955163, page)

	p := Paginate(seq(3), page, DefaultPageSize)
	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	assert.Equal(t, 1, p.TotalPages)

	p = Paginate(seq(3), math.MaxInt, DefaultPageSize)
	assert.Empty(t, p.Items)
}

func TestPaginate_Empty(t *testing.T) {
	p := Paginate([]string(nil), 1, DefaultPageSize)
	assert.Empty(t, p.Items)
	assert.Equal(t, 0, p.TotalPages)
}

func TestPageFromRequest(t *testing.T) {
	assert.Equal(t, 1, PageFromRequest(httptest.NewRequest("GET", "/patients", nil)))
	assert.Equal(t, 3, PageFromRequest(httptest.NewRequest("GET", "/patients?page=3", nil)))
	assert.Equal(t, 1, PageFromRequest(httptest.NewRequest("GET", "/patients?page=-2", nil)))
	assert.Equal(t, 1, PageFromRequest(httptest.NewRequest("GET", "/patients?page=x", nil)))
}

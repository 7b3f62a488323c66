package paginate_test

import (
	"testing"

	"github.com/gnames/degportal/pkg/paginate"
	"github.com/stretchr/testify/assert"
)

func items(n int) []int {
	res := make([]int, n)
	for i := range res {
		res[i] = i + 1
	}
	return res
}

func TestFivePagedByTwo(t *testing.T) {
	p := paginate.New(items(5), 2)
	assert.Equal(t, 3, p.TotalPages())
	assert.Equal(t, []int{1, 2}, p.Page())

	assert.True(t, p.GoToPage(3))
	assert.Equal(t, []int{5}, p.Page())
	assert.False(t, p.GoToPage(4))
	assert.Equal(t, 3, p.CurrentPage())
	assert.False(t, p.HasNext())
	assert.True(t, p.HasPrevious())
	assert.Equal(t, "showing 5-5 of 5", p.Range())
}

func TestGoToPageClamped(t *testing.T) {
	p := paginate.New(items(53), 10)
	for _, n := range []int{-1, 0, 7, 100} {
		assert.False(t, p.GoToPage(n), n)
		assert.Equal(t, 1, p.CurrentPage())
	}
	assert.True(t, p.GoToPage(2))
	assert.Equal(t, "showing 11-20 of 53", p.Range())
}

func TestNextPrevious(t *testing.T) {
	p := paginate.New(items(3), 2)
	assert.False(t, p.Previous())
	assert.True(t, p.Next())
	assert.Equal(t, 2, p.CurrentPage())
	assert.False(t, p.Next())
	assert.Equal(t, 2, p.CurrentPage())
	assert.True(t, p.Previous())
	assert.Equal(t, 1, p.CurrentPage())
}

func TestEmpty(t *testing.T) {
	p := paginate.New([]int{}, 10)
	assert.Equal(t, 0, p.TotalPages())
	assert.Equal(t, 1, p.CurrentPage())
	assert.Empty(t, p.Page())
	assert.False(t, p.HasNext())
	assert.False(t, p.HasPrevious())
	assert.False(t, p.GoToPage(1))
	assert.Equal(t, "showing 0 of 0", p.Range())
}

func TestUpdateDataResets(t *testing.T) {
	p := paginate.New(items(10), 3)
	p.GoToPage(4)
	p.UpdateData(items(7))
	assert.Equal(t, 1, p.CurrentPage())
	assert.Equal(t, 3, p.TotalPages())
	assert.Equal(t, 7, p.TotalItems())
}

func TestChangePageSize(t *testing.T) {
	p := paginate.New(items(10), 3)
	p.GoToPage(2)
	assert.True(t, p.ChangePageSize(5))
	assert.Equal(t, 1, p.CurrentPage())
	assert.Equal(t, 2, p.TotalPages())

	p.GoToPage(2)
	assert.False(t, p.ChangePageSize(0))
	assert.Equal(t, 5, p.PageSize())
	assert.Equal(t, 2, p.CurrentPage())
}

func TestDefaultPageSize(t *testing.T) {
	p := paginate.New(items(1), 0)
	assert.Equal(t, paginate.DefaultPageSize, p.PageSize())
}

func TestPageIsCopy(t *testing.T) {
	data := items(4)
	p := paginate.New(data, 2)
	page := p.Page()
	page[0] = 100
	assert.Equal(t, 1, data[0])
}

func TestObservers(t *testing.T) {
	var got []paginate.State
	p := paginate.New(items(5), 2)
	p.Subscribe(func(st paginate.State) { got = append(got, st) })
	p.Next()
	p.GoToPage(9)
	p.UpdateData(nil)
	assert.Equal(t, []paginate.State{
		{CurrentPage: 2, TotalPages: 3, PageSize: 2, TotalItems: 5,
			HasPrevious: true, HasNext: true},
		{CurrentPage: 1, PageSize: 2},
	}, got)
}

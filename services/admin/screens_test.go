package admin

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dpiportal/models"
)

func makeUsers(n int) []models.AdminUser {
	users := make([]models.AdminUser, n)
	for i := range users {
		users[i] = models.AdminUser{
			ID:       i + 1,
			Email:    fmt.Sprintf("user%d@sandbox.ng", i+1),
			IsActive: i%2 == 0,
			Role:     models.RoleUser,
		}
	}
	return users
}

func TestPaginate25By10(t *testing.T) {
	users := makeUsers(25)

	p1 := Paginate(users, 1, 10)
	assert.Equal(t, 3, p1.TotalPages)
	assert.Equal(t, 25, p1.TotalItems)
	assert.Len(t, p1.Items, 10)
	assert.Equal(t, 1, p1.Items[0].ID)

	p3 := Paginate(users, 3, 10)
	require.Len(t, p3.Items, 5)
	assert.Equal(t, 21, p3.Items[0].ID)
	assert.Equal(t, 25, p3.Items[4].ID)
}

func TestPaginateBounds(t *testing.T) {
	users := makeUsers(5)
	assert.Empty(t, Paginate(users, 4, 10).Items)
	assert.Equal(t, 1, Paginate(users, 0, 10).Page)
	assert.Equal(t, DefaultPageSize, Paginate(users, 1, 0).PageSize)

	empty := Paginate(nil, 1, 10)
	assert.Equal(t, 0, empty.TotalPages)
	assert.NotNil(t, empty.Items)
}

func TestPaginateHugePage(t *testing.T) {
	users := makeUsers(25)
	for _, page := range []int{1 << 62, math.MaxInt} {
		p := Paginate(users, page, 10)
		assert.Empty(t, p.Items)
		assert.NotNil(t, p.Items)
		assert.Equal(t, 3, p.TotalPages)
		assert.Equal(t, 25, p.TotalItems)
	}
}

func TestPredicate(t *testing.T) {
	users := []models.AdminUser{
		{ID: 1, Email: "ada@agrolink.ng", FirstName: "Ada", IsActive: true, Role: models.RoleUser},
		{ID: 2, Email: "bayo@kudiway.io", IsActive: false, Role: models.RoleUser},
		{ID: 3, Email: "root@dpi.gov.ng", IsActive: true, Role: models.RoleAdmin},
	}

	ids := func(us []models.AdminUser) []int {
		out := []int{}
		for _, u := range us {
			out = append(out, u.ID)
		}
		return out
	}

	assert.Equal(t, []int{1, 3}, ids(Filter(users, Predicate(ListQuery{Screen: ScreenActive}))))
	assert.Equal(t, []int{2}, ids(Filter(users, Predicate(ListQuery{Screen: ScreenDeactivated}))))
	assert.Equal(t, []int{1, 2, 3}, ids(Filter(users, Predicate(ListQuery{Screen: ScreenManage}))))
	assert.Equal(t, []int{3}, ids(Filter(users, Predicate(ListQuery{Screen: ScreenManage, Role: "ADMIN"}))))
	assert.Equal(t, []int{1}, ids(Filter(users, Predicate(ListQuery{Screen: ScreenResetPassword, Search: "ada"}))))
}

func TestParseScreen(t *testing.T) {
	s, err := ParseScreen("active-users")
	require.NoError(t, err)
	assert.Equal(t, ScreenActive, s)

	_, err = ParseScreen("everyone")
	assert.ErrorIs(t, err, ErrUnknownScreen)
}

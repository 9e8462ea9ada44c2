package pagination_test

import (
	"context"
	"fmt"
	"testing"

	"dating-app-backend/internal/models"
	"dating-app-backend/internal/pagination"
	"dating-app-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	db := testutil.NewTestDB(t)
	for i := 0; i < 11; i++ {
		testutil.CreateUser(t, db, fmt.Sprintf("user%02d", i))
	}
	source := db.Model(&models.User{}).Order("username ASC")

	// slice length is min(size, max(0, total-(page-1)*size))
	tests := []struct {
		pageNumber, pageSize int
		wantLen              int
		wantFirst            string
	}{
		{1, 5, 5, "user00"},
		{2, 5, 5, "user05"},
		{3, 5, 1, "user10"},
		{4, 5, 0, ""},
		{1, 50, 11, "user00"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d of %d", tt.pageNumber, tt.pageSize), func(t *testing.T) {
			page, err := pagination.Create[models.User](context.Background(), source, tt.pageNumber, tt.pageSize)
			require.NoError(t, err)

			assert.Len(t, page.Items, tt.wantLen)
			assert.Equal(t, 11, page.TotalCount)
			if tt.wantLen > 0 {
				assert.Equal(t, tt.wantFirst, page.Items[0].Username)
			}
		})
	}

	t.Run("source is reusable", func(t *testing.T) {
		first, err := pagination.Create[models.User](context.Background(), source, 1, 3)
		require.NoError(t, err)
		again, err := pagination.Create[models.User](context.Background(), source, 1, 3)
		require.NoError(t, err)
		assert.Equal(t, first.Items[0].ID, again.Items[0].ID)
		assert.Equal(t, first.TotalCount, again.TotalCount)
	})
}

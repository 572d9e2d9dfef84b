package access_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porcinet/herdbook/internal/access"
	"github.com/porcinet/herdbook/internal/domain"
	"github.com/porcinet/herdbook/internal/mocks"
	"github.com/porcinet/herdbook/internal/store/memory"
	"github.com/porcinet/herdbook/internal/store/schema"
)

func TestStoreChecker_OwnsProject(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	project := &schema.Project{Name: "farm", OwnerID: "alice"}
	require.NoError(t, s.CreateProject(ctx, project))

	checker := access.NewStoreChecker(s)

	tests := []struct {
		name      string
		projectID string
		userID    string
		want      bool
	}{
		{"owner", project.ID, "alice", true},
		{"other user", project.ID, "bob", false},
		{"anonymous", project.ID, "", false},
		{"unknown project", "00000000-0000-0000-0000-000000000000", "alice", false},
		{"empty project", "", "alice", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checker.OwnsProject(ctx, tt.projectID, tt.userID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStoreChecker_StoreError(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	errBoom := errors.New("db down")
	s.FailOn("GetProject", errBoom)

	_, err := access.NewStoreChecker(s).OwnsProject(ctx, "p", "alice")
	assert.ErrorIs(t, err, errBoom)
}

func TestAuthorize(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	checker := mocks.NewMockOwnershipChecker(ctrl)

	t.Run("owner passes", func(t *testing.T) {
		checker.EXPECT().OwnsProject(ctx, "p1", "alice").Return(true, nil)
		assert.NoError(t, access.Authorize(ctx, checker, "p1", "alice"))
	})

	t.Run("non owner is forbidden", func(t *testing.T) {
		checker.EXPECT().OwnsProject(ctx, "p1", "bob").Return(false, nil)
		err := access.Authorize(ctx, checker, "p1", "bob")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("checker error is not permission", func(t *testing.T) {
		errBoom := errors.New("timeout")
		checker.EXPECT().OwnsProject(ctx, "p1", "alice").Return(false, errBoom)
		err := access.Authorize(ctx, checker, "p1", "alice")
		require.ErrorIs(t, err, errBoom)
		assert.NotErrorIs(t, err, domain.ErrForbidden)
		assert.ErrorIs(t, domain.KindOf(err), domain.ErrTransactionFailure)
	})
}

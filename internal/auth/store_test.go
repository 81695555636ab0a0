package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/helios/internal/auth"
	"github.com/MrJamesThe3rd/helios/internal/persist"
)

var jane = &auth.User{ID: "u-1", Name: "Jane Doe", Email: "jane@example.com", Plan: auth.PlanPremium}

func TestStore_Login(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *auth.MockClient)
		wantErr   error
		wantState auth.State
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *auth.MockClient) {
				m.EXPECT().Login(gomock.Any(), "jane@example.com", "secret").Return(jane, nil)
			},
			wantState: auth.State{User: jane, IsAuthenticated: true},
		},
		{
			name: "InvalidCredentials",
			setupMock: func(m *auth.MockClient) {
				m.EXPECT().Login(gomock.Any(), "jane@example.com", "secret").Return(nil, auth.ErrInvalidCredentials)
			},
			wantErr:   auth.ErrInvalidCredentials,
			wantState: auth.State{Err: auth.ErrInvalidCredentials.Error()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := auth.NewMockClient(ctrl)
			tt.setupMock(client)

			store := auth.NewStore(context.Background(), client, persist.NewMemory())
			err := store.Login(context.Background(), "jane@example.com", "secret")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.wantState, store.State())
		})
	}
}

func TestStore_SurvivesReload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	storage := persist.NewMemory()

	client := auth.NewMockClient(ctrl)
	client.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(jane, nil)
	client.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("network down"))

	store := auth.NewStore(ctx, client, storage)
	require.NoError(t, store.Login(ctx, "jane@example.com", "secret"))
	require.Error(t, store.Login(ctx, "jane@example.com", "secret"))
	require.NotEmpty(t, store.State().Err)

	reloaded := auth.NewStore(ctx, client, storage)

	assert.Equal(t, auth.State{User: jane, IsAuthenticated: true}, reloaded.State())
}

func TestStore_Signup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	params := auth.SignupParams{Name: "Jane Doe", Email: "jane@example.com", Password: "secret"}

	client := auth.NewMockClient(ctrl)
	client.EXPECT().Signup(gomock.Any(), params).Return(jane, nil)

	store := auth.NewStore(context.Background(), client, persist.NewMemory())
	require.NoError(t, store.Signup(context.Background(), params))

	assert.True(t, store.State().IsAuthenticated)
}

func TestStore_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	storage := persist.NewMemory()

	client := auth.NewMockClient(ctrl)
	client.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(jane, nil)
	client.EXPECT().Logout(gomock.Any()).Return(errors.New("already gone"))

	store := auth.NewStore(ctx, client, storage)
	require.NoError(t, store.Login(ctx, "jane@example.com", "secret"))

	store.Logout(ctx)

	assert.Equal(t, auth.State{}, store.State())

	var snap auth.Snapshot
	ok, err := persist.Load(ctx, storage, persist.KeyAuth, &snap)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, auth.Snapshot{}, snap)
}

func TestStore_FetchUser(t *testing.T) {
	t.Run("ValidSession", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		client := auth.NewMockClient(ctrl)
		client.EXPECT().GetUser(gomock.Any()).Return(jane, nil)

		store := auth.NewStore(context.Background(), client, persist.NewMemory())
		store.FetchUser(context.Background())

		assert.Equal(t, auth.State{User: jane, IsAuthenticated: true}, store.State())
	})

	t.Run("ExpiredSessionSignsOut", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx := context.Background()
		storage := persist.NewMemory()
		require.NoError(t, persist.Save(ctx, storage, persist.KeyAuth, auth.Snapshot{User: jane, IsAuthenticated: true}))

		client := auth.NewMockClient(ctrl)
		client.EXPECT().GetUser(gomock.Any()).Return(nil, auth.ErrUnauthorized)

		store := auth.NewStore(ctx, client, storage)
		require.True(t, store.State().IsAuthenticated)

		store.FetchUser(ctx)

		assert.Equal(t, auth.State{}, store.State())
	})
}

func TestStore_CheckAuth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := auth.NewMockClient(ctrl)
	client.EXPECT().HasSession().Return(true)

	store := auth.NewStore(context.Background(), client, persist.NewMemory())

	assert.True(t, store.CheckAuth())
}

func TestStore_ClearError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := auth.NewMockClient(ctrl)
	client.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, auth.ErrInvalidCredentials)

	store := auth.NewStore(context.Background(), client, persist.NewMemory())
	require.Error(t, store.Login(context.Background(), "", ""))

	store.ClearError()

	assert.Empty(t, store.State().Err)
}

func TestStore_CorruptedSnapshot(t *testing.T) {
	ctx := context.Background()
	storage := persist.NewMemory()
	require.NoError(t, storage.Set(ctx, persist.KeyAuth, []byte("{not json")))

	store := auth.NewStore(ctx, nil, storage)

	assert.Equal(t, auth.State{}, store.State())
}

func TestStore_StateIsACopy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := auth.NewMockClient(ctrl)
	client.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(jane, nil)

	store := auth.NewStore(context.Background(), client, persist.NewMemory())
	require.NoError(t, store.Login(context.Background(), "jane@example.com", "secret"))

	st := store.State()
	st.User.Name = "Mallory"

	assert.Equal(t, "Jane Doe", store.State().User.Name)
}

func TestPartialize(t *testing.T) {
	got := auth.Partialize(auth.State{User: jane, IsAuthenticated: true, IsLoading: true, Err: "boom"})

	assert.Equal(t, auth.Snapshot{User: jane, IsAuthenticated: true}, got)
}

package authflowrepo_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/instantgame-oauth2/server/authflowrepo"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepo(t *testing.T) {
	r := authflowrepo.NewInMemoryRepo()
	created := time.Now()

	require.Error(t, r.Upsert("", &authflowrepo.AuthFlowState{}))
	require.Error(t, r.Upsert("s", nil))

	require.NoError(t, r.Upsert("s", &authflowrepo.AuthFlowState{ReturnURL: "/done", CreatedAt: created}))

	got, err := r.Get("s")
	require.NoError(t, err)
	require.Equal(t, "/done", got.ReturnURL)

	got.ReturnURL = "/changed"
	again, err := r.Get("s")
	require.NoError(t, err)
	require.Equal(t, "/done", again.ReturnURL)

	require.NoError(t, r.Delete("s"))
	_, err = r.Get("s")
	require.ErrorIs(t, err, authflowrepo.ErrStateNotFound)
}

func TestAuthFlowState_Expired(t *testing.T) {
	now := time.Now()
	s := &authflowrepo.AuthFlowState{CreatedAt: now.Add(-11 * time.Minute)}
	require.True(t, s.Expired(now, 10*time.Minute))
	require.False(t, s.Expired(now, 20*time.Minute))
	require.False(t, s.Expired(now, 0))
}

package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnia-labs/omnia-api/internal/domain"
	"github.com/omnia-labs/omnia-api/internal/repository/dao"
)

type fakeStateDAO struct {
	rows map[string]dao.StakingState
}

func newFakeStateDAO() *fakeStateDAO {
	return &fakeStateDAO{rows: map[string]dao.StakingState{}}
}

func (f *fakeStateDAO) Upsert(_ context.Context, state dao.StakingState) error {
	f.rows[state.AccountID] = state
	return nil
}

func (f *fakeStateDAO) FindByAccountID(_ context.Context, accountID string) (dao.StakingState, error) {
	row, ok := f.rows[accountID]
	if !ok {
		return dao.StakingState{}, dao.ErrStateNotFound
	}
	return row, nil
}

func TestStateRepository_SaveLoad(t *testing.T) {
	d := newFakeStateDAO()
	r := NewStateRepository(d)
	ctx := context.Background()

	_, err := r.Load(ctx, "0.0.1")
	assert.ErrorIs(t, err, ErrStateNotFound)

	land := domain.Token{TokenID: "0.0.10", Metadata: domain.Metadata{Type: domain.CardLand, Properties: map[string]any{"plots": float64(1)}}}
	state := domain.StakingState{
		Tokens:        []domain.Token{land},
		LandInstances: []domain.LandInstance{{InstanceID: "i", Land: land, Plots: []domain.Plot{{}}}},
		Version:       3,
	}
	require.NoError(t, r.Save(ctx, "0.0.1", state))
	assert.Equal(t, Digest(state), d.rows["0.0.1"].Digest)
	assert.JSONEq(t, `[{"token_id":null}]`, string(mustPlotsJSON(t, d.rows["0.0.1"].LandInstances)))

	got, err := r.Load(ctx, "0.0.1")
	require.NoError(t, err)
	assert.Equal(t, state, got)
}

func mustPlotsJSON(t *testing.T, lands []byte) []byte {
	t.Helper()
	var raw []map[string]any
	require.NoError(t, json.Unmarshal(lands, &raw))
	require.Len(t, raw, 1)
	b, err := json.Marshal(raw[0]["plots"])
	require.NoError(t, err)
	return b
}

func TestStateRepository_Corrupt(t *testing.T) {
	d := newFakeStateDAO()
	d.rows["0.0.1"] = dao.StakingState{AccountID: "0.0.1", Tokens: []byte(`{`), LandInstances: []byte(`[]`)}
	r := NewStateRepository(d)

	_, err := r.Load(context.Background(), "0.0.1")
	assert.ErrorIs(t, err, ErrStateCorrupt)
}

func TestDigest(t *testing.T) {
	a := domain.StakingState{Version: 1}
	b := domain.StakingState{Tokens: []domain.Token{}, LandInstances: []domain.LandInstance{}, Version: 1}

	assert.Equal(t, Digest(a), Digest(b))
	assert.Len(t, Digest(a), 64)
	assert.NotEqual(t, Digest(a), Digest(domain.StakingState{Version: 2}))
}

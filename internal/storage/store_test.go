package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openice/rinkrat/internal/league"
)

func freshLeague() *league.League {
	return league.NewLeague(league.GenesisOptions{Seed: 1, GamesPerMatchup: 2, Density: 0.60}, nil)
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)
	return s
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	world := freshLeague()
	for i := 0; i < 3; i++ {
		_, err := world.Advance()
		require.NoError(t, err)
	}
	require.NoError(t, s.SaveLeague(world, false))

	loaded, err := s.LoadLeague(freshLeague, nil)
	require.NoError(t, err)
	assert.Empty(t, s.LastLoadError)

	assert.Equal(t, world.SeasonNumber, loaded.SeasonNumber)
	assert.Equal(t, world.DayIndex, loaded.DayIndex)
	require.Len(t, loaded.Teams, len(world.Teams))
	for i, team := range world.Teams {
		assert.Equal(t, team.Name, loaded.Teams[i].Name)
		assert.Equal(t, *world.RecordOf(team.Name), *loaded.RecordOf(team.Name))
	}
}

func TestSaveLoad_PlayerIDsStable(t *testing.T) {
	s := newTestStore(t)
	world := freshLeague()
	require.NoError(t, s.SaveLeague(world, false))

	loaded, err := s.LoadLeague(freshLeague, nil)
	require.NoError(t, err)

	for i, team := range world.Teams {
		for j, p := range team.Roster {
			assert.Equal(t, p.ID, loaded.Teams[i].Roster[j].ID)
		}
	}
}

func TestSave_IsByteStableAcrossRoundTrip(t *testing.T) {
	s := newTestStore(t)
	world := freshLeague()
	require.NoError(t, s.SaveLeague(world, false))

	first, err := os.ReadFile(filepath.Join(s.Dir(), LeagueStateFile))
	require.NoError(t, err)

	loaded, err := s.LoadLeague(freshLeague, nil)
	require.NoError(t, err)
	require.NoError(t, s.SaveLeague(loaded, false))

	second, err := os.ReadFile(filepath.Join(s.Dir(), LeagueStateFile))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestLoad_MissingFilesUseDefaults(t *testing.T) {
	s := newTestStore(t)

	loaded, err := s.LoadLeague(freshLeague, nil)
	require.NoError(t, err)
	assert.Empty(t, s.LastLoadError)
	assert.Len(t, loaded.Teams, 24)
	assert.Empty(t, loaded.History)
}

func TestLoad_CorruptStateFallsBackWithError(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), LeagueStateFile), []byte("{not json"), 0o644))

	loaded, err := s.LoadLeague(freshLeague, nil)
	require.NoError(t, err)
	assert.Len(t, loaded.Teams, 24)
	assert.NotEmpty(t, s.LastLoadError)
}

// Legacy saves stored the season history as a bare list.
func TestLoad_LegacyListHistory(t *testing.T) {
	s := newTestStore(t)
	legacy := `[{"season": 1, "note": "legacy"}]`
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), SeasonHistoryFile), []byte(legacy), 0o644))

	loaded, err := s.LoadLeague(freshLeague, nil)
	require.NoError(t, err)
	assert.Empty(t, s.LastLoadError)
	require.Len(t, loaded.History, 1)
	assert.Equal(t, 1, loaded.History[0].Season)
}

// Legacy saves stored the career index as a bare player_id map.
func TestLoad_LegacyCareerMap(t *testing.T) {
	s := newTestStore(t)
	legacy := `{"p-123": [{"season": 1, "team": "Easton Royals", "goals": 20, "assists": 30, "points": 50}]}`
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), CareerHistoryFile), []byte(legacy), 0o644))

	loaded, err := s.LoadLeague(freshLeague, nil)
	require.NoError(t, err)
	require.Contains(t, loaded.CareerIndex, "p-123")
	assert.Equal(t, 50, loaded.CareerIndex["p-123"][0].Points)
}

func TestLoad_NewerHistoryVersionRefused(t *testing.T) {
	s := newTestStore(t)
	newer := `{"save_version": 999, "season_history": [{"season": 1}]}`
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), SeasonHistoryFile), []byte(newer), 0o644))

	loaded, err := s.LoadLeague(freshLeague, nil)
	require.NoError(t, err)
	assert.Empty(t, loaded.History)
	assert.Contains(t, s.LastLoadError, "Unsupported season history version: 999")
}

func TestLoad_NewerStateVersionRefused(t *testing.T) {
	s := newTestStore(t)
	world := freshLeague()
	require.NoError(t, s.SaveLeague(world, false))

	path := filepath.Join(s.Dir(), LeagueStateFile)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var blob map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &blob))
	blob["save_version"] = json.RawMessage(`3`)
	bumped, err := json.Marshal(blob)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, bumped, 0o644))

	loaded, err := s.LoadLeague(freshLeague, nil)
	require.NoError(t, err)
	assert.Contains(t, s.LastLoadError, "Unsupported league state version: 3")
	// The defaults world stands in for the refused payload.
	assert.Equal(t, 1, loaded.SeasonNumber)
	assert.Equal(t, 0, loaded.DayIndex)
}

func TestWriteJSON_BackupRotation(t *testing.T) {
	s := newTestStore(t)
	world := freshLeague()

	require.NoError(t, s.SaveLeague(world, true))
	assert.NoFileExists(t, filepath.Join(s.Dir(), LeagueStateFile+".bak"))

	_, err := world.Advance()
	require.NoError(t, err)
	require.NoError(t, s.SaveLeague(world, true))

	bak, err := os.ReadFile(filepath.Join(s.Dir(), LeagueStateFile+".bak"))
	require.NoError(t, err)
	assert.Equal(t, 0, probeDayIndex(t, bak), "backup holds the previous day")

	cur, err := os.ReadFile(filepath.Join(s.Dir(), LeagueStateFile))
	require.NoError(t, err)
	assert.Equal(t, 1, probeDayIndex(t, cur))
}

func probeDayIndex(t *testing.T, raw []byte) int {
	t.Helper()
	var probe struct {
		DayIndex int `json:"day_index"`
	}
	require.NoError(t, json.Unmarshal(raw, &probe))
	return probe.DayIndex
}

func TestRuntime_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	rt, err := s.LoadRuntime()
	require.NoError(t, err)
	assert.Empty(t, rt.News)

	rt.Reached = map[string]bool{"p-1:goals": true}
	require.NoError(t, s.SaveRuntime(rt, false))

	back, err := s.LoadRuntime()
	require.NoError(t, err)
	assert.True(t, back.Reached["p-1:goals"])
}

// Package storage persists the world as versioned JSON envelopes with
// atomic replacement and optional .bak backups.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/openice/rinkrat/internal/league"
	"github.com/openice/rinkrat/internal/models"
)

// SaveVersion is the current on-disk format. Files written by a newer
// build are refused on load.
const SaveVersion = 2

// File names under the data directory.
const (
	LeagueStateFile   = "league_state.json"
	SeasonHistoryFile = "season_history.json"
	CareerHistoryFile = "career_history.json"
	HallOfFameFile    = "hall_of_fame.json"
	RuntimeStateFile  = "runtime_state.json"
)

// Store reads and writes the save files in one directory.
type Store struct {
	dir string
	log *logrus.Logger

	// LastLoadError remembers the most recent parse failure that forced a
	// defaults fallback; surfaced through the meta projection.
	LastLoadError string
}

// New opens (creating if needed) a save directory.
func New(dir string, log *logrus.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &Store{dir: dir, log: log}, nil
}

// Dir returns the backing directory.
func (s *Store) Dir() string { return s.dir }

type stateEnvelope struct {
	SaveVersion int `json:"save_version"`
	*league.League
}

type historyEnvelope struct {
	SaveVersion   int                         `json:"save_version"`
	SeasonHistory []models.SeasonHistoryEntry `json:"season_history"`
}

type careerEnvelope struct {
	SaveVersion   int                            `json:"save_version"`
	CareerHistory map[string][]models.SeasonLine `json:"career_history"`
}

type hallEnvelope struct {
	SaveVersion int                      `json:"save_version"`
	HallOfFame  []models.HallOfFameEntry `json:"hall_of_fame"`
}

// SaveLeague writes the four save files, state first so a crash between
// files never leaves history newer than the world it describes.
func (s *Store) SaveLeague(l *league.League, withBackup bool) error {
	if err := s.writeJSON(LeagueStateFile, stateEnvelope{SaveVersion, l}, withBackup); err != nil {
		return err
	}
	if err := s.writeJSON(SeasonHistoryFile, historyEnvelope{SaveVersion, l.History}, withBackup); err != nil {
		return err
	}
	if err := s.writeJSON(CareerHistoryFile, careerEnvelope{SaveVersion, l.CareerIndex}, withBackup); err != nil {
		return err
	}
	return s.writeJSON(HallOfFameFile, hallEnvelope{SaveVersion, l.HallOfFame}, withBackup)
}

// LoadLeague reads the world back. Missing files fall back to the
// supplied defaults; corrupt files and files written by a newer format
// version record the error and fall back to an empty payload.
func (s *Store) LoadLeague(defaults func() *league.League, log *logrus.Logger) (*league.League, error) {
	l, err := s.loadState(defaults, log)
	if err != nil {
		return nil, err
	}

	history, err := s.loadHistory()
	if err != nil {
		return nil, err
	}
	l.History = history

	career, err := s.loadCareer()
	if err != nil {
		return nil, err
	}
	l.CareerIndex = career

	hall, err := s.loadHall()
	if err != nil {
		return nil, err
	}
	l.HallOfFame = hall

	l.Wire(log)
	l.RepairAfterLoad()
	return l, nil
}

func (s *Store) loadState(defaults func() *league.League, log *logrus.Logger) (*league.League, error) {
	raw, ok, err := s.readFile(LeagueStateFile)
	if err != nil || !ok {
		if err != nil {
			s.recordLoadError(LeagueStateFile, err)
		}
		return defaults(), nil
	}

	ver := probeVersion(raw)
	if ver > SaveVersion {
		s.recordLoadError(LeagueStateFile, models.NewSimError(models.ErrVersionMismatch,
			"Unsupported league state version: %d (max %d)", ver, SaveVersion))
		return defaults(), nil
	}

	env := stateEnvelope{League: &league.League{}}
	if err := json.Unmarshal(raw, &env); err != nil {
		s.recordLoadError(LeagueStateFile, err)
		return defaults(), nil
	}
	if len(env.League.Teams) == 0 {
		s.recordLoadError(LeagueStateFile, fmt.Errorf("state has no teams"))
		return defaults(), nil
	}
	return env.League, nil
}

func (s *Store) loadHistory() ([]models.SeasonHistoryEntry, error) {
	raw, ok, err := s.readFile(SeasonHistoryFile)
	if err != nil || !ok {
		if err != nil {
			s.recordLoadError(SeasonHistoryFile, err)
		}
		return nil, nil
	}

	// Legacy saves stored the history as a bare list.
	if isJSONArray(raw) {
		var legacy []models.SeasonHistoryEntry
		if err := json.Unmarshal(raw, &legacy); err != nil {
			s.recordLoadError(SeasonHistoryFile, err)
			return nil, nil
		}
		return legacy, nil
	}

	if ver := probeVersion(raw); ver > SaveVersion {
		s.recordLoadError(SeasonHistoryFile, models.NewSimError(models.ErrVersionMismatch,
			"Unsupported season history version: %d (max %d)", ver, SaveVersion))
		return nil, nil
	}

	var env historyEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		s.recordLoadError(SeasonHistoryFile, err)
		return nil, nil
	}
	return env.SeasonHistory, nil
}

func (s *Store) loadCareer() (map[string][]models.SeasonLine, error) {
	raw, ok, err := s.readFile(CareerHistoryFile)
	if err != nil || !ok {
		if err != nil {
			s.recordLoadError(CareerHistoryFile, err)
		}
		return nil, nil
	}

	ver := probeVersion(raw)
	if ver > SaveVersion {
		s.recordLoadError(CareerHistoryFile, models.NewSimError(models.ErrVersionMismatch,
			"Unsupported career history version: %d (max %d)", ver, SaveVersion))
		return nil, nil
	}
	if ver == 0 {
		// Legacy saves stored the index as a bare player_id map.
		var legacy map[string][]models.SeasonLine
		if err := json.Unmarshal(raw, &legacy); err != nil {
			s.recordLoadError(CareerHistoryFile, err)
			return nil, nil
		}
		return legacy, nil
	}

	var env careerEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		s.recordLoadError(CareerHistoryFile, err)
		return nil, nil
	}
	return env.CareerHistory, nil
}

func (s *Store) loadHall() ([]models.HallOfFameEntry, error) {
	raw, ok, err := s.readFile(HallOfFameFile)
	if err != nil || !ok {
		if err != nil {
			s.recordLoadError(HallOfFameFile, err)
		}
		return nil, nil
	}

	if isJSONArray(raw) {
		var legacy []models.HallOfFameEntry
		if err := json.Unmarshal(raw, &legacy); err != nil {
			s.recordLoadError(HallOfFameFile, err)
			return nil, nil
		}
		return legacy, nil
	}

	if ver := probeVersion(raw); ver > SaveVersion {
		s.recordLoadError(HallOfFameFile, models.NewSimError(models.ErrVersionMismatch,
			"Unsupported hall of fame version: %d (max %d)", ver, SaveVersion))
		return nil, nil
	}

	var env hallEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		s.recordLoadError(HallOfFameFile, err)
		return nil, nil
	}
	return env.HallOfFame, nil
}

// RuntimeState is the auxiliary envelope: feeds, inbox, milestones.
type RuntimeState struct {
	News       []models.NewsItem  `json:"news,omitempty"`
	Inbox      []models.InboxItem `json:"inbox,omitempty"`
	Milestones []models.Milestone `json:"milestones,omitempty"`
	// Reached guards against re-announcing a crossed threshold.
	Reached map[string]bool `json:"reached,omitempty"`
}

type runtimeEnvelope struct {
	SaveVersion int           `json:"save_version"`
	Runtime     *RuntimeState `json:"runtime"`
}

// SaveRuntime persists the auxiliary state. Backups follow the same flag
// as the main save.
func (s *Store) SaveRuntime(rt *RuntimeState, withBackup bool) error {
	return s.writeJSON(RuntimeStateFile, runtimeEnvelope{SaveVersion, rt}, withBackup)
}

// LoadRuntime reads the auxiliary state, defaulting to empty.
func (s *Store) LoadRuntime() (*RuntimeState, error) {
	raw, ok, err := s.readFile(RuntimeStateFile)
	if err != nil || !ok {
		if err != nil {
			s.recordLoadError(RuntimeStateFile, err)
		}
		return &RuntimeState{}, nil
	}

	if ver := probeVersion(raw); ver > SaveVersion {
		s.recordLoadError(RuntimeStateFile, models.NewSimError(models.ErrVersionMismatch,
			"Unsupported runtime state version: %d (max %d)", ver, SaveVersion))
		return &RuntimeState{}, nil
	}

	var env runtimeEnvelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Runtime == nil {
		if err != nil {
			s.recordLoadError(RuntimeStateFile, err)
		}
		return &RuntimeState{}, nil
	}
	return env.Runtime, nil
}

// writeJSON replaces a save file atomically: marshal, write a sibling
// temp file, optionally rotate the current file to .bak, then rename.
func (s *Store) writeJSON(name string, v any, withBackup bool) error {
	path := filepath.Join(s.dir, name)
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if withBackup {
		if _, err := os.Stat(path); err == nil {
			if err := os.Rename(path, path+".bak"); err != nil {
				return fmt.Errorf("rotate backup %s: %w", name, err)
			}
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

// readFile returns (data, exists, error).
func (s *Store) readFile(name string) ([]byte, bool, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (s *Store) recordLoadError(name string, err error) {
	s.LastLoadError = fmt.Sprintf("%s: %v", name, err)
	if s.log != nil {
		s.log.WithField("file", name).WithError(err).Warn("Save file unreadable, using defaults")
	}
}

// probeVersion extracts save_version without committing to a shape; 0
// means the field is absent (legacy or corrupt).
func probeVersion(raw []byte) int {
	var probe struct {
		SaveVersion int `json:"save_version"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return 0
	}
	return probe.SaveVersion
}

func isJSONArray(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

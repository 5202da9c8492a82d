package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/omnia-labs/omnia-api/internal/domain"
	"github.com/omnia-labs/omnia-api/internal/repository"
)

const (
	jsonExt = ".json"
	zstExt  = ".zst"
)

var (
	ErrStateNotFound  = repository.ErrStateNotFound
	ErrStateCorrupt   = repository.ErrStateCorrupt
	ErrInvalidAccount = errors.New("account id cannot be used as a file name")
)

// Store keeps one JSON document per account under dir. With compress set
// documents are written zstd-compressed as <account>.json.zst.
type Store struct {
	dir      string
	compress bool
}

func New(dir string, compress bool) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll -> %w", err)
	}

	return &Store{
		dir:      dir,
		compress: compress,
	}, nil
}

// Load reads the document in the configured encoding, falling back to the
// other one so flipping compress does not orphan existing accounts.
func (s *Store) Load(_ context.Context, accountID string) (domain.StakingState, error) {
	paths, err := s.paths(accountID)
	if err != nil {
		return domain.StakingState{}, err
	}

	var (
		path string
		b    []byte
	)
	for _, path = range paths {
		b, err = os.ReadFile(path)
		if !errors.Is(err, fs.ErrNotExist) {
			break
		}
	}
	if errors.Is(err, fs.ErrNotExist) {
		return domain.StakingState{}, ErrStateNotFound
	}
	if err != nil {
		return domain.StakingState{}, fmt.Errorf("os.ReadFile -> %w", err)
	}

	if strings.HasSuffix(path, zstExt) {
		b, err = decompress(b)
		if err != nil {
			return domain.StakingState{}, fmt.Errorf("%w: %v", ErrStateCorrupt, err)
		}
	}

	var state domain.StakingState
	if err = json.Unmarshal(b, &state); err != nil {
		return domain.StakingState{}, fmt.Errorf("%w: %v", ErrStateCorrupt, err)
	}

	return state, nil
}

// Save replaces the account's document. The write goes to a temp file that
// is renamed over the old one, so readers never see a partial document. A
// copy left in the other encoding is removed afterwards.
func (s *Store) Save(_ context.Context, accountID string, state domain.StakingState) error {
	paths, err := s.paths(accountID)
	if err != nil {
		return err
	}
	path := paths[0]
	if state.Tokens == nil {
		state.Tokens = []domain.Token{}
	}
	if state.LandInstances == nil {
		state.LandInstances = []domain.LandInstance{}
	}

	b, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}
	if s.compress {
		b, err = compress(b)
		if err != nil {
			return fmt.Errorf("compress -> %w", err)
		}
	}

	tmp, err := os.CreateTemp(s.dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp -> %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("tmp.Write -> %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("tmp.Close -> %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("os.Rename -> %w", err)
	}
	if err = os.Remove(paths[1]); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("os.Remove -> %w", err)
	}

	return nil
}

// paths returns the account's document in the configured encoding first and
// in the other encoding second.
func (s *Store) paths(accountID string) ([2]string, error) {
	if accountID == "" || accountID == "." || accountID == ".." || strings.ContainsAny(accountID, `/\`) {
		return [2]string{}, fmt.Errorf("%w: %q", ErrInvalidAccount, accountID)
	}
	plain := filepath.Join(s.dir, accountID+jsonExt)
	zst := plain + zstExt
	if s.compress {
		return [2]string{zst, plain}, nil
	}
	return [2]string{plain, zst}, nil
}

func compress(b []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	defer enc.Close()

	return enc.EncodeAll(b, make([]byte, 0, len(b)/2)), nil
}

func decompress(b []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return dec.DecodeAll(b, nil)
}

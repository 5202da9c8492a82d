package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"

	"github.com/omnia-labs/omnia-api/internal/repository"
)

var (
	ErrSupplyKeyNotFound = repository.ErrSupplyKeyNotFound
	ErrSupplyKeyCorrupt  = errors.New("stored supply key cannot be opened")
)

const nonceSize = 24

type SupplyKeyRepository interface {
	Save(ctx context.Context, sealed []byte) error
	Find(ctx context.Context) ([]byte, error)
}

// SupplyKeyService keeps the token supply key sealed at rest with a key
// derived from the configured secret.
type SupplyKeyService struct {
	repo SupplyKeyRepository
	key  [32]byte
}

func NewSupplyKeyService(repo SupplyKeyRepository, secret string) *SupplyKeyService {
	return &SupplyKeyService{
		repo: repo,
		key:  sha256.Sum256([]byte(secret)),
	}
}

func (s *SupplyKeyService) Get(ctx context.Context) (string, error) {
	sealed, err := s.repo.Find(ctx)
	if err != nil {
		return "", fmt.Errorf("s.repo.Find -> %w", err)
	}
	if len(sealed) < nonceSize+secretbox.Overhead {
		return "", ErrSupplyKeyCorrupt
	}

	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	plain, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrSupplyKeyCorrupt
	}

	return string(plain), nil
}

func (s *SupplyKeyService) Set(ctx context.Context, supplyKey string) error {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return fmt.Errorf("rand.Read -> %w", err)
	}
	sealed := secretbox.Seal(nonce[:], []byte(supplyKey), &nonce, &s.key)

	if err := s.repo.Save(ctx, sealed); err != nil {
		return fmt.Errorf("s.repo.Save -> %w", err)
	}

	return nil
}

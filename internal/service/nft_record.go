package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/omnia-labs/omnia-api/internal/domain"
	"github.com/omnia-labs/omnia-api/internal/repository"
)

var (
	ErrNFTRecordExists   = repository.ErrNFTRecordExists
	ErrNFTRecordNotFound = repository.ErrNFTRecordNotFound
)

type NFTRecordRepository interface {
	Create(ctx context.Context, record domain.NFTRecord) (domain.NFTRecord, error)
	FindAll(ctx context.Context) ([]domain.NFTRecord, error)
	Delete(ctx context.Context, id string) error
}

type DescriptorValidator interface {
	Descriptor(md domain.Metadata) error
}

type NFTRecordService struct {
	repo      NFTRecordRepository
	validator DescriptorValidator
}

func NewNFTRecordService(repo NFTRecordRepository, validator DescriptorValidator) *NFTRecordService {
	return &NFTRecordService{
		repo:      repo,
		validator: validator,
	}
}

func (s *NFTRecordService) Create(ctx context.Context, record domain.NFTRecord) (domain.NFTRecord, error) {
	if record.Metadata != nil && s.validator != nil {
		if err := s.validator.Descriptor(*record.Metadata); err != nil {
			return domain.NFTRecord{}, fmt.Errorf("%w: %v", ErrInvalidMetadata, err)
		}
	}
	record.ID = uuid.NewString()

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return domain.NFTRecord{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *NFTRecordService) List(ctx context.Context) ([]domain.NFTRecord, error) {
	records, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return records, nil
}

func (s *NFTRecordService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

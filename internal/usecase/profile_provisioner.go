package usecase

import (
	"context"
	"errors"
	"fmt"

	"postboard/internal/entity"
	"postboard/internal/repo/persistent"
	"postboard/pkg/lifecycle"
	"postboard/pkg/logger"
)

// ProfileProvisioner keeps exactly one profile per account. It is subscribed to
// the account lifecycle notifier and acts on created events only.
type ProfileProvisioner struct {
	profileRepo  persistent.ProfileRepository
	defaultImage string
	logger       *logger.Logger
}

func NewProfileProvisioner(profileRepo persistent.ProfileRepository, defaultImage string, logger *logger.Logger) *ProfileProvisioner {
	return &ProfileProvisioner{
		profileRepo:  profileRepo,
		defaultImage: defaultImage,
		logger:       logger,
	}
}

func (p *ProfileProvisioner) HandleAccountEvent(ctx context.Context, event lifecycle.Event) error {
	if event.Type != lifecycle.EventCreated {
		return nil
	}
	_, err := p.Provision(ctx, event.AccountID)
	return err
}

// Provision returns the account's profile, creating it with default values if
// it does not exist yet.
func (p *ProfileProvisioner) Provision(ctx context.Context, accountID uint) (*entity.Profile, error) {
	existing, err := p.profileRepo.GetByOwnerID(ctx, accountID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, entity.ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}

	profile := &entity.Profile{
		OwnerID: accountID,
		Image:   p.defaultImage,
	}
	err = p.profileRepo.Create(ctx, profile)
	if errors.Is(err, entity.ErrDuplicate) {
		// Lost a race with a concurrent provision for the same account.
		return p.profileRepo.GetByOwnerID(ctx, accountID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	p.logger.Info("Provisioned profile %d for user %d", profile.ID, accountID)
	return profile, nil
}

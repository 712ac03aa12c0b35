package sqlstore

import (
	"context"
	"errors"
	"log"

	"webcharge_api/internal/domain/entities"
	"webcharge_api/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// IdentityResolver maps provider logins onto user rows. Facebook ids are
// stored on the user itself, Google and Apple ids in account_info.
type IdentityResolver struct {
	ro      *gorm.DB
	players *PlayerRepository
}

var _ interfaces.IIdentityResolver = (*IdentityResolver)(nil)

func NewIdentityResolver(ro *gorm.DB, players *PlayerRepository) *IdentityResolver {
	return &IdentityResolver{ro: ro, players: players}
}

func (r *IdentityResolver) FindByLogin(ctx context.Context, loginType entities.LoginType, loginID string) (entities.Player, error) {
	switch loginType {
	case entities.LoginFacebook:
		return r.players.findByFacebookID(ctx, loginID)
	case entities.LoginGoogle, entities.LoginApple:
		return r.findByAccount(ctx, loginType.AccountType(), loginID)
	default:
		log.Printf("[player][resolver] login type without provider login_type=%d", loginType)
		return entities.Player{}, nil
	}
}

func (r *IdentityResolver) findByAccount(ctx context.Context, accountType int, accountID string) (entities.Player, error) {
	var acc AccountInfo
	err := r.ro.WithContext(ctx).
		Where("account_type = ? AND account_id = ?", accountType, accountID).
		Take(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Player{}, nil
	}
	if err != nil {
		return entities.Player{}, err
	}
	if acc.PrimaryUserID == 0 {
		return entities.Player{}, nil
	}
	return r.players.FindByID(ctx, acc.PrimaryUserID)
}

package sqlstore

import (
	"context"
	"errors"

	"webcharge_api/internal/domain/entities"
	"webcharge_api/internal/usecase/interfaces"

	"gorm.io/gorm"
)

// PlayerRepository reads and provisions rows of the game's user table.
type PlayerRepository struct {
	rw *gorm.DB
	ro *gorm.DB
}

var _ interfaces.IPlayerRepository = (*PlayerRepository)(nil)

func NewPlayerRepository(rw, ro *gorm.DB) *PlayerRepository {
	if ro == nil {
		ro = rw
	}
	return &PlayerRepository{rw: rw, ro: ro}
}

func (r *PlayerRepository) FindByID(ctx context.Context, id int64) (entities.Player, error) {
	var u User
	err := r.rw.WithContext(ctx).Where("id = ?", id).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Player{}, nil
	}
	if err != nil {
		return entities.Player{}, err
	}
	return fromUser(u), nil
}

// Create inserts p. A concurrent insert of the same id surfaces as
// gorm.ErrDuplicatedKey.
func (r *PlayerRepository) Create(ctx context.Context, p entities.Player) (entities.Player, error) {
	u := toUser(p)
	if err := r.rw.WithContext(ctx).Create(&u).Error; err != nil {
		return entities.Player{}, err
	}
	return fromUser(u), nil
}

func (r *PlayerRepository) findByFacebookID(ctx context.Context, facebookID string) (entities.Player, error) {
	var u User
	err := r.ro.WithContext(ctx).Where("facebook_id = ?", facebookID).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Player{}, nil
	}
	if err != nil {
		return entities.Player{}, err
	}
	return fromUser(u), nil
}

func toUser(p entities.Player) User {
	return User{
		ID:            p.ID,
		FacebookID:    p.FacebookID,
		FacebookName:  p.Name,
		Coins:         p.Balance,
		Level:         p.Level,
		VIPLevel:      p.VIPLevel,
		PurchaseCount: p.PurchaseCount,
		FirstLogin:    p.FirstLogin,
		LastLogin:     p.LastLogin,
	}
}

func fromUser(u User) entities.Player {
	return entities.Player{
		ID:            u.ID,
		Name:          u.FacebookName,
		FacebookID:    u.FacebookID,
		Balance:       u.Coins,
		Level:         u.Level,
		VIPLevel:      u.VIPLevel,
		PurchaseCount: u.PurchaseCount,
		FirstLogin:    u.FirstLogin,
		LastLogin:     u.LastLogin,
	}
}

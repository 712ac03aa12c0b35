package interfaces

import (
	"context"
	"webcharge_api/internal/domain/entities"
)

// IPlayerRepository abstracts the player directory.
//
// The payment pipeline must be able to:
//   - look a player up by id (zero Player when absent)
//   - create the minimal record of a player the game server has not created yet

type IPlayerRepository interface {
	FindByID(ctx context.Context, id int64) (entities.Player, error)
	Create(ctx context.Context, p entities.Player) (entities.Player, error)
}

// IIdentityResolver maps an external identity onto a player. A zero Player
// means the identity is unknown.
type IIdentityResolver interface {
	FindByLogin(ctx context.Context, loginType entities.LoginType, loginID string) (entities.Player, error)
}

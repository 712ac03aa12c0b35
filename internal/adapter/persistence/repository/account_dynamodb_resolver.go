package repository

import (
	"context"
	"fmt"
	"log"

	"webcharge_api/internal/domain/entities"
	"webcharge_api/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type accountItem struct {
	AccountKey  string `dynamodbav:"account_key"`
	AccountType int    `dynamodbav:"account_type"`
	AccountID   string `dynamodbav:"account_id"`
	PlayerID    int64  `dynamodbav:"player_id"`
}

// AccountDynamoResolver maps external identities onto players.
//
// Facebook ids live on the player item. Google and Apple ids live in the
// account table keyed "<account_type>#<account_id>". The remaining login types
// have no provider integration and always resolve to no player.

type AccountDynamoResolver struct {
	ddb           DynamoAPI
	players       *PlayerDynamoRepository
	accountsTable string
}

var _ interfaces.IIdentityResolver = (*AccountDynamoResolver)(nil)

func NewAccountDynamoResolver(ddb DynamoAPI, players *PlayerDynamoRepository, accountsTable string) *AccountDynamoResolver {
	return &AccountDynamoResolver{
		ddb:           ddb,
		players:       players,
		accountsTable: tableOrEnv(accountsTable, "ACCOUNTS_TABLE", defaultAccountsTableName),
	}
}

func accountKey(accountType int, accountID string) string {
	return fmt.Sprintf("%d#%s", accountType, accountID)
}

func (r *AccountDynamoResolver) FindByLogin(ctx context.Context, loginType entities.LoginType, loginID string) (entities.Player, error) {
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

func (r *AccountDynamoResolver) findByAccount(ctx context.Context, accountType int, accountID string) (entities.Player, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.accountsTable),
		Key: map[string]types.AttributeValue{
			"account_key": &types.AttributeValueMemberS{Value: accountKey(accountType, accountID)},
		},
	})
	if err != nil {
		return entities.Player{}, err
	}
	if len(out.Item) == 0 {
		return entities.Player{}, nil
	}
	var it accountItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Player{}, err
	}
	if it.PlayerID == 0 {
		return entities.Player{}, nil
	}
	return r.players.FindByID(ctx, it.PlayerID)
}

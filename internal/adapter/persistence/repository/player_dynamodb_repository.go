package repository

import (
	"context"
	"strconv"

	"webcharge_api/internal/domain/entities"
	"webcharge_api/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPlayersTableName  = "players"
	defaultAccountsTableName = "account_info"
	playersFacebookIDIndex   = "facebook_id-index"
)

type playerItem struct {
	ID            int64  `dynamodbav:"id"`
	Name          string `dynamodbav:"name"`
	FacebookID    string `dynamodbav:"facebook_id,omitempty"`
	Coins         int64  `dynamodbav:"coins"`
	Level         string `dynamodbav:"level"`
	VIPLevel      int    `dynamodbav:"vip_level"`
	PurchaseCount int    `dynamodbav:"purchase_count"`
	FirstLogin    string `dynamodbav:"first_login"`
	LastLogin     string `dynamodbav:"last_login"`
}

// PlayerDynamoRepository persists Player entities in DynamoDB.
//
// Table requirements:
//   - PK: id (number)
//   - GSI: facebook_id-index (PK: facebook_id), used by AccountDynamoResolver

type PlayerDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IPlayerRepository = (*PlayerDynamoRepository)(nil)

func NewPlayerDynamoRepository(ddb DynamoAPI, table string) *PlayerDynamoRepository {
	return &PlayerDynamoRepository{
		ddb:       ddb,
		tableName: tableOrEnv(table, "PLAYERS_TABLE", defaultPlayersTableName),
	}
}

func (r *PlayerDynamoRepository) FindByID(ctx context.Context, id int64) (entities.Player, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": numberAV(id),
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Player{}, err
	}
	if len(out.Item) == 0 {
		return entities.Player{}, nil
	}
	return unmarshalPlayer(out.Item)
}

// Create inserts p unless a player with the same id exists.
func (r *PlayerDynamoRepository) Create(ctx context.Context, p entities.Player) (entities.Player, error) {
	av, err := attributevalue.MarshalMap(toPlayerItem(p))
	if err != nil {
		return entities.Player{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Player{}, err
	}
	return p, nil
}

func (r *PlayerDynamoRepository) findByFacebookID(ctx context.Context, facebookID string) (entities.Player, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(playersFacebookIDIndex),
		KeyConditionExpression: aws.String("facebook_id = :fid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":fid": &types.AttributeValueMemberS{Value: facebookID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Player{}, err
	}
	if len(out.Items) == 0 {
		return entities.Player{}, nil
	}
	return unmarshalPlayer(out.Items[0])
}

func unmarshalPlayer(raw map[string]types.AttributeValue) (entities.Player, error) {
	var it playerItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Player{}, err
	}
	return fromPlayerItem(it), nil
}

func toPlayerItem(p entities.Player) playerItem {
	return playerItem{
		ID:            p.ID,
		Name:          p.Name,
		FacebookID:    p.FacebookID,
		Coins:         p.Balance,
		Level:         floatToString(p.Level),
		VIPLevel:      p.VIPLevel,
		PurchaseCount: p.PurchaseCount,
		FirstLogin:    formatTime(p.FirstLogin),
		LastLogin:     formatTime(p.LastLogin),
	}
}

func fromPlayerItem(it playerItem) entities.Player {
	level, _ := strconv.ParseFloat(it.Level, 64)
	return entities.Player{
		ID:            it.ID,
		Name:          it.Name,
		FacebookID:    it.FacebookID,
		Balance:       it.Coins,
		Level:         level,
		VIPLevel:      it.VIPLevel,
		PurchaseCount: it.PurchaseCount,
		FirstLogin:    parseTime(it.FirstLogin),
		LastLogin:     parseTime(it.LastLogin),
	}
}

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

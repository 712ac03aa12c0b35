package database

import (
	"context"
	"errors"
	"log"

	"webcharge_api/internal/infrastructure/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type tableCreator interface {
	CreateTable(ctx context.Context, in *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

func attr(name string, t types.ScalarAttributeType) types.AttributeDefinition {
	return types.AttributeDefinition{AttributeName: aws.String(name), AttributeType: t}
}

func hashKey(name string) types.KeySchemaElement {
	return types.KeySchemaElement{AttributeName: aws.String(name), KeyType: types.KeyTypeHash}
}

func rangeKey(name string) types.KeySchemaElement {
	return types.KeySchemaElement{AttributeName: aws.String(name), KeyType: types.KeyTypeRange}
}

func gsi(name string, keys ...types.KeySchemaElement) types.GlobalSecondaryIndex {
	return types.GlobalSecondaryIndex{
		IndexName:  aws.String(name),
		KeySchema:  keys,
		Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
	}
}

// TableDefinitions describes every table the DynamoDB backends expect.
func TableDefinitions(cfg config.DynamoConfig) []*dynamodb.CreateTableInput {
	return []*dynamodb.CreateTableInput{
		{
			TableName: aws.String(cfg.PaymentLogTable),
			AttributeDefinitions: []types.AttributeDefinition{
				attr("record_id", types.ScalarAttributeTypeS),
				attr("order_id", types.ScalarAttributeTypeS),
				attr("player_id", types.ScalarAttributeTypeN),
				attr("player_item", types.ScalarAttributeTypeS),
				attr("created_at", types.ScalarAttributeTypeS),
				attr("pending_grant", types.ScalarAttributeTypeS),
			},
			KeySchema: []types.KeySchemaElement{hashKey("record_id")},
			GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
				gsi("order_id-index", hashKey("order_id"), rangeKey("created_at")),
				gsi("player_id-index", hashKey("player_id"), rangeKey("created_at")),
				gsi("player_item-index", hashKey("player_item")),
				gsi("pending_grant-index", hashKey("pending_grant")),
			},
			BillingMode: types.BillingModePayPerRequest,
		},
		{
			TableName: aws.String(cfg.PlayersTable),
			AttributeDefinitions: []types.AttributeDefinition{
				attr("id", types.ScalarAttributeTypeN),
				attr("facebook_id", types.ScalarAttributeTypeS),
			},
			KeySchema: []types.KeySchemaElement{hashKey("id")},
			GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
				gsi("facebook_id-index", hashKey("facebook_id")),
			},
			BillingMode: types.BillingModePayPerRequest,
		},
		{
			TableName:            aws.String(cfg.AccountsTable),
			AttributeDefinitions: []types.AttributeDefinition{attr("account_key", types.ScalarAttributeTypeS)},
			KeySchema:            []types.KeySchemaElement{hashKey("account_key")},
			BillingMode:          types.BillingModePayPerRequest,
		},
		{
			TableName:            aws.String(cfg.LedgerTable),
			AttributeDefinitions: []types.AttributeDefinition{attr("player_id", types.ScalarAttributeTypeN)},
			KeySchema:            []types.KeySchemaElement{hashKey("player_id")},
			BillingMode:          types.BillingModePayPerRequest,
		},
		{
			TableName:            aws.String(cfg.InboxTable),
			AttributeDefinitions: []types.AttributeDefinition{attr("id", types.ScalarAttributeTypeS)},
			KeySchema:            []types.KeySchemaElement{hashKey("id")},
			BillingMode:          types.BillingModePayPerRequest,
		},
	}
}

// CreateTables creates the tables that do not exist yet.
func CreateTables(ctx context.Context, ddb tableCreator, cfg config.DynamoConfig) error {
	for _, in := range TableDefinitions(cfg) {
		_, err := ddb.CreateTable(ctx, in)
		var inUse *types.ResourceInUseException
		switch {
		case err == nil:
			log.Printf("[database][dynamodb] table created table=%s", aws.ToString(in.TableName))
		case errors.As(err, &inUse):
			log.Printf("[database][dynamodb] table exists table=%s", aws.ToString(in.TableName))
		default:
			return err
		}
	}
	return nil
}

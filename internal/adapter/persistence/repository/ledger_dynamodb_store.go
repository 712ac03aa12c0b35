package repository

import (
	"context"
	"fmt"
	"strconv"

	"webcharge_api/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultLedgerTableName = "webcharge_ledger"

// LedgerDynamoStore keeps the granted-currency totals in DynamoDB.
//
// Table requirements:
//   - PK: player_id (number)
//
// IncrementBy is a single UpdateItem with ADD, which DynamoDB applies atomically.

type LedgerDynamoStore struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.ILedgerStore = (*LedgerDynamoStore)(nil)

func NewLedgerDynamoStore(ddb DynamoAPI, table string) *LedgerDynamoStore {
	return &LedgerDynamoStore{
		ddb:       ddb,
		tableName: tableOrEnv(table, "LEDGER_TABLE", defaultLedgerTableName),
	}
}

func (s *LedgerDynamoStore) IncrementBy(ctx context.Context, playerID int64, amount int64) (int64, error) {
	out, err := s.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"player_id": numberAV(playerID),
		},
		UpdateExpression:          aws.String("ADD #amount :n"),
		ExpressionAttributeNames:  map[string]string{"#amount": "amount"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":n": numberAV(amount)},
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}
	return amountAttribute(out.Attributes)
}

func (s *LedgerDynamoStore) Get(ctx context.Context, playerID int64) (int64, error) {
	out, err := s.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"player_id": numberAV(playerID),
		},
	})
	if err != nil {
		return 0, err
	}
	if len(out.Item) == 0 {
		return 0, nil
	}
	return amountAttribute(out.Item)
}

func amountAttribute(attrs map[string]types.AttributeValue) (int64, error) {
	n, ok := attrs["amount"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("ledger amount attribute missing")
	}
	return strconv.ParseInt(n.Value, 10, 64)
}

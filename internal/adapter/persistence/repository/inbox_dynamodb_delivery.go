package repository

import (
	"context"
	"encoding/json"
	"log"

	"webcharge_api/internal/domain/entities"
	"webcharge_api/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const defaultInboxTableName = "inbox"

type inboxItem struct {
	ID        string `dynamodbav:"id"`
	PlayerID  int64  `dynamodbav:"player_id"`
	Type      int    `dynamodbav:"type"`
	GMName    string `dynamodbav:"gm_name"`
	Content   string `dynamodbav:"content"`
	ExtraData string `dynamodbav:"extra_data"`
	CreatedAt string `dynamodbav:"created_at"`
}

// InboxDynamoDelivery writes reward messages into the in-game inbox table.
//
// Table requirements:
//   - PK: id (string), the message id
//
// Redelivering a message id is a no-op, so queue retries never duplicate mail.

type InboxDynamoDelivery struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IMailboxDelivery = (*InboxDynamoDelivery)(nil)

func NewInboxDynamoDelivery(ddb DynamoAPI, table string) *InboxDynamoDelivery {
	return &InboxDynamoDelivery{
		ddb:       ddb,
		tableName: tableOrEnv(table, "INBOX_TABLE", defaultInboxTableName),
	}
}

func (d *InboxDynamoDelivery) Deliver(ctx context.Context, msg entities.MailboxMessage) error {
	extra, err := json.Marshal(map[string]any{"attach_list": msg.Attachments})
	if err != nil {
		return err
	}
	av, err := attributevalue.MarshalMap(inboxItem{
		ID:        msg.ID,
		PlayerID:  msg.PlayerID,
		Type:      msg.Kind,
		GMName:    msg.Sender,
		Content:   msg.Reason,
		ExtraData: string(extra),
		CreatedAt: formatTime(msg.CreatedAt),
	})
	if err != nil {
		return err
	}

	_, err = d.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(d.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			log.Printf("[mailbox][dynamodb] message already delivered message_id=%s", msg.ID)
			return nil
		}
		return err
	}
	return nil
}

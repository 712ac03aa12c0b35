package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"webcharge_api/internal/domain/entities"
	"webcharge_api/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultPaymentLogTableName = "webcharge_payment_log"
	paymentLogOrderIDIndex     = "order_id-index"
	paymentLogPlayerIDIndex    = "player_id-index"
	paymentLogPlayerItemIndex  = "player_item-index"
	paymentLogPendingIndex     = "pending_grant-index"
	paymentLogSequenceKey      = "seq#payment_log"
)

type paymentRecordItem struct {
	RecordID       string  `dynamodbav:"record_id"`
	ID             uint64  `dynamodbav:"id"`
	OrderID        string  `dynamodbav:"order_id"`
	PlayerID       int64   `dynamodbav:"player_id"`
	ItemID         int     `dynamodbav:"item_id"`
	PlayerItem     string  `dynamodbav:"player_item"`
	Price          string  `dynamodbav:"price,omitempty"`
	Currency       string  `dynamodbav:"currency,omitempty"`
	IP             string  `dynamodbav:"ip,omitempty"`
	Country        string  `dynamodbav:"country,omitempty"`
	PaymentChannel string  `dynamodbav:"payment_channel"`
	PaymentMethod  string  `dynamodbav:"payment_method"`
	Email          *string `dynamodbav:"email,omitempty"`
	Status         string  `dynamodbav:"status"`
	WebLang        *string `dynamodbav:"web_lang,omitempty"`
	BrowserLang    *string `dynamodbav:"browser_lang,omitempty"`
	ErrorCode      *string `dynamodbav:"error_code,omitempty"`
	ExtRaw         string  `dynamodbav:"ext_raw,omitempty"`
	TokensGranted  int64   `dynamodbav:"tokens_granted"`
	FirstPurchase  bool    `dynamodbav:"first_purchase"`
	GrantConfirmed bool    `dynamodbav:"grant_confirmed"`
	GrantState     string  `dynamodbav:"grant_state,omitempty"`
	PendingGrant   string  `dynamodbav:"pending_grant,omitempty"`
	CreatedAt      string  `dynamodbav:"created_at"`
	UpdatedAt      string  `dynamodbav:"updated_at"`
}

// PaymentLogDynamoRepository persists PaymentRecord entities in DynamoDB.
//
// Table requirements:
//   - PK: record_id (string)
//   - GSI: order_id-index (PK: order_id, SK: created_at)
//   - GSI: player_id-index (PK: player_id, SK: created_at)
//   - GSI: player_item-index (PK: player_item)
//   - GSI: pending_grant-index (PK: pending_grant), sparse
//
// Success records are keyed "success#<order_id>" so the conditional put is the
// uniqueness constraint. Failed attempts get a random suffix and never collide.
// Unconfirmed success records stay in the sparse pending index until
// MarkGrantConfirmed removes them; grant_state decides who may run the grant.

type PaymentLogDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.IPaymentLogRepository = (*PaymentLogDynamoRepository)(nil)

func NewPaymentLogDynamoRepository(ddb DynamoAPI, table string) *PaymentLogDynamoRepository {
	return &PaymentLogDynamoRepository{
		ddb:       ddb,
		tableName: tableOrEnv(table, "PAYMENT_LOG_TABLE", defaultPaymentLogTableName),
		now:       time.Now,
	}
}

func successRecordID(orderID string) string {
	return "success#" + orderID
}

func playerItemKey(playerID int64, itemID int) string {
	return fmt.Sprintf("%d#%d", playerID, itemID)
}

func (r *PaymentLogDynamoRepository) Create(ctx context.Context, rec entities.PaymentRecord) (entities.PaymentRecord, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	rec.ID = uint(id)

	it, err := toPaymentRecordItem(rec)
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	if rec.Status == entities.PaymentStatusSuccess {
		it.RecordID = successRecordID(rec.OrderID)
	} else {
		it.RecordID = fmt.Sprintf("%s#%s#%s", rec.Status, rec.OrderID, uuid.NewString())
	}

	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#rid)"),
		ExpressionAttributeNames: map[string]string{
			"#rid": "record_id",
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return entities.PaymentRecord{}, interfaces.ErrDuplicateOrder
		}
		return entities.PaymentRecord{}, err
	}
	return rec, nil
}

// nextID hands out increasing record ids from a counter item in the same table.
func (r *PaymentLogDynamoRepository) nextID(ctx context.Context) (uint64, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"record_id": &types.AttributeValueMemberS{Value: paymentLogSequenceKey},
		},
		UpdateExpression:          aws.String("ADD #seq :one"),
		ExpressionAttributeNames:  map[string]string{"#seq": "seq"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":one": numberAV(1)},
		ReturnValues:              types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return 0, err
	}
	n, ok := out.Attributes["seq"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("sequence attribute missing in update output")
	}
	return strconv.ParseUint(n.Value, 10, 64)
}

func (r *PaymentLogDynamoRepository) GetByOrderID(ctx context.Context, orderID string) (entities.PaymentRecord, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"record_id": &types.AttributeValueMemberS{Value: successRecordID(orderID)},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	if len(out.Item) > 0 {
		return unmarshalPaymentRecord(out.Item)
	}

	q, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentLogOrderIDIndex),
		KeyConditionExpression: aws.String("order_id = :oid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":oid": &types.AttributeValueMemberS{Value: orderID},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(1),
	})
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	if len(q.Items) == 0 {
		return entities.PaymentRecord{}, nil
	}
	return unmarshalPaymentRecord(q.Items[0])
}

func (r *PaymentLogDynamoRepository) CountSuccessByPlayerItem(ctx context.Context, playerID int64, itemID int) (int, error) {
	total := 0
	var start map[string]types.AttributeValue
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(paymentLogPlayerItemIndex),
			KeyConditionExpression: aws.String("player_item = :pi"),
			FilterExpression:       aws.String("#status = :success"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pi":      &types.AttributeValueMemberS{Value: playerItemKey(playerID, itemID)},
				":success": &types.AttributeValueMemberS{Value: string(entities.PaymentStatusSuccess)},
			},
			Select:            types.SelectCount,
			ExclusiveStartKey: start,
		})
		if err != nil {
			return 0, err
		}
		total += int(out.Count)
		if len(out.LastEvaluatedKey) == 0 {
			return total, nil
		}
		start = out.LastEvaluatedKey
	}
}

func (r *PaymentLogDynamoRepository) ListByPlayer(ctx context.Context, playerID int64, limit int) ([]entities.PaymentRecord, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentLogPlayerIDIndex),
		KeyConditionExpression: aws.String("player_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": numberAV(playerID),
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, err
	}
	records, err := unmarshalPaymentRecords(out.Items)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(records)
	return records, nil
}

func (r *PaymentLogDynamoRepository) MarkGrantConfirmed(ctx context.Context, orderID string) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"record_id": &types.AttributeValueMemberS{Value: successRecordID(orderID)},
		},
		ConditionExpression: aws.String("attribute_exists(#rid)"),
		UpdateExpression:    aws.String("SET #confirmed = :true, #gs = :confirmed, #updated_at = :now REMOVE #pending"),
		ExpressionAttributeNames: map[string]string{
			"#rid":        "record_id",
			"#confirmed":  "grant_confirmed",
			"#gs":         "grant_state",
			"#updated_at": "updated_at",
			"#pending":    "pending_grant",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":true":      &types.AttributeValueMemberBOOL{Value: true},
			":confirmed": &types.AttributeValueMemberS{Value: string(entities.GrantStateConfirmed)},
			":now":       &types.AttributeValueMemberS{Value: formatTime(r.now())},
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return ErrRecordNotFound
		}
		return err
	}
	return nil
}

// reconcilableCondition matches grants a reconciliation run may claim: released
// ones, and in-flight or retrying ones whose owner stopped touching them.
const reconcilableCondition = "#confirmed = :false AND (#gs = :pending OR ((#gs = :inflight OR #gs = :retrying) AND #updated_at < :stale))"

func reconcilableNames() map[string]string {
	return map[string]string{
		"#confirmed":  "grant_confirmed",
		"#gs":         "grant_state",
		"#updated_at": "updated_at",
	}
}

func reconcilableValues(staleBefore time.Time) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		":false":    &types.AttributeValueMemberBOOL{Value: false},
		":pending":  &types.AttributeValueMemberS{Value: string(entities.GrantStatePending)},
		":inflight": &types.AttributeValueMemberS{Value: string(entities.GrantStateInFlight)},
		":retrying": &types.AttributeValueMemberS{Value: string(entities.GrantStateRetrying)},
		":stale":    &types.AttributeValueMemberS{Value: formatTime(staleBefore)},
	}
}

func (r *PaymentLogDynamoRepository) ClaimGrant(ctx context.Context, orderID string, staleBefore time.Time) (bool, error) {
	values := reconcilableValues(staleBefore)
	values[":now"] = &types.AttributeValueMemberS{Value: formatTime(r.now())}
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"record_id": &types.AttributeValueMemberS{Value: successRecordID(orderID)},
		},
		ConditionExpression:       aws.String("attribute_exists(#rid) AND " + reconcilableCondition),
		UpdateExpression:          aws.String("SET #gs = :retrying, #updated_at = :now"),
		ExpressionAttributeNames:  mergeNames(reconcilableNames(), map[string]string{"#rid": "record_id"}),
		ExpressionAttributeValues: values,
	})
	if err != nil {
		if isConditionFailed(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *PaymentLogDynamoRepository) ReleaseGrant(ctx context.Context, orderID string) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"record_id": &types.AttributeValueMemberS{Value: successRecordID(orderID)},
		},
		ConditionExpression: aws.String("#gs = :inflight OR #gs = :retrying"),
		UpdateExpression:    aws.String("SET #gs = :pending, #updated_at = :now"),
		ExpressionAttributeNames: map[string]string{
			"#gs":         "grant_state",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":inflight": &types.AttributeValueMemberS{Value: string(entities.GrantStateInFlight)},
			":retrying": &types.AttributeValueMemberS{Value: string(entities.GrantStateRetrying)},
			":pending":  &types.AttributeValueMemberS{Value: string(entities.GrantStatePending)},
			":now":      &types.AttributeValueMemberS{Value: formatTime(r.now())},
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return ErrRecordNotFound
		}
		return err
	}
	return nil
}

// ListUnconfirmedGrants pages through the sparse index because the filter runs
// after DynamoDB applies Limit.
func (r *PaymentLogDynamoRepository) ListUnconfirmedGrants(ctx context.Context, staleBefore time.Time, limit int) ([]entities.PaymentRecord, error) {
	values := reconcilableValues(staleBefore)
	values[":p"] = &types.AttributeValueMemberS{Value: "1"}

	var items []map[string]types.AttributeValue
	var start map[string]types.AttributeValue
	for len(items) < limit {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(paymentLogPendingIndex),
			KeyConditionExpression:    aws.String("pending_grant = :p"),
			FilterExpression:          aws.String(reconcilableCondition),
			ExpressionAttributeNames:  reconcilableNames(),
			ExpressionAttributeValues: values,
			Limit:                     aws.Int32(int32(limit)),
			ExclusiveStartKey:         start,
		})
		if err != nil {
			return nil, err
		}
		items = append(items, out.Items...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		start = out.LastEvaluatedKey
	}
	if len(items) > limit {
		items = items[:limit]
	}

	records, err := unmarshalPaymentRecords(items)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func sortNewestFirst(records []entities.PaymentRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].ID > records[j].ID
	})
}

func unmarshalPaymentRecords(items []map[string]types.AttributeValue) ([]entities.PaymentRecord, error) {
	out := make([]entities.PaymentRecord, 0, len(items))
	for _, raw := range items {
		rec, err := unmarshalPaymentRecord(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func unmarshalPaymentRecord(raw map[string]types.AttributeValue) (entities.PaymentRecord, error) {
	var it paymentRecordItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.PaymentRecord{}, err
	}
	return fromPaymentRecordItem(it)
}

func toPaymentRecordItem(p entities.PaymentRecord) (paymentRecordItem, error) {
	it := paymentRecordItem{
		ID:             uint64(p.ID),
		OrderID:        p.OrderID,
		PlayerID:       p.PlayerID,
		ItemID:         p.ItemID,
		PlayerItem:     playerItemKey(p.PlayerID, p.ItemID),
		Currency:       p.Currency,
		IP:             p.IP,
		Country:        p.Country,
		PaymentChannel: p.PaymentChannel,
		PaymentMethod:  p.PaymentMethod,
		Email:          p.Email,
		Status:         string(p.Status),
		WebLang:        p.WebLang,
		BrowserLang:    p.BrowserLang,
		ErrorCode:      p.ErrorCode,
		TokensGranted:  p.TokensGranted,
		FirstPurchase:  p.FirstPurchase,
		GrantConfirmed: p.GrantConfirmed,
		GrantState:     string(p.GrantState),
		CreatedAt:      formatTime(p.CreatedAt),
		UpdatedAt:      formatTime(p.UpdatedAt),
	}
	if p.Price.Valid {
		it.Price = p.Price.Decimal.String()
	}
	if !p.Ext.IsZero() {
		b, err := json.Marshal(p.Ext)
		if err != nil {
			return paymentRecordItem{}, err
		}
		it.ExtRaw = string(b)
	}
	if p.Status == entities.PaymentStatusSuccess {
		switch {
		case p.GrantConfirmed:
			it.GrantState = string(entities.GrantStateConfirmed)
		case p.GrantState == "":
			it.GrantState = string(entities.GrantStateInFlight)
		}
		if !p.GrantConfirmed {
			it.PendingGrant = "1"
		}
	}
	return it, nil
}

func fromPaymentRecordItem(it paymentRecordItem) (entities.PaymentRecord, error) {
	ext, err := entities.ParsePaymentExt([]byte(it.ExtRaw))
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	rec := entities.PaymentRecord{
		ID:             uint(it.ID),
		OrderID:        it.OrderID,
		PlayerID:       it.PlayerID,
		ItemID:         it.ItemID,
		Currency:       it.Currency,
		IP:             it.IP,
		Country:        it.Country,
		PaymentChannel: it.PaymentChannel,
		PaymentMethod:  it.PaymentMethod,
		Email:          it.Email,
		Status:         entities.PaymentStatus(it.Status),
		WebLang:        it.WebLang,
		BrowserLang:    it.BrowserLang,
		ErrorCode:      it.ErrorCode,
		Ext:            ext,
		TokensGranted:  it.TokensGranted,
		FirstPurchase:  it.FirstPurchase,
		GrantConfirmed: it.GrantConfirmed,
		GrantState:     entities.GrantState(it.GrantState),
		CreatedAt:      parseTime(it.CreatedAt),
		UpdatedAt:      parseTime(it.UpdatedAt),
	}
	if it.Price != "" {
		d, err := decimal.NewFromString(it.Price)
		if err != nil {
			return entities.PaymentRecord{}, err
		}
		rec.Price = decimal.NewNullDecimal(d)
	}
	return rec, nil
}

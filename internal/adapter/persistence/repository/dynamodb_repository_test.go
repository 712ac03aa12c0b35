package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"webcharge_api/internal/domain/entities"
	"webcharge_api/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

type fakeDynamo struct {
	putItem    func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error)
	getItem    func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	updateItem func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error)
	query      func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error)

	puts    []*dynamodb.PutItemInput
	updates []*dynamodb.UpdateItemInput
	queries []*dynamodb.QueryInput
	gets    []*dynamodb.GetItemInput
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.puts = append(f.puts, in)
	if f.putItem == nil {
		return &dynamodb.PutItemOutput{}, nil
	}
	return f.putItem(in)
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.gets = append(f.gets, in)
	if f.getItem == nil {
		return &dynamodb.GetItemOutput{}, nil
	}
	return f.getItem(in)
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updates = append(f.updates, in)
	if f.updateItem == nil {
		return &dynamodb.UpdateItemOutput{}, nil
	}
	return f.updateItem(in)
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queries = append(f.queries, in)
	if f.query == nil {
		return &dynamodb.QueryOutput{}, nil
	}
	return f.query(in)
}

func sequenceUpdate(seq string) func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
	return func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
		return &dynamodb.UpdateItemOutput{Attributes: map[string]types.AttributeValue{
			"seq": &types.AttributeValueMemberN{Value: seq},
		}}, nil
	}
}

func stringAttr(t *testing.T, item map[string]types.AttributeValue, key string) string {
	t.Helper()
	v, ok := item[key].(*types.AttributeValueMemberS)
	if !ok {
		return ""
	}
	return v.Value
}

func mustMarshal(t *testing.T, v any) map[string]types.AttributeValue {
	t.Helper()
	av, err := attributevalue.MarshalMap(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return av
}

func TestPaymentLogDynamoRepository_Create(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("success record is keyed by order id", func(t *testing.T) {
		ddb := &fakeDynamo{updateItem: sequenceUpdate("5")}
		repo := NewPaymentLogDynamoRepository(ddb, "payments")
		coupon := int64(3)

		rec, err := repo.Create(context.Background(), entities.PaymentRecord{
			OrderID:   "o-1",
			PlayerID:  42,
			ItemID:    1,
			Price:     decimal.NewNullDecimal(decimal.RequireFromString("19.99")),
			Status:    entities.PaymentStatusSuccess,
			Ext:       entities.PaymentExt{CouponID: &coupon},
			CreatedAt: created,
			UpdatedAt: created,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.ID != 5 {
			t.Fatalf("expected id from sequence, got %d", rec.ID)
		}
		if len(ddb.puts) != 1 {
			t.Fatalf("expected one put, got %d", len(ddb.puts))
		}
		put := ddb.puts[0]
		if *put.TableName != "payments" || *put.ConditionExpression != "attribute_not_exists(#rid)" {
			t.Fatalf("unexpected put input: %+v", put)
		}
		if got := stringAttr(t, put.Item, "record_id"); got != "success#o-1" {
			t.Fatalf("unexpected record_id %q", got)
		}
		if got := stringAttr(t, put.Item, "player_item"); got != "42#1" {
			t.Fatalf("unexpected player_item %q", got)
		}
		if got := stringAttr(t, put.Item, "pending_grant"); got != "1" {
			t.Fatalf("unconfirmed success must be in the pending index, got %q", got)
		}
		if got := stringAttr(t, put.Item, "grant_state"); got != string(entities.GrantStateInFlight) {
			t.Fatalf("new success must be in flight, got %q", got)
		}
		if got := stringAttr(t, put.Item, "price"); got != "19.99" {
			t.Fatalf("unexpected price %q", got)
		}
		if got := stringAttr(t, put.Item, "ext_raw"); got != `{"coupon_id":3}` {
			t.Fatalf("unexpected ext %q", got)
		}
	})

	t.Run("conditional failure is a duplicate order", func(t *testing.T) {
		ddb := &fakeDynamo{
			updateItem: sequenceUpdate("6"),
			putItem: func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
				return nil, &types.ConditionalCheckFailedException{}
			},
		}
		repo := NewPaymentLogDynamoRepository(ddb, "payments")
		_, err := repo.Create(context.Background(), entities.PaymentRecord{OrderID: "o-1", Status: entities.PaymentStatusSuccess})
		if !errors.Is(err, interfaces.ErrDuplicateOrder) {
			t.Fatalf("expected ErrDuplicateOrder, got %v", err)
		}
	})

	t.Run("failed attempts get unique keys", func(t *testing.T) {
		ddb := &fakeDynamo{updateItem: sequenceUpdate("7")}
		repo := NewPaymentLogDynamoRepository(ddb, "payments")
		for i := 0; i < 2; i++ {
			if _, err := repo.Create(context.Background(), entities.PaymentRecord{OrderID: "o-2", Status: entities.PaymentStatusFailed}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		first := stringAttr(t, ddb.puts[0].Item, "record_id")
		second := stringAttr(t, ddb.puts[1].Item, "record_id")
		if !strings.HasPrefix(first, "failed#o-2#") || first == second {
			t.Fatalf("unexpected failure keys %q %q", first, second)
		}
		if _, ok := ddb.puts[0].Item["pending_grant"]; ok {
			t.Fatalf("failed records must stay out of the pending index")
		}
	})

	t.Run("sequence error", func(t *testing.T) {
		ddb := &fakeDynamo{updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return nil, errors.New("throttled")
		}}
		repo := NewPaymentLogDynamoRepository(ddb, "payments")
		if _, err := repo.Create(context.Background(), entities.PaymentRecord{OrderID: "o-3"}); err == nil {
			t.Fatalf("expected error")
		}
		if len(ddb.puts) != 0 {
			t.Fatalf("nothing should be written")
		}
	})
}

func TestPaymentLogDynamoRepository_GetByOrderID(t *testing.T) {
	t.Run("success record wins", func(t *testing.T) {
		item := mustMarshal(t, paymentRecordItem{RecordID: "success#o-1", ID: 3, OrderID: "o-1", Status: "success", Price: "9.5"})
		ddb := &fakeDynamo{getItem: func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{Item: item}, nil
		}}
		rec, err := NewPaymentLogDynamoRepository(ddb, "payments").GetByOrderID(context.Background(), "o-1")
		if err != nil || rec.ID != 3 || rec.Status != entities.PaymentStatusSuccess {
			t.Fatalf("unexpected result rec=%+v err=%v", rec, err)
		}
		if !rec.Price.Valid || rec.Price.Decimal.String() != "9.5" {
			t.Fatalf("unexpected price %+v", rec.Price)
		}
		if len(ddb.queries) != 0 {
			t.Fatalf("index must not be queried when the success record exists")
		}
	})

	t.Run("falls back to latest attempt", func(t *testing.T) {
		item := mustMarshal(t, paymentRecordItem{RecordID: "failed#o-1#x", ID: 2, OrderID: "o-1", Status: "failed"})
		ddb := &fakeDynamo{query: func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			if *in.IndexName != paymentLogOrderIDIndex || *in.ScanIndexForward {
				t.Fatalf("unexpected query: %+v", in)
			}
			return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{item}}, nil
		}}
		rec, err := NewPaymentLogDynamoRepository(ddb, "payments").GetByOrderID(context.Background(), "o-1")
		if err != nil || rec.Status != entities.PaymentStatusFailed || rec.Price.Valid {
			t.Fatalf("unexpected result rec=%+v err=%v", rec, err)
		}
	})

	t.Run("absent", func(t *testing.T) {
		rec, err := NewPaymentLogDynamoRepository(&fakeDynamo{}, "payments").GetByOrderID(context.Background(), "o-9")
		if err != nil || rec.OrderID != "" {
			t.Fatalf("expected zero record, got %+v err=%v", rec, err)
		}
	})
}

func TestPaymentLogDynamoRepository_Queries(t *testing.T) {
	t.Run("count follows pagination", func(t *testing.T) {
		calls := 0
		ddb := &fakeDynamo{query: func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			calls++
			if in.Select != types.SelectCount {
				t.Fatalf("expected count select")
			}
			if calls == 1 {
				return &dynamodb.QueryOutput{Count: 2, LastEvaluatedKey: map[string]types.AttributeValue{
					"record_id": &types.AttributeValueMemberS{Value: "success#a"},
				}}, nil
			}
			if in.ExclusiveStartKey == nil {
				t.Fatalf("second page must continue from the last key")
			}
			return &dynamodb.QueryOutput{Count: 1}, nil
		}}
		n, err := NewPaymentLogDynamoRepository(ddb, "payments").CountSuccessByPlayerItem(context.Background(), 4, 2)
		if err != nil || n != 3 {
			t.Fatalf("expected 3, got %d err=%v", n, err)
		}
	})

	t.Run("list by player newest first", func(t *testing.T) {
		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		items := []map[string]types.AttributeValue{
			mustMarshal(t, paymentRecordItem{ID: 1, OrderID: "a", CreatedAt: formatTime(base)}),
			mustMarshal(t, paymentRecordItem{ID: 3, OrderID: "c", CreatedAt: formatTime(base.Add(time.Hour))}),
			mustMarshal(t, paymentRecordItem{ID: 2, OrderID: "b", CreatedAt: formatTime(base.Add(time.Hour))}),
		}
		ddb := &fakeDynamo{query: func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			if *in.Limit != 50 {
				t.Fatalf("unexpected limit %d", *in.Limit)
			}
			return &dynamodb.QueryOutput{Items: items}, nil
		}}
		res, err := NewPaymentLogDynamoRepository(ddb, "payments").ListByPlayer(context.Background(), 4, 50)
		if err != nil || len(res) != 3 {
			t.Fatalf("unexpected result %+v err=%v", res, err)
		}
		if res[0].OrderID != "c" || res[1].OrderID != "b" || res[2].OrderID != "a" {
			t.Fatalf("unexpected order: %s %s %s", res[0].OrderID, res[1].OrderID, res[2].OrderID)
		}
	})

	t.Run("mark confirmed on missing record", func(t *testing.T) {
		ddb := &fakeDynamo{updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return nil, &types.ConditionalCheckFailedException{}
		}}
		err := NewPaymentLogDynamoRepository(ddb, "payments").MarkGrantConfirmed(context.Background(), "o-1")
		if !errors.Is(err, ErrRecordNotFound) {
			t.Fatalf("expected ErrRecordNotFound, got %v", err)
		}
	})

	t.Run("mark confirmed leaves the pending index", func(t *testing.T) {
		ddb := &fakeDynamo{}
		if err := NewPaymentLogDynamoRepository(ddb, "payments").MarkGrantConfirmed(context.Background(), "o-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(*ddb.updates[0].UpdateExpression, "REMOVE #pending") {
			t.Fatalf("unexpected update: %s", *ddb.updates[0].UpdateExpression)
		}
	})

	t.Run("mark confirmed sets the grant state", func(t *testing.T) {
		ddb := &fakeDynamo{}
		if err := NewPaymentLogDynamoRepository(ddb, "payments").MarkGrantConfirmed(context.Background(), "o-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := stringAttr(t, ddb.updates[0].ExpressionAttributeValues, ":confirmed"); got != string(entities.GrantStateConfirmed) {
			t.Fatalf("unexpected grant state %q", got)
		}
	})

	t.Run("pending grants use the sparse index", func(t *testing.T) {
		stale := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
		ddb := &fakeDynamo{query: func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			if *in.IndexName != paymentLogPendingIndex {
				t.Fatalf("unexpected index %s", *in.IndexName)
			}
			if in.FilterExpression == nil || *in.FilterExpression != reconcilableCondition {
				t.Fatalf("unexpected filter %v", in.FilterExpression)
			}
			if got := stringAttr(t, in.ExpressionAttributeValues, ":stale"); got != formatTime(stale) {
				t.Fatalf("unexpected stale bound %q", got)
			}
			return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{
				mustMarshal(t, paymentRecordItem{ID: 9, OrderID: "z", Status: "success", GrantState: "pending", PendingGrant: "1"}),
			}}, nil
		}}
		res, err := NewPaymentLogDynamoRepository(ddb, "payments").ListUnconfirmedGrants(context.Background(), stale, 10)
		if err != nil || len(res) != 1 || res[0].GrantConfirmed || res[0].GrantState != entities.GrantStatePending {
			t.Fatalf("unexpected result %+v err=%v", res, err)
		}
	})

	t.Run("pending grants page past filtered results", func(t *testing.T) {
		calls := 0
		ddb := &fakeDynamo{query: func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			calls++
			switch calls {
			case 1:
				return &dynamodb.QueryOutput{
					LastEvaluatedKey: map[string]types.AttributeValue{"record_id": &types.AttributeValueMemberS{Value: "success#a"}},
				}, nil
			case 2:
				if in.ExclusiveStartKey == nil {
					t.Fatalf("second page should continue from the last key")
				}
				return &dynamodb.QueryOutput{
					Items: []map[string]types.AttributeValue{
						mustMarshal(t, paymentRecordItem{ID: 4, OrderID: "d", Status: "success", GrantState: "pending"}),
						mustMarshal(t, paymentRecordItem{ID: 2, OrderID: "b", Status: "success", GrantState: "pending"}),
					},
					LastEvaluatedKey: map[string]types.AttributeValue{"record_id": &types.AttributeValueMemberS{Value: "success#d"}},
				}, nil
			}
			t.Fatalf("query should stop once the limit is reached")
			return nil, nil
		}}
		res, err := NewPaymentLogDynamoRepository(ddb, "payments").ListUnconfirmedGrants(context.Background(), time.Now(), 2)
		if err != nil || len(res) != 2 {
			t.Fatalf("unexpected result %+v err=%v", res, err)
		}
		if res[0].OrderID != "b" || res[1].OrderID != "d" {
			t.Fatalf("unexpected order: %s %s", res[0].OrderID, res[1].OrderID)
		}
	})
}

func TestPaymentLogDynamoRepository_ClaimGrant(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	stale := now.Add(-10 * time.Minute)

	t.Run("claim is a conditional update to retrying", func(t *testing.T) {
		ddb := &fakeDynamo{}
		repo := NewPaymentLogDynamoRepository(ddb, "payments")
		repo.now = func() time.Time { return now }

		ok, err := repo.ClaimGrant(context.Background(), "o-1", stale)
		if err != nil || !ok {
			t.Fatalf("expected claim, got ok=%v err=%v", ok, err)
		}
		in := ddb.updates[0]
		if stringAttr(t, in.Key, "record_id") != successRecordID("o-1") {
			t.Fatalf("unexpected key %+v", in.Key)
		}
		if !strings.Contains(*in.ConditionExpression, reconcilableCondition) {
			t.Fatalf("unexpected condition %s", *in.ConditionExpression)
		}
		if stringAttr(t, in.ExpressionAttributeValues, ":stale") != formatTime(stale) ||
			stringAttr(t, in.ExpressionAttributeValues, ":now") != formatTime(now) {
			t.Fatalf("unexpected values %+v", in.ExpressionAttributeValues)
		}
	})

	t.Run("lost claim is not an error", func(t *testing.T) {
		ddb := &fakeDynamo{updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return nil, &types.ConditionalCheckFailedException{}
		}}
		ok, err := NewPaymentLogDynamoRepository(ddb, "payments").ClaimGrant(context.Background(), "o-1", stale)
		if err != nil || ok {
			t.Fatalf("expected lost claim, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("claim surfaces store errors", func(t *testing.T) {
		boom := errors.New("throttled")
		ddb := &fakeDynamo{updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return nil, boom
		}}
		_, err := NewPaymentLogDynamoRepository(ddb, "payments").ClaimGrant(context.Background(), "o-1", stale)
		if !errors.Is(err, boom) {
			t.Fatalf("expected store error, got %v", err)
		}
	})

	t.Run("release returns the grant to pending", func(t *testing.T) {
		ddb := &fakeDynamo{}
		if err := NewPaymentLogDynamoRepository(ddb, "payments").ReleaseGrant(context.Background(), "o-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := stringAttr(t, ddb.updates[0].ExpressionAttributeValues, ":pending"); got != string(entities.GrantStatePending) {
			t.Fatalf("unexpected state %q", got)
		}
	})

	t.Run("release of a settled grant", func(t *testing.T) {
		ddb := &fakeDynamo{updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return nil, &types.ConditionalCheckFailedException{}
		}}
		err := NewPaymentLogDynamoRepository(ddb, "payments").ReleaseGrant(context.Background(), "o-1")
		if !errors.Is(err, ErrRecordNotFound) {
			t.Fatalf("expected ErrRecordNotFound, got %v", err)
		}
	})
}

func TestFormatTime_SortsLexicographically(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	ordered := []time.Time{
		base,
		base.Add(123400 * time.Microsecond),
		base.Add(123450 * time.Microsecond),
		base.Add(300 * time.Millisecond),
		base.Add(time.Second),
	}
	for i := 1; i < len(ordered); i++ {
		prev, cur := formatTime(ordered[i-1]), formatTime(ordered[i])
		if prev >= cur {
			t.Fatalf("expected %q < %q", prev, cur)
		}
		if len(prev) != len(cur) {
			t.Fatalf("width differs: %q %q", prev, cur)
		}
	}

	local := time.FixedZone("BRT", -3*60*60)
	if got := parseTime(formatTime(base.In(local))); !got.Equal(base) {
		t.Fatalf("round trip lost the instant: %v", got)
	}
	if got := parseTime("2024-03-01T10:00:00.3Z"); !got.Equal(base.Add(300 * time.Millisecond)) {
		t.Fatalf("legacy value did not parse: %v", got)
	}
}

func TestPlayerDynamoRepository(t *testing.T) {
	t.Run("find missing", func(t *testing.T) {
		p, err := NewPlayerDynamoRepository(&fakeDynamo{}, "players").FindByID(context.Background(), 1)
		if err != nil || p.Exists() {
			t.Fatalf("expected zero player, got %+v err=%v", p, err)
		}
	})

	t.Run("create and read back", func(t *testing.T) {
		ddb := &fakeDynamo{}
		repo := NewPlayerDynamoRepository(ddb, "players")
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		if _, err := repo.Create(context.Background(), entities.NewProvisionalPlayer(77, now)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		stored := ddb.puts[0].Item
		ddb.getItem = func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{Item: stored}, nil
		}
		p, err := repo.FindByID(context.Background(), 77)
		if err != nil || p.Name != "Player 77" || p.Level != 1 || !p.FirstLogin.Equal(now) {
			t.Fatalf("unexpected player %+v err=%v", p, err)
		}
	})
}

func TestAccountDynamoResolver(t *testing.T) {
	player := mustMarshal(t, playerItem{ID: 5, Name: "ana", Level: "12.5"})

	t.Run("facebook uses the player index", func(t *testing.T) {
		ddb := &fakeDynamo{query: func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
			if *in.IndexName != playersFacebookIDIndex {
				t.Fatalf("unexpected index %s", *in.IndexName)
			}
			return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{player}}, nil
		}}
		r := NewAccountDynamoResolver(ddb, NewPlayerDynamoRepository(ddb, "players"), "accounts")
		p, err := r.FindByLogin(context.Background(), entities.LoginFacebook, "fb-1")
		if err != nil || p.ID != 5 || p.Level != 12.5 {
			t.Fatalf("unexpected player %+v err=%v", p, err)
		}
	})

	t.Run("google goes through the account table", func(t *testing.T) {
		ddb := &fakeDynamo{getItem: func(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			if *in.TableName == "accounts" {
				if got := stringAttr(t, in.Key, "account_key"); got != "5#g-1" {
					t.Fatalf("unexpected account key %q", got)
				}
				return &dynamodb.GetItemOutput{Item: mustMarshal(t, accountItem{AccountKey: "5#g-1", PlayerID: 5})}, nil
			}
			return &dynamodb.GetItemOutput{Item: player}, nil
		}}
		r := NewAccountDynamoResolver(ddb, NewPlayerDynamoRepository(ddb, "players"), "accounts")
		p, err := r.FindByLogin(context.Background(), entities.LoginGoogle, "g-1")
		if err != nil || p.ID != 5 {
			t.Fatalf("unexpected player %+v err=%v", p, err)
		}
	})

	t.Run("email has no provider", func(t *testing.T) {
		ddb := &fakeDynamo{}
		r := NewAccountDynamoResolver(ddb, NewPlayerDynamoRepository(ddb, "players"), "accounts")
		p, err := r.FindByLogin(context.Background(), entities.LoginEmail, "a@b.com")
		if err != nil || p.Exists() || len(ddb.gets)+len(ddb.queries) != 0 {
			t.Fatalf("expected no lookup, got %+v err=%v", p, err)
		}
	})
}

func TestLedgerDynamoStore(t *testing.T) {
	t.Run("increment uses ADD", func(t *testing.T) {
		ddb := &fakeDynamo{updateItem: func(in *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			if *in.UpdateExpression != "ADD #amount :n" {
				t.Fatalf("unexpected expression %s", *in.UpdateExpression)
			}
			return &dynamodb.UpdateItemOutput{Attributes: map[string]types.AttributeValue{
				"amount": &types.AttributeValueMemberN{Value: "122"},
			}}, nil
		}}
		total, err := NewLedgerDynamoStore(ddb, "ledger").IncrementBy(context.Background(), 1, 22)
		if err != nil || total != 122 {
			t.Fatalf("unexpected total %d err=%v", total, err)
		}
	})

	t.Run("missing entry reads zero", func(t *testing.T) {
		total, err := NewLedgerDynamoStore(&fakeDynamo{}, "ledger").Get(context.Background(), 1)
		if err != nil || total != 0 {
			t.Fatalf("unexpected total %d err=%v", total, err)
		}
	})
}

func TestInboxDynamoDelivery(t *testing.T) {
	msg := entities.MailboxMessage{
		ID: "m-1", PlayerID: 3, Amount: 22, Kind: entities.MailboxKindPurchaseReward,
		Sender: entities.MailboxSender, Attachments: [][]int64{{18, 22, 1}},
	}

	t.Run("writes attach_list", func(t *testing.T) {
		ddb := &fakeDynamo{}
		if err := NewInboxDynamoDelivery(ddb, "inbox").Deliver(context.Background(), msg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := stringAttr(t, ddb.puts[0].Item, "extra_data"); got != `{"attach_list":[[18,22,1]]}` {
			t.Fatalf("unexpected extra_data %q", got)
		}
	})

	t.Run("redelivery is a no-op", func(t *testing.T) {
		ddb := &fakeDynamo{putItem: func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error) {
			return nil, &types.ConditionalCheckFailedException{}
		}}
		if err := NewInboxDynamoDelivery(ddb, "inbox").Deliver(context.Background(), msg); err != nil {
			t.Fatalf("expected nil, got %v", err)
		}
	})
}

package sqlstore

import (
	"time"

	"webcharge_api/internal/domain/entities"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// PaymentLog is one row per payment attempt. SuccessKey carries the order id
// on success rows only, so the unique index admits one success per order
// and any number of failures.
type PaymentLog struct {
	ID             uint                                    `gorm:"primaryKey;autoIncrement"`
	OrderID        string                                  `gorm:"size:64;index;not null"`
	SuccessKey     *string                                 `gorm:"size:64;uniqueIndex"`
	UID            int64                                   `gorm:"column:uid;not null;index:idx_payment_uid_item,priority:1;index:idx_payment_uid_created,priority:1"`
	ItemID         int                                     `gorm:"not null;index:idx_payment_uid_item,priority:2"`
	Price          decimal.NullDecimal                     `gorm:"type:decimal(12,2)"`
	Currency       string                                  `gorm:"size:3"`
	IP             string                                  `gorm:"size:45"`
	Country        string                                  `gorm:"size:2"`
	PaymentChannel string                                  `gorm:"size:32;not null;default:appcharge"`
	PaymentMethod  string                                  `gorm:"size:32;not null"`
	Email          *string                                 `gorm:"size:255"`
	Status         string                                  `gorm:"size:16;not null"`
	WebLang        *string                                 `gorm:"size:10"`
	BrowserLang    *string                                 `gorm:"size:10"`
	WebPayError    *string                                 `gorm:"column:web_pay_error_code;type:text"`
	Ext            datatypes.JSONType[entities.PaymentExt] `gorm:"not null"`
	TokensGranted  int64                                   `gorm:"not null;default:0"`
	FirstPurchase  bool                                    `gorm:"not null;default:false"`
	GrantConfirmed bool                                    `gorm:"not null;default:false;index"`
	GrantState     string                                  `gorm:"size:16;not null;default:'';index"`
	CreatedAt      time.Time                               `gorm:"not null;index:idx_payment_uid_created,priority:2"`
	UpdatedAt      time.Time
}

func (PaymentLog) TableName() string { return "webcharge_payment_logs" }

type User struct {
	ID            int64     `gorm:"primaryKey;autoIncrement:false"`
	FacebookID    string    `gorm:"size:64;index;not null;default:''"`
	FacebookName  string    `gorm:"size:256;not null;default:''"`
	Coins         int64     `gorm:"not null;default:0"`
	Level         float64   `gorm:"not null;default:1"`
	VIPLevel      int       `gorm:"not null;default:1"`
	PurchaseCount int       `gorm:"not null;default:0"`
	FirstLogin    time.Time `gorm:"not null"`
	LastLogin     time.Time `gorm:"not null"`
}

func (User) TableName() string { return "user" }

type AccountInfo struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	AccountID     string    `gorm:"size:128;not null;index:idx_account_type_id,priority:2"`
	AccountName   string    `gorm:"size:64"`
	AccountType   int       `gorm:"not null;default:0;index:idx_account_type_id,priority:1"`
	PrimaryUserID int64     `gorm:"not null;index"`
	CreateTS      time.Time `gorm:"column:create_ts"`
}

func (AccountInfo) TableName() string { return "account_info" }

// Inbox is the in-game mailbox. MessageID makes redelivery of a queued
// message idempotent. ValidTimeSec -1 means the mail never expires.
type Inbox struct {
	ID           uint           `gorm:"primaryKey;autoIncrement"`
	MessageID    string         `gorm:"size:36;uniqueIndex;not null"`
	UserID       int64          `gorm:"not null;index"`
	Type         int            `gorm:"not null;default:0"`
	Count        int            `gorm:"not null;default:0"`
	TS           time.Time      `gorm:"column:ts;not null"`
	ValidTimeSec int            `gorm:"not null"`
	Msg          *string        `gorm:"size:512"`
	ExtraData    datatypes.JSON `gorm:"type:text"`
}

func (Inbox) TableName() string { return "inbox" }

type InboxLog struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	UserID   int64     `gorm:"not null;index"`
	Type     int       `gorm:"not null;default:0"`
	Count    int       `gorm:"not null;default:0"`
	CreateTS time.Time `gorm:"column:create_ts"`
	GMName   *string   `gorm:"size:64"`
}

func (InboxLog) TableName() string { return "inbox_log" }

// Models lists every table the service migrates.
func Models() []any {
	return []any{&PaymentLog{}, &User{}, &AccountInfo{}, &Inbox{}, &InboxLog{}}
}

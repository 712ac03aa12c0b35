package entities

// OutcomeStatus is the terminal classification of a processed payment event.
type OutcomeStatus string

const (
	OutcomeSuccess  OutcomeStatus = "success"
	OutcomeRejected OutcomeStatus = "rejected"
	OutcomeFailed   OutcomeStatus = "failed"
)

const (
	RejectAlreadyProcessed = "already processed"
	RejectTierRestricted   = "tier restricted"
	RejectNotReconcilable  = "not reconcilable"
	RejectGrantInProgress  = "grant in progress"
)

// Stage names the step of the success pipeline an outcome was decided at.
type Stage string

const (
	StageReceived          Stage = "received"
	StageDuplicateCheck    Stage = "duplicate_check"
	StagePlayerResolution  Stage = "player_resolution"
	StageEligibilityCheck  Stage = "eligibility_check"
	StageTokenCalculation  Stage = "token_calculation"
	StagePersistLog        Stage = "persist_log"
	StageGrantReward       Stage = "grant_reward"
	StageNotifyAndComplete Stage = "notify_and_complete"
)

// PaymentOutcome is the only thing the payment pipeline hands back to its caller.
//
// Exactly one of the following holds:
//   - Status == OutcomeSuccess: Record is the committed record.
//   - Status == OutcomeRejected: Reason explains the business rule.
//   - Status == OutcomeFailed: Err wraps ErrTransient or ErrGrantNotConfirmed.
type PaymentOutcome struct {
	Status OutcomeStatus
	Reason string
	Err    error
	Stage  Stage

	Record           PaymentRecord
	Granted          int64
	FirstPurchase    bool
	PurchaseCount    int
	Balance          int64
	NotificationSent bool
}

func (o PaymentOutcome) Succeeded() bool { return o.Status == OutcomeSuccess }

func Rejected(stage Stage, reason string) PaymentOutcome {
	return PaymentOutcome{Status: OutcomeRejected, Reason: reason, Stage: stage}
}

func Failed(stage Stage, err error) PaymentOutcome {
	return PaymentOutcome{Status: OutcomeFailed, Err: err, Stage: stage}
}

// DuplicateCheck is the answer of the idempotency guard.
type DuplicateCheck int

const (
	NotYetProcessed DuplicateCheck = iota
	AlreadyProcessed
)

// GrantOutcome reports what the reward grant managed to do.
type GrantOutcome struct {
	LedgerUpdated    bool
	NotificationSent bool
	Balance          int64
	NotificationErr  error
}

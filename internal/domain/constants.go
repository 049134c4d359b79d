package domain

const (
	RoleUser       = "USER"
	RoleAstrologer = "ASTROLOGER"
	RoleAdmin      = "ADMIN"
)

const (
	SessionTypeChat  = "CHAT"
	SessionTypeCall  = "CALL"
	SessionTypeVideo = "VIDEO"
)

const (
	SessionStatusActive    = "ACTIVE"
	SessionStatusCompleted = "COMPLETED"
	SessionStatusCancelled = "CANCELLED"
)

const (
	AstrologerStatusPending  = "PENDING"
	AstrologerStatusApproved = "APPROVED"
	AstrologerStatusRejected = "REJECTED"
	AstrologerStatusInactive = "INACTIVE"
)

const (
	TxnTypeRecharge = "RECHARGE"
	TxnTypeDebit    = "DEBIT"
	TxnTypeRefund   = "REFUND"
)

const (
	TxnStatusCompleted = "COMPLETED"
	TxnStatusPending   = "PENDING"
	TxnStatusFailed    = "FAILED"
)

const (
	ReviewStatusPending  = "PENDING"
	ReviewStatusApproved = "APPROVED"
	ReviewStatusRejected = "REJECTED"
)

// EndReasonAuto is recorded when a session is settled because the user
// started a new one while it was still running.
const EndReasonAuto = "ended automatically"

// MinimumBillableMinutes is the affordability floor checked before a
// session starts: balance must cover at least this many minutes.
const MinimumBillableMinutes = 5

func ValidSessionType(t string) bool {
	return t == SessionTypeChat || t == SessionTypeCall || t == SessionTypeVideo
}

// Package model defines the data records shared by the bounty and channel bots.
package model

// Bounty represents a paid task offer. Amount is kept as integer text in the
// canonical micro-denomination so arbitrary-precision values survive storage
// untouched. CompletedAt and Recipient are set together by the completion
// transition and are null while the bounty is open.
type Bounty struct {
	ID          int64   `db:"id"`
	Amount      string  `db:"amount"`
	Denom       string  `db:"denom"`
	Task        string  `db:"task"`
	Completed   bool    `db:"completed"`
	CreatedAt   int64   `db:"created_at"`
	CompletedAt *int64  `db:"completed_at"`
	Recipient   *string `db:"recipient"`
}

// Claim is a user's assertion of having completed a bounty. At most one claim
// exists per (bounty_id, username); a repeated claim replaces the proof.
type Claim struct {
	ID        int64   `db:"id"`
	BountyID  int64   `db:"bounty_id"`
	Username  string  `db:"username"`
	Proof     *string `db:"proof"`
	CreatedAt int64   `db:"created_at"`
}

// BountyWithClaims pairs a bounty with the claims submitted against it.
type BountyWithClaims struct {
	Bounty Bounty
	Claims []Claim
}

// Recipient maps a chat identity to a payout address. Username may carry the
// synthetic "TGID:<id>" form when the account has no Telegram username.
type Recipient struct {
	Username string `db:"username"`
	Address  string `db:"address"`
}

// Scope groups chats under a shared name: every chat linked to a scope of the
// same name sees the channels added to that scope.
type Scope struct {
	ID     int64  `db:"id"`
	Name   string `db:"name"`
	ChatID int64  `db:"chat_id"`
}

// Channel is a promotional channel entry belonging to exactly one scope.
type Channel struct {
	ID          int64  `db:"id"`
	ScopeID     int64  `db:"scope_id"`
	Description string `db:"description"`
	URL         string `db:"url"`
}

package model

import (
	"context"
	"time"
)

// Policy rule types: "p" rules are (subject, object, action) grants,
// "g" rules are (member, role) grouping pairs.
const (
	PolicyTypeGrant = "p"
	PolicyTypeGroup = "g"
)

// PolicyStore defines persistence operations for authorization rules
// used by the subject/object/action strategy.
type PolicyStore interface {
	List(ctx context.Context) ([]PolicyRule, error)
	// SaveAll inserts the given rules. Used once at first boot to
	// import the bundled defaults into an empty rule table.
	SaveAll(ctx context.Context, rules []PolicyRule) error
	Count(ctx context.Context) (int64, error)
}

// PolicyRule is one persisted authorization rule. For "p" rules V0-V2
// are subject, object and action patterns; for "g" rules V0 is the
// member and V1 the role it inherits from.
type PolicyRule struct {
	ID        int64
	PType     string
	V0        string
	V1        string
	V2        string
	CreatedAt time.Time
}

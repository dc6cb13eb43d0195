package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/dtroode/console-server/internal/logger"
	"github.com/dtroode/console-server/internal/model"
)

var _ Strategy = (*PolicyStrategy)(nil)

// defaultPolicyRules seed an empty rule table on first boot. They
// mirror the built-in roles: admins may do anything, users may manage
// their own account.
var defaultPolicyRules = []model.PolicyRule{
	{PType: model.PolicyTypeGrant, V0: model.AdminRoleName, V1: "*", V2: "*"},
	{PType: model.PolicyTypeGrant, V0: model.DefaultRoleName, V1: "self", V2: "read"},
	{PType: model.PolicyTypeGrant, V0: model.DefaultRoleName, V1: "self", V2: "update"},
}

type grantRule struct {
	subject string
	object  string
	action  string
}

type ruleSet struct {
	grants []grantRule
	// groups maps a member subject to the roles it inherits.
	groups map[string][]string
}

// PolicyStrategy evaluates persisted rules. Rules are loaded into an
// immutable in-memory snapshot; Reload swaps the snapshot atomically so
// evaluation never takes a lock.
type PolicyStrategy struct {
	store  model.PolicyStore
	rules  atomic.Value // *ruleSet
	logger *logger.Logger
}

func NewPolicyStrategy(store model.PolicyStore, logger *logger.Logger) *PolicyStrategy {
	s := &PolicyStrategy{
		store:  store,
		logger: logger,
	}
	s.rules.Store(&ruleSet{groups: map[string][]string{}})
	return s
}

// Load imports the bundled default rules when the table is empty, then
// reads all rules into memory. Call once at startup.
func (s *PolicyStrategy) Load(ctx context.Context) error {
	count, err := s.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count policy rules: %w", err)
	}

	if count == 0 {
		if err := s.store.SaveAll(ctx, defaultPolicyRules); err != nil {
			return fmt.Errorf("failed to seed policy rules: %w", err)
		}
		s.logger.Info("Policy strategy: imported default rules",
			"rules", len(defaultPolicyRules))
	}

	return s.Reload(ctx)
}

// Reload replaces the in-memory snapshot with the current table state.
func (s *PolicyStrategy) Reload(ctx context.Context) error {
	stored, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list policy rules: %w", err)
	}

	rs := &ruleSet{groups: map[string][]string{}}
	for _, rule := range stored {
		switch rule.PType {
		case model.PolicyTypeGrant:
			rs.grants = append(rs.grants, grantRule{subject: rule.V0, object: rule.V1, action: rule.V2})
		case model.PolicyTypeGroup:
			rs.groups[rule.V0] = append(rs.groups[rule.V0], rule.V1)
		}
	}

	s.rules.Store(rs)
	return nil
}

func (s *PolicyStrategy) Allowed(_ context.Context, user model.User, object, action string) (bool, error) {
	rs := s.rules.Load().(*ruleSet)

	// A user acts under their email, their role names, and anything a
	// grouping rule maps those onto.
	subjects := append([]string{user.Email}, user.RoleNames()...)
	for _, subject := range subjects[:len(subjects):len(subjects)] {
		subjects = append(subjects, rs.groups[subject]...)
	}

	for _, grant := range rs.grants {
		if !matchPattern(grant.object, object) || !matchPattern(grant.action, action) {
			continue
		}
		for _, subject := range subjects {
			if matchPattern(grant.subject, subject) {
				return true, nil
			}
		}
	}

	return false, nil
}

func matchPattern(pattern, value string) bool {
	return pattern == "*" || pattern == value
}

package application

import "time"

// The lifecycle helpers implement the membership state machine:
//
//	active ⇄ frozen  (Freeze / Unfreeze)
//	active|frozen → cancelled  (Cancel, terminal)
//	active → expired  (derived from the end date, never stored)
//
// Each helper returns a new record; callers persist the result. Freezing an
// already-frozen membership is rejected rather than pushing a second open
// freeze entry, and cancelled memberships reject every further command.

// EffectiveStatus derives the status a membership should display at the given
// instant. Stored state wins except for active memberships past their end date.
func EffectiveStatus(m ClientMembership, now time.Time) MembershipStatus {
	if m.Status == MembershipActive && m.EndDate.Before(now) {
		return MembershipExpired
	}
	return m.Status
}

func freezeMembership(m ClientMembership, days int, reason string, now time.Time) (ClientMembership, *ValidationError) {
	vErr := &ValidationError{}
	if days <= 0 {
		vErr.add("days", "days must be positive")
	}
	if reason == "" {
		vErr.add("reason", "reason is required")
	}
	switch m.Status {
	case MembershipFrozen:
		vErr.add("status", "membership is already frozen")
	case MembershipCancelled:
		vErr.add("status", "membership is cancelled")
	}
	if vErr.HasErrors() {
		return ClientMembership{}, vErr
	}

	m.Status = MembershipFrozen
	m.EndDate = m.EndDate.AddDate(0, 0, days)
	m.FreezeHistory = append(cloneFreezeHistory(m.FreezeHistory), FreezeRecord{
		StartDate: now,
		Reason:    reason,
	})
	return m, nil
}

func unfreezeMembership(m ClientMembership, now time.Time) (ClientMembership, *ValidationError) {
	if m.Status == MembershipCancelled {
		vErr := &ValidationError{}
		vErr.add("status", "membership is cancelled")
		return ClientMembership{}, vErr
	}

	m.Status = MembershipActive
	// The end-date extension applied at freeze time is permanent; only the
	// open history entry is closed here.
	if n := len(m.FreezeHistory); n > 0 {
		history := cloneFreezeHistory(m.FreezeHistory)
		if history[n-1].EndDate == nil {
			closed := now
			history[n-1].EndDate = &closed
		}
		m.FreezeHistory = history
	}
	return m, nil
}

func prolongMembership(m ClientMembership, days int, reason string, now time.Time) (ClientMembership, *ValidationError) {
	vErr := &ValidationError{}
	if days <= 0 {
		vErr.add("days", "days must be positive")
	}
	if reason == "" {
		vErr.add("reason", "reason is required")
	}
	if m.Status == MembershipCancelled {
		vErr.add("status", "membership is cancelled")
	}
	if vErr.HasErrors() {
		return ClientMembership{}, vErr
	}

	m.EndDate = m.EndDate.AddDate(0, 0, days)
	m.ProlongHistory = append(cloneProlongHistory(m.ProlongHistory), ProlongRecord{
		Date:   now,
		Days:   days,
		Reason: reason,
	})
	return m, nil
}

func cancelMembership(m ClientMembership, reason string) (ClientMembership, *ValidationError) {
	vErr := &ValidationError{}
	if reason == "" {
		vErr.add("reason", "reason is required")
	}
	if m.Status == MembershipCancelled {
		vErr.add("status", "membership is already cancelled")
	}
	if vErr.HasErrors() {
		return ClientMembership{}, vErr
	}

	m.Status = MembershipCancelled
	return m, nil
}

func cloneFreezeHistory(history []FreezeRecord) []FreezeRecord {
	if len(history) == 0 {
		return nil
	}
	out := make([]FreezeRecord, len(history))
	copy(out, history)
	return out
}

func cloneProlongHistory(history []ProlongRecord) []ProlongRecord {
	if len(history) == 0 {
		return nil
	}
	out := make([]ProlongRecord, len(history))
	copy(out, history)
	return out
}

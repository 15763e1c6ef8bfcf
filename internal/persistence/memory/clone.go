package memory

import (
	"time"

	"github.com/example/gym-admin/internal/application"
)

func cloneMembershipType(t application.MembershipType) application.MembershipType {
	out := t
	out.Features = append([]string(nil), t.Features...)
	out.MaxAttendance = cloneIntPtr(t.MaxAttendance)
	return out
}

func cloneMembership(m application.ClientMembership) application.ClientMembership {
	out := m
	out.MaxAttendance = cloneIntPtr(m.MaxAttendance)
	if m.FreezeHistory != nil {
		out.FreezeHistory = make([]application.FreezeRecord, len(m.FreezeHistory))
		for i, rec := range m.FreezeHistory {
			rec.EndDate = cloneTimePtr(rec.EndDate)
			out.FreezeHistory[i] = rec
		}
	}
	out.ProlongHistory = append([]application.ProlongRecord(nil), m.ProlongHistory...)
	return out
}

func cloneAttendance(rec application.AttendanceRecord) application.AttendanceRecord {
	out := rec
	out.CheckOutTime = cloneStringPtr(rec.CheckOutTime)
	out.Notes = cloneStringPtr(rec.Notes)
	return out
}

func cloneBooking(b application.Booking) application.Booking {
	out := b
	out.Trainer = cloneStringPtr(b.Trainer)
	return out
}

func cloneStaff(member application.StaffMember) application.StaffMember {
	out := member
	out.Availability = append([]string(nil), member.Availability...)
	return out
}

func cloneUser(u application.User) application.User {
	out := u
	out.Subscription = cloneStringPtr(u.Subscription)
	return out
}

func cloneRole(r application.Role) application.Role {
	out := r
	out.Permissions = append([]string(nil), r.Permissions...)
	return out
}

func cloneProtectionItem(item application.DataProtectionItem) application.DataProtectionItem {
	out := item
	out.LastAudit = cloneStringPtr(item.LastAudit)
	out.DueDate = cloneStringPtr(item.DueDate)
	return out
}

func cloneSystemStatus(item application.SystemStatusItem) application.SystemStatusItem {
	out := item
	out.Details = cloneStringPtr(item.Details)
	return out
}

func cloneActionLog(entry application.ActionLogEntry) application.ActionLogEntry {
	out := entry
	out.Details = cloneStringPtr(entry.Details)
	return out
}

func cloneNews(item application.NewsItem) application.NewsItem {
	out := item
	out.PublishDate = cloneTimePtr(item.PublishDate)
	out.Categories = append([]string(nil), item.Categories...)
	return out
}

func cloneTournament(t application.Tournament) application.Tournament {
	out := t
	out.MaxParticipants = cloneIntPtr(t.MaxParticipants)
	out.CurrentParticipants = cloneIntPtr(t.CurrentParticipants)
	return out
}

func cloneMedia(item application.MediaItem) application.MediaItem {
	out := item
	out.Description = cloneStringPtr(item.Description)
	out.Thumbnail = cloneStringPtr(item.Thumbnail)
	return out
}

func cloneNotification(n application.Notification) application.Notification {
	out := n
	out.CustomGroups = append([]string(nil), n.CustomGroups...)
	out.ScheduledFor = cloneTimePtr(n.ScheduledFor)
	return out
}

func cloneIntPtr(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneStringPtr(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneTimePtr(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

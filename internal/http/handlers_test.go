package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/example/gym-admin/internal/application"
	"github.com/example/gym-admin/internal/compliance"
	"github.com/example/gym-admin/internal/testfixtures"
)

type membershipServiceStub struct {
	listTypes  func(ctx context.Context) ([]application.MembershipType, error)
	createType func(ctx context.Context, input application.MembershipTypeInput) (application.MembershipType, error)
	updateType func(ctx context.Context, id string, input application.MembershipTypeInput) (application.MembershipType, error)
	list       func(ctx context.Context) ([]application.ClientMembership, error)
	assign     func(ctx context.Context, params application.AssignMembershipParams) (application.ClientMembership, error)
	freeze     func(ctx context.Context, params application.FreezeMembershipParams) (application.ClientMembership, error)
	unfreeze   func(ctx context.Context, membershipID string) (application.ClientMembership, error)
	prolong    func(ctx context.Context, params application.ProlongMembershipParams) (application.ClientMembership, error)
	cancel     func(ctx context.Context, membershipID, reason string) (application.ClientMembership, error)
}

func (s *membershipServiceStub) ListMembershipTypes(ctx context.Context) ([]application.MembershipType, error) {
	return s.listTypes(ctx)
}

func (s *membershipServiceStub) CreateMembershipType(ctx context.Context, input application.MembershipTypeInput) (application.MembershipType, error) {
	return s.createType(ctx, input)
}

func (s *membershipServiceStub) UpdateMembershipType(ctx context.Context, id string, input application.MembershipTypeInput) (application.MembershipType, error) {
	return s.updateType(ctx, id, input)
}

func (s *membershipServiceStub) ListClientMemberships(ctx context.Context) ([]application.ClientMembership, error) {
	return s.list(ctx)
}

func (s *membershipServiceStub) AssignMembership(ctx context.Context, params application.AssignMembershipParams) (application.ClientMembership, error) {
	return s.assign(ctx, params)
}

func (s *membershipServiceStub) FreezeMembership(ctx context.Context, params application.FreezeMembershipParams) (application.ClientMembership, error) {
	return s.freeze(ctx, params)
}

func (s *membershipServiceStub) UnfreezeMembership(ctx context.Context, membershipID string) (application.ClientMembership, error) {
	return s.unfreeze(ctx, membershipID)
}

func (s *membershipServiceStub) ProlongMembership(ctx context.Context, params application.ProlongMembershipParams) (application.ClientMembership, error) {
	return s.prolong(ctx, params)
}

func (s *membershipServiceStub) CancelMembership(ctx context.Context, membershipID, reason string) (application.ClientMembership, error) {
	return s.cancel(ctx, membershipID, reason)
}

type attendanceServiceStub struct {
	add  func(ctx context.Context, input application.AttendanceInput) (application.AttendanceResult, error)
	list func(ctx context.Context, clientMembershipID string) ([]application.AttendanceRecord, error)
}

func (s *attendanceServiceStub) AddAttendance(ctx context.Context, input application.AttendanceInput) (application.AttendanceResult, error) {
	return s.add(ctx, input)
}

func (s *attendanceServiceStub) ListAttendance(ctx context.Context, clientMembershipID string) ([]application.AttendanceRecord, error) {
	return s.list(ctx, clientMembershipID)
}

func membershipRouter(service membershipService, attendance attendanceService, now func() time.Time) http.Handler {
	handler := NewMembershipHandler(service, attendance, nil)
	if now != nil {
		handler.now = now
	}
	return NewRouter(RouterConfig{Memberships: handler})
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func TestMembershipHandler_Freeze(t *testing.T) {
	clock := testfixtures.NewClock(time.Time{})

	t.Run("applies the freeze and returns the updated membership", func(t *testing.T) {
		var gotParams application.FreezeMembershipParams
		service := &membershipServiceStub{
			freeze: func(_ context.Context, params application.FreezeMembershipParams) (application.ClientMembership, error) {
				gotParams = params
				fixture := testfixtures.NewMembershipFixture(
					testfixtures.WithMembershipID(params.MembershipID),
					testfixtures.WithOpenFreeze(clock.Now(), params.Reason),
				)
				return fixture.Application(), nil
			},
		}
		router := membershipRouter(service, nil, clock.NowFunc())

		req := httptest.NewRequest(http.MethodPost, "/memberships/m-1/freeze", strings.NewReader(`{"days":5,"reason":"vacation"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotParams.MembershipID != "m-1" || gotParams.Days != 5 || gotParams.Reason != "vacation" {
			t.Fatalf("unexpected params %+v", gotParams)
		}

		var resp membershipResponse
		decodeBody(t, rec, &resp)
		if resp.Membership.Status != string(application.MembershipFrozen) {
			t.Fatalf("expected frozen status, got %q", resp.Membership.Status)
		}
		if len(resp.Membership.FreezeHistory) != 1 || resp.Membership.FreezeHistory[0].Reason != "vacation" {
			t.Fatalf("expected the open freeze entry, got %+v", resp.Membership.FreezeHistory)
		}
	})

	t.Run("missing membership maps to 404", func(t *testing.T) {
		service := &membershipServiceStub{
			freeze: func(context.Context, application.FreezeMembershipParams) (application.ClientMembership, error) {
				return application.ClientMembership{}, application.ErrNotFound
			},
		}
		router := membershipRouter(service, nil, nil)

		req := httptest.NewRequest(http.MethodPost, "/memberships/missing/freeze", strings.NewReader(`{"days":5,"reason":"vacation"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("validation failures map to 422 with field errors", func(t *testing.T) {
		service := &membershipServiceStub{
			freeze: func(context.Context, application.FreezeMembershipParams) (application.ClientMembership, error) {
				return application.ClientMembership{}, &application.ValidationError{FieldErrors: map[string]string{
					"days":   "freeze days must be positive",
					"reason": "reason is required",
				}}
			},
		}
		router := membershipRouter(service, nil, nil)

		req := httptest.NewRequest(http.MethodPost, "/memberships/m-1/freeze", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}

		var resp errorResponse
		decodeBody(t, rec, &resp)
		if resp.Errors["days"] == "" || resp.Errors["reason"] == "" {
			t.Fatalf("expected field errors, got %+v", resp.Errors)
		}
	})

	t.Run("malformed body maps to 400", func(t *testing.T) {
		router := membershipRouter(&membershipServiceStub{}, nil, nil)

		req := httptest.NewRequest(http.MethodPost, "/memberships/m-1/freeze", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestMembershipHandler_Unfreeze(t *testing.T) {
	t.Run("accepts an empty request body", func(t *testing.T) {
		service := &membershipServiceStub{
			unfreeze: func(_ context.Context, id string) (application.ClientMembership, error) {
				return testfixtures.NewMembershipFixture(testfixtures.WithMembershipID(id)).Application(), nil
			},
		}
		router := membershipRouter(service, nil, nil)

		req := httptest.NewRequest(http.MethodPost, "/memberships/m-1/unfreeze", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestMembershipHandler_List(t *testing.T) {
	t.Run("serializes the effective status", func(t *testing.T) {
		clock := testfixtures.NewClock(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
		service := &membershipServiceStub{
			list: func(context.Context) ([]application.ClientMembership, error) {
				lapsed := testfixtures.NewMembershipFixture(testfixtures.WithMembershipPeriod(
					time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
					time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC),
				))
				return []application.ClientMembership{lapsed.Application()}, nil
			},
		}
		router := membershipRouter(service, nil, clock.NowFunc())

		req := httptest.NewRequest(http.MethodGet, "/memberships", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var resp listMembershipsResponse
		decodeBody(t, rec, &resp)
		if len(resp.Memberships) != 1 {
			t.Fatalf("expected one membership, got %d", len(resp.Memberships))
		}
		if resp.Memberships[0].Status != string(application.MembershipExpired) {
			t.Fatalf("expected expired status past the end date, got %q", resp.Memberships[0].Status)
		}
	})
}

func TestMembershipHandler_AddAttendance(t *testing.T) {
	t.Run("returns the record with the updated membership", func(t *testing.T) {
		service := &attendanceServiceStub{
			add: func(_ context.Context, input application.AttendanceInput) (application.AttendanceResult, error) {
				membership := testfixtures.NewMembershipFixture(
					testfixtures.WithMembershipID(input.ClientMembershipID),
					testfixtures.WithMembershipAttendance(9),
				).Application()
				return application.AttendanceResult{
					Record: application.AttendanceRecord{
						ID:                 "att-1",
						ClientMembershipID: input.ClientMembershipID,
						Date:               input.Date,
						CheckInTime:        input.CheckInTime,
						Facility:           input.Facility,
					},
					Membership: membership,
				}, nil
			},
		}
		router := membershipRouter(&membershipServiceStub{}, service, nil)

		body := `{"date":"2025-04-20","checkInTime":"09:30","facility":"Main Gym"}`
		req := httptest.NewRequest(http.MethodPost, "/memberships/m-1/attendance", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp attendanceResponse
		decodeBody(t, rec, &resp)
		if resp.Record.ID != "att-1" || resp.Record.Date != "2025-04-20" {
			t.Fatalf("unexpected record %+v", resp.Record)
		}
		if resp.Membership.AttendanceCount != 9 {
			t.Fatalf("expected counter 9, got %d", resp.Membership.AttendanceCount)
		}
	})

	t.Run("unparseable date maps to 400", func(t *testing.T) {
		router := membershipRouter(&membershipServiceStub{}, &attendanceServiceStub{}, nil)

		body := `{"date":"soon","checkInTime":"09:30","facility":"Main Gym"}`
		req := httptest.NewRequest(http.MethodPost, "/memberships/m-1/attendance", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

type securityServiceStub struct {
	listRoles       func(ctx context.Context) ([]application.Role, error)
	createRole      func(ctx context.Context, input application.RoleInput) (application.Role, error)
	updateRole      func(ctx context.Context, id string, input application.RoleInput) (application.Role, error)
	deleteRole      func(ctx context.Context, id string) error
	listPermissions func(ctx context.Context) ([]application.Permission, error)
	overview        func(ctx context.Context) (application.ComplianceOverview, error)
	updateItem      func(ctx context.Context, id string, status compliance.Status, lastAudit, dueDate *string) (application.DataProtectionItem, error)
	listLogs        func(ctx context.Context) ([]application.ActionLogEntry, error)
	listStatus      func(ctx context.Context) ([]application.SystemStatusItem, error)
}

func (s *securityServiceStub) ListRoles(ctx context.Context) ([]application.Role, error) {
	return s.listRoles(ctx)
}

func (s *securityServiceStub) CreateRole(ctx context.Context, input application.RoleInput) (application.Role, error) {
	return s.createRole(ctx, input)
}

func (s *securityServiceStub) UpdateRole(ctx context.Context, id string, input application.RoleInput) (application.Role, error) {
	return s.updateRole(ctx, id, input)
}

func (s *securityServiceStub) DeleteRole(ctx context.Context, id string) error {
	return s.deleteRole(ctx, id)
}

func (s *securityServiceStub) ListPermissions(ctx context.Context) ([]application.Permission, error) {
	return s.listPermissions(ctx)
}

func (s *securityServiceStub) ComplianceOverview(ctx context.Context) (application.ComplianceOverview, error) {
	return s.overview(ctx)
}

func (s *securityServiceStub) UpdateDataProtectionItem(ctx context.Context, id string, status compliance.Status, lastAudit, dueDate *string) (application.DataProtectionItem, error) {
	return s.updateItem(ctx, id, status, lastAudit, dueDate)
}

func (s *securityServiceStub) ListActionLogs(ctx context.Context) ([]application.ActionLogEntry, error) {
	return s.listLogs(ctx)
}

func (s *securityServiceStub) ListSystemStatus(ctx context.Context) ([]application.SystemStatusItem, error) {
	return s.listStatus(ctx)
}

func TestSecurityHandler_DeleteRole(t *testing.T) {
	t.Run("protected roles map to 409 with an error code", func(t *testing.T) {
		service := &securityServiceStub{
			deleteRole: func(context.Context, string) error { return application.ErrProtectedRole },
		}
		router := NewRouter(RouterConfig{Security: NewSecurityHandler(service, nil)})

		req := httptest.NewRequest(http.MethodDelete, "/roles/r1", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}

		var resp errorResponse
		decodeBody(t, rec, &resp)
		if resp.ErrorCode != "ROLE_PROTECTED" {
			t.Fatalf("expected ROLE_PROTECTED code, got %q", resp.ErrorCode)
		}
	})

	t.Run("deletable roles map to 204", func(t *testing.T) {
		service := &securityServiceStub{
			deleteRole: func(context.Context, string) error { return nil },
		}
		router := NewRouter(RouterConfig{Security: NewSecurityHandler(service, nil)})

		req := httptest.NewRequest(http.MethodDelete, "/roles/r9", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})
}

func TestSecurityHandler_DataProtection(t *testing.T) {
	t.Run("returns the items with the weighted score", func(t *testing.T) {
		service := &securityServiceStub{
			overview: func(context.Context) (application.ComplianceOverview, error) {
				return application.ComplianceOverview{
					Items: []application.DataProtectionItem{
						{ID: "dp1", Name: "Encryption at rest", Status: compliance.StatusCompliant},
						{ID: "dp2", Name: "Retention policy", Status: compliance.StatusPartial},
					},
					Score: 75,
				}, nil
			},
		}
		router := NewRouter(RouterConfig{Security: NewSecurityHandler(service, nil)})

		req := httptest.NewRequest(http.MethodGet, "/data-protection", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var resp complianceResponse
		decodeBody(t, rec, &resp)
		if resp.Score != 75 {
			t.Fatalf("expected score 75, got %d", resp.Score)
		}
		if len(resp.Items) != 2 {
			t.Fatalf("expected two items, got %d", len(resp.Items))
		}
	})
}

func TestSecurityHandler_SystemStatus(t *testing.T) {
	details := "Scheduled maintenance until 2:00 PM"
	service := &securityServiceStub{
		listStatus: func(context.Context) ([]application.SystemStatusItem, error) {
			return []application.SystemStatusItem{
				{ID: "ss1", Title: "Authentication Service", Status: application.SystemOnline, LastChecked: "Apr 15, 10:00 AM", Uptime: "99.99% (30 days)"},
				{ID: "ss6", Title: "Backup System", Status: application.SystemMaintenance, LastChecked: "Apr 15, 10:00 AM", Uptime: "N/A", Details: &details},
			}, nil
		},
	}
	router := NewRouter(RouterConfig{Security: NewSecurityHandler(service, nil)})

	req := httptest.NewRequest(http.MethodGet, "/system-status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp listSystemStatusResponse
	decodeBody(t, rec, &resp)
	if len(resp.Items) != 2 {
		t.Fatalf("expected two items, got %d", len(resp.Items))
	}
	if resp.Items[1].Status != "maintenance" {
		t.Fatalf("expected maintenance status, got %q", resp.Items[1].Status)
	}
	if resp.Items[1].Details == nil || *resp.Items[1].Details != details {
		t.Fatalf("expected details carried through, got %v", resp.Items[1].Details)
	}
}

func TestRouter_MethodPatterns(t *testing.T) {
	service := &membershipServiceStub{
		list: func(context.Context) ([]application.ClientMembership, error) { return nil, nil },
	}
	router := membershipRouter(service, nil, nil)

	t.Run("wrong method is rejected by the mux", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/memberships", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", rec.Code)
		}
	})

	t.Run("unregistered handler groups stay unrouted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

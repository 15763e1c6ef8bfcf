package http

import (
	"net/http"
)

// RouterConfig wires handlers and middleware into the served mux. Nil handlers
// leave their routes unregistered.
type RouterConfig struct {
	Memberships *MembershipHandler
	Bookings    *BookingHandler
	Resources   *ResourceHandler
	Users       *UserHandler
	Security    *SecurityHandler
	Content     *ContentHandler
	Analytics   *AnalyticsHandler
	Middleware  []func(http.Handler) http.Handler
}

// NewRouter builds the HTTP handler for the admin API. Middleware is applied
// in slice order around the whole mux.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	if cfg.Memberships != nil {
		mux.HandleFunc("GET /membership-types", cfg.Memberships.ListTypes)
		mux.HandleFunc("POST /membership-types", cfg.Memberships.CreateType)
		mux.HandleFunc("PUT /membership-types/{id}", cfg.Memberships.UpdateType)
		mux.HandleFunc("GET /memberships", cfg.Memberships.List)
		mux.HandleFunc("POST /memberships", cfg.Memberships.Assign)
		mux.HandleFunc("POST /memberships/{id}/freeze", cfg.Memberships.Freeze)
		mux.HandleFunc("POST /memberships/{id}/unfreeze", cfg.Memberships.Unfreeze)
		mux.HandleFunc("POST /memberships/{id}/prolong", cfg.Memberships.Prolong)
		mux.HandleFunc("POST /memberships/{id}/cancel", cfg.Memberships.Cancel)
		mux.HandleFunc("GET /memberships/{id}/attendance", cfg.Memberships.ListAttendance)
		mux.HandleFunc("POST /memberships/{id}/attendance", cfg.Memberships.AddAttendance)
	}

	if cfg.Bookings != nil {
		mux.HandleFunc("GET /bookings", cfg.Bookings.List)
		mux.HandleFunc("POST /bookings", cfg.Bookings.Create)
		mux.HandleFunc("PUT /bookings/{id}", cfg.Bookings.Update)
		mux.HandleFunc("POST /bookings/{id}/cancel", cfg.Bookings.Cancel)
		mux.HandleFunc("DELETE /bookings/{id}", cfg.Bookings.Delete)
	}

	if cfg.Resources != nil {
		mux.HandleFunc("GET /trainers", cfg.Resources.ListTrainers)
		mux.HandleFunc("POST /trainers", cfg.Resources.CreateTrainer)
		mux.HandleFunc("PUT /trainers/{id}", cfg.Resources.UpdateTrainer)
		mux.HandleFunc("POST /trainers/{id}/toggle-status", cfg.Resources.ToggleTrainer)
		mux.HandleFunc("DELETE /trainers/{id}", cfg.Resources.DeleteTrainer)
		mux.HandleFunc("GET /masseurs", cfg.Resources.ListMasseurs)
		mux.HandleFunc("POST /masseurs", cfg.Resources.CreateMasseur)
		mux.HandleFunc("PUT /masseurs/{id}", cfg.Resources.UpdateMasseur)
		mux.HandleFunc("POST /masseurs/{id}/toggle-status", cfg.Resources.ToggleMasseur)
		mux.HandleFunc("DELETE /masseurs/{id}", cfg.Resources.DeleteMasseur)
		mux.HandleFunc("GET /courts", cfg.Resources.ListCourts)
		mux.HandleFunc("POST /courts", cfg.Resources.CreateCourt)
		mux.HandleFunc("PUT /courts/{id}", cfg.Resources.UpdateCourt)
		mux.HandleFunc("POST /courts/{id}/cycle-status", cfg.Resources.CycleCourt)
		mux.HandleFunc("DELETE /courts/{id}", cfg.Resources.DeleteCourt)
	}

	if cfg.Users != nil {
		mux.HandleFunc("GET /users", cfg.Users.List)
		mux.HandleFunc("POST /users", cfg.Users.Create)
		mux.HandleFunc("PUT /users/{id}", cfg.Users.Update)
		mux.HandleFunc("POST /users/{id}/block", cfg.Users.Block)
		mux.HandleFunc("POST /users/{id}/unblock", cfg.Users.Unblock)
		mux.HandleFunc("DELETE /users/{id}", cfg.Users.Delete)
	}

	if cfg.Security != nil {
		mux.HandleFunc("GET /roles", cfg.Security.ListRoles)
		mux.HandleFunc("POST /roles", cfg.Security.CreateRole)
		mux.HandleFunc("PUT /roles/{id}", cfg.Security.UpdateRole)
		mux.HandleFunc("DELETE /roles/{id}", cfg.Security.DeleteRole)
		mux.HandleFunc("GET /permissions", cfg.Security.ListPermissions)
		mux.HandleFunc("GET /data-protection", cfg.Security.DataProtection)
		mux.HandleFunc("PUT /data-protection/{id}", cfg.Security.UpdateDataProtection)
		mux.HandleFunc("GET /action-logs", cfg.Security.ListActionLogs)
		mux.HandleFunc("GET /system-status", cfg.Security.SystemStatus)
	}

	if cfg.Content != nil {
		mux.HandleFunc("GET /news", cfg.Content.ListNews)
		mux.HandleFunc("POST /news", cfg.Content.CreateNews)
		mux.HandleFunc("PUT /news/{id}", cfg.Content.UpdateNews)
		mux.HandleFunc("POST /news/{id}/publish", cfg.Content.PublishNews)
		mux.HandleFunc("DELETE /news/{id}", cfg.Content.DeleteNews)
		mux.HandleFunc("GET /tournaments", cfg.Content.ListTournaments)
		mux.HandleFunc("POST /tournaments", cfg.Content.CreateTournament)
		mux.HandleFunc("PUT /tournaments/{id}", cfg.Content.UpdateTournament)
		mux.HandleFunc("DELETE /tournaments/{id}", cfg.Content.DeleteTournament)
		mux.HandleFunc("GET /media", cfg.Content.ListMedia)
		mux.HandleFunc("POST /media", cfg.Content.AddMedia)
		mux.HandleFunc("DELETE /media/{id}", cfg.Content.DeleteMedia)
		mux.HandleFunc("GET /notifications", cfg.Content.ListNotifications)
		mux.HandleFunc("POST /notifications", cfg.Content.SendNotification)
	}

	if cfg.Analytics != nil {
		mux.HandleFunc("GET /analytics/attendance", cfg.Analytics.Attendance)
		mux.HandleFunc("GET /analytics/sales", cfg.Analytics.Sales)
	}

	var handler http.Handler = mux
	for i := len(cfg.Middleware) - 1; i >= 0; i-- {
		if cfg.Middleware[i] != nil {
			handler = cfg.Middleware[i](handler)
		}
	}

	return handler
}

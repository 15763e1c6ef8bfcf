// Package http provides HTTP handlers and middleware for the gym admin API.
//
// The router exposes the following endpoint groups:
//   - GET/POST /membership-types, PUT /membership-types/{id}: the plan catalog,
//     exchanging the `membershipTypeDTO` payload defined in membership_handler.go.
//   - GET/POST /memberships plus POST /memberships/{id}/freeze, /unfreeze,
//     /prolong, and /cancel: client membership lifecycle commands. Responses carry
//     the `membershipDTO` payload whose status field is the effective status, with
//     expiry derived from the end date at read time.
//   - GET/POST /memberships/{id}/attendance: the append-only check-in ledger.
//     Appends return both the new record and the membership with its incremented
//     attendance counter.
//   - GET/POST /bookings, PUT/DELETE /bookings/{id}, POST /bookings/{id}/cancel:
//     court and trainer reservations exchanging the `bookingDTO` payload.
//   - /trainers, /masseurs, and /courts: resource registries managed by
//     resource_handler.go, including POST .../{id}/toggle-status for staff and
//     POST /courts/{id}/cycle-status for the court availability cycle.
//   - /users: the directory with POST /users/{id}/block and /unblock commands,
//     filterable by the `category` query parameter.
//   - /roles, /permissions, /data-protection, /action-logs: access control and
//     compliance endpoints. GET /data-protection returns the items together with
//     the weighted compliance score.
//   - /news, /tournaments, /media, /notifications: the content registry, with
//     POST /news/{id}/publish rendering the Markdown body to HTML.
//   - GET /analytics/attendance and GET /analytics/sales: chart series over an
//     optional from/to date range.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http

package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/gym-admin/internal/application"
)

type contentService interface {
	ListNews(ctx context.Context, language string) ([]application.NewsItem, error)
	CreateNews(ctx context.Context, input application.NewsInput) (application.NewsItem, error)
	UpdateNews(ctx context.Context, id string, input application.NewsInput) (application.NewsItem, error)
	PublishNews(ctx context.Context, id string) (application.NewsItem, error)
	DeleteNews(ctx context.Context, id string) error
	ListTournaments(ctx context.Context, language string) ([]application.Tournament, error)
	CreateTournament(ctx context.Context, input application.TournamentInput) (application.Tournament, error)
	UpdateTournament(ctx context.Context, id string, input application.TournamentInput) (application.Tournament, error)
	DeleteTournament(ctx context.Context, id string) error
	ListMedia(ctx context.Context) ([]application.MediaItem, error)
	AddMedia(ctx context.Context, input application.MediaInput) (application.MediaItem, error)
	DeleteMedia(ctx context.Context, id string) error
	ListNotifications(ctx context.Context, language string) ([]application.Notification, error)
	SendNotification(ctx context.Context, input application.NotificationInput) (application.Notification, error)
}

type ContentHandler struct {
	service   contentService
	responder responder
	logger    *slog.Logger
}

func NewContentHandler(service contentService, logger *slog.Logger) *ContentHandler {
	base := defaultLogger(logger)
	return &ContentHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *ContentHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "ContentHandler", operation, attrs...)
}

func (h *ContentHandler) ListNews(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	language := strings.TrimSpace(r.URL.Query().Get("language"))
	logger := h.log(r.Context(), "ListNews", "language", language)
	items, err := h.service.ListNews(r.Context(), language)
	if err != nil {
		logger.ErrorContext(r.Context(), "news list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(items)).InfoContext(r.Context(), "news listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listNewsResponse{News: toNewsDTOs(items)})
}

func (h *ContentHandler) CreateNews(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req newsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "CreateNews", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode news request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "CreateNews")
	item, err := h.service.CreateNews(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "news creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("news_id", item.ID).InfoContext(r.Context(), "news created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, newsResponse{News: toNewsDTO(item)})
}

func (h *ContentHandler) UpdateNews(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.log(r.Context(), "UpdateNews", "error_kind", "bad_request").ErrorContext(r.Context(), "missing news id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	var req newsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "UpdateNews", "news_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode news request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "UpdateNews", "news_id", id)
	item, err := h.service.UpdateNews(r.Context(), id, req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "news update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "news updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, newsResponse{News: toNewsDTO(item)})
}

func (h *ContentHandler) PublishNews(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.log(r.Context(), "PublishNews", "error_kind", "bad_request").ErrorContext(r.Context(), "missing news id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	logger := h.log(r.Context(), "PublishNews", "news_id", id)
	item, err := h.service.PublishNews(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "news publish failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "news published")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, newsResponse{News: toNewsDTO(item)})
}

func (h *ContentHandler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.log(r.Context(), "DeleteNews", "error_kind", "bad_request").ErrorContext(r.Context(), "missing news id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	logger := h.log(r.Context(), "DeleteNews", "news_id", id)
	if err := h.service.DeleteNews(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "news delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "news deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *ContentHandler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	language := strings.TrimSpace(r.URL.Query().Get("language"))
	logger := h.log(r.Context(), "ListTournaments", "language", language)
	tournaments, err := h.service.ListTournaments(r.Context(), language)
	if err != nil {
		logger.ErrorContext(r.Context(), "tournament list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(tournaments)).InfoContext(r.Context(), "tournaments listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listTournamentsResponse{Tournaments: toTournamentDTOs(tournaments)})
}

func (h *ContentHandler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req tournamentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "CreateTournament", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode tournament request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.log(r.Context(), "CreateTournament", "error_kind", "bad_request").ErrorContext(r.Context(), "invalid tournament dates", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	logger := h.log(r.Context(), "CreateTournament")
	tournament, err := h.service.CreateTournament(r.Context(), input)
	if err != nil {
		logger.ErrorContext(r.Context(), "tournament creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("tournament_id", tournament.ID).InfoContext(r.Context(), "tournament created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, tournamentResponse{Tournament: toTournamentDTO(tournament)})
}

func (h *ContentHandler) UpdateTournament(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.log(r.Context(), "UpdateTournament", "error_kind", "bad_request").ErrorContext(r.Context(), "missing tournament id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	var req tournamentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "UpdateTournament", "tournament_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode tournament request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.log(r.Context(), "UpdateTournament", "tournament_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "invalid tournament dates", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	logger := h.log(r.Context(), "UpdateTournament", "tournament_id", id)
	tournament, err := h.service.UpdateTournament(r.Context(), id, input)
	if err != nil {
		logger.ErrorContext(r.Context(), "tournament update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "tournament updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, tournamentResponse{Tournament: toTournamentDTO(tournament)})
}

func (h *ContentHandler) DeleteTournament(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.log(r.Context(), "DeleteTournament", "error_kind", "bad_request").ErrorContext(r.Context(), "missing tournament id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	logger := h.log(r.Context(), "DeleteTournament", "tournament_id", id)
	if err := h.service.DeleteTournament(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "tournament delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "tournament deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *ContentHandler) ListMedia(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "ListMedia")
	items, err := h.service.ListMedia(r.Context())
	if err != nil {
		logger.ErrorContext(r.Context(), "media list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(items)).InfoContext(r.Context(), "media listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listMediaResponse{Media: toMediaDTOs(items)})
}

func (h *ContentHandler) AddMedia(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req mediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "AddMedia", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode media request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "AddMedia")
	item, err := h.service.AddMedia(r.Context(), req.toInput())
	if err != nil {
		logger.ErrorContext(r.Context(), "media creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("media_id", item.ID).InfoContext(r.Context(), "media added")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, mediaResponse{Media: toMediaDTO(item)})
}

func (h *ContentHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		h.log(r.Context(), "DeleteMedia", "error_kind", "bad_request").ErrorContext(r.Context(), "missing media id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidID)
		return
	}

	logger := h.log(r.Context(), "DeleteMedia", "media_id", id)
	if err := h.service.DeleteMedia(r.Context(), id); err != nil {
		logger.ErrorContext(r.Context(), "media delete failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "media deleted")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *ContentHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	language := strings.TrimSpace(r.URL.Query().Get("language"))
	logger := h.log(r.Context(), "ListNotifications", "language", language)
	notifications, err := h.service.ListNotifications(r.Context(), language)
	if err != nil {
		logger.ErrorContext(r.Context(), "notification list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(notifications)).InfoContext(r.Context(), "notifications listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listNotificationsResponse{Notifications: toNotificationDTOs(notifications)})
}

func (h *ContentHandler) SendNotification(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req notificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "SendNotification", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode notification request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.log(r.Context(), "SendNotification", "error_kind", "bad_request").ErrorContext(r.Context(), "invalid notification schedule", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	logger := h.log(r.Context(), "SendNotification", "audience", req.Audience)
	notification, err := h.service.SendNotification(r.Context(), input)
	if err != nil {
		logger.ErrorContext(r.Context(), "notification send failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("notification_id", notification.ID).InfoContext(r.Context(), "notification sent")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, notificationResponse{Notification: toNotificationDTO(notification)})
}

type newsRequest struct {
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	Language   string   `json:"language"`
	Slug       string   `json:"slug"`
	Author     string   `json:"author"`
	Categories []string `json:"categories"`
}

func (r newsRequest) toInput() application.NewsInput {
	return application.NewsInput{
		Title:      strings.TrimSpace(r.Title),
		Body:       r.Body,
		Language:   strings.TrimSpace(r.Language),
		Slug:       strings.TrimSpace(r.Slug),
		Author:     strings.TrimSpace(r.Author),
		Categories: r.Categories,
	}
}

type tournamentRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	Status          string `json:"status"`
	Location        string `json:"location"`
	RegistrationURL string `json:"registrationUrl"`
	Language        string `json:"language"`
	MaxParticipants *int   `json:"maxParticipants"`
}

func (r tournamentRequest) toInput() (application.TournamentInput, error) {
	start, err := parseDate(r.StartDate)
	if err != nil {
		return application.TournamentInput{}, err
	}
	end, err := parseDate(r.EndDate)
	if err != nil {
		return application.TournamentInput{}, err
	}
	return application.TournamentInput{
		Name:            strings.TrimSpace(r.Name),
		Description:     strings.TrimSpace(r.Description),
		StartDate:       start,
		EndDate:         end,
		Status:          application.TournamentStatus(strings.TrimSpace(r.Status)),
		Location:        strings.TrimSpace(r.Location),
		RegistrationURL: strings.TrimSpace(r.RegistrationURL),
		Language:        strings.TrimSpace(r.Language),
		MaxParticipants: r.MaxParticipants,
	}, nil
}

type mediaRequest struct {
	Type        string  `json:"type"`
	URL         string  `json:"url"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Thumbnail   *string `json:"thumbnail"`
}

func (r mediaRequest) toInput() application.MediaInput {
	return application.MediaInput{
		Type:        application.MediaType(strings.TrimSpace(r.Type)),
		URL:         strings.TrimSpace(r.URL),
		Title:       strings.TrimSpace(r.Title),
		Description: r.Description,
		Thumbnail:   r.Thumbnail,
	}
}

type notificationRequest struct {
	Title        string   `json:"title"`
	Message      string   `json:"message"`
	Audience     string   `json:"audience"`
	CustomGroups []string `json:"customGroups"`
	ScheduledFor *string  `json:"scheduledFor"`
	Language     string   `json:"language"`
}

func (r notificationRequest) toInput() (application.NotificationInput, error) {
	scheduledFor, err := parseTimePtr(r.ScheduledFor)
	if err != nil {
		return application.NotificationInput{}, err
	}
	return application.NotificationInput{
		Title:        strings.TrimSpace(r.Title),
		Message:      strings.TrimSpace(r.Message),
		Audience:     application.NotificationAudience(strings.TrimSpace(r.Audience)),
		CustomGroups: r.CustomGroups,
		ScheduledFor: scheduledFor,
		Language:     strings.TrimSpace(r.Language),
	}, nil
}

type newsResponse struct {
	News newsDTO `json:"news"`
}

type listNewsResponse struct {
	News []newsDTO `json:"news"`
}

type tournamentResponse struct {
	Tournament tournamentDTO `json:"tournament"`
}

type listTournamentsResponse struct {
	Tournaments []tournamentDTO `json:"tournaments"`
}

type mediaResponse struct {
	Media mediaDTO `json:"media"`
}

type listMediaResponse struct {
	Media []mediaDTO `json:"media"`
}

type notificationResponse struct {
	Notification notificationDTO `json:"notification"`
}

type listNotificationsResponse struct {
	Notifications []notificationDTO `json:"notifications"`
}

type newsDTO struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	BodyHTML    string   `json:"bodyHtml,omitempty"`
	PublishDate *string  `json:"publishDate,omitempty"`
	Published   bool     `json:"published"`
	Language    string   `json:"language"`
	Slug        string   `json:"slug"`
	Author      string   `json:"author"`
	Categories  []string `json:"categories,omitempty"`
}

type tournamentDTO struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Description         string `json:"description"`
	StartDate           string `json:"startDate"`
	EndDate             string `json:"endDate"`
	Status              string `json:"status"`
	Location            string `json:"location"`
	RegistrationURL     string `json:"registrationUrl,omitempty"`
	Language            string `json:"language"`
	MaxParticipants     *int   `json:"maxParticipants,omitempty"`
	CurrentParticipants *int   `json:"currentParticipants,omitempty"`
}

type mediaDTO struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	URL          string  `json:"url"`
	Title        string  `json:"title"`
	Description  *string `json:"description,omitempty"`
	Thumbnail    *string `json:"thumbnail,omitempty"`
	DateUploaded string  `json:"dateUploaded"`
}

type notificationDTO struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Message      string   `json:"message"`
	Audience     string   `json:"audience"`
	CustomGroups []string `json:"customGroups,omitempty"`
	ScheduledFor *string  `json:"scheduledFor,omitempty"`
	SentAt       string   `json:"sentAt"`
	Language     string   `json:"language"`
}

func toNewsDTO(item application.NewsItem) newsDTO {
	return newsDTO{
		ID:          item.ID,
		Title:       item.Title,
		Body:        item.Body,
		BodyHTML:    item.BodyHTML,
		PublishDate: formatTimePtr(item.PublishDate),
		Published:   item.Published,
		Language:    item.Language,
		Slug:        item.Slug,
		Author:      item.Author,
		Categories:  item.Categories,
	}
}

func toNewsDTOs(items []application.NewsItem) []newsDTO {
	if len(items) == 0 {
		return nil
	}
	out := make([]newsDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toNewsDTO(item))
	}
	return out
}

func toTournamentDTO(t application.Tournament) tournamentDTO {
	return tournamentDTO{
		ID:                  t.ID,
		Name:                t.Name,
		Description:         t.Description,
		StartDate:           formatDate(t.StartDate),
		EndDate:             formatDate(t.EndDate),
		Status:              string(t.Status),
		Location:            t.Location,
		RegistrationURL:     t.RegistrationURL,
		Language:            t.Language,
		MaxParticipants:     t.MaxParticipants,
		CurrentParticipants: t.CurrentParticipants,
	}
}

func toTournamentDTOs(tournaments []application.Tournament) []tournamentDTO {
	if len(tournaments) == 0 {
		return nil
	}
	out := make([]tournamentDTO, 0, len(tournaments))
	for _, t := range tournaments {
		out = append(out, toTournamentDTO(t))
	}
	return out
}

func toMediaDTO(item application.MediaItem) mediaDTO {
	return mediaDTO{
		ID:           item.ID,
		Type:         string(item.Type),
		URL:          item.URL,
		Title:        item.Title,
		Description:  item.Description,
		Thumbnail:    item.Thumbnail,
		DateUploaded: formatTime(item.DateUploaded),
	}
}

func toMediaDTOs(items []application.MediaItem) []mediaDTO {
	if len(items) == 0 {
		return nil
	}
	out := make([]mediaDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toMediaDTO(item))
	}
	return out
}

func toNotificationDTO(n application.Notification) notificationDTO {
	return notificationDTO{
		ID:           n.ID,
		Title:        n.Title,
		Message:      n.Message,
		Audience:     string(n.Audience),
		CustomGroups: n.CustomGroups,
		ScheduledFor: formatTimePtr(n.ScheduledFor),
		SentAt:       formatTime(n.SentAt),
		Language:     n.Language,
	}
}

func toNotificationDTOs(notifications []application.Notification) []notificationDTO {
	if len(notifications) == 0 {
		return nil
	}
	out := make([]notificationDTO, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, toNotificationDTO(n))
	}
	return out
}

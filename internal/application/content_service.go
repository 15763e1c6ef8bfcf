package application

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ContentRepository captures the persistence operations for the public-facing
// content registries: news, tournaments, the media gallery, and notifications.
type ContentRepository interface {
	CreateNews(ctx context.Context, item NewsItem) (NewsItem, error)
	UpdateNews(ctx context.Context, item NewsItem) (NewsItem, error)
	GetNews(ctx context.Context, id string) (NewsItem, error)
	ListNews(ctx context.Context) ([]NewsItem, error)
	DeleteNews(ctx context.Context, id string) error

	CreateTournament(ctx context.Context, t Tournament) (Tournament, error)
	UpdateTournament(ctx context.Context, t Tournament) (Tournament, error)
	GetTournament(ctx context.Context, id string) (Tournament, error)
	ListTournaments(ctx context.Context) ([]Tournament, error)
	DeleteTournament(ctx context.Context, id string) error

	CreateMedia(ctx context.Context, item MediaItem) (MediaItem, error)
	ListMedia(ctx context.Context) ([]MediaItem, error)
	DeleteMedia(ctx context.Context, id string) error

	CreateNotification(ctx context.Context, n Notification) (Notification, error)
	ListNotifications(ctx context.Context) ([]Notification, error)
}

// ContentService manages news articles, tournaments, the media gallery, and
// notifications. News bodies are authored in Markdown and rendered to HTML
// when an article is published.
type ContentService struct {
	content     ContentRepository
	idGenerator func() string
	now         func() time.Time
	markdown    goldmark.Markdown
	logger      *slog.Logger
}

// NewContentService constructs a content service with the provided dependencies.
func NewContentService(content ContentRepository, idGenerator func() string, now func() time.Time) *ContentService {
	return NewContentServiceWithLogger(content, idGenerator, now, nil)
}

// NewContentServiceWithLogger constructs a content service with a specified logger.
func NewContentServiceWithLogger(content ContentRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *ContentService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &ContentService{
		content:     content,
		idGenerator: idGenerator,
		now:         now,
		markdown:    goldmark.New(goldmark.WithExtensions(extension.GFM)),
		logger:      defaultLogger(logger),
	}
}

func (s *ContentService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ContentService", operation, attrs...)
}

// ListNews returns news items newest publish date first, with unpublished
// items ahead of published ones. When language is non-empty only items tagged
// with that language are returned.
func (s *ContentService) ListNews(ctx context.Context, language string) ([]NewsItem, error) {
	if s == nil || s.content == nil {
		return nil, fmt.Errorf("content repository not configured")
	}

	items, err := s.content.ListNews(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}

	out := make([]NewsItem, 0, len(items))
	for _, item := range items {
		if language != "" && item.Language != language {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].PublishDate, out[j].PublishDate
		switch {
		case a == nil && b == nil:
			return out[i].ID < out[j].ID
		case a == nil:
			return true
		case b == nil:
			return false
		case a.Equal(*b):
			return out[i].ID < out[j].ID
		default:
			return a.After(*b)
		}
	})
	return out, nil
}

// CreateNews validates input and stores a draft article. The body is kept as
// authored Markdown until the article is published.
func (s *ContentService) CreateNews(ctx context.Context, input NewsInput) (item NewsItem, err error) {
	if s == nil || s.content == nil {
		err = fmt.Errorf("content repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateNews", "language", input.Language)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create news item", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("news_id", item.ID).InfoContext(ctx, "news item created")
	}()

	vErr := validateNewsInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	item = NewsItem{
		ID:         s.idGenerator(),
		Title:      strings.TrimSpace(input.Title),
		Body:       input.Body,
		Language:   input.Language,
		Slug:       newsSlug(input.Slug, input.Title),
		Author:     strings.TrimSpace(input.Author),
		Categories: append([]string(nil), input.Categories...),
	}

	persisted, perr := s.content.CreateNews(ctx, item)
	if perr != nil {
		err = mapRepoError(perr)
		return
	}
	item = persisted
	return
}

// UpdateNews validates input and updates an article. Editing a published
// article re-renders its HTML body.
func (s *ContentService) UpdateNews(ctx context.Context, id string, input NewsInput) (item NewsItem, err error) {
	if s == nil || s.content == nil {
		err = fmt.Errorf("content repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateNews", "news_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update news item", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "news item updated")
	}()

	existing, gerr := s.content.GetNews(ctx, id)
	if gerr != nil {
		err = mapRepoError(gerr)
		return
	}

	vErr := validateNewsInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.Title = strings.TrimSpace(input.Title)
	updated.Body = input.Body
	updated.Language = input.Language
	updated.Slug = newsSlug(input.Slug, input.Title)
	updated.Author = strings.TrimSpace(input.Author)
	updated.Categories = append([]string(nil), input.Categories...)
	if updated.Published {
		html, rerr := s.renderMarkdown(updated.Body)
		if rerr != nil {
			err = fmt.Errorf("render news body: %w", rerr)
			return
		}
		updated.BodyHTML = html
	}

	persisted, perr := s.content.UpdateNews(ctx, updated)
	if perr != nil {
		err = mapRepoError(perr)
		return
	}
	item = persisted
	return
}

// PublishNews renders the article's Markdown body to HTML, stamps the publish
// date, and marks it published. Publishing an already published article only
// refreshes the rendered body.
func (s *ContentService) PublishNews(ctx context.Context, id string) (item NewsItem, err error) {
	if s == nil || s.content == nil {
		err = fmt.Errorf("content repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "PublishNews", "news_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to publish news item", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "news item published")
	}()

	existing, gerr := s.content.GetNews(ctx, id)
	if gerr != nil {
		err = mapRepoError(gerr)
		return
	}

	html, rerr := s.renderMarkdown(existing.Body)
	if rerr != nil {
		err = fmt.Errorf("render news body: %w", rerr)
		return
	}

	existing.BodyHTML = html
	if !existing.Published {
		publishedAt := s.now()
		existing.PublishDate = &publishedAt
		existing.Published = true
	}

	persisted, perr := s.content.UpdateNews(ctx, existing)
	if perr != nil {
		err = mapRepoError(perr)
		return
	}
	item = persisted
	return
}

// DeleteNews removes an article.
func (s *ContentService) DeleteNews(ctx context.Context, id string) error {
	if s == nil || s.content == nil {
		return fmt.Errorf("content repository not configured")
	}
	if err := s.content.DeleteNews(ctx, id); err != nil {
		return mapRepoError(err)
	}
	return nil
}

// ListTournaments returns tournaments ordered by start date, soonest first.
// When language is non-empty only tournaments tagged with that language are
// returned.
func (s *ContentService) ListTournaments(ctx context.Context, language string) ([]Tournament, error) {
	if s == nil || s.content == nil {
		return nil, fmt.Errorf("content repository not configured")
	}

	tournaments, err := s.content.ListTournaments(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}

	out := make([]Tournament, 0, len(tournaments))
	for _, t := range tournaments {
		if language != "" && t.Language != language {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out, nil
}

// CreateTournament validates input and adds a tournament.
func (s *ContentService) CreateTournament(ctx context.Context, input TournamentInput) (t Tournament, err error) {
	if s == nil || s.content == nil {
		err = fmt.Errorf("content repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateTournament")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create tournament", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("tournament_id", t.ID).InfoContext(ctx, "tournament created")
	}()

	vErr := validateTournamentInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	status := input.Status
	if status == "" {
		status = TournamentUpcoming
	}

	t = Tournament{
		ID:              s.idGenerator(),
		Name:            strings.TrimSpace(input.Name),
		Description:     strings.TrimSpace(input.Description),
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		Status:          status,
		Location:        strings.TrimSpace(input.Location),
		RegistrationURL: strings.TrimSpace(input.RegistrationURL),
		Language:        input.Language,
		MaxParticipants: cloneInt(input.MaxParticipants),
	}

	persisted, perr := s.content.CreateTournament(ctx, t)
	if perr != nil {
		err = mapRepoError(perr)
		return
	}
	t = persisted
	return
}

// UpdateTournament validates input and updates an existing tournament.
func (s *ContentService) UpdateTournament(ctx context.Context, id string, input TournamentInput) (t Tournament, err error) {
	if s == nil || s.content == nil {
		err = fmt.Errorf("content repository not configured")
		return
	}

	existing, gerr := s.content.GetTournament(ctx, id)
	if gerr != nil {
		err = mapRepoError(gerr)
		return
	}

	vErr := validateTournamentInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	updated := existing
	updated.Name = strings.TrimSpace(input.Name)
	updated.Description = strings.TrimSpace(input.Description)
	updated.StartDate = input.StartDate
	updated.EndDate = input.EndDate
	if input.Status != "" {
		updated.Status = input.Status
	}
	updated.Location = strings.TrimSpace(input.Location)
	updated.RegistrationURL = strings.TrimSpace(input.RegistrationURL)
	updated.Language = input.Language
	updated.MaxParticipants = cloneInt(input.MaxParticipants)

	persisted, perr := s.content.UpdateTournament(ctx, updated)
	if perr != nil {
		err = mapRepoError(perr)
		return
	}
	t = persisted
	return
}

// DeleteTournament removes a tournament.
func (s *ContentService) DeleteTournament(ctx context.Context, id string) error {
	if s == nil || s.content == nil {
		return fmt.Errorf("content repository not configured")
	}
	if err := s.content.DeleteTournament(ctx, id); err != nil {
		return mapRepoError(err)
	}
	return nil
}

// ListMedia returns gallery entries newest upload first.
func (s *ContentService) ListMedia(ctx context.Context) ([]MediaItem, error) {
	if s == nil || s.content == nil {
		return nil, fmt.Errorf("content repository not configured")
	}

	items, err := s.content.ListMedia(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}

	out := make([]MediaItem, len(items))
	copy(out, items)
	sort.Slice(out, func(i, j int) bool {
		if out[i].DateUploaded.Equal(out[j].DateUploaded) {
			return out[i].ID < out[j].ID
		}
		return out[i].DateUploaded.After(out[j].DateUploaded)
	})
	return out, nil
}

// AddMedia validates input and records a gallery entry.
func (s *ContentService) AddMedia(ctx context.Context, input MediaInput) (item MediaItem, err error) {
	if s == nil || s.content == nil {
		err = fmt.Errorf("content repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "AddMedia", "type", string(input.Type))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to add media item", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("media_id", item.ID).InfoContext(ctx, "media item added")
	}()

	vErr := &ValidationError{}
	if input.Type != MediaImage && input.Type != MediaVideo {
		vErr.add("type", "media type is invalid")
	}
	if strings.TrimSpace(input.URL) == "" {
		vErr.add("url", "url is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "title is required")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	item = MediaItem{
		ID:           s.idGenerator(),
		Type:         input.Type,
		URL:          strings.TrimSpace(input.URL),
		Title:        strings.TrimSpace(input.Title),
		Description:  cloneString(input.Description),
		Thumbnail:    cloneString(input.Thumbnail),
		DateUploaded: s.now(),
	}

	persisted, perr := s.content.CreateMedia(ctx, item)
	if perr != nil {
		err = mapRepoError(perr)
		return
	}
	item = persisted
	return
}

// DeleteMedia removes a gallery entry.
func (s *ContentService) DeleteMedia(ctx context.Context, id string) error {
	if s == nil || s.content == nil {
		return fmt.Errorf("content repository not configured")
	}
	if err := s.content.DeleteMedia(ctx, id); err != nil {
		return mapRepoError(err)
	}
	return nil
}

// ListNotifications returns sent notifications newest first. When language is
// non-empty only notifications tagged with that language are returned.
func (s *ContentService) ListNotifications(ctx context.Context, language string) ([]Notification, error) {
	if s == nil || s.content == nil {
		return nil, fmt.Errorf("content repository not configured")
	}

	notifications, err := s.content.ListNotifications(ctx)
	if err != nil {
		return nil, mapRepoError(err)
	}

	out := make([]Notification, 0, len(notifications))
	for _, n := range notifications {
		if language != "" && n.Language != language {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SentAt.Equal(out[j].SentAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].SentAt.After(out[j].SentAt)
	})
	return out, nil
}

// SendNotification validates input and records a notification. Delivery is
// out of scope; the registry tracks what was announced and to whom.
func (s *ContentService) SendNotification(ctx context.Context, input NotificationInput) (n Notification, err error) {
	if s == nil || s.content == nil {
		err = fmt.Errorf("content repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "SendNotification", "audience", string(input.Audience))
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to send notification", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("notification_id", n.ID).InfoContext(ctx, "notification recorded")
	}()

	vErr := &ValidationError{}
	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "title is required")
	}
	if strings.TrimSpace(input.Message) == "" {
		vErr.add("message", "message is required")
	}
	switch input.Audience {
	case AudienceAll, AudienceMembers, AudienceStaff:
	case AudienceCustom:
		if len(input.CustomGroups) == 0 {
			vErr.add("customGroups", "custom audience requires at least one group")
		}
	default:
		vErr.add("audience", "audience is invalid")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	n = Notification{
		ID:           s.idGenerator(),
		Title:        strings.TrimSpace(input.Title),
		Message:      strings.TrimSpace(input.Message),
		Audience:     input.Audience,
		CustomGroups: append([]string(nil), input.CustomGroups...),
		ScheduledFor: input.ScheduledFor,
		SentAt:       s.now(),
		Language:     input.Language,
	}

	persisted, perr := s.content.CreateNotification(ctx, n)
	if perr != nil {
		err = mapRepoError(perr)
		return
	}
	n = persisted
	return
}

func (s *ContentService) renderMarkdown(body string) (string, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(body), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func validateNewsInput(input NewsInput) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.Title) == "" {
		vErr.add("title", "title is required")
	}
	if strings.TrimSpace(input.Body) == "" {
		vErr.add("body", "body is required")
	}
	if strings.TrimSpace(input.Language) == "" {
		vErr.add("language", "language is required")
	}
	return vErr
}

func validateTournamentInput(input TournamentInput) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "name is required")
	}
	if input.Status != "" {
		switch input.Status {
		case TournamentUpcoming, TournamentOngoing, TournamentCompleted, TournamentCancelled:
		default:
			vErr.add("status", "status is invalid")
		}
	}
	if input.MaxParticipants != nil && *input.MaxParticipants <= 0 {
		vErr.add("maxParticipants", "max participants must be positive")
	}
	vErr.merge(validateTournamentSchedule(input))
	return vErr
}

func validateTournamentSchedule(input TournamentInput) *ValidationError {
	vErr := &ValidationError{}
	if input.StartDate.IsZero() {
		vErr.add("startDate", "start date is required")
	}
	if input.EndDate.IsZero() {
		vErr.add("endDate", "end date is required")
	} else if !input.StartDate.IsZero() && input.EndDate.Before(input.StartDate) {
		vErr.add("endDate", "end date must not be before start date")
	}
	return vErr
}

// newsSlug lowercases and hyphenates the explicit slug or, when absent, the
// title.
func newsSlug(slug, title string) string {
	source := strings.TrimSpace(slug)
	if source == "" {
		source = strings.TrimSpace(title)
	}
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(source) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

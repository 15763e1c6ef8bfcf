package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/gym-admin/internal/application"
	"github.com/example/gym-admin/internal/persistence"
)

// CreateNews inserts an article.
func (s *Store) CreateNews(ctx context.Context, item application.NewsItem) (application.NewsItem, error) {
	if item.ID == "" {
		return application.NewsItem{}, fmt.Errorf("%w: news id is empty", persistence.ErrConstraintViolation)
	}
	categories, err := encodeJSON(item.Categories)
	if err != nil {
		return application.NewsItem{}, err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO news_items (id, title, body, body_html, publish_date, published, language, slug, author, categories)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Title, item.Body, item.BodyHTML, encodeTimePtr(item.PublishDate),
		item.Published, item.Language, item.Slug, item.Author, categories,
	)
	if err != nil {
		return application.NewsItem{}, mapSQLError(err)
	}
	return item, nil
}

// UpdateNews replaces an article.
func (s *Store) UpdateNews(ctx context.Context, item application.NewsItem) (application.NewsItem, error) {
	categories, err := encodeJSON(item.Categories)
	if err != nil {
		return application.NewsItem{}, err
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE news_items
		SET title = ?, body = ?, body_html = ?, publish_date = ?, published = ?, language = ?, slug = ?, author = ?, categories = ?
		WHERE id = ?`,
		item.Title, item.Body, item.BodyHTML, encodeTimePtr(item.PublishDate),
		item.Published, item.Language, item.Slug, item.Author, categories, item.ID,
	)
	if err != nil {
		return application.NewsItem{}, mapSQLError(err)
	}
	if err := requireRow(result, "news", item.ID); err != nil {
		return application.NewsItem{}, err
	}
	return item, nil
}

// GetNews reads one article.
func (s *Store) GetNews(ctx context.Context, id string) (application.NewsItem, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, body, body_html, publish_date, published, language, slug, author, categories
		FROM news_items WHERE id = ?`, id)
	return scanNews(row)
}

// ListNews reads all articles.
func (s *Store) ListNews(ctx context.Context) ([]application.NewsItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, body, body_html, publish_date, published, language, slug, author, categories
		FROM news_items`)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	out := make([]application.NewsItem, 0)
	for rows.Next() {
		item, err := scanNews(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// DeleteNews removes an article.
func (s *Store) DeleteNews(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM news_items WHERE id = ?`, id)
	if err != nil {
		return mapSQLError(err)
	}
	return requireRow(result, "news", id)
}

// CreateTournament inserts a tournament.
func (s *Store) CreateTournament(ctx context.Context, t application.Tournament) (application.Tournament, error) {
	if t.ID == "" {
		return application.Tournament{}, fmt.Errorf("%w: tournament id is empty", persistence.ErrConstraintViolation)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tournaments
			(id, name, description, start_date, end_date, status, location, registration_url, language, max_participants, current_participants)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Description, encodeTime(t.StartDate), encodeTime(t.EndDate), string(t.Status),
		t.Location, t.RegistrationURL, t.Language, nullInt(t.MaxParticipants), nullInt(t.CurrentParticipants),
	)
	if err != nil {
		return application.Tournament{}, mapSQLError(err)
	}
	return t, nil
}

// UpdateTournament replaces a tournament.
func (s *Store) UpdateTournament(ctx context.Context, t application.Tournament) (application.Tournament, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE tournaments
		SET name = ?, description = ?, start_date = ?, end_date = ?, status = ?, location = ?,
		    registration_url = ?, language = ?, max_participants = ?, current_participants = ?
		WHERE id = ?`,
		t.Name, t.Description, encodeTime(t.StartDate), encodeTime(t.EndDate), string(t.Status),
		t.Location, t.RegistrationURL, t.Language, nullInt(t.MaxParticipants), nullInt(t.CurrentParticipants), t.ID,
	)
	if err != nil {
		return application.Tournament{}, mapSQLError(err)
	}
	if err := requireRow(result, "tournament", t.ID); err != nil {
		return application.Tournament{}, err
	}
	return t, nil
}

// GetTournament reads one tournament.
func (s *Store) GetTournament(ctx context.Context, id string) (application.Tournament, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, start_date, end_date, status, location, registration_url, language, max_participants, current_participants
		FROM tournaments WHERE id = ?`, id)
	return scanTournament(row)
}

// ListTournaments reads all tournaments.
func (s *Store) ListTournaments(ctx context.Context) ([]application.Tournament, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, start_date, end_date, status, location, registration_url, language, max_participants, current_participants
		FROM tournaments`)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	out := make([]application.Tournament, 0)
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// DeleteTournament removes a tournament.
func (s *Store) DeleteTournament(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = ?`, id)
	if err != nil {
		return mapSQLError(err)
	}
	return requireRow(result, "tournament", id)
}

// CreateMedia inserts a gallery entry.
func (s *Store) CreateMedia(ctx context.Context, item application.MediaItem) (application.MediaItem, error) {
	if item.ID == "" {
		return application.MediaItem{}, fmt.Errorf("%w: media id is empty", persistence.ErrConstraintViolation)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO media_items (id, type, url, title, description, thumbnail, date_uploaded)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, string(item.Type), item.URL, item.Title, nullString(item.Description),
		nullString(item.Thumbnail), encodeTime(item.DateUploaded),
	)
	if err != nil {
		return application.MediaItem{}, mapSQLError(err)
	}
	return item, nil
}

// ListMedia reads all gallery entries.
func (s *Store) ListMedia(ctx context.Context) ([]application.MediaItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, url, title, description, thumbnail, date_uploaded FROM media_items`)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	out := make([]application.MediaItem, 0)
	for rows.Next() {
		var item application.MediaItem
		var mediaType, uploaded string
		var description, thumbnail sql.NullString
		if err := rows.Scan(&item.ID, &mediaType, &item.URL, &item.Title, &description, &thumbnail, &uploaded); err != nil {
			return nil, mapSQLError(err)
		}
		item.Type = application.MediaType(mediaType)
		item.Description = stringPtr(description)
		item.Thumbnail = stringPtr(thumbnail)
		if item.DateUploaded, err = decodeTime(uploaded); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// DeleteMedia removes a gallery entry.
func (s *Store) DeleteMedia(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM media_items WHERE id = ?`, id)
	if err != nil {
		return mapSQLError(err)
	}
	return requireRow(result, "media", id)
}

// CreateNotification inserts a notification.
func (s *Store) CreateNotification(ctx context.Context, n application.Notification) (application.Notification, error) {
	if n.ID == "" {
		return application.Notification{}, fmt.Errorf("%w: notification id is empty", persistence.ErrConstraintViolation)
	}
	groups, err := encodeJSON(n.CustomGroups)
	if err != nil {
		return application.Notification{}, err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, title, message, audience, custom_groups, scheduled_for, sent_at, language)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.Title, n.Message, string(n.Audience), groups, encodeTimePtr(n.ScheduledFor), encodeTime(n.SentAt), n.Language,
	)
	if err != nil {
		return application.Notification{}, mapSQLError(err)
	}
	return n, nil
}

// ListNotifications reads all notifications.
func (s *Store) ListNotifications(ctx context.Context) ([]application.Notification, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, message, audience, custom_groups, scheduled_for, sent_at, language FROM notifications`)
	if err != nil {
		return nil, mapSQLError(err)
	}
	defer rows.Close()

	out := make([]application.Notification, 0)
	for rows.Next() {
		var n application.Notification
		var audience, groups, sentAt string
		var scheduled sql.NullString
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &audience, &groups, &scheduled, &sentAt, &n.Language); err != nil {
			return nil, mapSQLError(err)
		}
		n.Audience = application.NotificationAudience(audience)
		if err := decodeJSON(groups, &n.CustomGroups); err != nil {
			return nil, err
		}
		if n.ScheduledFor, err = decodeTimePtr(scheduled); err != nil {
			return nil, err
		}
		if n.SentAt, err = decodeTime(sentAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func scanNews(row rowScanner) (application.NewsItem, error) {
	var item application.NewsItem
	var publishDate sql.NullString
	var categories string
	err := row.Scan(&item.ID, &item.Title, &item.Body, &item.BodyHTML, &publishDate,
		&item.Published, &item.Language, &item.Slug, &item.Author, &categories)
	if err != nil {
		return application.NewsItem{}, mapSQLError(err)
	}
	if item.PublishDate, err = decodeTimePtr(publishDate); err != nil {
		return application.NewsItem{}, err
	}
	if err := decodeJSON(categories, &item.Categories); err != nil {
		return application.NewsItem{}, err
	}
	return item, nil
}

func scanTournament(row rowScanner) (application.Tournament, error) {
	var t application.Tournament
	var start, end, status string
	var maxP, curP sql.NullInt64
	err := row.Scan(&t.ID, &t.Name, &t.Description, &start, &end, &status,
		&t.Location, &t.RegistrationURL, &t.Language, &maxP, &curP)
	if err != nil {
		return application.Tournament{}, mapSQLError(err)
	}
	if t.StartDate, err = decodeTime(start); err != nil {
		return application.Tournament{}, err
	}
	if t.EndDate, err = decodeTime(end); err != nil {
		return application.Tournament{}, err
	}
	t.Status = application.TournamentStatus(status)
	t.MaxParticipants = intPtr(maxP)
	t.CurrentParticipants = intPtr(curP)
	return t, nil
}

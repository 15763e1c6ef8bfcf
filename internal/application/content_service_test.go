package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/example/gym-admin/internal/persistence"
)

type contentRepoStub struct {
	news          map[string]NewsItem
	tournaments   map[string]Tournament
	media         map[string]MediaItem
	notifications []Notification
}

func newContentRepoStub() *contentRepoStub {
	return &contentRepoStub{
		news:        make(map[string]NewsItem),
		tournaments: make(map[string]Tournament),
		media:       make(map[string]MediaItem),
	}
}

func (r *contentRepoStub) CreateNews(ctx context.Context, item NewsItem) (NewsItem, error) {
	r.news[item.ID] = item
	return item, nil
}

func (r *contentRepoStub) UpdateNews(ctx context.Context, item NewsItem) (NewsItem, error) {
	if _, ok := r.news[item.ID]; !ok {
		return NewsItem{}, persistence.ErrNotFound
	}
	r.news[item.ID] = item
	return item, nil
}

func (r *contentRepoStub) GetNews(ctx context.Context, id string) (NewsItem, error) {
	item, ok := r.news[id]
	if !ok {
		return NewsItem{}, persistence.ErrNotFound
	}
	return item, nil
}

func (r *contentRepoStub) ListNews(ctx context.Context) ([]NewsItem, error) {
	out := make([]NewsItem, 0, len(r.news))
	for _, item := range r.news {
		out = append(out, item)
	}
	return out, nil
}

func (r *contentRepoStub) DeleteNews(ctx context.Context, id string) error {
	if _, ok := r.news[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(r.news, id)
	return nil
}

func (r *contentRepoStub) CreateTournament(ctx context.Context, t Tournament) (Tournament, error) {
	r.tournaments[t.ID] = t
	return t, nil
}

func (r *contentRepoStub) UpdateTournament(ctx context.Context, t Tournament) (Tournament, error) {
	if _, ok := r.tournaments[t.ID]; !ok {
		return Tournament{}, persistence.ErrNotFound
	}
	r.tournaments[t.ID] = t
	return t, nil
}

func (r *contentRepoStub) GetTournament(ctx context.Context, id string) (Tournament, error) {
	t, ok := r.tournaments[id]
	if !ok {
		return Tournament{}, persistence.ErrNotFound
	}
	return t, nil
}

func (r *contentRepoStub) ListTournaments(ctx context.Context) ([]Tournament, error) {
	out := make([]Tournament, 0, len(r.tournaments))
	for _, t := range r.tournaments {
		out = append(out, t)
	}
	return out, nil
}

func (r *contentRepoStub) DeleteTournament(ctx context.Context, id string) error {
	if _, ok := r.tournaments[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(r.tournaments, id)
	return nil
}

func (r *contentRepoStub) CreateMedia(ctx context.Context, item MediaItem) (MediaItem, error) {
	r.media[item.ID] = item
	return item, nil
}

func (r *contentRepoStub) ListMedia(ctx context.Context) ([]MediaItem, error) {
	out := make([]MediaItem, 0, len(r.media))
	for _, item := range r.media {
		out = append(out, item)
	}
	return out, nil
}

func (r *contentRepoStub) DeleteMedia(ctx context.Context, id string) error {
	if _, ok := r.media[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(r.media, id)
	return nil
}

func (r *contentRepoStub) CreateNotification(ctx context.Context, n Notification) (Notification, error) {
	r.notifications = append(r.notifications, n)
	return n, nil
}

func (r *contentRepoStub) ListNotifications(ctx context.Context) ([]Notification, error) {
	out := make([]Notification, len(r.notifications))
	copy(out, r.notifications)
	return out, nil
}

func newContentService(repo *contentRepoStub, now time.Time) *ContentService {
	return NewContentService(repo, func() string { return "content-1" }, func() time.Time { return now })
}

func TestContentService_PublishNews(t *testing.T) {
	now := time.Date(2025, time.April, 20, 12, 0, 0, 0, time.UTC)

	t.Run("renders the Markdown body and stamps the publish date", func(t *testing.T) {
		repo := newContentRepoStub()
		repo.news["n-1"] = NewsItem{
			ID:       "n-1",
			Title:    "Summer Opening",
			Body:     "# Welcome\n\nThe **outdoor** courts are open.",
			Language: "en",
			Slug:     "summer-opening",
		}
		svc := newContentService(repo, now)

		item, err := svc.PublishNews(context.Background(), "n-1")
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		if !item.Published {
			t.Fatal("expected item to be published")
		}
		if item.PublishDate == nil || !item.PublishDate.Equal(now) {
			t.Fatalf("expected publish date %v, got %v", now, item.PublishDate)
		}
		if !strings.Contains(item.BodyHTML, "<h1") || !strings.Contains(item.BodyHTML, "<strong>outdoor</strong>") {
			t.Fatalf("expected rendered HTML, got %q", item.BodyHTML)
		}
	})

	t.Run("republishing keeps the original publish date", func(t *testing.T) {
		first := time.Date(2025, time.April, 1, 8, 0, 0, 0, time.UTC)
		repo := newContentRepoStub()
		repo.news["n-1"] = NewsItem{
			ID:          "n-1",
			Title:       "Summer Opening",
			Body:        "Updated body.",
			Published:   true,
			PublishDate: &first,
			Language:    "en",
		}
		svc := newContentService(repo, now)

		item, err := svc.PublishNews(context.Background(), "n-1")
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if item.PublishDate == nil || !item.PublishDate.Equal(first) {
			t.Fatalf("expected publish date to stay %v, got %v", first, item.PublishDate)
		}
	})

	t.Run("propagates ErrNotFound", func(t *testing.T) {
		svc := newContentService(newContentRepoStub(), now)
		if _, err := svc.PublishNews(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestContentService_CreateNews(t *testing.T) {
	now := time.Date(2025, time.April, 20, 12, 0, 0, 0, time.UTC)

	t.Run("drafts stay unrendered", func(t *testing.T) {
		repo := newContentRepoStub()
		svc := newContentService(repo, now)

		item, err := svc.CreateNews(context.Background(), NewsInput{
			Title:    "New Trainers",
			Body:     "# Heading",
			Language: "en",
			Author:   "Admin",
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if item.Published || item.BodyHTML != "" || item.PublishDate != nil {
			t.Fatalf("expected unpublished draft, got %+v", item)
		}
	})

	t.Run("derives a slug from the title", func(t *testing.T) {
		svc := newContentService(newContentRepoStub(), now)

		item, err := svc.CreateNews(context.Background(), NewsInput{
			Title:    "Grand Re-Opening: Summer 2025!",
			Body:     "body",
			Language: "en",
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if item.Slug != "grand-re-opening-summer-2025" {
			t.Fatalf("unexpected slug %q", item.Slug)
		}
	})

	t.Run("validates required attributes", func(t *testing.T) {
		svc := newContentService(newContentRepoStub(), now)

		_, err := svc.CreateNews(context.Background(), NewsInput{})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"title", "body", "language"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected %s validation error, got %v", field, vErr.FieldErrors)
			}
		}
	})
}

func TestContentService_CreateTournament(t *testing.T) {
	now := time.Date(2025, time.April, 20, 12, 0, 0, 0, time.UTC)

	t.Run("defaults to upcoming status", func(t *testing.T) {
		svc := newContentService(newContentRepoStub(), now)

		tournament, err := svc.CreateTournament(context.Background(), TournamentInput{
			Name:      "Summer Open",
			StartDate: date(2025, time.June, 1),
			EndDate:   date(2025, time.June, 3),
			Location:  "Center Court",
			Language:  "en",
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if tournament.Status != TournamentUpcoming {
			t.Fatalf("expected upcoming status, got %q", tournament.Status)
		}
	})

	t.Run("rejects an end date before the start date", func(t *testing.T) {
		svc := newContentService(newContentRepoStub(), now)

		_, err := svc.CreateTournament(context.Background(), TournamentInput{
			Name:      "Summer Open",
			StartDate: date(2025, time.June, 3),
			EndDate:   date(2025, time.June, 1),
			Location:  "Center Court",
			Language:  "en",
		})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("reports detail and schedule problems together", func(t *testing.T) {
		svc := newContentService(newContentRepoStub(), now)

		_, err := svc.CreateTournament(context.Background(), TournamentInput{
			StartDate: date(2025, time.June, 3),
			EndDate:   date(2025, time.June, 1),
			Location:  "Center Court",
			Language:  "en",
		})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		for _, field := range []string{"name", "endDate"} {
			if _, ok := vErr.FieldErrors[field]; !ok {
				t.Fatalf("expected %q field error, got %v", field, vErr.FieldErrors)
			}
		}
	})
}

func TestContentService_SendNotification(t *testing.T) {
	now := time.Date(2025, time.April, 20, 12, 0, 0, 0, time.UTC)

	t.Run("stamps the send time", func(t *testing.T) {
		repo := newContentRepoStub()
		svc := newContentService(repo, now)

		n, err := svc.SendNotification(context.Background(), NotificationInput{
			Title:    "Holiday Hours",
			Message:  "We close early on Friday.",
			Audience: AudienceAll,
			Language: "en",
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if !n.SentAt.Equal(now) {
			t.Fatalf("expected sent at %v, got %v", now, n.SentAt)
		}
	})

	t.Run("custom audience requires groups", func(t *testing.T) {
		svc := newContentService(newContentRepoStub(), now)

		_, err := svc.SendNotification(context.Background(), NotificationInput{
			Title:    "Holiday Hours",
			Message:  "We close early on Friday.",
			Audience: AudienceCustom,
			Language: "en",
		})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("rejects unknown audiences", func(t *testing.T) {
		svc := newContentService(newContentRepoStub(), now)

		_, err := svc.SendNotification(context.Background(), NotificationInput{
			Title:    "Holiday Hours",
			Message:  "Closing early.",
			Audience: NotificationAudience("everyone"),
			Language: "en",
		})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestContentService_AddMedia(t *testing.T) {
	now := time.Date(2025, time.April, 20, 12, 0, 0, 0, time.UTC)

	t.Run("accepts image and video types only", func(t *testing.T) {
		svc := newContentService(newContentRepoStub(), now)

		_, err := svc.AddMedia(context.Background(), MediaInput{
			Type:  MediaType("audio"),
			URL:   "https://cdn.example.com/a.mp3",
			Title: "Podcast",
		})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("stamps the upload time", func(t *testing.T) {
		svc := newContentService(newContentRepoStub(), now)

		item, err := svc.AddMedia(context.Background(), MediaInput{
			Type:  MediaImage,
			URL:   "https://cdn.example.com/court.jpg",
			Title: "New Court",
		})
		if err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if !item.DateUploaded.Equal(now) {
			t.Fatalf("expected upload time %v, got %v", now, item.DateUploaded)
		}
	})
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/eduverse-backend/internal/model"
	"github.com/stemsi/eduverse-backend/internal/youtube"
)

// Video search errors.
var (
	ErrVideoSearchDisabled = errors.New("video search is not configured")
	ErrVideoSearchFailed   = errors.New("video search failed")
)

const (
	defaultVideoResults = 5
	courseVideoResults  = 8
	trendingResults     = 6
	trendingWindow      = 30 * 24 * time.Hour
	trendingQuery       = "programming tutorial computer science education"
	defaultVideoSubject = "General"
	trendingCategory    = "trending"
	placeholderThumbFmt = "https://via.placeholder.com/320x180/cccccc/666666?text=%s"
)

// VideoService searches educational videos and degrades to a placeholder
// result when the API quota is exhausted.
type VideoService struct {
	searcher youtube.Searcher
	log      zerolog.Logger
	now      func() time.Time
}

// NewVideoService creates a new VideoService. A nil searcher disables video search.
func NewVideoService(searcher youtube.Searcher, log zerolog.Logger) *VideoService {
	return &VideoService{
		searcher: searcher,
		log:      log.With().Str("component", "video_service").Logger(),
		now:      time.Now,
	}
}

// Search runs a free-text educational search.
func (s *VideoService) Search(ctx context.Context, req model.VideoSearchRequest) (*model.VideoResult, error) {
	query := strings.TrimSpace(req.Query)
	n := req.MaxResults
	if n <= 0 {
		n = defaultVideoResults
	}

	videos, err := s.search(ctx, youtube.Query{Q: query + " tutorial course education", MaxResults: int64(n)})
	if err != nil {
		if youtube.IsQuotaExceeded(err) {
			return &model.VideoResult{
				Query:         query,
				Videos:        []model.Video{s.placeholder("fallback-1", "Educational Video - Search Temporarily Unavailable", "YouTube API quota exceeded. Please try again later or contact support.", "Video+Unavailable")},
				TotalResults:  1,
				QuotaExceeded: true,
				Message:       "YouTube API quota exceeded. Videos will be available again tomorrow.",
			}, nil
		}
		return nil, err
	}

	return &model.VideoResult{Query: query, Videos: videos, TotalResults: len(videos)}, nil
}

// CourseVideos finds videos for a course, optionally narrowed by subject.
func (s *VideoService) CourseVideos(ctx context.Context, req model.CourseVideosRequest) (*model.VideoResult, error) {
	course := strings.TrimSpace(req.CourseName)
	subject := strings.TrimSpace(req.Subject)

	q := course + " tutorial course education"
	if subject != "" {
		q = course + " " + subject + " tutorial course"
	} else {
		subject = defaultVideoSubject
	}

	videos, err := s.search(ctx, youtube.Query{Q: q, MaxResults: courseVideoResults})
	if err != nil {
		if youtube.IsQuotaExceeded(err) {
			return &model.VideoResult{
				Course:        course,
				Subject:       subject,
				Videos:        []model.Video{s.placeholder("course-fallback-1", "Course Videos - Temporarily Unavailable", "YouTube API quota exceeded. Course videos will be available again tomorrow.", "Course+Videos+Unavailable")},
				TotalResults:  1,
				QuotaExceeded: true,
				Message:       "YouTube API quota exceeded. Course videos will be available again tomorrow.",
			}, nil
		}
		return nil, err
	}

	for i := range videos {
		videos[i].Course = course
		videos[i].Subject = subject
	}
	return &model.VideoResult{Course: course, Subject: subject, Videos: videos, TotalResults: len(videos)}, nil
}

// Trending returns the most viewed educational videos of the last 30 days.
// A category other than "education" is added to the search terms.
func (s *VideoService) Trending(ctx context.Context, req model.TrendingVideosRequest) (*model.VideoResult, error) {
	q := trendingQuery
	if c := strings.TrimSpace(req.Category); c != "" && !strings.EqualFold(c, "education") {
		q = c + " " + q
	}

	videos, err := s.search(ctx, youtube.Query{
		Q:              q,
		MaxResults:     trendingResults,
		Order:          youtube.OrderViewCount,
		PublishedAfter: s.now().Add(-trendingWindow),
	})
	if err != nil {
		if youtube.IsQuotaExceeded(err) {
			v := s.placeholder("trending-fallback-1", "Trending Educational Content - Temporarily Unavailable", "YouTube API quota exceeded. Trending videos will be available again tomorrow.", "Trending+Unavailable")
			v.Category = trendingCategory
			return &model.VideoResult{
				Category:      trendingCategory,
				Videos:        []model.Video{v},
				TotalResults:  1,
				QuotaExceeded: true,
				Message:       "YouTube API quota exceeded. Trending videos will be available again tomorrow.",
			}, nil
		}
		return nil, err
	}

	for i := range videos {
		videos[i].Category = trendingCategory
	}
	return &model.VideoResult{Category: trendingCategory, Videos: videos, TotalResults: len(videos)}, nil
}

// search guards the disabled case and keeps quota errors recognizable for the callers.
func (s *VideoService) search(ctx context.Context, q youtube.Query) ([]model.Video, error) {
	if s.searcher == nil {
		return nil, ErrVideoSearchDisabled
	}

	videos, err := s.searcher.Search(ctx, q)
	if err != nil {
		if youtube.IsQuotaExceeded(err) {
			s.log.Warn().Str("query", q.Q).Msg("YouTube quota exceeded, serving placeholder")
			return nil, err
		}
		s.log.Error().Err(err).Str("query", q.Q).Msg("YouTube search failed")
		return nil, fmt.Errorf("%w: %w", ErrVideoSearchFailed, err)
	}
	if videos == nil {
		videos = []model.Video{}
	}
	return videos, nil
}

func (s *VideoService) placeholder(id, title, description, thumbText string) model.Video {
	return model.Video{
		VideoID:      id,
		Title:        title,
		Description:  description,
		Thumbnail:    fmt.Sprintf(placeholderThumbFmt, thumbText),
		ChannelTitle: "System",
		PublishedAt:  s.now().UTC().Format(time.RFC3339),
		URL:          "#",
		EmbedURL:     "#",
	}
}

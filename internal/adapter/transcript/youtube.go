package transcript

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"tubequiz/internal/domain"

	"go.uber.org/zap"
)

// DefaultBaseURL is YouTube's timedtext caption endpoint.
const DefaultBaseURL = "https://video.google.com"

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// YouTubeFetcher implements domain.TranscriptFetcher against YouTube's
// timedtext caption API: it lists the video's caption tracks, downloads the
// first available one and joins its segments into a single text blob.
type YouTubeFetcher struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

// Option configures a YouTubeFetcher.
type Option func(*YouTubeFetcher)

// WithBaseURL overrides the caption endpoint, used by tests.
func WithBaseURL(baseURL string) Option {
	return func(f *YouTubeFetcher) {
		f.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *YouTubeFetcher) {
		f.httpClient = client
	}
}

// NewYouTubeFetcher creates a new YouTubeFetcher.
func NewYouTubeFetcher(logger *zap.Logger, opts ...Option) *YouTubeFetcher {
	f := &YouTubeFetcher{
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     10 * time.Second,
			},
		},
		baseURL: DefaultBaseURL,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var _ domain.TranscriptFetcher = (*YouTubeFetcher)(nil)

// Fetch resolves the video reference and returns its transcript text.
// Every failure path yields TRANSCRIPT_UNAVAILABLE with no partial data.
func (f *YouTubeFetcher) Fetch(ctx context.Context, videoRef string) (string, error) {
	videoID, err := ExtractVideoID(videoRef)
	if err != nil {
		f.logger.Warn("Failed to extract video ID from reference",
			zap.String("video_ref", videoRef),
			zap.Error(err))
		return "", domain.NewTranscriptUnavailableError(videoRef, err)
	}

	track, err := f.firstCaptionTrack(ctx, videoID)
	if err != nil {
		f.logger.Warn("Failed to resolve caption track",
			zap.String("video_id", videoID),
			zap.Error(err))
		return "", domain.NewTranscriptUnavailableError(videoRef, err)
	}

	text, err := f.downloadTrack(ctx, videoID, track)
	if err != nil {
		f.logger.Warn("Failed to download caption track",
			zap.String("video_id", videoID),
			zap.String("lang", track.LangCode),
			zap.Error(err))
		return "", domain.NewTranscriptUnavailableError(videoRef, err)
	}

	if strings.TrimSpace(text) == "" {
		return "", domain.NewTranscriptUnavailableError(videoRef, fmt.Errorf("caption track %s is empty", track.LangCode))
	}

	f.logger.Info("Fetched transcript",
		zap.String("video_id", videoID),
		zap.String("lang", track.LangCode),
		zap.Int("length", len(text)))
	return text, nil
}

// ExtractVideoID accepts a bare 11-character video ID or any of the common
// YouTube URL shapes (watch, youtu.be, embed, shorts) and returns the ID.
func ExtractVideoID(videoRef string) (string, error) {
	ref := strings.TrimSpace(videoRef)
	if ref == "" {
		return "", fmt.Errorf("empty video reference")
	}
	if videoIDPattern.MatchString(ref) {
		return ref, nil
	}

	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("unparseable video reference: %w", err)
	}

	var id string
	host := strings.TrimPrefix(u.Hostname(), "www.")
	switch host {
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		switch {
		case u.Path == "/watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/embed/"):
			id = strings.TrimPrefix(u.Path, "/embed/")
		case strings.HasPrefix(u.Path, "/shorts/"):
			id = strings.TrimPrefix(u.Path, "/shorts/")
		}
	}

	id = strings.Trim(id, "/")
	if !videoIDPattern.MatchString(id) {
		return "", fmt.Errorf("no video ID found in reference %q", videoRef)
	}
	return id, nil
}

type captionTrack struct {
	LangCode string `xml:"lang_code,attr"`
	Name     string `xml:"name,attr"`
}

type captionTrackList struct {
	XMLName xml.Name       `xml:"transcript_list"`
	Tracks  []captionTrack `xml:"track"`
}

type captionSegment struct {
	Value string `xml:",chardata"`
}

type captionDocument struct {
	XMLName  xml.Name         `xml:"transcript"`
	Segments []captionSegment `xml:"text"`
}

// firstCaptionTrack lists the caption tracks for the video and returns the
// first one, mirroring "first available text segment" semantics.
func (f *YouTubeFetcher) firstCaptionTrack(ctx context.Context, videoID string) (*captionTrack, error) {
	listURL := fmt.Sprintf("%s/timedtext?type=list&v=%s", f.baseURL, url.QueryEscape(videoID))
	body, err := f.get(ctx, listURL)
	if err != nil {
		return nil, err
	}

	var list captionTrackList
	if err := xml.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to parse caption track list: %w", err)
	}
	if len(list.Tracks) == 0 {
		return nil, fmt.Errorf("video has no caption tracks")
	}
	return &list.Tracks[0], nil
}

// downloadTrack fetches one caption track and joins its segments.
func (f *YouTubeFetcher) downloadTrack(ctx context.Context, videoID string, track *captionTrack) (string, error) {
	trackURL := fmt.Sprintf("%s/timedtext?v=%s&lang=%s",
		f.baseURL, url.QueryEscape(videoID), url.QueryEscape(track.LangCode))
	if track.Name != "" {
		trackURL += "&name=" + url.QueryEscape(track.Name)
	}

	body, err := f.get(ctx, trackURL)
	if err != nil {
		return "", err
	}

	var doc captionDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("failed to parse caption track: %w", err)
	}

	parts := make([]string, 0, len(doc.Segments))
	for _, seg := range doc.Segments {
		// Caption payloads are HTML-escaped twice over in practice.
		text := strings.TrimSpace(html.UnescapeString(seg.Value))
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " "), nil
}

func (f *YouTubeFetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from caption endpoint", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Package translation provides the application-level service for the
// Thai-to-ThSL translation pipeline. This package sits between HTTP/CLI
// handlers and the engine: it loads snapshots, runs the pipeline, publishes
// completion events and resolves single words for client-side lookups.
package translation

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thaisign/thsl-translate/internal/domain/pose"
	"github.com/thaisign/thsl-translate/internal/domain/sign"
	"github.com/thaisign/thsl-translate/internal/infrastructure/messaging/kafka"
	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/prometheus"
	"github.com/thaisign/thsl-translate/internal/translate"
	apperrors "github.com/thaisign/thsl-translate/pkg/errors"
)

const sourceService = "thsl-apiserver"

// Service defines translation application operations.
type Service interface {
	Translate(ctx context.Context, input *TranslateInput) (*TranslateOutput, error)
	Resolve(ctx context.Context, word string) (*ResolveOutput, error)
}

// Publisher is the event-publishing surface the service needs. *kafka.Producer
// satisfies it; a nil Publisher disables events.
type Publisher interface {
	PublishEvent(ctx context.Context, topic string, env *kafka.EventEnvelope) error
}

// TranslateInput contains one translation request.
type TranslateInput struct {
	Text      string
	Keywords  []string
	RequestID string
}

// TranslateOutput is the application-level translation DTO.
type TranslateOutput struct {
	RequestID     string               `json:"requestId"`
	Tokens        []sign.ResolvedToken `json:"tokens"`
	NotFound      []string             `json:"notFound"`
	RuleID        string               `json:"ruleId,omitempty"`
	LowConfidence bool                 `json:"lowConfidence"`
}

// ResolvedEntry is one dictionary candidate for a resolved word, annotated
// with pose availability.
type ResolvedEntry struct {
	Category      string `json:"category"`
	AssetRef      string `json:"asset_ref"`
	PoseURL       string `json:"pose_url,omitempty"`
	PoseAvailable bool   `json:"pose_available"`
}

// ResolveOutput is the lookup result for one word.
type ResolveOutput struct {
	Word    string          `json:"word"`
	Found   bool            `json:"found"`
	Entries []ResolvedEntry `json:"entries"`
}

type serviceImpl struct {
	engine    *translate.Engine
	loader    sign.SnapshotLoader
	dict      sign.DictionaryRepository
	segmenter translate.Segmenter
	poses     pose.Store
	publisher Publisher
	metrics   *prometheus.AppMetrics
	logger    logging.Logger
}

// Options carries the optional collaborators of the service. Zero values
// disable the corresponding feature rather than failing construction.
type Options struct {
	Poses     pose.Store
	Publisher Publisher
	Metrics   *prometheus.AppMetrics
}

// NewService creates the translation application service. The segmenter must
// be the same implementation the engine was wired with so snapshot candidates
// match the engine's token assembly.
func NewService(engine *translate.Engine, loader sign.SnapshotLoader, dict sign.DictionaryRepository, segmenter translate.Segmenter, opts Options, logger logging.Logger) Service {
	if segmenter == nil {
		segmenter = translate.WhitespaceSegmenter{}
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &serviceImpl{
		engine:    engine,
		loader:    loader,
		dict:      dict,
		segmenter: segmenter,
		poses:     opts.Poses,
		publisher: opts.Publisher,
		metrics:   opts.Metrics,
		logger:    logger.Named("translation"),
	}
}

func (s *serviceImpl) Translate(ctx context.Context, input *TranslateInput) (*TranslateOutput, error) {
	start := time.Now()
	requestID := input.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	text := translate.Normalize(input.Text)
	keywords := translate.NormalizeAll(input.Keywords)
	if text == "" && len(keywords) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeTranslationEmptyInput, "text and keywords are both empty")
	}

	snapshot := s.loadSnapshot(ctx, text, keywords)

	res, err := s.engine.Translate(ctx, translate.Input{Text: text, Keywords: keywords}, snapshot)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeTranslationFailed, "translation pipeline failed")
	}

	if s.metrics != nil {
		prometheus.RecordTranslation(s.metrics, res.RuleID, res.LowConfidence, len(res.NotFound), time.Since(start))
	}
	s.publishCompleted(ctx, requestID, text, res)

	return &TranslateOutput{
		RequestID:     requestID,
		Tokens:        res.Tokens,
		NotFound:      res.NotFound,
		RuleID:        res.RuleID,
		LowConfidence: res.LowConfidence,
	}, nil
}

// loadSnapshot gathers the candidate words of the request and loads their
// snapshot. Snapshot failures degrade to a nil snapshot: the engine then
// reports every word as not found instead of aborting the request.
func (s *serviceImpl) loadSnapshot(ctx context.Context, text string, keywords []string) *sign.Snapshot {
	candidates := append([]string{}, keywords...)
	if text != "" {
		segments, err := s.segmenter.Segment(ctx, text)
		if err != nil {
			if s.metrics != nil {
				s.metrics.SegmenterFallbacks.WithLabelValues().Inc()
			}
			s.logger.Warn("segmentation failed while collecting snapshot candidates", logging.Err(err))
			segments = strings.Fields(text)
		}
		candidates = append(candidates, translate.NormalizeAll(segments)...)
	}

	snapshot, err := s.loader.Load(ctx, candidates)
	if err != nil {
		s.logger.Error("snapshot load failed, degrading to empty snapshot",
			logging.Int("candidates", len(candidates)), logging.Err(err))
		return nil
	}
	return snapshot
}

func (s *serviceImpl) publishCompleted(ctx context.Context, requestID, text string, res *translate.Result) {
	if s.publisher == nil {
		return
	}

	glosses := make([]string, len(res.Tokens))
	assetRefs := make([]string, len(res.Tokens))
	for i, t := range res.Tokens {
		glosses[i] = t.Word
		assetRefs[i] = t.AssetRef
	}

	env, err := kafka.NewEventEnvelope(kafka.TopicTranslationCompleted, sourceService, kafka.TranslationCompletedPayload{
		RequestID:     requestID,
		Text:          text,
		Glosses:       glosses,
		AssetRefs:     assetRefs,
		NotFound:      res.NotFound,
		RuleID:        res.RuleID,
		LowConfidence: res.LowConfidence,
		TranslatedAt:  time.Now().UTC(),
	})
	if err != nil {
		s.logger.Warn("failed to build completion event", logging.Err(err))
		return
	}
	env.TraceID = requestID

	if err := s.publisher.PublishEvent(ctx, kafka.TopicTranslationCompleted, env); err != nil {
		s.logger.Warn("failed to publish completion event",
			logging.String("request_id", requestID), logging.Err(err))
	}
}

func (s *serviceImpl) Resolve(ctx context.Context, word string) (*ResolveOutput, error) {
	word = translate.Normalize(word)
	if word == "" {
		return nil, apperrors.Validation("word is required")
	}

	rows, err := s.dict.GetByWord(ctx, word)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDictionaryUnavailable, "dictionary lookup failed")
	}

	out := &ResolveOutput{Word: word, Entries: []ResolvedEntry{}}
	for _, row := range rows {
		entry := ResolvedEntry{Category: row.Category, AssetRef: row.AssetRef}
		entry.PoseAvailable = s.poseExists(ctx, row.AssetRef)
		if entry.PoseAvailable {
			entry.PoseURL = "/api/v1/poses/" + row.AssetRef
		}
		out.Entries = append(out.Entries, entry)
	}

	// Words absent from the dictionary may still have a pose file named
	// directly after them.
	if len(out.Entries) == 0 {
		fallback := word + ".pose"
		if s.poseExists(ctx, fallback) {
			out.Entries = append(out.Entries, ResolvedEntry{
				AssetRef:      fallback,
				PoseURL:       "/api/v1/poses/" + fallback,
				PoseAvailable: true,
			})
		}
	}

	out.Found = len(out.Entries) > 0
	if !out.Found {
		return nil, apperrors.New(apperrors.ErrCodeWordNotFound, "word has no dictionary entry or pose file").
			WithDetail("word=%q", word)
	}
	return out, nil
}

func (s *serviceImpl) poseExists(ctx context.Context, name string) bool {
	if s.poses == nil || name == "" {
		return false
	}
	ok, err := s.poses.Exists(ctx, name)
	if err != nil {
		s.logger.Warn("pose existence check failed", logging.String("name", name), logging.Err(err))
		return false
	}
	return ok
}

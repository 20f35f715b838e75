package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/beout/beout-admin/internal/cache"
	"github.com/beout/beout-admin/internal/domain"
	"github.com/beout/beout-admin/internal/dto"
	"github.com/beout/beout-admin/internal/repository"
	"github.com/beout/beout-admin/pkg/logger"
	"github.com/beout/beout-admin/pkg/telemetry"
	"github.com/beout/beout-admin/pkg/translation"
	"go.uber.org/zap"
)

// TranslationConfig holds translation service settings
type TranslationConfig struct {
	ReferenceLanguage string
	Languages         []string
	CacheTTL          time.Duration
}

// translationService implements TranslationService
type translationService struct {
	repo   repository.TranslationRepository
	cache  cache.Cache
	config TranslationConfig
}

// NewTranslationService creates a new TranslationService
func NewTranslationService(repo repository.TranslationRepository, c cache.Cache, cfg TranslationConfig) TranslationService {
	if c == nil {
		c = cache.Noop{}
	}
	if cfg.ReferenceLanguage == "" {
		cfg.ReferenceLanguage = "fr"
	}
	if lang, err := translation.NormalizeLanguage(cfg.ReferenceLanguage); err == nil {
		cfg.ReferenceLanguage = lang
	}
	cfg.Languages = normalizeLanguages(cfg.Languages)
	return &translationService{repo: repo, cache: c, config: cfg}
}

// normalizeLanguages canonicalizes configured codes so pt-br and pt-BR
// list once. Codes that do not parse are dropped.
func normalizeLanguages(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		lang, err := translation.NormalizeLanguage(code)
		if err != nil {
			logger.Warn("ignoring configured translation language", zap.String("language", code))
			continue
		}
		if !seen[lang] {
			seen[lang] = true
			out = append(out, lang)
		}
	}
	return out
}

// Languages lists configured and stored languages, reference first
func (s *translationService) Languages(ctx context.Context) ([]dto.LanguageInfo, error) {
	stored, err := s.repo.ListLanguages(ctx)
	if err != nil {
		return nil, err
	}

	codes := map[string]bool{s.config.ReferenceLanguage: true}
	for _, code := range s.config.Languages {
		codes[code] = true
	}
	for code := range stored {
		codes[code] = true
	}

	infos := make([]dto.LanguageInfo, 0, len(codes))
	for code := range codes {
		infos = append(infos, dto.LanguageInfo{
			Code:        code,
			IsReference: code == s.config.ReferenceLanguage,
			Namespaces:  stored[code],
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].IsReference != infos[j].IsReference {
			return infos[i].IsReference
		}
		return infos[i].Code < infos[j].Code
	})
	return infos, nil
}

// Stats compares every language against the reference language namespaces
func (s *translationService) Stats(ctx context.Context) (*dto.TranslationStatsResponse, error) {
	languages, err := s.Languages(ctx)
	if err != nil {
		return nil, err
	}

	refDocs, err := s.repo.ListByLanguage(ctx, s.config.ReferenceLanguage)
	if err != nil {
		return nil, err
	}
	reference := make(map[string]map[string]any, len(refDocs))
	refKeys := 0
	for _, doc := range refDocs {
		reference[doc.Namespace] = doc.Content
		refKeys += translation.CountKeys(doc.Content)
	}

	resp := &dto.TranslationStatsResponse{
		ReferenceLanguage: s.config.ReferenceLanguage,
		Languages:         make([]dto.LanguageStats, 0, len(languages)),
	}

	for _, lang := range languages {
		docs, err := s.repo.ListByLanguage(ctx, lang.Code)
		if err != nil {
			return nil, err
		}
		byNamespace := make(map[string]map[string]any, len(docs))
		for _, doc := range docs {
			byNamespace[doc.Namespace] = doc.Content
		}

		stats := dto.LanguageStats{Language: lang.Code, Namespaces: len(docs)}
		translated := 0
		for ns, refContent := range reference {
			report := translation.Diff(refContent, byNamespace[ns])
			stats.MissingKeys += len(report.MissingKeys)
			stats.EmptyKeys += len(report.EmptyKeys)
			translated += report.ReferenceKeys - len(report.MissingKeys)
			refFlat := translation.Flatten(refContent)
			for _, key := range report.EmptyKeys {
				if _, ok := refFlat[key]; ok {
					translated--
				}
			}
		}
		for _, content := range byNamespace {
			stats.TotalKeys += translation.CountKeys(content)
		}

		if refKeys == 0 {
			stats.Completion = 100
		} else {
			stats.Completion = math.Round(float64(translated)/float64(refKeys)*10000) / 100
		}
		resp.Languages = append(resp.Languages, stats)
	}

	return resp, nil
}

// Namespaces lists the namespaces stored for a language
func (s *translationService) Namespaces(ctx context.Context, language string) ([]*domain.NamespaceInfo, error) {
	lang, err := translation.NormalizeLanguage(language)
	if err != nil {
		return nil, err
	}
	return s.repo.ListNamespaces(ctx, lang)
}

// Get returns one namespace, served from cache when possible
func (s *translationService) Get(ctx context.Context, language, namespace string) (*domain.TranslationDocument, error) {
	lang, err := checkTranslationPath(language, namespace)
	if err != nil {
		return nil, err
	}

	key := cache.TranslationKey(lang, namespace)
	cached := &domain.TranslationDocument{}
	if err := s.cache.GetJSON(ctx, key, cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		logger.WarnCtx(ctx, "translation cache read failed", zap.String("key", key), zap.Error(err))
	}

	doc, err := s.repo.Get(ctx, lang, namespace)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrTranslationNotFound
	}

	if s.config.CacheTTL > 0 {
		if err := s.cache.SetJSON(ctx, key, doc, s.config.CacheTTL); err != nil {
			logger.WarnCtx(ctx, "translation cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return doc, nil
}

// Replace overwrites a namespace, creating it when missing
func (s *translationService) Replace(ctx context.Context, actor domain.Actor, language, namespace string, content map[string]any) (*domain.TranslationDocument, error) {
	doc, err := s.prepare(actor, language, namespace, content)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, doc); err != nil {
		return nil, err
	}
	s.invalidate(ctx, doc.Language, doc.Namespace)
	return doc, nil
}

// Create adds a namespace that must not exist yet
func (s *translationService) Create(ctx context.Context, actor domain.Actor, language, namespace string, content map[string]any) (*domain.TranslationDocument, error) {
	doc, err := s.prepare(actor, language, namespace, content)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, doc); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrTranslationExists
		}
		return nil, err
	}
	s.invalidate(ctx, doc.Language, doc.Namespace)
	return doc, nil
}

// Delete removes a namespace
func (s *translationService) Delete(ctx context.Context, language, namespace string) error {
	lang, err := checkTranslationPath(language, namespace)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, lang, namespace)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTranslationNotFound
	}
	s.invalidate(ctx, lang, namespace)
	return nil
}

// Upload stores an uploaded file, deep-merging into the stored namespace when requested
func (s *translationService) Upload(ctx context.Context, actor domain.Actor, req *dto.UploadTranslationsRequest) (*domain.TranslationDocument, error) {
	var doc *domain.TranslationDocument
	err := telemetry.Trace(ctx, "translations.upload", func(ctx context.Context) (err error) {
		doc, err = s.upload(ctx, actor, req)
		return err
	}, telemetry.LanguageAttr(req.Language))
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *translationService) upload(ctx context.Context, actor domain.Actor, req *dto.UploadTranslationsRequest) (*domain.TranslationDocument, error) {
	doc, err := s.prepare(actor, req.Language, req.Namespace, req.Content)
	if err != nil {
		return nil, err
	}

	if req.Merge {
		existing, err := s.repo.Get(ctx, doc.Language, doc.Namespace)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			doc.Content = translation.Merge(existing.Content, doc.Content)
		}
	}

	if err := s.repo.Upsert(ctx, doc); err != nil {
		return nil, err
	}
	s.invalidate(ctx, doc.Language, doc.Namespace)

	logger.InfoCtx(ctx, "translations uploaded",
		zap.String("language", doc.Language),
		zap.String("namespace", doc.Namespace),
		zap.Bool("merge", req.Merge),
		zap.Int("keys", translation.CountKeys(doc.Content)),
	)
	return doc, nil
}

// Validate diffs a namespace against the same namespace of the reference language
func (s *translationService) Validate(ctx context.Context, language, namespace string) (*dto.ValidateTranslationsResponse, error) {
	lang, err := checkTranslationPath(language, namespace)
	if err != nil {
		return nil, err
	}

	target, err := s.repo.Get(ctx, lang, namespace)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrTranslationNotFound
	}

	var refContent map[string]any
	ref, err := s.repo.Get(ctx, s.config.ReferenceLanguage, namespace)
	if err != nil {
		return nil, err
	}
	if ref != nil {
		refContent = ref.Content
	}

	return &dto.ValidateTranslationsResponse{
		Language:          lang,
		Namespace:         namespace,
		ReferenceLanguage: s.config.ReferenceLanguage,
		Report:            translation.Diff(refContent, target.Content),
	}, nil
}

// prepare validates the path and rebuilds content so that dotted keys and
// nested objects end up in one nested document
func (s *translationService) prepare(actor domain.Actor, language, namespace string, content map[string]any) (*domain.TranslationDocument, error) {
	lang, err := checkTranslationPath(language, namespace)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, invalid("translations must be a JSON object")
	}

	nested, err := translation.Unflatten(translation.Flatten(content))
	if err != nil {
		var conflict *translation.ConflictError
		if errors.As(err, &conflict) {
			return nil, invalid(conflict.Error())
		}
		return nil, err
	}

	return &domain.TranslationDocument{
		Language:  lang,
		Namespace: namespace,
		Content:   nested,
		UpdatedBy: actor.UserID,
	}, nil
}

func (s *translationService) invalidate(ctx context.Context, language, namespace string) {
	if _, err := s.cache.DeletePattern(ctx, cache.TranslationKey(language, namespace)); err != nil {
		logger.WarnCtx(ctx, "failed to invalidate translation cache", zap.Error(err))
	}
}

func checkTranslationPath(language, namespace string) (string, error) {
	lang, err := translation.NormalizeLanguage(language)
	if err != nil {
		return "", err
	}
	if err := translation.ValidateNamespace(namespace); err != nil {
		return "", err
	}
	return lang, nil
}

// Package content serves the Yoga Sūtras & the glossary of Sanskrit terms.
package content

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/dailysutra/core"
	"github.com/trezcool/dailysutra/core/share"
)

const (
	FirstBook = 1
	LastBook  = 4

	glossaryCacheKey = "content:glossary"
)

var (
	// errors
	ErrInvalidBook = errors.New("book must be between 1 and 4")
	ErrEmptyPack   = errors.New("content pack has no sutras nor glossary terms")
	ErrNotFound    = errors.New("content not found")

	idNamespace = uuid.MustParse("9c4f6f0e-1d8a-4f55-8a0b-7b1b6f0a5e21")
)

type Sutra struct {
	ID         string `db:"id" json:"id"`
	Book       int    `db:"book" json:"book"`
	Number     int    `db:"sutra_number" json:"sutra_number"`
	Title      string `db:"title" json:"title"`
	Text       string `db:"sutra_text" json:"sutra_text"`
	Commentary string `db:"commentary" json:"commentary"`
}

// ShareText is the plain text shared for the sūtra.
func (s Sutra) ShareText() string {
	return share.Sutra(fmt.Sprintf("Book %d", s.Book), s.Number, s.Title, s.Text, s.Commentary)
}

type GlossaryTerm struct {
	ID         string `db:"id" json:"id"`
	Term       string `db:"term" json:"term"`
	Definition string `db:"definition" json:"definition"`
	SortKey    string `db:"sort_key" json:"sort_key"`
}

// ShareText is the plain text shared for the term.
func (t GlossaryTerm) ShareText() string {
	return share.GlossaryTerm(t.Term, t.Definition)
}

type (
	Repository interface {
		// QuerySutras returns the sūtras of `book`, ordered by number.
		QuerySutras(ctx context.Context, book int) ([]Sutra, error)
		// QueryGlossary returns every term ordered by sort key.
		QueryGlossary(ctx context.Context) ([]GlossaryTerm, error)
		GetSutra(ctx context.Context, id string) (Sutra, error)
		GetGlossaryTerm(ctx context.Context, id string) (GlossaryTerm, error)
		SaveSutras(ctx context.Context, sutras []Sutra) error
		SaveGlossaryTerms(ctx context.Context, terms []GlossaryTerm) error
	}

	// Cache stores JSON-serializable values for a limited time.
	Cache interface {
		// Get loads the value of `key` in `dst` & reports whether it was found.
		Get(ctx context.Context, key string, dst interface{}) (bool, error)
		Set(ctx context.Context, key string, val interface{}) error
		Delete(ctx context.Context, keys ...string) error
	}

	Service interface {
		SutrasByBook(ctx context.Context, book int) ([]Sutra, error)
		Glossary(ctx context.Context) ([]GlossaryTerm, error)
		Sutra(ctx context.Context, id string) (Sutra, error)
		Term(ctx context.Context, id string) (GlossaryTerm, error)
		// Seed upserts the sūtras & terms of a YAML content pack.
		Seed(ctx context.Context, r io.Reader) (SeedResult, error)
	}

	service struct {
		repo   Repository
		cache  Cache
		logger core.Logger
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, cache Cache, logger core.Logger) Service {
	return &service{repo: repo, cache: cache, logger: logger}
}

func bookCacheKey(book int) string { return fmt.Sprintf("content:sutras:%d", book) }

func (svc *service) SutrasByBook(ctx context.Context, book int) ([]Sutra, error) {
	if book < FirstBook || book > LastBook {
		return nil, core.NewValidationError(ErrInvalidBook, core.FieldError{Field: "book", Error: ErrInvalidBook.Error()})
	}

	key := bookCacheKey(book)
	var sutras []Sutra
	if svc.fromCache(ctx, key, &sutras) {
		return sutras, nil
	}

	sutras, err := svc.repo.QuerySutras(ctx, book)
	if err != nil {
		return nil, errors.Wrap(err, "querying sutras")
	}
	if sutras == nil {
		sutras = []Sutra{}
	}
	svc.toCache(ctx, key, sutras)
	return sutras, nil
}

func (svc *service) Glossary(ctx context.Context) ([]GlossaryTerm, error) {
	var terms []GlossaryTerm
	if svc.fromCache(ctx, glossaryCacheKey, &terms) {
		return terms, nil
	}

	terms, err := svc.repo.QueryGlossary(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying glossary")
	}
	if terms == nil {
		terms = []GlossaryTerm{}
	}
	svc.toCache(ctx, glossaryCacheKey, terms)
	return terms, nil
}

func (svc *service) Sutra(ctx context.Context, id string) (Sutra, error) {
	sutra, err := svc.repo.GetSutra(ctx, id)
	if err != nil {
		return Sutra{}, errors.Wrap(err, "getting sutra")
	}
	return sutra, nil
}

func (svc *service) Term(ctx context.Context, id string) (GlossaryTerm, error) {
	term, err := svc.repo.GetGlossaryTerm(ctx, id)
	if err != nil {
		return GlossaryTerm{}, errors.Wrap(err, "getting glossary term")
	}
	return term, nil
}

// fromCache reports a hit. Cache failures are logged & treated as misses.
func (svc *service) fromCache(ctx context.Context, key string, dst interface{}) bool {
	if svc.cache == nil {
		return false
	}
	found, err := svc.cache.Get(ctx, key, dst)
	if err != nil {
		svc.logger.Warn("reading content cache", err, map[string]interface{}{"key": key})
		return false
	}
	return found
}

func (svc *service) toCache(ctx context.Context, key string, val interface{}) {
	if svc.cache == nil {
		return
	}
	if err := svc.cache.Set(ctx, key, val); err != nil {
		svc.logger.Warn("writing content cache", err, map[string]interface{}{"key": key})
	}
}

// Seeding

type (
	packSutra struct {
		Book       int    `yaml:"book"`
		Number     int    `yaml:"number"`
		Title      string `yaml:"title"`
		Text       string `yaml:"text"`
		Commentary string `yaml:"commentary"`
	}

	packTerm struct {
		Term       string `yaml:"term"`
		Definition string `yaml:"definition"`
		SortKey    string `yaml:"sort_key"`
	}

	pack struct {
		Sutras   []packSutra `yaml:"sutras"`
		Glossary []packTerm  `yaml:"glossary"`
	}

	SeedResult struct {
		Sutras int
		Terms  int
	}
)

func (svc *service) Seed(ctx context.Context, r io.Reader) (SeedResult, error) {
	var p pack
	if err := yaml.NewDecoder(r).Decode(&p); err != nil {
		return SeedResult{}, errors.Wrap(err, "decoding content pack")
	}
	if len(p.Sutras) == 0 && len(p.Glossary) == 0 {
		return SeedResult{}, ErrEmptyPack
	}

	sutras := make([]Sutra, 0, len(p.Sutras))
	for i, s := range p.Sutras {
		if s.Book < FirstBook || s.Book > LastBook || s.Number < 1 {
			return SeedResult{}, errors.Errorf("sutra #%d: invalid reference %d.%d", i+1, s.Book, s.Number)
		}
		sutras = append(sutras, Sutra{
			ID:         uuid.NewSHA1(idNamespace, []byte(fmt.Sprintf("sutra/%d.%d", s.Book, s.Number))).String(),
			Book:       s.Book,
			Number:     s.Number,
			Title:      strings.TrimSpace(s.Title),
			Text:       strings.TrimSpace(s.Text),
			Commentary: strings.TrimSpace(s.Commentary),
		})
	}

	terms := make([]GlossaryTerm, 0, len(p.Glossary))
	for i, t := range p.Glossary {
		term := strings.TrimSpace(t.Term)
		if term == "" {
			return SeedResult{}, errors.Errorf("glossary term #%d: missing term", i+1)
		}
		sortKey := t.SortKey
		if sortKey == "" {
			sortKey = SortKey(term)
		}
		terms = append(terms, GlossaryTerm{
			ID:         uuid.NewSHA1(idNamespace, []byte("term/"+sortKey)).String(),
			Term:       term,
			Definition: strings.TrimSpace(t.Definition),
			SortKey:    sortKey,
		})
	}

	if err := svc.repo.SaveSutras(ctx, sutras); err != nil {
		return SeedResult{}, errors.Wrap(err, "saving sutras")
	}
	if err := svc.repo.SaveGlossaryTerms(ctx, terms); err != nil {
		return SeedResult{}, errors.Wrap(err, "saving glossary terms")
	}

	if svc.cache != nil {
		keys := []string{glossaryCacheKey}
		for book := FirstBook; book <= LastBook; book++ {
			keys = append(keys, bookCacheKey(book))
		}
		if err := svc.cache.Delete(ctx, keys...); err != nil {
			svc.logger.Warn("invalidating content cache", err)
		}
	}
	return SeedResult{Sutras: len(sutras), Terms: len(terms)}, nil
}

var diacritics = strings.NewReplacer(
	"ā", "a", "ī", "i", "ū", "u", "ṛ", "r", "ṝ", "r", "ḷ", "l", "ṅ", "n", "ñ", "n",
	"ṭ", "t", "ḍ", "d", "ṇ", "n", "ś", "s", "ṣ", "s", "ḥ", "h", "ṁ", "m", "ṃ", "m",
)

// SortKey lowers `term` & strips the IAST diacritics so that terms sort alphabetically.
func SortKey(term string) string {
	return diacritics.Replace(strings.ToLower(strings.TrimSpace(term)))
}

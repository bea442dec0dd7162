package service

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/sharetube/watchparty/internal/domain"
)

var ConnIdRule = []validation.Rule{
	validation.Required,
}

var SessionIdRule = []validation.Rule{
	validation.Required,
	validation.Match(regexp.MustCompile("^[a-zA-Z0-9-]{8}$")),
}

var NameRule = []validation.Rule{
	validation.Required,
	validation.RuneLength(1, 30),
	validation.By(printable),
}

var ChatMessageRule = []validation.Rule{
	validation.Required,
	validation.RuneLength(1, 500),
}

var MediaIdRule = []validation.Rule{
	validation.Required,
	validation.RuneLength(1, 100),
}

var MediaTitleRule = []validation.Rule{
	validation.Required,
	validation.RuneLength(1, 200),
}

var ThumbnailRule = []validation.Rule{
	validation.RuneLength(0, 500),
}

var ArtistRule = []validation.Rule{
	validation.RuneLength(0, 100),
}

var ProviderRule = []validation.Rule{
	validation.Required,
	validation.In(string(domain.ProviderYouTube)),
}

var PositionRule = []validation.Rule{
	validation.NotNil,
	validation.By(finite),
	validation.Min(0.0),
}

var IsPlayingRule = []validation.Rule{
	validation.NotNil,
}

var QueueIndexRule = []validation.Rule{
	validation.NotNil,
	validation.Min(0),
}

var EntryIdRule = []validation.Rule{
	validation.Required,
	is.UUID,
}

func finite(value any) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}

	f, ok := v.(float64)
	if !ok {
		return errors.New("must be a number")
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return errors.New("must be a finite number")
	}

	return nil
}

func printable(value any) error {
	s, _ := value.(string)
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return errors.New("must contain only printable characters")
		}
	}

	return nil
}

func validationError(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
)

// escapeHTML neutralizes markup in free text that clients render.
func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

type MediaRefParams struct {
	Provider  string  `json:"provider"`
	Id        string  `json:"id"`
	Title     string  `json:"title"`
	Thumbnail *string `json:"thumbnail"`
	Artist    *string `json:"artist"`
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}

	return &trimmed
}

// normalize trims every field in place and validates the result.
func (p *MediaRefParams) normalize() error {
	p.Provider = strings.TrimSpace(p.Provider)
	p.Id = strings.TrimSpace(p.Id)
	p.Title = strings.TrimSpace(p.Title)
	p.Thumbnail = trimOptional(p.Thumbnail)
	p.Artist = trimOptional(p.Artist)

	return validation.ValidateStruct(p,
		validation.Field(&p.Provider, ProviderRule...),
		validation.Field(&p.Id, MediaIdRule...),
		validation.Field(&p.Title, MediaTitleRule...),
		validation.Field(&p.Thumbnail, ThumbnailRule...),
		validation.Field(&p.Artist, ArtistRule...),
	)
}

func (p MediaRefParams) toDomain() domain.MediaRef {
	return domain.MediaRef{
		Id:        p.Id,
		Title:     p.Title,
		Thumbnail: p.Thumbnail,
		Artist:    p.Artist,
		Provider:  domain.Provider(p.Provider),
	}
}

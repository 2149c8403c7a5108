package naming

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/anekos/rename-movies/pkg/models"
)

var yearPattern = regexp.MustCompile(`^(19|20)\d{2}$`)

// releaseTags are tokens that mark the end of the title portion of a scene
// release name. Everything from the first tag onward is residual.
var releaseTags = map[string]bool{
	"480p": true, "576p": true, "720p": true, "1080p": true, "1080i": true,
	"2160p": true, "4k": true, "uhd": true, "hdr": true, "10bit": true,
	"bluray": true, "blu-ray": true, "bdrip": true, "brrip": true,
	"dvdrip": true, "webrip": true, "web-dl": true, "webdl": true,
	"web": true, "hdtv": true, "remux": true, "hdcam": true, "cam": true,
	"x264": true, "x265": true, "h264": true, "h265": true, "hevc": true,
	"avc": true, "xvid": true, "divx": true, "av1": true,
	"aac": true, "ac3": true, "dts": true, "ddp5": true, "truehd": true,
	"atmos": true, "flac": true,
	"proper": true, "repack": true, "internal": true, "limited": true,
	"extended": true, "unrated": true, "remastered": true, "imax": true,
	"multi": true, "subbed": true, "dubbed": true,
}

// ParseTokens parses a media filename into structured naming components.
// basename is the filename with extension. Separators (dots, underscores)
// are normalized to spaces, a release year is extracted if present, and the
// title is truncated at the first recognized release tag.
func ParseTokens(basename string) models.NameTokens {
	ext := filepath.Ext(basename)
	base := strings.TrimSuffix(basename, ext)

	base = stripGroups(base)
	words := splitWords(base)
	if len(words) == 0 {
		return models.NameTokens{}
	}

	// Locate the year: last year-shaped token that is not the first word,
	// so titles that are themselves years ("2012") survive.
	yearIdx := -1
	for i := len(words) - 1; i > 0; i-- {
		if yearPattern.MatchString(words[i]) {
			yearIdx = i
			break
		}
	}

	titleWords := words
	var residual []string
	var year string

	if yearIdx >= 0 {
		year = words[yearIdx]
		titleWords = words[:yearIdx]
		residual = words[yearIdx+1:]
	}

	// Truncate the title at the first release tag.
	for i, w := range titleWords {
		if releaseTags[strings.ToLower(w)] {
			residual = append(titleWords[i:], residual...)
			titleWords = titleWords[:i]
			break
		}
	}

	return models.NameTokens{
		Title:    titleCase(titleWords),
		Year:     year,
		Residual: residual,
	}
}

// stripGroups removes bracketed release-group markers like [YTS] or {x264}.
// Parenthesized groups are kept, they usually carry the year.
func stripGroups(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '[', '{':
			depth++
		case ']', '}':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

func splitWords(s string) []string {
	s = strings.NewReplacer(".", " ", "_", " ", "(", " ", ")", " ").Replace(s)
	return strings.Fields(s)
}

// titleCase capitalizes all-lowercase words and leaves mixed-case words
// alone, so acronyms and stylized titles survive.
func titleCase(words []string) string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w == strings.ToLower(w) {
			r := []rune(w)
			r[0] = unicode.ToUpper(r[0])
			w = string(r)
		}
		out = append(out, w)
	}
	return strings.Join(out, " ")
}

package vorbis

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/go-tagkit/tagkit/internal/types"
)

// DecodeChapters extracts chapters from the Auphonic convention:
//
//	CHAPTERxxx=HH:MM:SS.mmm
//	CHAPTERxxxNAME=Title
//	CHAPTERxxxURL=https://...
//
// where xxx is a zero-padded chapter index. Timestamps convert to
// milliseconds; a chapter's EndMS is derived from the next chapter's
// start, since the convention carries no explicit end marker.
type chapterEntry struct {
	number    int
	timestamp string
	title     string
	url       string
}

func DecodeChapters(comments []string) []types.Chapter {
	byNumber := make(map[int]*chapterEntry)

	for _, comment := range comments {
		eq := strings.IndexByte(comment, '=')
		if eq < 0 {
			continue
		}
		key := strings.ToUpper(strings.TrimSpace(comment[:eq]))
		value := strings.TrimSpace(comment[eq+1:])

		if !strings.HasPrefix(key, "CHAPTER") {
			continue
		}
		rest := strings.TrimPrefix(key, "CHAPTER")

		switch {
		case strings.HasSuffix(rest, "NAME"):
			num, err := strconv.Atoi(strings.TrimSuffix(rest, "NAME"))
			if err != nil {
				continue
			}
			entryFor(byNumber, num).title = value
		case strings.HasSuffix(rest, "URL"):
			num, err := strconv.Atoi(strings.TrimSuffix(rest, "URL"))
			if err != nil {
				continue
			}
			entryFor(byNumber, num).url = value
		default:
			num, err := strconv.Atoi(rest)
			if err != nil {
				continue
			}
			entryFor(byNumber, num).timestamp = value
		}
	}

	if len(byNumber) == 0 {
		return nil
	}

	var ordered []*chapterEntry
	for _, e := range byNumber {
		if e.timestamp != "" {
			ordered = append(ordered, e)
		}
	}
	if len(ordered) == 0 {
		return nil
	}
	slices.SortFunc(ordered, func(a, b *chapterEntry) int {
		return cmp.Compare(a.number, b.number)
	})

	chapters := make([]types.Chapter, 0, len(ordered))
	for i, e := range ordered {
		startMS, err := parseChapterTimestampMS(e.timestamp)
		if err != nil {
			continue
		}
		var endMS int64
		if i < len(ordered)-1 {
			endMS, _ = parseChapterTimestampMS(ordered[i+1].timestamp)
		}
		title := e.title
		if title == "" {
			title = fmt.Sprintf("Chapter %d", e.number)
		}
		chapters = append(chapters, types.Chapter{
			StartMS: startMS,
			EndMS:   endMS,
			Title:   title,
			URL:     e.url,
		})
	}
	return chapters
}

func entryFor(m map[int]*chapterEntry, num int) *chapterEntry {
	if m[num] == nil {
		m[num] = &chapterEntry{number: num}
	}
	return m[num]
}

// EncodeChapters serializes chapters back into the Auphonic convention,
// stable-sorted by start time, zero-padded to 3 digits (or wider, if
// there are more than 999 chapters).
func EncodeChapters(chapters []types.Chapter) []string {
	if len(chapters) == 0 {
		return nil
	}
	sorted := make([]types.Chapter, len(chapters))
	copy(sorted, chapters)
	slices.SortStableFunc(sorted, func(a, b types.Chapter) int {
		return cmp.Compare(a.StartMS, b.StartMS)
	})

	width := 3
	if len(sorted) > 999 {
		width = len(strconv.Itoa(len(sorted)))
	}

	out := make([]string, 0, len(sorted)*3)
	for i, c := range sorted {
		idx := fmt.Sprintf("%0*d", width, i+1)
		out = append(out, fmt.Sprintf("CHAPTER%s=%s", idx, formatChapterTimestamp(c.StartMS)))
		if c.Title != "" {
			out = append(out, fmt.Sprintf("CHAPTER%sNAME=%s", idx, c.Title))
		}
		if c.URL != "" {
			out = append(out, fmt.Sprintf("CHAPTER%sURL=%s", idx, c.URL))
		}
	}
	return out
}

// parseChapterTimestampMS parses HH:MM:SS.mmm, MM:SS.mmm, or SS.mmm into
// milliseconds.
func parseChapterTimestampMS(ts string) (int64, error) {
	parts := strings.Split(ts, ":")

	var hours, minutes int
	var seconds float64
	var err error

	switch len(parts) {
	case 3:
		if hours, err = strconv.Atoi(parts[0]); err != nil {
			return 0, fmt.Errorf("invalid hours in timestamp: %s", ts)
		}
		if minutes, err = strconv.Atoi(parts[1]); err != nil {
			return 0, fmt.Errorf("invalid minutes in timestamp: %s", ts)
		}
		if seconds, err = strconv.ParseFloat(parts[2], 64); err != nil {
			return 0, fmt.Errorf("invalid seconds in timestamp: %s", ts)
		}
	case 2:
		if minutes, err = strconv.Atoi(parts[0]); err != nil {
			return 0, fmt.Errorf("invalid minutes in timestamp: %s", ts)
		}
		if seconds, err = strconv.ParseFloat(parts[1], 64); err != nil {
			return 0, fmt.Errorf("invalid seconds in timestamp: %s", ts)
		}
	case 1:
		if seconds, err = strconv.ParseFloat(parts[0], 64); err != nil {
			return 0, fmt.Errorf("invalid seconds in timestamp: %s", ts)
		}
	default:
		return 0, fmt.Errorf("invalid timestamp format: %s", ts)
	}

	if hours < 0 || minutes < 0 || minutes >= 60 || seconds < 0 || seconds >= 60 {
		return 0, fmt.Errorf("timestamp values out of range: %s", ts)
	}

	totalMS := int64(hours)*3600000 + int64(minutes)*60000 + int64(seconds*1000)
	return totalMS, nil
}

// formatChapterTimestamp renders milliseconds as HH:MM:SS.mmm.
func formatChapterTimestamp(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	h := ms / 3600000
	ms %= 3600000
	m := ms / 60000
	ms %= 60000
	s := ms / 1000
	msRem := ms % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, msRem)
}

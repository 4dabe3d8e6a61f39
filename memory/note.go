package memory

import (
	"context"
	"fmt"
	"strings"
)

// Semantic keys produced by the fact extractor and recognized by BuildNote.
const (
	KeyUserName   = "user_name"
	KeyPreference = "preference"
	KeyDislike    = "dislike"
	KeyDietary    = "dietary"
	KeyAllergy    = "allergy"
	KeyNote       = "note"
)

const noteRecordLimit = 50

// KnownName returns the thread's most recently recorded user name, or "".
func (s *Store) KnownName(ctx context.Context, threadID string) (string, error) {
	recs, err := s.Search(ctx, threadID, KeyUserName+":", 1)
	if err != nil {
		return "", err
	}
	if len(recs) == 0 {
		return "", nil
	}
	_, v := splitContent(recs[0].Content)
	return v, nil
}

// BuildNote assembles the per-turn memory note from the thread's records.
// It is recomputed every turn and never persisted. Returns "" when the
// thread has no usable facts.
func (s *Store) BuildNote(ctx context.Context, threadID string) (string, error) {
	recs, err := s.List(ctx, threadID, noteRecordLimit)
	if err != nil {
		return "", err
	}
	if len(recs) == 0 {
		return "", nil
	}

	var (
		name      string
		likes     []string
		dislikes  []string
		dietary   []string
		allergies []string
		notes     []string
	)
	seen := map[string]bool{}
	// recs are newest-first; the first value per identity key wins and list
	// values are deduplicated case-insensitively.
	for _, r := range recs {
		key, val := splitContent(r.Content)
		if val == "" {
			continue
		}
		dedup := key + "\x00" + strings.ToLower(val)
		if seen[dedup] {
			continue
		}
		seen[dedup] = true
		switch key {
		case KeyUserName:
			if name == "" {
				name = val
			}
		case KeyPreference:
			likes = append(likes, val)
		case KeyDislike:
			dislikes = append(dislikes, val)
		case KeyDietary:
			dietary = append(dietary, val)
		case KeyAllergy:
			allergies = append(allergies, val)
		case KeyNote:
			notes = append(notes, val)
		}
	}

	var lines []string
	if name != "" {
		lines = append(lines, "Name: "+name)
	}
	if len(dietary) > 0 {
		lines = append(lines, "Dietary: "+strings.Join(dietary, ", "))
	}
	if len(allergies) > 0 {
		lines = append(lines, "Allergies: "+strings.Join(allergies, ", "))
	}
	if len(likes) > 0 {
		lines = append(lines, "Likes: "+strings.Join(likes, ", "))
	}
	if len(dislikes) > 0 {
		lines = append(lines, "Dislikes: "+strings.Join(dislikes, ", "))
	}
	for _, n := range notes {
		lines = append(lines, "Note: "+n)
	}
	if len(lines) == 0 {
		return "", nil
	}
	return fmt.Sprintf("Known guest profile:\n%s", strings.Join(lines, "\n")), nil
}

// splitContent separates a "key:value" record body. Records without a colon
// yield an empty key and the full content as value.
func splitContent(content string) (key, value string) {
	k, v, found := strings.Cut(content, ":")
	if !found {
		return "", strings.TrimSpace(content)
	}
	return strings.TrimSpace(k), strings.TrimSpace(v)
}

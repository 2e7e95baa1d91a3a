package anilist

import "github.com/tidwall/gjson"

// MediaTitle carries the catalog's naming variants for one work.
type MediaTitle struct {
	Romaji  string
	English string
	Native  string
}

// Media is one manga record from the AniList catalog. Chapters and
// Volumes are zero when the catalog does not know the counts (ongoing
// series).
type Media struct {
	ID         int
	Title      MediaTitle
	Synonyms   []string
	Format     string
	Status     string
	Chapters   int
	Volumes    int
	CoverImage string
	StartYear  int
}

// ListEntry is the remote state of one entry on the viewer's manga list.
// Score is on AniList's 0-100 point scale.
type ListEntry struct {
	EntryID  int
	MediaID  int
	Status   string
	Progress int
	Score    float64
	Private  bool
}

func mediaFromJSON(value gjson.Result) Media {
	media := Media{
		ID:         int(value.Get("id").Int()),
		Format:     value.Get("format").String(),
		Status:     value.Get("status").String(),
		Chapters:   int(value.Get("chapters").Int()),
		Volumes:    int(value.Get("volumes").Int()),
		CoverImage: value.Get("coverImage.large").String(),
		StartYear:  int(value.Get("startDate.year").Int()),
		Title: MediaTitle{
			Romaji:  value.Get("title.romaji").String(),
			English: value.Get("title.english").String(),
			Native:  value.Get("title.native").String(),
		},
	}
	for _, syn := range value.Get("synonyms").Array() {
		if s := syn.String(); s != "" {
			media.Synonyms = append(media.Synonyms, s)
		}
	}
	return media
}

func listEntryFromJSON(value gjson.Result) ListEntry {
	return ListEntry{
		EntryID:  int(value.Get("id").Int()),
		MediaID:  int(value.Get("mediaId").Int()),
		Status:   value.Get("status").String(),
		Progress: int(value.Get("progress").Int()),
		Score:    value.Get("score").Float(),
		Private:  value.Get("private").Bool(),
	}
}

package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tripdiary/internal/client/models"
)

// Shape records which of the accepted response layouts a body had.
type Shape int

const (
	// ShapeBare is a bare array or object.
	ShapeBare Shape = iota + 1
	// ShapeEnvelope is {"result_code": 200, "data": ...}.
	ShapeEnvelope
	// ShapeDiaries is a folder detail object carrying a "diaries" array.
	ShapeDiaries
)

func (s Shape) String() string {
	switch s {
	case ShapeBare:
		return "bare"
	case ShapeEnvelope:
		return "envelope"
	case ShapeDiaries:
		return "diaries"
	default:
		return "unknown"
	}
}

// FlexID is an identifier the backend sends either as a number or a string.
type FlexID string

func (f *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id is neither string nor number: %s", string(b))
	}
	*f = FlexID(n.String())
	return nil
}

type FolderList struct {
	Folders []models.Folder
	Shape   Shape
}

// ServerDiary is a diary as listed inside a folder detail.
type ServerDiary struct {
	DiaryID    FlexID   `json:"diaryId"`
	TravelDate string   `json:"travelDate"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	ImageURL   string   `json:"imageUrl"`
	Hashtags   []string `json:"hashtags"`
}

type FolderDetail struct {
	FolderID  FlexID        `json:"folderId"`
	Title     string        `json:"title"`
	StartDate string        `json:"startDate"`
	EndDate   string        `json:"endDate"`
	Image     string        `json:"image"`
	Tags      []string      `json:"tag"`
	Diaries   []ServerDiary `json:"diaries"`

	Shape Shape `json:"-"`
}

// CreateDiaryRequest is sent as multipart/form-data: one "images" part per
// file and a "data" part with the JSON metadata.
type CreateDiaryRequest struct {
	FolderID   int64
	Date       string
	Visibility models.Visibility
	Emotions   []string
	// Images are local file paths.
	Images []string
}

type CreatedDiary struct {
	DiaryID string
	Title   string
	Content string
}

type emotionRef struct {
	Emotion struct {
		Name string `json:"name"`
	} `json:"emotion"`
}

// DiaryDetail is the answer of GET {diaryBase}/{id}.
type DiaryDetail struct {
	DiaryID    FlexID       `json:"diaryId"`
	TravelDate string       `json:"travelDate"`
	Title      string       `json:"title"`
	Content    string       `json:"content"`
	ImageURL   string       `json:"imageUrl"`
	Emotions   []emotionRef `json:"emotions"`
	Visibility string       `json:"visibility"`
	CreatedAt  string       `json:"createdAt"`
}

// Diary converts the detail into a store record. The backend does not say
// which folder the diary belongs to, so FolderID stays empty.
func (d DiaryDetail) Diary() models.Diary {
	out := models.Diary{
		ID:         string(d.DiaryID),
		Date:       d.TravelDate,
		Title:      d.Title,
		Content:    d.Content,
		Images:     []string{},
		Emotions:   []string{},
		Visibility: models.VisibilityPublic,
		CreatedAt:  parseTime(d.CreatedAt),
	}
	if d.ImageURL != "" {
		out.Images = append(out.Images, d.ImageURL)
	}
	for _, e := range d.Emotions {
		if e.Emotion.Name != "" {
			out.Emotions = append(out.Emotions, e.Emotion.Name)
		}
	}
	if v, err := models.ParseVisibility(d.Visibility); err == nil {
		out.Visibility = v
	}
	return out
}

type publicDiaryWire struct {
	ID             FlexID `json:"id"`
	Content        string `json:"content"`
	CreatedAt      string `json:"createdAt"`
	AuthorNickname string `json:"authorNickname"`
	ThumbnailURL   string `json:"thumbnailUrl"`
}

func (w publicDiaryWire) model() models.PublicDiary {
	return models.PublicDiary{
		ID:             string(w.ID),
		Content:        w.Content,
		CreatedAt:      parseTime(w.CreatedAt),
		AuthorNickname: w.AuthorNickname,
		ThumbnailURL:   w.ThumbnailURL,
	}
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02 15:04:05"}

// parseTime reads the backend's timestamps, with or without a zone. The
// zero time is returned for anything else.
func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

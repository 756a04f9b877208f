package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/tripdiary/internal/client/models"
)

// The backend answers the same endpoint in more than one layout. Each
// decoder below tries the accepted shapes in a fixed order and maps
// anything else to ErrUnexpectedResponse.

const resultCodeOK = 200

type envelope struct {
	ResultCode *int            `json:"result_code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

// okData reports whether b is an envelope with result_code 200 and returns
// its data (nil when absent or null).
func okData(b []byte) (json.RawMessage, bool, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, false, nil
	}
	if env.ResultCode == nil {
		return nil, false, nil
	}
	if *env.ResultCode != resultCodeOK {
		return nil, false, fmt.Errorf("%w: result_code %d: %s", ErrUnexpectedResponse, *env.ResultCode, env.Message)
	}
	if isNull(env.Data) {
		return nil, true, nil
	}
	return env.Data, true, nil
}

func isNull(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) == 0 || bytes.Equal(b, []byte("null"))
}

func firstByte(b []byte) byte {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return 0
	}
	return b[0]
}

func unexpected(what string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrUnexpectedResponse, what)
	}
	return fmt.Errorf("%w: %s: %v", ErrUnexpectedResponse, what, err)
}

// decodeFolderList accepts a bare array or an envelope around one.
func decodeFolderList(b []byte) (*FolderList, error) {
	switch firstByte(b) {
	case '[':
		var fs []models.Folder
		if err := json.Unmarshal(b, &fs); err != nil {
			return nil, unexpected("folder list", err)
		}
		return &FolderList{Folders: fs, Shape: ShapeBare}, nil

	case '{':
		data, ok, err := okData(b)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, unexpected("folder list object without result_code", nil)
		}
		list := &FolderList{Folders: []models.Folder{}, Shape: ShapeEnvelope}
		if data == nil {
			return list, nil
		}
		if err := json.Unmarshal(data, &list.Folders); err != nil {
			return nil, unexpected("folder list data", err)
		}
		return list, nil
	}
	return nil, unexpected("folder list", nil)
}

// decodeFolderDetail tries, in order: an object with a "diaries" array, an
// envelope whose data is the detail, and finally any bare object.
func decodeFolderDetail(b []byte) (*FolderDetail, error) {
	if firstByte(b) != '{' {
		return nil, unexpected("folder detail", nil)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(b, &probe); err != nil {
		return nil, unexpected("folder detail", err)
	}

	if raw, ok := probe["diaries"]; ok && firstByte(raw) == '[' {
		return unmarshalDetail(b, ShapeDiaries)
	}

	data, ok, err := okData(b)
	if err != nil {
		return nil, err
	}
	if ok && data != nil {
		if firstByte(data) != '{' {
			return nil, unexpected("folder detail data", nil)
		}
		return unmarshalDetail(data, ShapeEnvelope)
	}

	return unmarshalDetail(b, ShapeBare)
}

func unmarshalDetail(b []byte, shape Shape) (*FolderDetail, error) {
	var d FolderDetail
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, unexpected("folder detail", err)
	}
	d.Shape = shape
	return &d, nil
}

// decodeCreatedFolderID pulls an optional folderId out of a create answer.
// Empty or unrelated bodies are fine: the ID is optional.
func decodeCreatedFolderID(b []byte) *int64 {
	if firstByte(b) != '{' {
		return nil
	}

	type idOnly struct {
		FolderID FlexID `json:"folderId"`
	}

	var top idOnly
	_ = json.Unmarshal(b, &top)
	if id, ok := parseInt64(top.FolderID); ok {
		return &id
	}

	if data, ok, _ := okData(b); ok && firstByte(data) == '{' {
		var inner idOnly
		_ = json.Unmarshal(data, &inner)
		if id, ok := parseInt64(inner.FolderID); ok {
			return &id
		}
	}
	return nil
}

func parseInt64(id FlexID) (int64, bool) {
	if id == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(string(id), 10, 64)
	return n, err == nil
}

// decodeCreatedDiary accepts {"diaryId": ...} or the older
// {"result_code": 200, "data": {"diary_id": ...}}. A missing id is an
// unexpected response.
func decodeCreatedDiary(b []byte) (*CreatedDiary, error) {
	type created struct {
		DiaryID    FlexID `json:"diaryId"`
		DiaryIDOld FlexID `json:"diary_id"`
		Title      string `json:"title"`
		Content    string `json:"content"`
	}

	if firstByte(b) != '{' {
		return nil, unexpected("diary create", nil)
	}

	read := func(raw []byte) *CreatedDiary {
		var c created
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil
		}
		id := c.DiaryID
		if id == "" {
			id = c.DiaryIDOld
		}
		if id == "" {
			return nil
		}
		return &CreatedDiary{DiaryID: string(id), Title: c.Title, Content: c.Content}
	}

	if c := read(b); c != nil {
		return c, nil
	}
	data, ok, err := okData(b)
	if err != nil {
		return nil, err
	}
	if ok && firstByte(data) == '{' {
		if c := read(data); c != nil {
			return c, nil
		}
	}
	return nil, unexpected("diary create without diaryId", nil)
}

func decodeDiaryDetail(b []byte) (*DiaryDetail, error) {
	if firstByte(b) != '{' {
		return nil, unexpected("diary detail", nil)
	}

	raw := json.RawMessage(b)
	if data, ok, err := okData(b); err != nil {
		return nil, err
	} else if ok && data != nil {
		raw = data
	}

	var d DiaryDetail
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, unexpected("diary detail", err)
	}
	if d.DiaryID == "" {
		return nil, unexpected("diary detail without diaryId", nil)
	}
	return &d, nil
}

// decodePublicDiaries accepts a bare array or an envelope around one.
func decodePublicDiaries(b []byte) ([]models.PublicDiary, error) {
	raw := json.RawMessage(b)
	if firstByte(b) == '{' {
		data, ok, err := okData(b)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, unexpected("public diaries", nil)
		}
		if data == nil {
			return []models.PublicDiary{}, nil
		}
		raw = data
	}
	if firstByte(raw) != '[' {
		return nil, unexpected("public diaries", nil)
	}

	var wire []publicDiaryWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, unexpected("public diaries", err)
	}
	out := make([]models.PublicDiary, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.model())
	}
	return out, nil
}

// checkResultCode is used by update and delete, which only succeed with an
// explicit result_code 200.
func checkResultCode(b []byte) error {
	_, ok, err := okData(b)
	if err != nil {
		return err
	}
	if !ok {
		return unexpected("missing result_code", nil)
	}
	return nil
}

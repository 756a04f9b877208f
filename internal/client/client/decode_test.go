package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFolderList(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		shape   Shape
		wantErr bool
	}{
		{"bare array", `[{"folderId":1,"title":"a"},{"folderId":2,"title":"b"}]`, 2, ShapeBare, false},
		{"envelope", `{"result_code":200,"data":[{"folderId":1}]}`, 1, ShapeEnvelope, false},
		{"envelope null data", `{"result_code":200,"data":null}`, 0, ShapeEnvelope, false},
		{"envelope bad code", `{"result_code":500,"message":"boom"}`, 0, 0, true},
		{"object without code", `{"folders":[]}`, 0, 0, true},
		{"string", `"nope"`, 0, 0, true},
		{"empty", ``, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeFolderList([]byte(tt.body))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnexpectedResponse)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got.Folders, tt.want)
			assert.Equal(t, tt.shape, got.Shape)
		})
	}
}

func TestDecodeFolderDetail_ShapesInOrder(t *testing.T) {
	a, err := decodeFolderDetail([]byte(`{"folderId":"5","title":"t","diaries":[{"diaryId":11,"travelDate":"2024-05-01","title":"x"}]}`))
	require.NoError(t, err)
	assert.Equal(t, ShapeDiaries, a.Shape)
	require.Len(t, a.Diaries, 1)
	assert.Equal(t, FlexID("11"), a.Diaries[0].DiaryID)

	b, err := decodeFolderDetail([]byte(`{"result_code":200,"data":{"folderId":5,"title":"t","diaries":[]}}`))
	require.NoError(t, err)
	assert.Equal(t, ShapeEnvelope, b.Shape)
	assert.Equal(t, FlexID("5"), b.FolderID)

	c, err := decodeFolderDetail([]byte(`{"folderId":5,"title":"plain"}`))
	require.NoError(t, err)
	assert.Equal(t, ShapeBare, c.Shape)
	assert.Equal(t, "plain", c.Title)
	assert.Empty(t, c.Diaries)

	_, err = decodeFolderDetail([]byte(`[1,2]`))
	require.ErrorIs(t, err, ErrUnexpectedResponse)

	_, err = decodeFolderDetail([]byte(`{"result_code":404}`))
	require.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestDecodeCreatedFolderID(t *testing.T) {
	id := decodeCreatedFolderID([]byte(`{"folderId":77}`))
	require.NotNil(t, id)
	assert.Equal(t, int64(77), *id)

	id = decodeCreatedFolderID([]byte(`{"result_code":200,"data":{"folderId":"78"}}`))
	require.NotNil(t, id)
	assert.Equal(t, int64(78), *id)

	assert.Nil(t, decodeCreatedFolderID([]byte(`{"result_code":200}`)))
	assert.Nil(t, decodeCreatedFolderID([]byte(``)))
	assert.Nil(t, decodeCreatedFolderID([]byte(`{"folderId":"abc"}`)))
}

func TestDecodeCreatedDiary(t *testing.T) {
	d, err := decodeCreatedDiary([]byte(`{"diaryId":12,"title":"Sunny","content":"Walked"}`))
	require.NoError(t, err)
	assert.Equal(t, &CreatedDiary{DiaryID: "12", Title: "Sunny", Content: "Walked"}, d)

	d, err = decodeCreatedDiary([]byte(`{"result_code":200,"data":{"diary_id":"abc"}}`))
	require.NoError(t, err)
	assert.Equal(t, "abc", d.DiaryID)
	assert.Empty(t, d.Title)

	_, err = decodeCreatedDiary([]byte(`{"title":"no id"}`))
	require.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestDecodeDiaryDetail(t *testing.T) {
	body := `{"diaryId":3,"travelDate":"2024-05-01","title":"T","content":"C",
		"imageUrl":"https://img/3.jpg","emotions":[{"emotion":{"name":"happy"}}],
		"visibility":"PRIVATE","createdAt":"2024-05-01T10:00:00"}`
	d, err := decodeDiaryDetail([]byte(body))
	require.NoError(t, err)

	diary := d.Diary()
	assert.Equal(t, "3", diary.ID)
	assert.Equal(t, []string{"https://img/3.jpg"}, diary.Images)
	assert.Equal(t, []string{"happy"}, diary.Emotions)
	assert.Equal(t, "private", string(diary.Visibility))
	assert.Equal(t, 2024, diary.CreatedAt.Year())

	_, err = decodeDiaryDetail([]byte(`{"title":"no id"}`))
	require.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestDecodePublicDiaries(t *testing.T) {
	got, err := decodePublicDiaries([]byte(`[{"id":1,"content":"c","authorNickname":"kim","createdAt":"2024-05-01T10:00:00Z"}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "kim", got[0].AuthorNickname)

	got, err = decodePublicDiaries([]byte(`{"result_code":200,"data":null}`))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = decodePublicDiaries([]byte(`{"id":1}`))
	require.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestCheckResultCode(t *testing.T) {
	require.NoError(t, checkResultCode([]byte(`{"result_code":200}`)))
	require.ErrorIs(t, checkResultCode([]byte(`{"result_code":400,"message":"bad"}`)), ErrUnexpectedResponse)
	require.ErrorIs(t, checkResultCode([]byte(`{}`)), ErrUnexpectedResponse)
}

func TestFlexID(t *testing.T) {
	var v struct {
		A FlexID `json:"a"`
		B FlexID `json:"b"`
		C FlexID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":1,"b":"x","c":null}`), &v))
	assert.Equal(t, FlexID("1"), v.A)
	assert.Equal(t, FlexID("x"), v.B)
	assert.Equal(t, FlexID(""), v.C)

	require.Error(t, json.Unmarshal([]byte(`{"a":true}`), &v))
}

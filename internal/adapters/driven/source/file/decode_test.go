package file

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shardcat/internal/core/domain"
)

func TestDecode_Formats(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		body       string
		wantFamily string
		want       []domain.RawRecord
	}{
		{
			name:       "json array",
			file:       "tools.json",
			body:       `[{"name":"Otter","rating":4.5,"tags":["audio"]}]`,
			wantFamily: "tools",
			want:       []domain.RawRecord{{"name": "Otter", "rating": 4.5, "tags": []any{"audio"}}},
		},
		{
			name:       "json object with family",
			file:       "a.json",
			body:       `{"family":"tools:phase-a","records":[{"name":"Otter"}]}`,
			wantFamily: "tools:phase-a",
			want:       []domain.RawRecord{{"name": "Otter"}},
		},
		{
			name:       "yaml array",
			file:       "repos.yaml",
			body:       "- name: whisper\n  stars: 50000\n  topics: [speech, ml]\n",
			wantFamily: "repos",
			want: []domain.RawRecord{{
				"name": "whisper", "stars": 50000, "topics": []any{"speech", "ml"},
			}},
		},
		{
			name:       "yaml object with nested map",
			file:       "countries.yml",
			body:       "family: countries\nrecords:\n  - name: Canada\n    extra:\n      1: one\n",
			wantFamily: "countries",
			want: []domain.RawRecord{{
				"name": "Canada", "extra": map[string]any{"1": "one"},
			}},
		},
		{
			name:       "toml tables",
			file:       "resources.toml",
			body:       "family = \"courses\"\n\n[[records]]\ntitle = \"CS50\"\nstudents = 4000000\n",
			wantFamily: "courses",
			want:       []domain.RawRecord{{"title": "CS50", "students": int64(4000000)}},
		},
		{
			name:       "blank family falls back to stem",
			file:       "tools.json",
			body:       `{"family":"  ","records":[]}`,
			wantFamily: "tools",
			want:       []domain.RawRecord{},
		},
		{
			name:       "empty yaml",
			file:       "empty.yaml",
			body:       "",
			wantFamily: "empty",
			want:       []domain.RawRecord{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shard, err := Decode(tt.file, []byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantFamily, shard.FamilyID)
			assert.Equal(t, tt.file, shard.Origin)
			assert.Equal(t, tt.want, shard.Records)
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		wantErr error
	}{
		{"unsupported extension", "tools.csv", "name\nOtter", domain.ErrUnsupportedType},
		{"scalar record", "tools.json", `[1, 2]`, domain.ErrInvalidInput},
		{"scalar document", "tools.json", `"hello"`, domain.ErrInvalidInput},
		{"records not a list", "tools.json", `{"records":{"name":"x"}}`, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.file, []byte(tt.body))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		_, err := Decode("tools.json", []byte(`[{`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing tools.json")
	})
}

func TestDecode_Timestamps(t *testing.T) {
	shard, err := Decode("tools.yaml", []byte("- name: Otter\n  launched: 2016-02-01T00:00:00Z\n"))
	require.NoError(t, err)
	require.Len(t, shard.Records, 1)

	want := time.Date(2016, 2, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
	assert.Equal(t, want, shard.Records[0]["launched"])

	shard, err = Decode("tools.toml", []byte("[[records]]\nname = \"Otter\"\nlaunched = 2016-02-01\n"))
	require.NoError(t, err)
	assert.Equal(t, "2016-02-01", shard.Records[0]["launched"])
}

func TestIsShardFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"tools.json", true},
		{"/data/Repos.YAML", true},
		{"countries.yml", true},
		{"resources.toml", true},
		{".tools.json", false},
		{"notes.md", false},
		{"tools.json.swp", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsShardFile(tt.path))
		})
	}
}

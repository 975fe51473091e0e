package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		keys     []Key
		wantText string
		want     map[Key]string
	}{
		{
			name:     "only text",
			input:    "Finish the report",
			keys:     EditKeys,
			wantText: "Finish the report",
			want:     map[Key]string{},
		},
		{
			name:     "text with params",
			input:    "Finish report who=Bob category=Work tags=urgent,important",
			keys:     EditKeys,
			wantText: "Finish report",
			want:     map[Key]string{KeyWho: "Bob", KeyCategory: "Work", KeyTags: "urgent,important"},
		},
		{
			name:     "commas in description",
			input:    "Buy milk, eggs, bread who=Alice tags=grocery,food",
			keys:     EditKeys,
			wantText: "Buy milk, eggs, bread",
			want:     map[Key]string{KeyWho: "Alice", KeyTags: "grocery,food"},
		},
		{
			name:     "spaces around equals",
			input:    "Do homework who = Alice category = School tags = urgent,homework",
			keys:     EditKeys,
			wantText: "Do homework",
			want:     map[Key]string{KeyWho: "Alice", KeyCategory: "School", KeyTags: "urgent,homework"},
		},
		{
			name:     "values keep spaces",
			input:    "call who=Alice Smith category=Home office",
			keys:     EditKeys,
			wantText: "call",
			want:     map[Key]string{KeyWho: "Alice Smith", KeyCategory: "Home office"},
		},
		{
			name:     "unrecognized key stays in text",
			input:    "set x=5 in config who=me",
			keys:     EditKeys,
			wantText: "set x=5 in config",
			want:     map[Key]string{KeyWho: "me"},
		},
		{
			name:     "unrecognized key is absorbed into value",
			input:    "deploy who=ops priority=high",
			keys:     EditKeys,
			wantText: "deploy",
			want:     map[Key]string{KeyWho: "ops priority=high"},
		},
		{
			name:     "list key is plain text for edit commands",
			input:    "rename task=foo who=me",
			keys:     EditKeys,
			wantText: "rename task=foo",
			want:     map[Key]string{KeyWho: "me"},
		},
		{
			name:     "key must start a token",
			input:    "fix anywho=x",
			keys:     EditKeys,
			wantText: "fix anywho=x",
			want:     map[Key]string{},
		},
		{
			name:     "key names are case-sensitive",
			input:    "ping Who=Bob",
			keys:     EditKeys,
			wantText: "ping Who=Bob",
			want:     map[Key]string{},
		},
		{
			name:     "last repeated key wins",
			input:    "x who=a who=b",
			keys:     EditKeys,
			wantText: "x",
			want:     map[Key]string{KeyWho: "b"},
		},
		{
			name:     "empty value",
			input:    "x who= category=c",
			keys:     EditKeys,
			wantText: "x",
			want:     map[Key]string{KeyWho: "", KeyCategory: "c"},
		},
		{
			name:     "list keys",
			input:    "task=report show_completed=1",
			keys:     ListKeys,
			wantText: "",
			want:     map[Key]string{KeyTask: "report", KeyShowCompleted: "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := ParseArgs(tt.input, tt.keys)
			assert.Equal(t, tt.wantText, args.Text)
			assert.Equal(t, tt.want, args.Params)
		})
	}
}

func TestParseAdd(t *testing.T) {
	t.Run("description and metadata", func(t *testing.T) {
		draft, err := ParseAdd("buy milk who=alice category=errand")
		require.NoError(t, err)
		assert.Equal(t, "buy milk", draft.Description)
		assert.Equal(t, "alice", draft.Who)
		assert.Equal(t, "errand", draft.Category)
		assert.Empty(t, draft.Tags)
	})

	t.Run("tags become a set", func(t *testing.T) {
		draft, err := ParseAdd("fix bug tags=urgent,backend,urgent")
		require.NoError(t, err)
		assert.Equal(t, "fix bug", draft.Description)
		assert.ElementsMatch(t, []string{"urgent", "backend"}, draft.Tags)
	})

	t.Run("description is trimmed", func(t *testing.T) {
		draft, err := ParseAdd("   water the plants   ")
		require.NoError(t, err)
		assert.Equal(t, "water the plants", draft.Description)
		assert.Empty(t, draft.Who)
		assert.Empty(t, draft.Category)
		assert.Nil(t, draft.Tags)
	})

	t.Run("no arguments", func(t *testing.T) {
		_, err := ParseAdd("  ")
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Equal(t, MsgDescriptionMissing, err.Error())
	})

	t.Run("only metadata", func(t *testing.T) {
		_, err := ParseAdd("who=alice")
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Equal(t, MsgDescriptionEmpty, err.Error())
	})
}

func TestParseDone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr string
	}{
		{name: "valid id", input: "42", want: 42},
		{name: "surrounding space", input: "  7 ", want: 7},
		{name: "extra tokens ignored", input: "3 please", want: 3},
		{name: "missing id", input: "", wantErr: MsgDoneUsage},
		{name: "not a number", input: "abc", wantErr: MsgInvalidID},
		{name: "zero", input: "0", wantErr: MsgInvalidID},
		{name: "negative", input: "-4", wantErr: MsgInvalidID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseDone(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, IsValidation(err))
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestParseUpdate(t *testing.T) {
	t.Run("text and who only", func(t *testing.T) {
		id, changes, err := ParseUpdate("5 newtext who=bob")
		require.NoError(t, err)
		assert.Equal(t, int64(5), id)
		require.NotNil(t, changes.Description)
		assert.Equal(t, "newtext", *changes.Description)
		require.NotNil(t, changes.Who)
		assert.Equal(t, "bob", *changes.Who)
		assert.Nil(t, changes.Category)
		assert.Nil(t, changes.Tags)
	})

	t.Run("metadata without text keeps description", func(t *testing.T) {
		id, changes, err := ParseUpdate("12 category=home tags=a,b")
		require.NoError(t, err)
		assert.Equal(t, int64(12), id)
		assert.Nil(t, changes.Description)
		require.NotNil(t, changes.Category)
		assert.Equal(t, "home", *changes.Category)
		require.NotNil(t, changes.Tags)
		assert.ElementsMatch(t, []string{"a", "b"}, *changes.Tags)
	})

	t.Run("explicit empty tags clears them", func(t *testing.T) {
		_, changes, err := ParseUpdate("1 tags=")
		require.NoError(t, err)
		require.NotNil(t, changes.Tags)
		assert.Empty(t, *changes.Tags)
		assert.Equal(t, "", changes.Columns()["tags"])
	})

	t.Run("missing arguments", func(t *testing.T) {
		_, _, err := ParseUpdate("")
		require.Error(t, err)
		assert.Equal(t, MsgUpdateUsage, err.Error())
	})

	t.Run("non-integer id", func(t *testing.T) {
		_, _, err := ParseUpdate("five new text")
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Equal(t, MsgInvalidID, err.Error())
	})

	t.Run("nothing to update", func(t *testing.T) {
		_, _, err := ParseUpdate("9")
		require.Error(t, err)
		assert.Equal(t, MsgNothingToUpdate, err.Error())
	})
}

func TestParseList(t *testing.T) {
	t.Run("no arguments", func(t *testing.T) {
		assert.Equal(t, Filter{}, ParseList(""))
	})

	t.Run("all keys", func(t *testing.T) {
		f := ParseList("task=report who=Bob category=Work tags=a,b show_completed=1")
		assert.Equal(t, "report", f.Task)
		assert.Equal(t, "Bob", f.Who)
		assert.Equal(t, "Work", f.Category)
		assert.Equal(t, []string{"a", "b"}, f.Tags)
		assert.True(t, f.ShowCompleted)
	})

	t.Run("show_completed other than 1", func(t *testing.T) {
		for _, v := range []string{"0", "yes", "true", ""} {
			assert.False(t, ParseList("show_completed="+v).ShowCompleted, v)
		}
	})
}

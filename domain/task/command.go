package task

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Key is a metadata key recognized in command arguments.
type Key string

// Recognized metadata keys.
const (
	KeyTask          Key = "task"
	KeyWho           Key = "who"
	KeyCategory      Key = "category"
	KeyTags          Key = "tags"
	KeyShowCompleted Key = "show_completed"
)

// EditKeys are the keys understood by /add and /update.
var EditKeys = []Key{KeyWho, KeyCategory, KeyTags}

// ListKeys are the keys understood by /list.
var ListKeys = []Key{KeyTask, KeyWho, KeyCategory, KeyTags, KeyShowCompleted}

// Usage and validation messages shown to the user.
const (
	MsgDescriptionMissing = "You must provide a task description."
	MsgDescriptionEmpty   = "Task description cannot be empty."
	MsgDoneUsage          = "Specify the task ID to complete: /done <id>"
	MsgUpdateUsage        = "Specify the task ID and fields: /update <id> <new description> [who=..., category=..., tags=...]"
	MsgInvalidID          = "Invalid task ID"
	MsgNothingToUpdate    = "No valid fields to update."
)

var (
	editPattern = keyPattern(EditKeys)
	listPattern = keyPattern(ListKeys)
)

// keyPattern matches "<key>=" at the start of the text or after whitespace.
// Whitespace around '=' is allowed.
func keyPattern(keys []Key) *regexp.Regexp {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = regexp.QuoteMeta(string(k))
	}
	return regexp.MustCompile(`(?:^|\s)(` + strings.Join(names, "|") + `)\s*=`)
}

// Args is a command line split into its free text and metadata values.
type Args struct {
	Text   string
	Params map[Key]string
}

// Get returns the value supplied for key and whether it was supplied at all.
func (a Args) Get(key Key) (string, bool) {
	v, ok := a.Params[key]
	return v, ok
}

// ParseArgs splits text into the free text before the first recognized key and
// the key=value pairs after it. Each value runs up to the next recognized key.
// Text that looks like key=value with an unrecognized key stays where it is.
// When a key repeats, the last value wins.
func ParseArgs(text string, keys []Key) Args {
	return parseWith(text, keyPattern(keys))
}

func parseWith(text string, pattern *regexp.Regexp) Args {
	args := Args{Params: make(map[Key]string)}

	locs := pattern.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		args.Text = strings.TrimSpace(text)
		return args
	}

	// loc[2]:loc[3] is the key, loc[1] is just past the '='.
	args.Text = strings.TrimSpace(text[:locs[0][2]])
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][2]
		}
		args.Params[Key(text[loc[2]:loc[3]])] = strings.TrimSpace(text[loc[1]:end])
	}
	return args
}

// ParseAdd parses the arguments of /add.
func ParseAdd(text string) (Draft, error) {
	if strings.TrimSpace(text) == "" {
		return Draft{}, Invalid(MsgDescriptionMissing)
	}

	args := parseWith(text, editPattern)
	if args.Text == "" {
		return Draft{}, Invalid(MsgDescriptionEmpty)
	}

	draft := Draft{Description: args.Text}
	draft.Who, _ = args.Get(KeyWho)
	draft.Category, _ = args.Get(KeyCategory)
	if tags, ok := args.Get(KeyTags); ok {
		draft.Tags = ParseTags(tags)
	}
	return draft, nil
}

// ParseDone parses the arguments of /done. Tokens after the id are ignored.
func ParseDone(text string) (int64, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, Invalid(MsgDoneUsage)
	}
	return parseID(fields[0])
}

// ParseUpdate parses the arguments of /update: an id, optional new
// description text and optional who/category/tags values.
func ParseUpdate(text string) (int64, Changes, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, Changes{}, Invalid(MsgUpdateUsage)
	}

	head, rest := text, ""
	if i := strings.IndexFunc(text, unicode.IsSpace); i >= 0 {
		head, rest = text[:i], text[i:]
	}

	id, err := parseID(head)
	if err != nil {
		return 0, Changes{}, err
	}

	args := parseWith(rest, editPattern)

	var changes Changes
	if args.Text != "" {
		desc := args.Text
		changes.Description = &desc
	}
	if who, ok := args.Get(KeyWho); ok {
		changes.Who = &who
	}
	if category, ok := args.Get(KeyCategory); ok {
		changes.Category = &category
	}
	if raw, ok := args.Get(KeyTags); ok {
		tags := ParseTags(raw)
		if tags == nil {
			tags = []string{}
		}
		changes.Tags = &tags
	}

	if changes.IsEmpty() {
		return 0, Changes{}, Invalid(MsgNothingToUpdate)
	}
	return id, changes, nil
}

// ParseList parses the arguments of /list into a Filter. Free text before the
// first key is ignored.
func ParseList(text string) Filter {
	args := parseWith(text, listPattern)

	var f Filter
	f.Task, _ = args.Get(KeyTask)
	f.Who, _ = args.Get(KeyWho)
	f.Category, _ = args.Get(KeyCategory)
	if tags, ok := args.Get(KeyTags); ok {
		f.Tags = ParseTags(tags)
	}
	if v, ok := args.Get(KeyShowCompleted); ok {
		f.ShowCompleted = v == "1"
	}
	return f
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, Invalid(MsgInvalidID)
	}
	return id, nil
}

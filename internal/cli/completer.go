package cli

import (
	"strings"

	"cms-cli/internal/docs"
	"cms-cli/internal/mutate"
)

// shellCompleter provides context-aware tab completion for the interactive
// shell: command names in the first position, then category names, content
// names, or field names depending on the command and argument position.
type shellCompleter struct {
	app *App
}

func (c *shellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	before := string(line[:pos])
	word := currentWord(before)

	var out [][]rune
	for _, cand := range completeCandidates(c.app, before) {
		if strings.HasPrefix(cand, word) {
			out = append(out, []rune(cand[len(word):]))
		}
	}
	return out, len([]rune(word))
}

// currentWord is the token under the cursor, empty when the cursor sits on
// whitespace (i.e. a fresh argument is being started).
func currentWord(before string) string {
	if before == "" || strings.ContainsAny(before[len(before)-1:], " \t") {
		return ""
	}
	fields := strings.Fields(before)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// completeCandidates returns every candidate for the argument position at
// the end of before; filtering by the typed prefix is the caller's job.
func completeCandidates(app *App, before string) []string {
	tokens := strings.Fields(before)
	argIndex := len(tokens) - 1
	if currentWord(before) == "" {
		argIndex++
	}
	if argIndex <= 0 {
		return commandNames()
	}

	switch strings.ToLower(tokens[0]) {
	case "get_category", "delete_category":
		if argIndex == 1 {
			return categoryNames(app)
		}
	case "update_category", "tree_edit":
		switch argIndex {
		case 1:
			return categoryNames(app)
		case 2:
			return append(categoryNames(app), "none")
		}
	case "add_category":
		if argIndex == 2 {
			return categoryNames(app)
		}
	case "get_content", "delete_content":
		if argIndex == 1 {
			return contentNames(app)
		}
	case "update_content":
		switch argIndex {
		case 1:
			return contentNames(app)
		case 2:
			return []string{mutate.FieldArchived, mutate.FieldCategories}
		case 3:
			switch strings.ToLower(tokens[2]) {
			case mutate.FieldCategories:
				return categoryNames(app)
			case mutate.FieldArchived:
				return []string{"false", "true"}
			}
		}
	case "add_content":
		if argIndex >= 2 {
			return categoryNames(app)
		}
	case "help":
		if argIndex == 1 {
			return docs.Topics()
		}
	}
	return nil
}

func commandNames() []string {
	out := make([]string, 0, len(shellCommands))
	for _, c := range shellCommands {
		out = append(out, c.name)
	}
	return out
}

func categoryNames(app *App) []string {
	cats := app.DB.SortedCategories()
	out := make([]string, 0, len(cats))
	for _, c := range cats {
		out = append(out, c.Name)
	}
	return out
}

func contentNames(app *App) []string {
	conts := app.DB.SortedContents()
	out := make([]string, 0, len(conts))
	for _, c := range conts {
		out = append(out, c.Name)
	}
	return out
}

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"cms-cli/internal/docs"
	"cms-cli/internal/format"
	"cms-cli/internal/model"
	"cms-cli/internal/mutate"
	"cms-cli/internal/tree"
	"cms-cli/internal/tui"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

// UsageError is a malformed command line: wrong arity or an unparseable
// argument. It is surfaced as a one-line usage hint, never as a crash.
type UsageError struct {
	Usage string
}

func (e UsageError) Error() string {
	return "usage: " + e.Usage
}

type shell struct {
	app *App
	out io.Writer
	// editor launches the full-screen tree editor; tests swap it out so
	// dispatch can be exercised without a terminal.
	editor func() error
}

type shellCommand struct {
	name  string
	usage string
	// Argument arity after the command word. max -1 means unlimited.
	min, max int
	run      func(sh *shell, args []string) error
}

// errExitShell signals a clean "exit" without abusing a real error value.
var errExitShell = fmt.Errorf("exit")

// shellCommands is the closed command table: a line is either one of these
// or an unknown-command error. Filled in init to let handlers reference the
// table (help lists it).
var shellCommands []shellCommand

func init() {
	shellCommands = []shellCommand{
		{name: "add_category", usage: "add_category <name> [parent]", min: 1, max: 2, run: (*shell).addCategory},
		{name: "list_categories", usage: "list_categories", min: 0, max: 0, run: (*shell).listCategories},
		{name: "get_category", usage: "get_category <name>", min: 1, max: 1, run: (*shell).getCategory},
		{name: "update_category", usage: "update_category <name> <parent|none>", min: 2, max: 2, run: (*shell).updateCategory},
		{name: "delete_category", usage: "delete_category <name>", min: 1, max: 1, run: (*shell).deleteCategory},
		{name: "add_content", usage: "add_content <name> [category ...]", min: 1, max: -1, run: (*shell).addContent},
		{name: "list_contents", usage: "list_contents", min: 0, max: 0, run: (*shell).listContents},
		{name: "get_content", usage: "get_content <name>", min: 1, max: 1, run: (*shell).getContent},
		{name: "update_content", usage: "update_content <name> <field> <value>", min: 3, max: 3, run: (*shell).updateContent},
		{name: "delete_content", usage: "delete_content <name>", min: 1, max: 1, run: (*shell).deleteContent},
		{name: "seed_data", usage: "seed_data", min: 0, max: 0, run: (*shell).seedData},
		{name: "clear_all", usage: "clear_all", min: 0, max: 0, run: (*shell).clearAll},
		{name: "tree_view", usage: "tree_view", min: 0, max: 0, run: (*shell).treeView},
		{name: "tree_edit", usage: "tree_edit [name] [parent|none]", min: 0, max: 2, run: (*shell).treeEdit},
		{name: "tree_ui", usage: "tree_ui", min: 0, max: 0, run: (*shell).treeUI},
		{name: "export", usage: "export", min: 0, max: 0, run: (*shell).export},
		{name: "import", usage: "import <json>", min: 1, max: 1, run: (*shell).importJSON},
		{name: "events", usage: "events", min: 0, max: 0, run: (*shell).events},
		{name: "help", usage: "help [topic]", min: 0, max: 1, run: (*shell).help},
		{name: "exit", usage: "exit", min: 0, max: 0, run: func(sh *shell, args []string) error { return errExitShell }},
	}
}

func newShellCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive command shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(app, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runShell(app *App, in io.Reader, out io.Writer) error {
	sh := &shell{app: app, out: out}
	fmt.Fprintln(out, `Interactive shell. Type "help" for commands.`)

	// On a real terminal, readline provides line editing, history, and the
	// context-aware tab completer. Piped input falls back to a plain scan
	// loop (readline's terminal handling has nothing to offer there).
	if f, ok := in.(*os.File); ok && f == os.Stdin && readline.DefaultIsTerminal() {
		err := sh.runReadline()
		fmt.Fprintln(out, "Goodbye!")
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		if !sh.dispatch(scanner.Text()) {
			break
		}
	}
	fmt.Fprintln(out, "Goodbye!")
	return scanner.Err()
}

func (sh *shell) runReadline() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		AutoComplete:    &shellCompleter{app: sh.app},
		InterruptPrompt: "^C",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil { // EOF or closed terminal
			return nil
		}
		if !sh.dispatch(line) {
			return nil
		}
	}
}

// dispatch runs one line and reports whether the shell should keep going.
// Every error is recovered here; the prompt survives anything.
func (sh *shell) dispatch(line string) bool {
	tokens := splitShellWords(line)
	if len(tokens) == 0 {
		return true
	}
	name := strings.ToLower(tokens[0])
	args := tokens[1:]

	for _, c := range shellCommands {
		if c.name != name {
			continue
		}
		if len(args) < c.min || (c.max >= 0 && len(args) > c.max) {
			fmt.Fprintln(sh.out, UsageError{Usage: c.usage}.Error())
			return true
		}
		err := c.run(sh, args)
		if err == errExitShell {
			return false
		}
		if err != nil {
			fmt.Fprintln(sh.out, err.Error())
		}
		return true
	}

	fmt.Fprintf(sh.out, "unknown command: %s (try \"help\")\n", name)
	return true
}

func (sh *shell) addCategory(args []string) error {
	var parent *string
	if len(args) == 2 {
		parent = &args[1]
	}
	c, err := mutate.AddCategory(sh.app.DB, args[0], parent, nil)
	if err != nil {
		return err
	}
	sh.app.record("category.add", c.Name, c)
	fmt.Fprintf(sh.out, "Category %q added.\n", c.Name)
	return nil
}

func (sh *shell) listCategories(args []string) error {
	cats := sh.app.DB.SortedCategories()
	if len(cats) == 0 {
		fmt.Fprintln(sh.out, "No categories.")
		return nil
	}
	for _, c := range cats {
		fmt.Fprintln(sh.out, categoryLine(c))
	}
	return nil
}

func (sh *shell) getCategory(args []string) error {
	c, ok := sh.app.DB.FindCategory(args[0])
	if !ok {
		return mutate.NotFoundError{Kind: "category", Name: args[0]}
	}
	fmt.Fprintln(sh.out, categoryLine(*c))
	return nil
}

func (sh *shell) updateCategory(args []string) error {
	return sh.reparent(args[0], args[1], "category.update")
}

func (sh *shell) deleteCategory(args []string) error {
	policy, err := sh.app.orphanPolicy()
	if err != nil {
		return err
	}
	if err := mutate.DeleteCategory(sh.app.DB, args[0], policy); err != nil {
		return err
	}
	sh.app.record("category.delete", args[0], map[string]any{"orphans": string(policy)})
	fmt.Fprintln(sh.out, "Category deleted.")
	return nil
}

func (sh *shell) addContent(args []string) error {
	c, err := mutate.AddContent(sh.app.DB, args[0], args[1:])
	if err != nil {
		return err
	}
	sh.app.record("content.add", c.Name, c)
	fmt.Fprintf(sh.out, "Content %q added.\n", c.Name)
	return nil
}

func (sh *shell) listContents(args []string) error {
	contents := sh.app.DB.SortedContents()
	if len(contents) == 0 {
		fmt.Fprintln(sh.out, "No contents.")
		return nil
	}
	for _, c := range contents {
		fmt.Fprintln(sh.out, contentLine(c))
	}
	return nil
}

func (sh *shell) getContent(args []string) error {
	c, ok := sh.app.DB.FindContent(args[0])
	if !ok {
		return mutate.NotFoundError{Kind: "content", Name: args[0]}
	}
	fmt.Fprintln(sh.out, contentLine(*c))
	return nil
}

func (sh *shell) updateContent(args []string) error {
	c, err := mutate.UpdateContentField(sh.app.DB, args[0], args[1], args[2])
	if err != nil {
		return err
	}
	sh.app.record("content.set", c.Name, map[string]any{"field": args[1], "value": args[2]})
	fmt.Fprintln(sh.out, "Content updated.")
	return nil
}

func (sh *shell) deleteContent(args []string) error {
	if err := mutate.DeleteContent(sh.app.DB, args[0]); err != nil {
		return err
	}
	sh.app.record("content.delete", args[0], nil)
	fmt.Fprintln(sh.out, "Content deleted.")
	return nil
}

func (sh *shell) seedData(args []string) error {
	seed(sh.app)
	fmt.Fprintln(sh.out, "Sample data loaded.")
	return nil
}

func (sh *shell) clearAll(args []string) error {
	sh.app.DB.Clear()
	sh.app.record("store.clear", "", nil)
	fmt.Fprintln(sh.out, "All data cleared.")
	return nil
}

func (sh *shell) treeView(args []string) error {
	if len(sh.app.DB.Categories) == 0 {
		fmt.Fprintln(sh.out, "No categories.")
		return nil
	}
	return tree.Render(sh.out, tree.Build(sh.app.DB.Categories))
}

func (sh *shell) treeEdit(args []string) error {
	// Without both a name and a parent, fall through to the full-screen
	// editor, same as tree_ui.
	if len(args) < 2 {
		return sh.treeUI(nil)
	}
	return sh.reparent(args[0], args[1], "category.tree-edit")
}

func (sh *shell) treeUI(args []string) error {
	if sh.editor != nil {
		return sh.editor()
	}
	policy, err := sh.app.orphanPolicy()
	if err != nil {
		return err
	}
	return tui.Run(sh.app.DB, sh.app.Events, policy)
}

func (sh *shell) export(args []string) error {
	return format.WriteJSON(sh.out, format.Envelope(sh.app.DB), true)
}

func (sh *shell) importJSON(args []string) error {
	if err := sh.app.DB.LoadJSON([]byte(args[0])); err != nil {
		return err
	}
	sh.app.record("store.import", "", map[string]any{
		"categories": len(sh.app.DB.Categories),
		"contents":   len(sh.app.DB.Contents),
	})
	fmt.Fprintf(sh.out, "Imported %d categories and %d contents.\n",
		len(sh.app.DB.Categories), len(sh.app.DB.Contents))
	return nil
}

func (sh *shell) events(args []string) error {
	evs, err := sh.app.Events.List("")
	if err != nil {
		return err
	}
	if len(evs) == 0 {
		fmt.Fprintln(sh.out, "No events.")
		return nil
	}
	for _, ev := range evs {
		entity := ev.Entity
		if entity == "" {
			entity = "-"
		}
		fmt.Fprintf(sh.out, "%4d  %s  %-20s %s\n", ev.Seq, ev.TS.Format("15:04:05"), ev.Type, entity)
	}
	return nil
}

func (sh *shell) help(args []string) error {
	topic := "shell"
	if len(args) == 1 {
		topic = args[0]
	}
	body, ok := docs.Get(topic)
	if !ok {
		return fmt.Errorf("unknown help topic: %q (topics: %s)", topic, strings.Join(docs.Topics(), ", "))
	}
	fmt.Fprintln(sh.out, docs.Render(body, 80))
	return nil
}

// reparent implements update_category and tree_edit: both set a parent, with
// the literal "none" clearing it.
func (sh *shell) reparent(name, parent, evType string) error {
	var parentPtr *string
	if !strings.EqualFold(parent, "none") {
		parentPtr = &parent
	}
	c, err := mutate.SetCategoryParent(sh.app.DB, name, parentPtr)
	if err != nil {
		return err
	}
	sh.app.record(evType, c.Name, c)
	fmt.Fprintln(sh.out, "Category updated.")
	return nil
}

func categoryLine(c model.Category) string {
	parent := c.ParentName()
	if parent == "" {
		parent = "none"
	}
	return fmt.Sprintf("%s (parent: %s)", c.Name, parent)
}

func contentLine(c model.Content) string {
	cats := strings.Join(c.Categories, ",")
	if cats == "" {
		cats = "-"
	}
	return fmt.Sprintf("%s: categories=%s archived=%v", c.Name, cats, c.Archived)
}

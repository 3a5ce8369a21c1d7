package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"cms-cli/internal/docs"
	"cms-cli/internal/model"
	"cms-cli/internal/mutate"
	"cms-cli/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type tab int

const (
	tabTree tab = iota
	tabContents
)

type mode int

const (
	modeBrowse mode = iota
	modeInput
	modeParentPick
	modeContentEdit
	modeConfirm
	modeHelp
)

type inputKind int

const (
	inputAddRoot inputKind = iota
	inputAddChild
	inputRenameCategory
	inputAddContent
	inputRenameContent
)

type appModel struct {
	db      *store.DB
	log     *store.EventLog
	orphans mutate.OrphanPolicy

	width  int
	height int

	tab  tab
	mode mode

	// tree tab
	rows      []treeRow
	selected  int
	collapsed map[string]bool

	// contents tab
	contentsList list.Model

	// single-line input modal
	input       textinput.Model
	inputKind   inputKind
	inputTarget string

	// parent picker ("" = make root)
	pickerOptions []string
	pickerIndex   int
	pickerTarget  string

	// content editor: name / categories / archived
	editFields   [3]textinput.Model
	editFocus    int
	editOriginal string

	// pending delete confirmation
	confirmName    string
	confirmContent bool

	status    string
	statusErr bool
}

func newAppModel(db *store.DB, log *store.EventLog, orphans mutate.OrphanPolicy) appModel {
	m := appModel{
		db:        db,
		log:       log,
		orphans:   orphans,
		collapsed: map[string]bool{},
	}
	m.contentsList = newContentsList()
	m.refreshTree("")
	m.refreshContents("")
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

// record mirrors the CLI boundary: best-effort audit, never fatal.
func (m *appModel) record(evType, entity string, payload any) {
	_ = m.log.Append(evType, entity, payload)
}

func (m *appModel) refreshTree(keepSelected string) {
	m.rows = flattenTree(m.db, m.collapsed)
	if keepSelected != "" {
		for i, r := range m.rows {
			if r.category.Name == keepSelected {
				m.selected = i
				break
			}
		}
	}
	if m.selected >= len(m.rows) {
		m.selected = len(m.rows) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *appModel) refreshContents(keepSelected string) {
	items := make([]list.Item, 0, len(m.db.Contents))
	keep := 0
	for i, c := range m.db.SortedContents() {
		if c.Name == keepSelected {
			keep = i
		}
		items = append(items, contentItem{content: c})
	}
	m.contentsList.SetItems(items)
	if keepSelected != "" {
		m.contentsList.Select(keep)
	}
}

func (m *appModel) selectedCategory() (model.Category, bool) {
	if m.selected < 0 || m.selected >= len(m.rows) {
		return model.Category{}, false
	}
	return m.rows[m.selected].category, true
}

func (m *appModel) selectedContent() (model.Content, bool) {
	it, ok := m.contentsList.SelectedItem().(contentItem)
	if !ok {
		return model.Content{}, false
	}
	return it.content, true
}

func (m *appModel) say(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = false
}

func (m *appModel) sayErr(err error) {
	m.status = err.Error()
	m.statusErr = true
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.contentsList.SetSize(msg.Width, m.bodyHeight())
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeInput:
			return m.updateInput(msg)
		case modeParentPick:
			return m.updatePicker(msg)
		case modeContentEdit:
			return m.updateContentEdit(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		case modeHelp:
			m.mode = modeBrowse
			return m, nil
		}
		return m.updateBrowse(msg)
	}

	if m.tab == tabContents && m.mode == modeBrowse {
		var cmd tea.Cmd
		m.contentsList, cmd = m.contentsList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list filter is being typed into, every key belongs to it.
	if m.tab == tabContents && m.contentsList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.contentsList, cmd = m.contentsList.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		if m.tab == tabTree {
			m.tab = tabContents
		} else {
			m.tab = tabTree
		}
		m.status = ""
		return m, nil
	case "?":
		m.mode = modeHelp
		return m, nil
	}

	if m.tab == tabTree {
		return m.updateTreeKeys(msg)
	}
	return m.updateContentsKeys(msg)
}

func (m appModel) updateTreeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.rows)-1 {
			m.selected++
		}
	case "right", "l":
		if c, ok := m.selectedCategory(); ok && m.rows[m.selected].hasChildren {
			delete(m.collapsed, c.Name)
			m.refreshTree(c.Name)
		}
	case "left", "h":
		if c, ok := m.selectedCategory(); ok {
			if m.rows[m.selected].hasChildren && !m.collapsed[c.Name] {
				m.collapsed[c.Name] = true
				m.refreshTree(c.Name)
				break
			}
			// On a leaf (or an already-collapsed node), jump to the parent row.
			depth := m.rows[m.selected].depth
			for i := m.selected - 1; i >= 0; i-- {
				if m.rows[i].depth < depth {
					m.selected = i
					break
				}
			}
		}
	case "enter":
		if c, ok := m.selectedCategory(); ok && m.rows[m.selected].hasChildren {
			if m.collapsed[c.Name] {
				delete(m.collapsed, c.Name)
			} else {
				m.collapsed[c.Name] = true
			}
			m.refreshTree(c.Name)
		}
	case "a":
		if c, ok := m.selectedCategory(); ok {
			return m.openInput(inputAddChild, c.Name, "New category under "+c.Name, ""), nil
		}
		return m.openInput(inputAddRoot, "", "New root category", ""), nil
	case "A":
		return m.openInput(inputAddRoot, "", "New root category", ""), nil
	case "r":
		if c, ok := m.selectedCategory(); ok {
			return m.openInput(inputRenameCategory, c.Name, "Rename "+c.Name, c.Name), nil
		}
	case "p":
		if c, ok := m.selectedCategory(); ok {
			return m.openParentPicker(c.Name), nil
		}
	case "J":
		if c, ok := m.selectedCategory(); ok {
			if _, err := mutate.MoveCategory(m.db, c.Name, +1); err != nil {
				m.sayErr(err)
			} else {
				m.record("category.reorder", c.Name, nil)
				m.refreshTree(c.Name)
			}
		}
	case "K":
		if c, ok := m.selectedCategory(); ok {
			if _, err := mutate.MoveCategory(m.db, c.Name, -1); err != nil {
				m.sayErr(err)
			} else {
				m.record("category.reorder", c.Name, nil)
				m.refreshTree(c.Name)
			}
		}
	case "d":
		if c, ok := m.selectedCategory(); ok {
			m.mode = modeConfirm
			m.confirmName = c.Name
			m.confirmContent = false
		}
	case "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) updateContentsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "a":
		return m.openInput(inputAddContent, "", "New content name", ""), nil
	case "r":
		if c, ok := m.selectedContent(); ok {
			return m.openInput(inputRenameContent, c.Name, "Rename "+c.Name, c.Name), nil
		}
		return m, nil
	case "x":
		if c, ok := m.selectedContent(); ok {
			updated, err := mutate.SetContentArchived(m.db, c.Name, !c.Archived)
			if err != nil {
				m.sayErr(err)
			} else {
				m.record("content.set", c.Name, map[string]any{"field": "archived", "value": updated.Archived})
				m.refreshContents(c.Name)
				m.say("%s archived=%v", c.Name, updated.Archived)
			}
		}
		return m, nil
	case "e":
		if c, ok := m.selectedContent(); ok {
			return m.openContentEditor(c), nil
		}
		return m, nil
	case "d":
		if c, ok := m.selectedContent(); ok {
			m.mode = modeConfirm
			m.confirmName = c.Name
			m.confirmContent = true
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.contentsList, cmd = m.contentsList.Update(msg)
	return m, cmd
}

func (m appModel) openInput(kind inputKind, target, prompt, initial string) appModel {
	in := textinput.New()
	in.Prompt = prompt + ": "
	in.SetValue(initial)
	in.CursorEnd()
	in.Focus()
	m.input = in
	m.inputKind = kind
	m.inputTarget = target
	m.mode = modeInput
	return m
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		m.mode = modeBrowse
		if value == "" {
			return m, nil
		}
		switch m.inputKind {
		case inputAddRoot:
			if c, err := mutate.AddCategory(m.db, value, nil, nil); err != nil {
				m.sayErr(err)
			} else {
				m.record("category.add", c.Name, c)
				m.refreshTree(c.Name)
				m.say("Added %s", c.Name)
			}
		case inputAddChild:
			parent := m.inputTarget
			if c, err := mutate.AddCategory(m.db, value, &parent, nil); err != nil {
				m.sayErr(err)
			} else {
				m.record("category.add", c.Name, c)
				delete(m.collapsed, parent)
				m.refreshTree(c.Name)
				m.say("Added %s under %s", c.Name, parent)
			}
		case inputRenameCategory:
			if c, err := mutate.RenameCategory(m.db, m.inputTarget, value); err != nil {
				m.sayErr(err)
			} else {
				m.record("category.rename", c.Name, map[string]any{"from": m.inputTarget, "to": c.Name})
				m.refreshTree(c.Name)
				m.say("Renamed to %s", c.Name)
			}
		case inputAddContent:
			if c, err := mutate.AddContent(m.db, value, nil); err != nil {
				m.sayErr(err)
			} else {
				m.record("content.add", c.Name, c)
				m.refreshContents(c.Name)
				m.say("Added %s", c.Name)
			}
		case inputRenameContent:
			if c, err := mutate.RenameContent(m.db, m.inputTarget, value); err != nil {
				m.sayErr(err)
			} else {
				m.record("content.rename", c.Name, map[string]any{"from": m.inputTarget, "to": c.Name})
				m.refreshContents(c.Name)
				m.say("Renamed to %s", c.Name)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) openParentPicker(name string) appModel {
	exclude := descendantNames(m.db, name)
	exclude[name] = true

	options := []string{""} // "" = make root
	for _, c := range m.db.Categories {
		if !exclude[c.Name] {
			options = append(options, c.Name)
		}
	}
	sort.Strings(options[1:])

	m.pickerOptions = options
	m.pickerIndex = 0
	m.pickerTarget = name
	m.mode = modeParentPick
	return m
}

func (m appModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
	case "up", "k":
		if m.pickerIndex > 0 {
			m.pickerIndex--
		}
	case "down", "j":
		if m.pickerIndex < len(m.pickerOptions)-1 {
			m.pickerIndex++
		}
	case "enter":
		m.mode = modeBrowse
		var parent *string
		if opt := m.pickerOptions[m.pickerIndex]; opt != "" {
			parent = &opt
		}
		c, err := mutate.SetCategoryParent(m.db, m.pickerTarget, parent)
		if err != nil {
			m.sayErr(err)
			return m, nil
		}
		m.record("category.set-parent", c.Name, c)
		if parent != nil {
			delete(m.collapsed, *parent)
		}
		m.refreshTree(c.Name)
		m.say("Moved %s", c.Name)
	}
	return m, nil
}

func (m appModel) openContentEditor(c model.Content) appModel {
	labels := [3]string{"name", "categories", "archived"}
	values := [3]string{c.Name, strings.Join(c.Categories, ", "), strconv.FormatBool(c.Archived)}
	for i := range m.editFields {
		in := textinput.New()
		in.Prompt = labels[i] + ": "
		in.SetValue(values[i])
		in.CursorEnd()
		m.editFields[i] = in
	}
	m.editFocus = 0
	m.editFields[0].Focus()
	m.editOriginal = c.Name
	m.mode = modeContentEdit
	return m
}

func (m appModel) updateContentEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		return m, nil
	case "tab", "shift+tab":
		m.editFields[m.editFocus].Blur()
		if msg.String() == "tab" {
			m.editFocus = (m.editFocus + 1) % len(m.editFields)
		} else {
			m.editFocus = (m.editFocus + len(m.editFields) - 1) % len(m.editFields)
		}
		m.editFields[m.editFocus].Focus()
		return m, nil
	case "enter":
		m.mode = modeBrowse
		name := strings.TrimSpace(m.editFields[0].Value())
		if name == "" {
			m.say("Name cannot be empty; nothing saved")
			return m, nil
		}
		// Validate every field before mutating anything, so a bad value
		// cannot leave a half-applied edit behind.
		if name != m.editOriginal {
			if _, exists := m.db.FindContent(name); exists {
				m.sayErr(mutate.DuplicateNameError{Kind: "content", Name: name})
				return m, nil
			}
		}
		archived, err := strconv.ParseBool(strings.TrimSpace(m.editFields[2].Value()))
		if err != nil {
			m.sayErr(fmt.Errorf("field archived wants true or false, got %q", m.editFields[2].Value()))
			return m, nil
		}
		if _, err := mutate.UpdateContentField(m.db, m.editOriginal, mutate.FieldCategories, m.editFields[1].Value()); err != nil {
			m.sayErr(err)
			return m, nil
		}
		if _, err := mutate.SetContentArchived(m.db, m.editOriginal, archived); err != nil {
			m.sayErr(err)
			return m, nil
		}
		if name != m.editOriginal {
			if _, err := mutate.RenameContent(m.db, m.editOriginal, name); err != nil {
				m.sayErr(err)
				m.refreshContents(m.editOriginal)
				return m, nil
			}
			m.record("content.rename", name, map[string]any{"from": m.editOriginal, "to": name})
		}
		m.record("content.set", name, map[string]any{"field": "edit"})
		m.refreshContents(name)
		m.say("Saved %s", name)
		return m, nil
	}

	var cmd tea.Cmd
	m.editFields[m.editFocus], cmd = m.editFields[m.editFocus].Update(msg)
	return m, cmd
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		m.mode = modeBrowse
		if m.confirmContent {
			if err := mutate.DeleteContent(m.db, m.confirmName); err != nil {
				m.sayErr(err)
			} else {
				m.record("content.delete", m.confirmName, nil)
				m.refreshContents("")
				m.say("Deleted %s", m.confirmName)
			}
			return m, nil
		}
		if err := mutate.DeleteCategory(m.db, m.confirmName, m.orphans); err != nil {
			m.sayErr(err)
		} else {
			m.record("category.delete", m.confirmName, map[string]any{"orphans": string(m.orphans)})
			m.refreshTree("")
			m.say("Deleted %s", m.confirmName)
		}
		return m, nil
	default:
		m.mode = modeBrowse
		m.status = ""
		return m, nil
	}
}

func (m appModel) bodyHeight() int {
	h := m.height - 3 // tabs + blank + status bar
	if h < 1 {
		h = 1
	}
	return h
}

func (m appModel) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var body string
	switch m.mode {
	case modeHelp:
		md, _ := docs.Get("tui")
		body = docs.Render(md, min(m.width-2, 78))
	case modeInput:
		body = m.modalView(m.input.View())
	case modeParentPick:
		body = m.pickerView()
	case modeContentEdit:
		body = m.modalView(
			styleModalTitle.Render("Edit content") + "\n\n" +
				m.editFields[0].View() + "\n" +
				m.editFields[1].View() + "\n" +
				m.editFields[2].View() + "\n\n" +
				faintIfDark(styleStatusBar).Render("tab: next field · enter: save · esc: cancel"))
	case modeConfirm:
		kind := "category"
		if m.confirmContent {
			kind = "content"
		}
		body = m.modalView(styleModalTitle.Render("Delete "+kind+" "+m.confirmName+"?") + "\n\n" +
			faintIfDark(styleStatusBar).Render("y/enter: delete · any other key: cancel"))
	default:
		if m.tab == tabTree {
			body = m.treeView()
		} else {
			body = m.contentsList.View()
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.tabsView(),
		lipgloss.NewStyle().Height(m.bodyHeight()).Render(body),
		m.statusView(),
	)
}

func (m appModel) tabsView() string {
	tree, contents := styleTab, styleTabActive
	if m.tab == tabTree {
		tree, contents = styleTabActive, styleTab
	}
	return tree.Render("Categories") + contents.Render("Contents")
}

func (m appModel) treeView() string {
	if len(m.rows) == 0 {
		return faintIfDark(styleStatusBar).Render("No categories. Press a to add one.")
	}

	// Window the rows so the selection stays visible.
	h := m.bodyHeight()
	start := 0
	if m.selected >= h {
		start = m.selected - h + 1
	}
	end := min(start+h, len(m.rows))

	var b strings.Builder
	for i := start; i < end; i++ {
		line := ansi.Truncate(m.rows[i].line(), m.width, "…")
		if i == m.selected {
			line = styleSelectedRow.Render(line)
		}
		b.WriteString(line)
		if i != end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m appModel) pickerView() string {
	var b strings.Builder
	b.WriteString(styleModalTitle.Render("New parent for " + m.pickerTarget))
	b.WriteString("\n\n")
	for i, opt := range m.pickerOptions {
		label := opt
		if label == "" {
			label = "(root)"
		}
		if i == m.pickerIndex {
			label = styleSelectedRow.Render("> " + label)
		} else {
			label = "  " + label
		}
		b.WriteString(label)
		b.WriteString("\n")
	}
	return m.modalView(strings.TrimRight(b.String(), "\n"))
}

func (m appModel) modalView(inner string) string {
	return styleModalBox.Render(inner)
}

func (m appModel) statusView() string {
	hints := "tab: contents · a: add · r: rename · p: parent · J/K: reorder · d: delete · ?: help · q: quit"
	if m.tab == tabContents {
		hints = "tab: tree · a: add · e: edit · r: rename · x: archive · d: delete · /: filter · ?: help · q: quit"
	}
	line := m.status
	style := styleStatusErr
	if line == "" || !m.statusErr {
		if line != "" {
			line += "  ·  "
		}
		line += hints
		style = faintIfDark(styleStatusBar)
	}
	return style.Render(ansi.Truncate(line, m.width, "…"))
}

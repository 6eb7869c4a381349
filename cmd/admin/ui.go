package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"addressbook-backend/internal/client"
	"addressbook-backend/internal/domains/menu"
)

var (
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#139DFF"))
	StyleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626"))
	StyleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A"))
	StyleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("#525252"))
	StyleSidebar = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			Padding(0, 1)
	StyleMain = lipgloss.NewStyle().Padding(0, 1)
)

var keys = keyMap{
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next page"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

const (
	modeList = iota
	modeSearch
	modeForm
	modeConfirmDelete
)

type refreshMsg struct {
	state client.State
}

type loadFailedMsg struct {
	err error
}

type menuLoadedMsg struct {
	items []menu.Item
}

type mutationDoneMsg struct {
	status string
}

type mutationFailedMsg struct {
	err error
}

// AdminUI is the terminal front-end over the address collection. All
// filtering and pagination happens client-side through the store; the
// table only ever shows the current page.
type AdminUI struct {
	api       *client.Client
	store     *client.Store
	mode      int
	loaded    bool
	fatalErr  error
	quitting  bool
	table     table.Model
	search    textinput.Model
	form      *addressForm
	menuItems []menu.Item
	state     client.State
	status    string
	statusErr bool
	keys      keyMap
	help      help.Model
	width     int
}

func NewUI(api *client.Client, store *client.Store) *AdminUI {
	search := textinput.New()
	search.Placeholder = "name, street, postcode or customer number"
	search.Prompt = "Search: "
	search.CharLimit = 64

	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "Phone", Width: 15},
		{Title: "Street", Width: 26},
		{Title: "Postcode", Width: 10},
		{Title: "Country", Width: 16},
		{Title: "Cust #", Width: 7},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("#139DFF")).Bold(true)
	t.SetStyles(styles)

	return &AdminUI{
		api:    api,
		store:  store,
		mode:   modeList,
		table:  t,
		search: search,
		keys:   keys,
		help:   help.New(),
	}
}

func (ui *AdminUI) Init() tea.Cmd {
	return tea.Batch(ui.loadCollection(), ui.loadMenu(), textinput.Blink)
}

func (ui *AdminUI) loadCollection() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := ui.store.Load(ctx); err != nil {
			return loadFailedMsg{err: err}
		}
		return refreshMsg{state: ui.store.State()}
	}
}

func (ui *AdminUI) loadMenu() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		items, err := ui.api.Menu(ctx)
		if err != nil {
			// The sidebar is decorative, a failed fetch just leaves it empty.
			return menuLoadedMsg{items: nil}
		}
		return menuLoadedMsg{items: items}
	}
}

//nolint:cyclop
func (ui *AdminUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		ui.width = msg.Width
		ui.help.Width = msg.Width
		return ui, nil

	case refreshMsg:
		ui.loaded = true
		ui.state = msg.state
		ui.syncTable()
		return ui, nil

	case loadFailedMsg:
		if !ui.loaded {
			ui.fatalErr = msg.err
			return ui, nil
		}
		ui.state = ui.store.State()
		ui.syncTable()
		ui.setStatus(msg.err.Error(), true)
		return ui, nil

	case menuLoadedMsg:
		ui.menuItems = msg.items
		return ui, nil

	case mutationDoneMsg:
		ui.mode = modeList
		ui.form = nil
		ui.state = ui.store.State()
		ui.syncTable()
		ui.setStatus(msg.status, false)
		return ui, nil

	case mutationFailedMsg:
		ui.mode = modeList
		ui.form = nil
		ui.setStatus(msg.err.Error(), true)
		return ui, nil

	case tea.KeyMsg:
		switch ui.mode {
		case modeSearch:
			return ui.updateSearch(msg)
		case modeForm:
			return ui.updateForm(msg)
		case modeConfirmDelete:
			return ui.updateConfirm(msg)
		default:
			return ui.updateList(msg)
		}
	}

	return ui, nil
}

func (ui *AdminUI) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, ui.keys.Quit):
		ui.quitting = true
		return ui, tea.Quit
	case key.Matches(msg, ui.keys.Help):
		ui.help.ShowAll = !ui.help.ShowAll
		return ui, nil
	case key.Matches(msg, ui.keys.Search):
		ui.mode = modeSearch
		ui.search.Focus()
		return ui, textinput.Blink
	case key.Matches(msg, ui.keys.Reload):
		return ui, ui.loadCollection()
	case key.Matches(msg, ui.keys.PrevPage):
		ui.store.PreviousPage()
		ui.state = ui.store.State()
		ui.syncTable()
		return ui, nil
	case key.Matches(msg, ui.keys.NextPage):
		ui.store.NextPage()
		ui.state = ui.store.State()
		ui.syncTable()
		return ui, nil
	case key.Matches(msg, ui.keys.Add):
		ui.form = newAddressForm(nil)
		ui.mode = modeForm
		return ui, textinput.Blink
	case key.Matches(msg, ui.keys.Edit):
		if addr := ui.selectedAddress(); addr != nil {
			ui.form = newAddressForm(addr)
			ui.mode = modeForm
			return ui, textinput.Blink
		}
		return ui, nil
	case key.Matches(msg, ui.keys.Delete):
		if ui.selectedAddress() != nil {
			ui.mode = modeConfirmDelete
		}
		return ui, nil
	}

	var cmd tea.Cmd
	ui.table, cmd = ui.table.Update(msg)
	return ui, cmd
}

func (ui *AdminUI) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		ui.mode = modeList
		ui.search.Blur()
		return ui, nil
	}

	var cmd tea.Cmd
	ui.search, cmd = ui.search.Update(msg)
	// Live filtering: every keystroke narrows the view and resets to
	// the first page.
	ui.store.SetQuery(ui.search.Value())
	ui.state = ui.store.State()
	ui.syncTable()
	return ui, cmd
}

func (ui *AdminUI) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	form, action, cmd := ui.form.Update(msg)
	ui.form = form

	switch action {
	case formCancelled:
		ui.mode = modeList
		ui.form = nil
		return ui, nil
	case formSubmitted:
		return ui, ui.submitForm()
	}
	return ui, cmd
}

func (ui *AdminUI) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		addr := ui.selectedAddress()
		ui.mode = modeList
		if addr == nil {
			return ui, nil
		}
		id := addr.ID
		return ui, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := ui.store.Delete(ctx, id); err != nil {
				return mutationFailedMsg{err: err}
			}
			return mutationDoneMsg{status: "Address deleted"}
		}
	case "n", "N", "esc":
		ui.mode = modeList
		return ui, nil
	}
	return ui, nil
}

func (ui *AdminUI) submitForm() tea.Cmd {
	form := ui.form
	if form.editID != nil {
		req, err := form.updateRequest()
		if err != nil {
			form.localErr = err.Error()
			return nil
		}
		id := *form.editID
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := ui.store.Update(ctx, id, req); err != nil {
				return mutationFailedMsg{err: err}
			}
			return mutationDoneMsg{status: "Address updated"}
		}
	}

	req, err := form.createRequest()
	if err != nil {
		form.localErr = err.Error()
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := ui.store.Create(ctx, req); err != nil {
			return mutationFailedMsg{err: err}
		}
		return mutationDoneMsg{status: "Address created"}
	}
}

func (ui *AdminUI) selectedAddress() *addressRow {
	cursor := ui.table.Cursor()
	if cursor < 0 || cursor >= len(ui.state.Visible) {
		return nil
	}
	addr := ui.state.Visible[cursor]
	return &addressRow{AddressResponse: addr}
}

// syncTable rebuilds the table rows from the visible page.
func (ui *AdminUI) syncTable() {
	rows := make([]table.Row, 0, len(ui.state.Visible))
	for _, addr := range ui.state.Visible {
		custNo := ""
		if addr.CustomerNumber != nil {
			custNo = strconv.FormatInt(*addr.CustomerNumber, 10)
		}
		rows = append(rows, table.Row{
			addr.FirstName + " " + addr.LastName,
			addr.Phone,
			addr.Street,
			addr.Postcode,
			addr.Country,
			custNo,
		})
	}
	ui.table.SetRows(rows)
	if ui.table.Cursor() >= len(rows) && len(rows) > 0 {
		ui.table.SetCursor(len(rows) - 1)
	}
}

func (ui *AdminUI) setStatus(text string, isErr bool) {
	ui.status = text
	ui.statusErr = isErr
}

func (ui *AdminUI) View() string {
	if ui.quitting {
		return "\nBye!\n"
	}
	if ui.fatalErr != nil {
		return "\n" + StyleError.Render("Could not load addresses: "+ui.fatalErr.Error()) +
			"\n\n" + StyleMuted.Render("Is the API server running? Press q to quit.") + "\n"
	}
	if !ui.loaded {
		return "\nLoading addresses…\n"
	}
	if ui.mode == modeForm && ui.form != nil {
		return ui.form.View()
	}

	main := ui.listView()
	sidebar := ui.sidebarView()
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, StyleMain.Render(main))

	return StyleTitle.Render("Address Book") + "\n\n" + body + "\n" + ui.footerView()
}

func (ui *AdminUI) listView() string {
	view := ui.search.View() + "\n\n" + ui.table.View() + "\n"

	if ui.state.TotalPages > 0 {
		view += StyleMuted.Render(fmt.Sprintf(
			"Page %d of %d · %d match(es)",
			ui.state.Page, ui.state.TotalPages, len(ui.state.Filtered),
		))
	} else {
		view += StyleMuted.Render("No matching addresses")
	}

	if ui.mode == modeConfirmDelete {
		if addr := ui.selectedAddress(); addr != nil {
			view += "\n" + StyleError.Render(fmt.Sprintf(
				"Delete %s %s? (y/n)", addr.FirstName, addr.LastName,
			))
		}
	}
	return view
}

func (ui *AdminUI) sidebarView() string {
	if len(ui.menuItems) == 0 {
		return ""
	}
	content := StyleTitle.Render("Menu") + "\n"
	for _, item := range ui.menuItems {
		content += fmt.Sprintf("%s %s\n", item.MenuItem, StyleMuted.Render(item.Href))
	}
	return StyleSidebar.Render(content)
}

func (ui *AdminUI) footerView() string {
	footer := "\n" + ui.help.View(ui.keys)
	if ui.status != "" {
		style := StyleSuccess
		if ui.statusErr {
			style = StyleError
		}
		footer += "\n" + style.Render(ui.status)
	}
	return footer
}

type keyMap struct {
	Search   key.Binding
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view. It's part
// of the key.Map interface.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Add, k.Edit, k.Delete, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view. It's part of the
// key.Map interface.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Add, k.Edit},
		{k.Delete, k.PrevPage, k.NextPage},
		{k.Reload, k.Help, k.Quit},
	}
}

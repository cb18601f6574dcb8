package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/simonvc/ledgerdash/internal/dashboard"
)

type mode int

const (
	modeOverview mode = iota
	modeTransactions
	modeAccounts
	modeInvoices
	modeReports
	modeForm
)

var tabModes = []mode{modeOverview, modeTransactions, modeAccounts, modeInvoices, modeReports}

func tabLabel(m mode) string {
	switch m {
	case modeOverview:
		return "Overview"
	case modeTransactions:
		return "Transactions"
	case modeAccounts:
		return "Accounts"
	case modeInvoices:
		return "Invoices"
	case modeReports:
		return "Reports"
	default:
		return ""
	}
}

type refreshedMsg struct {
	err error
}

type App struct {
	session       *dashboard.Session
	mode          mode
	tabIndex      int
	width, height int
	loading       bool
	notice        *dashboard.Notification

	overview    overviewModel
	txnList     txnListModel
	accountList accountListModel
	invoiceList invoiceListModel
	reports     reportsModel
	form        formModel
}

func NewApp(s *dashboard.Session) *App {
	return &App{session: s, mode: modeOverview}
}

func (a *App) Init() tea.Cmd {
	return a.refresh()
}

func (a *App) refresh() tea.Cmd {
	a.loading = true
	s := a.session
	return func() tea.Msg {
		return refreshedMsg{err: s.Refresh(context.Background())}
	}
}

func (a *App) notify(n dashboard.Notification) {
	a.notice = &n
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.overview.width = msg.Width
		a.reports.width = msg.Width
		a.txnList.height = msg.Height - 6
		a.accountList.height = msg.Height - 6
		a.invoiceList.height = msg.Height - 6
		return a, nil

	case refreshedMsg:
		a.loading = false
		// A failed refresh keeps the last snapshot on screen.
		if msg.err != nil {
			a.notify(dashboard.NotifyResult(msg.err, ""))
		}
		return a, nil

	case submittedMsg:
		var cmd tea.Cmd
		a.form, cmd = a.form.update(msg, a.session)
		if a.form.done {
			a.mode = tabModes[a.tabIndex]
			a.notify(dashboard.NotifyResult(msg.err, a.form.kind.successMessage()))
		}
		return a, cmd
	}

	if a.mode == modeForm {
		var cmd tea.Cmd
		a.form, cmd = a.form.update(msg, a.session)
		if a.form.cancelled {
			a.mode = tabModes[a.tabIndex]
			a.notify(dashboard.Notification{Kind: dashboard.NotifyInfo, Message: a.form.kind.title() + " cancelled"})
		}
		return a, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit

		case key.Matches(msg, keys.Tab):
			a.tabIndex = (a.tabIndex + 1) % len(tabModes)
			a.mode = tabModes[a.tabIndex]
			a.notice = nil
			return a, nil

		case key.Matches(msg, keys.ShiftTab):
			a.tabIndex = (a.tabIndex - 1 + len(tabModes)) % len(tabModes)
			a.mode = tabModes[a.tabIndex]
			a.notice = nil
			return a, nil

		case key.Matches(msg, keys.Refresh):
			return a, a.refresh()

		case key.Matches(msg, keys.New):
			switch a.mode {
			case modeAccounts:
				a.openForm(newAccountForm())
			case modeInvoices:
				a.openForm(newInvoiceForm())
			default:
				a.openTransactionForm()
			}
			return a, nil

		case key.Matches(msg, keys.NewTxn):
			a.openTransactionForm()
			return a, nil
		}
	}

	switch a.mode {
	case modeTransactions:
		a.txnList.listCursor = a.txnList.update(msg, len(a.session.Snapshot().Transactions))
	case modeAccounts:
		a.accountList.listCursor = a.accountList.update(msg, len(a.session.Snapshot().Accounts))
	case modeInvoices:
		a.invoiceList.listCursor = a.invoiceList.update(msg, len(a.session.Snapshot().Invoices))
	case modeReports:
		a.reports = a.reports.update(msg)
	}
	return a, nil
}

func (a *App) openForm(f formModel) {
	a.form = f
	a.mode = modeForm
	a.notice = nil
}

func (a *App) openTransactionForm() {
	options := a.session.AccountOptions()
	if len(options) < 2 {
		a.notify(dashboard.Notification{Kind: dashboard.NotifyInfo, Message: "Create at least two accounts before recording a transaction"})
		return
	}
	a.openForm(newTransactionForm(options))
}

func (k formKind) successMessage() string {
	switch k {
	case formAccount:
		return "Account created successfully"
	case formTransaction:
		return "Transaction created successfully"
	default:
		return "Invoice created successfully"
	}
}

func (a *App) View() string {
	tabs := ""
	for i, m := range tabModes {
		label := tabLabel(m)
		if i == a.tabIndex && a.mode != modeForm {
			tabs += activeTabStyle.Render(label)
		} else {
			tabs += inactiveTabStyle.Render(label)
		}
		if i < len(tabModes)-1 {
			tabs += " "
		}
	}

	var content string
	switch a.mode {
	case modeOverview:
		snap := a.session.Snapshot()
		if a.loading && snap.Empty() {
			content = "Loading dashboard..."
			break
		}
		content = a.overview.view(overviewData{
			stats:       a.session.Stats(),
			utilization: a.session.Utilization(),
			recent:      a.session.TransactionRows(),
			summary:     a.session.TransactionSummary(),
		})
	case modeTransactions:
		content = a.txnList.view(a.session.TransactionRows())
	case modeAccounts:
		content = a.accountList.view(a.session.AccountRows())
	case modeInvoices:
		content = a.invoiceList.view(a.session.InvoiceRows())
	case modeReports:
		content = a.reports.view(a.session.Report(a.reports.reportType(), a.reports.period()))
	case modeForm:
		content = a.form.view()
	}

	status := ""
	if a.notice != nil {
		switch a.notice.Kind {
		case dashboard.NotifySuccess:
			status = successStyle.Render(a.notice.Message)
		case dashboard.NotifyError:
			status = errorStyle.Render(a.notice.Message)
		default:
			status = infoStyle.Render(a.notice.Message)
		}
	}

	helpText := dimStyle.Render("tab:switch  n:new  t:new txn  r:refresh  q:quit")
	switch a.mode {
	case modeForm:
		helpText = dimStyle.Render("tab/enter:next  shift+tab:prev  left/right:choose  esc:cancel")
	case modeReports:
		helpText = dimStyle.Render("left/right:report  up/down:period  tab:switch  r:refresh  q:quit")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		tabs,
		"",
		content,
		"",
		status,
		helpText,
	)
}

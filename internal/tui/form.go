package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/simonvc/ledgerdash/internal/dashboard"
	"github.com/simonvc/ledgerdash/internal/ledger"
	"github.com/simonvc/ledgerdash/internal/viewmodel"
)

type formKind int

const (
	formAccount formKind = iota
	formTransaction
	formInvoice
)

func (k formKind) title() string {
	switch k {
	case formAccount:
		return "New Account"
	case formTransaction:
		return "New Transaction"
	default:
		return "New Invoice"
	}
}

// submittedMsg carries the outcome of a form submission.
type submittedMsg struct {
	kind formKind
	err  error
}

// formField is either free text or a choice among fixed options.
type formField struct {
	label   string
	input   textinput.Model
	choices []string
	ids     []int64
	choice  int
}

func (f formField) isChoice() bool { return f.choices != nil }

func (f formField) value() string {
	if f.isChoice() {
		if len(f.choices) == 0 {
			return ""
		}
		return f.choices[f.choice]
	}
	return strings.TrimSpace(f.input.Value())
}

func (f formField) id() int64 {
	if f.choice < len(f.ids) {
		return f.ids[f.choice]
	}
	return 0
}

func textField(label, placeholder, initial string, limit int) formField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.SetValue(initial)
	return formField{label: label, input: in}
}

func choiceField(label string, choices []string) formField {
	if choices == nil {
		choices = []string{}
	}
	return formField{label: label, choices: choices}
}

func accountChoiceField(label string, options []viewmodel.AccountOption) formField {
	f := choiceField(label, nil)
	for _, o := range options {
		f.choices = append(f.choices, o.Label)
		f.ids = append(f.ids, o.ID)
	}
	return f
}

type formModel struct {
	kind      formKind
	fields    []formField
	focus     int
	err       error
	sending   bool
	done      bool
	cancelled bool
}

const (
	acctName = iota
	acctCode
	acctType
	acctDescription
	acctBalance
)

func newAccountForm() formModel {
	types := make([]string, len(ledger.DashboardTypes))
	for i, t := range ledger.DashboardTypes {
		types[i] = string(t)
	}
	return newForm(formAccount,
		textField("Name", "e.g. Petty Cash", "", 60),
		textField("Code", "optional, 1-9999", "", 4),
		choiceField("Type", types),
		textField("Description", "optional", "", 120),
		textField("Opening balance", "e.g. 0.00", "0", 20),
	)
}

const (
	txnDate = iota
	txnDescription
	txnReference
	txnDebit
	txnCredit
	txnAmount
	txnStatus
)

func newTransactionForm(options []viewmodel.AccountOption) formModel {
	return newForm(formTransaction,
		textField("Date", ledger.DateLayout, time.Now().Format(ledger.DateLayout), 10),
		textField("Description", "e.g. Office rent", "", 120),
		textField("Reference", "optional", "", 40),
		accountChoiceField("Debit account", options),
		accountChoiceField("Credit account", options),
		textField("Amount", "e.g. 120.00", "", 20),
		choiceField("Status", []string{string(ledger.StatusPending), string(ledger.StatusPosted)}),
	)
}

const (
	invNumber = iota
	invClient
	invDate
	invAmount
	invStatus
)

func newInvoiceForm() formModel {
	statuses := make([]string, len(ledger.InvoiceStatuses))
	for i, s := range ledger.InvoiceStatuses {
		statuses[i] = string(s)
	}
	return newForm(formInvoice,
		textField("Invoice number", "e.g. INV-001", "", 30),
		textField("Client", "e.g. Acme Ltd", "", 80),
		textField("Date", ledger.DateLayout, time.Now().Format(ledger.DateLayout), 10),
		textField("Amount", "e.g. 1200.00", "", 20),
		choiceField("Status", statuses),
	)
}

func newForm(kind formKind, fields ...formField) formModel {
	m := formModel{kind: kind, fields: fields}
	m.setFocus(0)
	return m
}

func (m *formModel) setFocus(i int) {
	m.focus = i
	for j := range m.fields {
		if m.fields[j].isChoice() {
			continue
		}
		if j == i {
			m.fields[j].input.Focus()
		} else {
			m.fields[j].input.Blur()
		}
	}
}

func (m formModel) update(msg tea.Msg, s *dashboard.Session) (formModel, tea.Cmd) {
	switch msg := msg.(type) {
	case submittedMsg:
		switch {
		case errors.Is(msg.err, dashboard.ErrSubmitInFlight):
			// The earlier submit is still running and will report itself.
			return m, nil
		case msg.err != nil && !errors.Is(msg.err, dashboard.ErrRefreshAfterCreate):
			m.sending = false
			m.err = msg.err
			return m, nil
		}
		// Created, even if the reload failed: the form must not be resubmitted.
		m.sending = false
		m.done = true
		return m, nil

	case tea.KeyMsg:
		if m.sending || (s != nil && s.Submitting()) {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Escape):
			m.cancelled = true
			return m, nil
		case msg.Type == tea.KeyShiftTab, msg.Type == tea.KeyUp:
			if m.focus > 0 {
				m.setFocus(m.focus - 1)
			}
			return m, nil
		case msg.Type == tea.KeyTab, msg.Type == tea.KeyDown:
			if m.focus < len(m.fields)-1 {
				m.setFocus(m.focus + 1)
			}
			return m, nil
		case key.Matches(msg, keys.Enter):
			if m.focus < len(m.fields)-1 {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			m.err = nil
			m.sending = true
			return m, m.submit(s)
		}

		f := &m.fields[m.focus]
		if f.isChoice() {
			n := len(f.choices)
			switch {
			case key.Matches(msg, keys.Left) && n > 0:
				f.choice = (f.choice - 1 + n) % n
			case key.Matches(msg, keys.Right) && n > 0:
				f.choice = (f.choice + 1) % n
			}
			return m, nil
		}
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// submit builds the input from the fields and sends it through the session.
// Parse failures are reported the same way as validation failures.
func (m formModel) submit(s *dashboard.Session) tea.Cmd {
	kind := m.kind
	f := m.fields
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		switch kind {
		case formAccount:
			in := ledger.AccountInput{
				Name:        f[acctName].value(),
				Code:        f[acctCode].value(),
				Type:        ledger.AccountType(f[acctType].value()),
				Description: f[acctDescription].value(),
			}
			if raw := f[acctBalance].value(); raw != "" {
				bal, perr := ledger.ParseAmount(raw)
				if perr != nil {
					return submittedMsg{kind: kind, err: &ledger.PreconditionFailedError{Reason: "Opening balance must be a number"}}
				}
				in.Balance = &bal
			}
			_, err = s.SubmitAccount(ctx, in)

		case formTransaction:
			amount, perr := ledger.ParseAmount(f[txnAmount].value())
			if perr != nil && f[txnAmount].value() != "" {
				return submittedMsg{kind: kind, err: &ledger.PreconditionFailedError{Reason: "Amount must be a number"}}
			}
			_, err = s.SubmitTransaction(ctx, ledger.TransactionInput{
				Date:          f[txnDate].value(),
				Description:   f[txnDescription].value(),
				Reference:     f[txnReference].value(),
				DebitAccount:  f[txnDebit].id(),
				CreditAccount: f[txnCredit].id(),
				Amount:        amount,
				Status:        ledger.TransactionStatus(f[txnStatus].value()),
			})

		case formInvoice:
			amount, perr := ledger.ParseAmount(f[invAmount].value())
			if perr != nil && f[invAmount].value() != "" {
				return submittedMsg{kind: kind, err: &ledger.PreconditionFailedError{Reason: "Amount must be a number"}}
			}
			_, err = s.SubmitInvoice(ctx, ledger.InvoiceInput{
				InvoiceNumber: f[invNumber].value(),
				Client:        f[invClient].value(),
				Date:          f[invDate].value(),
				Amount:        amount,
				Status:        ledger.InvoiceStatus(f[invStatus].value()),
			})
		}
		return submittedMsg{kind: kind, err: err}
	}
}

func (m formModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.kind.title()))
	b.WriteString("\n")

	for i, f := range m.fields {
		label := labelStyle.Render(f.label)
		var value string
		if f.isChoice() {
			if len(f.choices) == 0 {
				value = dimStyle.Render("(none available)")
			} else {
				value = fmt.Sprintf("< %s >", f.choices[f.choice])
			}
		} else {
			value = f.input.View()
		}
		if i == m.focus {
			label = selectedStyle.Render("> ") + label
		} else {
			label = "  " + label
		}
		b.WriteString(label + value + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.sending:
		b.WriteString(infoStyle.Render("Submitting..."))
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
	default:
		b.WriteString(dimStyle.Render("enter on the last field submits"))
	}
	return boxStyle.Render(b.String())
}

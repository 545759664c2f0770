// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Choice is the user's answer to a conflict.
type Choice int

const (
	ChoiceNone Choice = iota
	ChoiceKeepLocal
	ChoiceKeepRemote
)

func (c Choice) String() string {
	switch c {
	case ChoiceKeepLocal:
		return "local"
	case ChoiceKeepRemote:
		return "remote"
	default:
		return "none"
	}
}

// Resolver applies a choice, typically ForceKeepLocal or ForceKeepRemote.
type Resolver func(ctx context.Context, choice Choice) error

type resolvedMsg struct {
	err error
}

// ConflictModel asks which side of a conflicted collection wins and runs the
// resolver while a spinner is shown.
type ConflictModel struct {
	ctx        context.Context
	collection string
	paths      []string
	resolve    Resolver

	spinner   spinner.Model
	choice    Choice
	resolving bool
	done      bool
	err       error
}

func NewConflictModel(ctx context.Context, collection string, paths []string, resolve Resolver) ConflictModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return ConflictModel{
		ctx:        ctx,
		collection: collection,
		paths:      paths,
		resolve:    resolve,
		spinner:    s,
	}
}

func (m ConflictModel) Init() tea.Cmd {
	return nil
}

func (m ConflictModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.resolving {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.keepLocal):
			return m.start(ChoiceKeepLocal)
		case key.Matches(msg, keys.keepRemote):
			return m.start(ChoiceKeepRemote)
		case key.Matches(msg, keys.cancel):
			m.done = true
			return m, tea.Quit
		}
		return m, nil

	case resolvedMsg:
		m.resolving = false
		m.done = true
		m.err = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		if !m.resolving {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ConflictModel) start(choice Choice) (tea.Model, tea.Cmd) {
	m.choice = choice
	m.resolving = true
	ctx, resolve := m.ctx, m.resolve
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return resolvedMsg{err: resolve(ctx, choice)}
	})
}

func (m ConflictModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Conflict in " + m.collection))
	b.WriteString("\n\nchanged locally and remotely:\n")
	for _, p := range m.paths {
		b.WriteString("  ")
		b.WriteString(pathStyle.Render(p))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.resolving:
		b.WriteString(m.spinner.View() + " keeping " + m.choice.String() + "...")
	case m.done && m.err != nil:
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
	case m.done && m.choice != ChoiceNone:
		b.WriteString("kept " + m.choice.String())
	case m.done:
		b.WriteString("left unresolved")
	default:
		b.WriteString(helpStyle.Render(keys.help()))
	}

	return overlayStyle.Render(b.String()) + "\n"
}

// Choice returns what the user picked, ChoiceNone if they cancelled.
func (m ConflictModel) Choice() Choice {
	return m.choice
}

// Err returns the resolver error, if any.
func (m ConflictModel) Err() error {
	return m.err
}

// RunConflictPrompt shows the prompt on in/out and blocks until the user
// picks a side and the resolver returns, or cancels.
func RunConflictPrompt(ctx context.Context, collection string, paths []string, resolve Resolver, in io.Reader, out io.Writer) (Choice, error) {
	p := tea.NewProgram(
		NewConflictModel(ctx, collection, paths, resolve),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)

	final, err := p.Run()
	if err != nil {
		return ChoiceNone, err
	}

	m := final.(ConflictModel)
	return m.Choice(), m.Err()
}

package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"

	"github.com/thenoetrevino/partners/internal/models"
	partnerservice "github.com/thenoetrevino/partners/internal/services/partner"
	"github.com/thenoetrevino/partners/internal/tui/huhforms"
	"github.com/thenoetrevino/partners/internal/tui/state"
)

func (m *Model) formTheme(purpose huhforms.Purpose) huh.Theme {
	return huhforms.CreateTheme(m.cfg.ColorScheme, purpose)
}

// openCreateForm shows the partner form with stage preselected. An empty
// stage falls back to the first stage.
func (m *Model) openCreateForm(stage string) tea.Cmd {
	if stage == "" && len(m.stages) > 0 {
		stage = m.stages[0]
	}
	m.formValues = &huhforms.PartnerFormValues{Stage: stage, Confirm: true}
	m.editingID = 0
	m.form = huhforms.CreatePartnerForm(m.formValues, m.stages, false, m.cfg.KeyMappings.SaveForm).
		WithTheme(m.formTheme(huhforms.PurposeCreate))
	m.ui.SetMode(state.PartnerFormMode)
	return m.form.Init()
}

func (m *Model) openEditForm(p *models.Partner) tea.Cmd {
	m.formValues = &huhforms.PartnerFormValues{
		Name:    p.Name,
		Email:   p.Email,
		Stage:   p.Stage,
		Confirm: true,
	}
	m.editingID = p.ID
	m.form = huhforms.CreatePartnerForm(m.formValues, m.stageOptions(p.Stage), true, m.cfg.KeyMappings.SaveForm).
		WithTheme(m.formTheme(huhforms.PurposeEdit))
	m.ui.SetMode(state.PartnerFormMode)
	return m.form.Init()
}

// stageOptions lists the known stages plus current, so editing a partner
// with an unknown stage does not silently change it.
func (m *Model) stageOptions(current string) []string {
	for _, s := range m.stages {
		if s == current {
			return m.stages
		}
	}
	if current == "" {
		return m.stages
	}
	return append([]string{current}, m.stages...)
}

// updatePartnerForm forwards messages to the huh form until it completes
// or is aborted.
func (m *Model) updatePartnerForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.ui.SetMode(state.NormalMode)
		return m, nil
	}

	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	case huh.StateCompleted:
		v := m.formValues
		id := m.editingID
		m.closeForm()
		if !v.Confirm {
			return m, nil
		}
		if id.Valid() {
			return m, updatePartner(m.ctx, m.app, id, partnerservice.UpdatePartnerRequest{
				Name:  &v.Name,
				Email: &v.Email,
				Stage: &v.Stage,
			})
		}
		return m, createPartner(m.ctx, m.app, partnerservice.CreatePartnerRequest{
			Name:  v.Name,
			Email: v.Email,
			Stage: v.Stage,
		})
	}
	return m, cmd
}

func (m *Model) closeForm() {
	m.form = nil
	m.formValues = nil
	m.editingID = 0
	m.ui.SetMode(state.NormalMode)
}

func (m *Model) openDeleteConfirm(p *models.Partner) tea.Cmd {
	m.deleteTarget = p
	m.deleteConfirm = false
	m.deleteForm = huhforms.CreateConfirmForm(
		fmt.Sprintf("Delete %s?", p.Name),
		"This cannot be undone.",
		&m.deleteConfirm,
	).WithTheme(m.formTheme(huhforms.PurposeDelete))
	m.ui.SetMode(state.DeleteConfirmMode)
	return m.deleteForm.Init()
}

func (m *Model) updateDeleteConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.deleteForm == nil {
		m.ui.SetMode(state.NormalMode)
		return m, nil
	}

	model, cmd := m.deleteForm.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.deleteForm = f
	}

	switch m.deleteForm.State {
	case huh.StateAborted:
		m.closeDeleteConfirm()
		return m, nil
	case huh.StateCompleted:
		target := m.deleteTarget
		confirmed := m.deleteConfirm
		m.closeDeleteConfirm()
		if !confirmed || target == nil {
			return m, nil
		}
		return m, deletePartner(m.ctx, m.app, target.ID)
	}
	return m, cmd
}

func (m *Model) closeDeleteConfirm() {
	m.deleteForm = nil
	m.deleteTarget = nil
	m.deleteConfirm = false
	m.ui.SetMode(state.NormalMode)
}

// newLoginForm shows a fresh sign-in form, keeping a typed email.
func (m *Model) newLoginForm() tea.Cmd {
	email := ""
	if m.loginValues != nil {
		email = m.loginValues.Email
	}
	m.loginValues = &huhforms.LoginFormValues{Email: email}
	m.loginForm = huhforms.CreateLoginForm(m.loginValues).WithTheme(m.formTheme(huhforms.PurposeSignIn))
	return m.loginForm.Init()
}

// updateLogin drives the sign-in form while no session exists.
func (m *Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.signingIn {
		return m, nil
	}
	if m.loginForm == nil {
		return m, m.newLoginForm()
	}

	model, cmd := m.loginForm.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.loginForm = f
	}

	switch m.loginForm.State {
	case huh.StateAborted:
		return m, tea.Quit
	case huh.StateCompleted:
		m.signingIn = true
		return m, signIn(m.ctx, m.app, m.loginValues.Email, m.loginValues.Password)
	}
	return m, cmd
}

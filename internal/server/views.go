// internal/server/views.go
package server

import (
	apierrors "fostercare-intake/internal/common/errors"
	"fostercare-intake/internal/components/members"
	"fostercare-intake/internal/components/overview"
	"fostercare-intake/internal/components/wizard"
	"fostercare-intake/internal/models"
)

// wizardView is the JSON shape of a wizard session returned to the form
// frontend after every operation.
type wizardView struct {
	SessionID string                     `json:"sessionId"`
	Step      int                        `json:"step"`
	StepName  string                     `json:"stepName"`
	Applicant models.Applicant           `json:"applicant"`
	Household models.HouseholdInfo       `json:"householdInfo"`
	Members   []models.FamilyMemberDraft `json:"familyMembers"`
	Draft     models.FamilyMemberDraft   `json:"memberDraft"`
	Busy      bool                       `json:"busy"`
	Submitted bool                       `json:"submitted"`
	Error     string                     `json:"error,omitempty"`
}

func newWizardView(sessionID string, w *wizard.Wizard) wizardView {
	drafts := w.Members()
	if drafts == nil {
		drafts = []models.FamilyMemberDraft{}
	}
	return wizardView{
		SessionID: sessionID,
		Step:      int(w.Step()),
		StepName:  w.Step().String(),
		Applicant: w.Applicant(),
		Household: w.Household(),
		Members:   drafts,
		Draft:     w.MemberDraft(),
		Busy:      w.Busy(),
		Submitted: w.Submitted(),
		Error:     w.ErrMsg(),
	}
}

// overviewView is the household overview plus the assignment widget state.
// Exactly one of Overview or Error is populated, mirroring the delivery
// contract of the underlying binding.
type overviewView struct {
	Overview  *models.OverviewProjection `json:"overview,omitempty"`
	Error     string                     `json:"error,omitempty"`
	ErrorCode string                     `json:"errorCode,omitempty"`
}

func newOverviewView(r *overview.Reader) overviewView {
	view := overviewView{Overview: r.Projection()}
	if err := r.Err(); err != nil {
		view.Error = apierrors.UserMessage(err)
		if stdErr, ok := err.(*apierrors.StandardError); ok {
			view.ErrorCode = string(stdErr.Code)
		}
	}
	return view
}

// memberListView is the family-member list plus its delivery error, if any.
type memberListView struct {
	Members []models.FamilyMember `json:"members"`
	Error   string                `json:"error,omitempty"`
}

func newMemberListView(e *members.Editor) memberListView {
	items := e.Items()
	if items == nil {
		items = []models.FamilyMember{}
	}
	view := memberListView{Members: items}
	if err := e.Err(); err != nil {
		view.Error = apierrors.UserMessage(err)
	}
	return view
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// View constants
type ViewState string

const (
	ViewHome         ViewState = "HOME"
	ViewVerification ViewState = "VERIFICATION"
	ViewResults      ViewState = "RESULTS"
	ViewEducation    ViewState = "EDUCATION"
	ViewCapstoneDocs ViewState = "CAPSTONE_DOCS"
)

// Vote flow step constants
type Step string

const (
	StepVerify     Step = "VERIFY"
	StepBallot     Step = "BALLOT"
	StepSubmitting Step = "SUBMITTING"
	StepReceipt    Step = "RECEIPT"
)

// Chat roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Request types

type NavigateRequest struct {
	View ViewState `json:"view" validate:"required,oneof=HOME VERIFICATION RESULTS EDUCATION CAPSTONE_DOCS"`
}

type SelectCandidateRequest struct {
	CandidateID string `json:"candidate_id" validate:"required,max=64"`
}

type ChatRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// Response types

type CreateSessionResponse struct {
	SessionID string    `json:"session_id"`
	View      ViewState `json:"view"`
}

type SessionResponse struct {
	SessionID string     `json:"session_id"`
	View      ViewState  `json:"view"`
	Vote      *FlowState `json:"vote,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type ChatResponse struct {
	Reply    *ChatMessage  `json:"reply,omitempty"`
	Messages []ChatMessage `json:"messages"`
}

type IntegrityReportResponse struct {
	Report      string    `json:"report"`
	GeneratedAt time.Time `json:"generated_at"`
}

type DocsResponse struct {
	Personas []Persona         `json:"personas"`
	Sections []CapstoneSection `json:"sections"`
}

// Domain types

type Candidate struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Party    string `json:"party"`
	PhotoURL string `json:"photo_url"`
	Color    string `json:"color"`
	Votes    int64  `json:"votes"`
}

// VoteRecord is the receipt of a simulated cast. It lives only in memory.
type VoteRecord struct {
	TxHash      string    `json:"tx_hash"`
	Timestamp   time.Time `json:"timestamp"`
	CandidateID string    `json:"candidate_id"`
	Location    string    `json:"location"`
}

type ChatMessage struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type FlowState struct {
	Step                Step        `json:"step"`
	Scanning            bool        `json:"scanning"`
	SelectedCandidateID *string     `json:"selected_candidate_id,omitempty"`
	CanCast             bool        `json:"can_cast"`
	Receipt             *VoteRecord `json:"receipt,omitempty"`
	Candidates          []Candidate `json:"candidates,omitempty"`
}

// Results types

type CandidateResult struct {
	CandidateID  string          `json:"candidate_id"`
	Name         string          `json:"name"`
	Party        string          `json:"party"`
	Color        string          `json:"color"`
	Votes        int64           `json:"votes"`
	VotesDisplay string          `json:"votes_display"`
	Share        decimal.Decimal `json:"share"` // percent of total, 2dp
}

type ChartPoint struct {
	Name  string `json:"name"`
	Votes int64  `json:"votes"`
	Fill  string `json:"fill"`
}

type ResultsSummary struct {
	TotalVotes        int64             `json:"total_votes"`
	TotalVotesDisplay string            `json:"total_votes_display"`
	LeaderID          string            `json:"leader_id,omitempty"`
	Live              bool              `json:"live"` // cosmetic; counts never change

	// Static stat cards shown above the chart
	TurnoutPercent       decimal.Decimal `json:"turnout_percent"`
	DiasporaVotes        int64           `json:"diaspora_votes"`
	DiasporaVotesDisplay string          `json:"diaspora_votes_display"`
	RejectedPercent      decimal.Decimal `json:"rejected_percent"`

	Candidates []CandidateResult `json:"candidates"`
	Chart      []ChartPoint      `json:"chart"`
}

// Docs types

type Persona struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Context string `json:"context"`
	Goal    string `json:"goal"`
}

type CapstoneSection struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Type    string `json:"type"` // text, persona, heuristic
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

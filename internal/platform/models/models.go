package models

// Lawyer roles.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleLawyer = "lawyer"
)

// Subscription statuses as reported by the payment provider.
const (
	StatusTrialing = "trialing"
	StatusActive   = "active"
	StatusPastDue  = "past_due"
	StatusCanceled = "canceled"
	StatusUnpaid   = "unpaid"
)

// Document request lifecycle states.
const (
	DocumentPending         = "pending"
	DocumentPendingApproval = "pending_approval"
	DocumentRejected        = "rejected"
	DocumentReceived        = "received"
)

// Notification types.
const (
	NotificationHearing  = "hearing"
	NotificationDeadline = "deadline"
	NotificationMeeting  = "meeting"
	NotificationTask     = "task"
	NotificationOther    = "other"
)

// Rejection reasons for document reviews.
var RejectionReasons = []string{"low_quality", "wrong_document", "incomplete", "illegible", "other"}

type Organization struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Document         string  `json:"document"`
	Email            *string `json:"email,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	Logo             *string `json:"logo,omitempty"`
	StripeCustomerID *string `json:"-"`
	Active           bool    `json:"active"`
	CreatedAt        int64   `json:"created_at"`
	UpdatedAt        int64   `json:"updated_at"`
}

type Lawyer struct {
	ID             string  `json:"id"`
	OrganizationID string  `json:"organization_id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	PasswordHash   string  `json:"-"`
	Phone          *string `json:"phone,omitempty"`
	Photo          *string `json:"photo,omitempty"`
	OAB            string  `json:"oab"`
	Specialty      *string `json:"specialty,omitempty"`
	Role           string  `json:"role"`
	Active         bool    `json:"active"`
	AvatarColor    *string `json:"avatar_color,omitempty"`
	ResetCode      *string `json:"-"`
	ResetExpires   *int64  `json:"-"`
	CreatedAt      int64   `json:"created_at"`
	UpdatedAt      int64   `json:"updated_at"`
}

type Column struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	Title          string `json:"title"`
	IsDefault      bool   `json:"is_default"`
	Order          int    `json:"order"`
	CreatedAt      int64  `json:"created_at"`
}

type LegalCase struct {
	ID             string  `json:"id"`
	OrganizationID string  `json:"organization_id"`
	ColumnID       string  `json:"column_id"`
	Number         string  `json:"number"`
	Title          string  `json:"title"`
	Description    *string `json:"description,omitempty"`
	Client         string  `json:"client"`
	ClientPhone    *string `json:"client_phone,omitempty"`
	Priority       string  `json:"priority"`
	Order          int     `json:"order"`
	Active         bool    `json:"active"`
	AssignedTo     *string `json:"assigned_to,omitempty"`
	CreatedBy      string  `json:"created_by"`
	CreatedAt      int64   `json:"created_at"`
	UpdatedAt      int64   `json:"updated_at"`
}

type DocumentRequest struct {
	ID              string  `json:"id"`
	CaseID          string  `json:"case_id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	Status          string  `json:"status"`
	FileURL         *string `json:"file_url,omitempty"`
	RequestedAt     int64   `json:"requested_at"`
	UploadedAt      *int64  `json:"uploaded_at,omitempty"`
	ReceivedAt      *int64  `json:"received_at,omitempty"`
	RejectedAt      *int64  `json:"rejected_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	RejectionNote   *string `json:"rejection_note,omitempty"`
}

type ShareableLink struct {
	ID        string `json:"id"`
	Token     string `json:"token"`
	CaseID    string `json:"case_id"`
	IsExpired bool   `json:"is_expired"`
	CreatedBy string `json:"created_by"`
	CreatedAt int64  `json:"created_at"`
}

// ShareableLinkWithDocuments bundles a link with its document set and the
// case/creator labels shown on the public upload page.
type ShareableLinkWithDocuments struct {
	ShareableLink
	CaseTitle  string             `json:"case_title"`
	CaseNumber string             `json:"case_number"`
	LawyerName string             `json:"lawyer_name"`
	Documents  []*DocumentRequest `json:"documents"`
}

type CaseNotification struct {
	ID        string  `json:"id"`
	CaseID    string  `json:"case_id"`
	LawyerID  *string `json:"lawyer_id,omitempty"`
	Type      string  `json:"type"`
	Message   *string `json:"message,omitempty"`
	Date      int64   `json:"date"`
	IsRead    bool    `json:"is_read"`
	ReadAt    *int64  `json:"read_at,omitempty"`
	IsSent    bool    `json:"is_sent"`
	SentAt    *int64  `json:"sent_at,omitempty"`
	CreatedAt int64   `json:"created_at"`
}

type Subscription struct {
	ID                   string `json:"id"`
	OrganizationID       string `json:"organization_id"`
	StripeSubscriptionID string `json:"stripe_subscription_id"`
	StripePriceID        string `json:"stripe_price_id"`
	Plan                 string `json:"plan"`
	Status               string `json:"status"`
	CurrentPeriodStart   int64  `json:"current_period_start"`
	CurrentPeriodEnd     int64  `json:"current_period_end"`
	TrialEnd             *int64 `json:"trial_end,omitempty"`
	CancelAtPeriodEnd    bool   `json:"cancel_at_period_end"`
	CanceledAt           *int64 `json:"canceled_at,omitempty"`
	CreatedAt            int64  `json:"created_at"`
	UpdatedAt            int64  `json:"updated_at"`
}

// PublicLawyer strips credentials and reset fields before a lawyer record
// leaves the API.
type PublicLawyer struct {
	ID             string  `json:"id"`
	OrganizationID string  `json:"organization_id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          *string `json:"phone,omitempty"`
	Photo          *string `json:"photo,omitempty"`
	OAB            string  `json:"oab"`
	Specialty      *string `json:"specialty,omitempty"`
	Role           string  `json:"role"`
	Active         bool    `json:"active"`
	AvatarColor    *string `json:"avatar_color,omitempty"`
	CreatedAt      int64   `json:"created_at"`
	UpdatedAt      int64   `json:"updated_at"`
}

func ToPublicLawyer(l *Lawyer) *PublicLawyer {
	if l == nil {
		return nil
	}
	return &PublicLawyer{
		ID:             l.ID,
		OrganizationID: l.OrganizationID,
		Name:           l.Name,
		Email:          l.Email,
		Phone:          l.Phone,
		Photo:          l.Photo,
		OAB:            l.OAB,
		Specialty:      l.Specialty,
		Role:           l.Role,
		Active:         l.Active,
		AvatarColor:    l.AvatarColor,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

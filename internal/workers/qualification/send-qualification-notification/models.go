// internal/workers/qualification/send-qualification-notification/models.go
package sendqualificationnotification

type Input struct {
	AssetID        string `json:"assetId"`
	ClientID       string `json:"clientId"`
	AssetName      string `json:"assetName,omitempty"`
	Status         string `json:"status"` // "qualification_complete" or "rejected"
	Overall        int    `json:"overall"`
	Grade          string `json:"grade"`
	Readiness      string `json:"distributionReadiness"`
	Recommendation string `json:"recommendation,omitempty"`
}

type Output struct {
	NotificationID string   `json:"notificationId"`
	Status         string   `json:"status"` // "sent", "failed", "disabled"
	Channels       []string `json:"channels,omitempty"`
	SentAt         string   `json:"sentAt"` // ISO 8601
}

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

// Channels
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

package notifications

import (
	"fmt"
	"log/slog"
)

// emailSender is satisfied by EmailSMTPSender and by the mock in tests.
type emailSender interface {
	SendEmail(to string, subject string, body string) error
}

// AccessNotifier tells a share owner that their files were downloaded.
// Strictly best-effort: failures are logged and dropped.
type AccessNotifier struct {
	sender emailSender
	logger *slog.Logger
}

func (n *AccessNotifier) NotifyShareAccessed(
	shareID string,
	ownerEmail string,
	downloadCount int64,
) {
	subject := "Your shared files were downloaded"
	body := fmt.Sprintf(
		"Your share %s was just downloaded. It has been downloaded %d time(s) so far.",
		shareID,
		downloadCount,
	)

	if err := n.sender.SendEmail(ownerEmail, subject, body); err != nil {
		n.logger.Error("Failed to send access notification",
			"shareId", shareID,
			"error", err,
		)
		return
	}

	n.logger.Info("Sent access notification", "shareId", shareID)
}

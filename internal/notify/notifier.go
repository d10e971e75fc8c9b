// internal/notify/notifier.go
package notify

import (
	"context"
	"fmt"

	"fostercare-intake/internal/common/aws"
	"fostercare-intake/internal/common/config"
	apierrors "fostercare-intake/internal/common/errors"
	"fostercare-intake/internal/common/logger"
)

// AgencyNotifier sends outbound agency notifications: a confirmation email to
// the applicant after submit and an assignment event for downstream systems.
// Every method is best-effort; callers log failures and move on, the workflow
// outcome never depends on delivery.
type AgencyNotifier struct {
	ses *aws.SESClient
	sns *aws.SNSClient
	cfg config.NotificationConfig
	log logger.Logger
}

func NewAgencyNotifier(ctx context.Context, cfg config.NotificationConfig, log logger.Logger) (*AgencyNotifier, error) {
	sesClient, err := aws.NewSESClient(ctx, cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("failed to create SES client: %w", err)
	}
	snsClient, err := aws.NewSNSClient(ctx, cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("failed to create SNS client: %w", err)
	}
	return &AgencyNotifier{
		ses: sesClient,
		sns: snsClient,
		cfg: cfg,
		log: log.WithFields(map[string]interface{}{"component": "notify"}),
	}, nil
}

// SendSubmissionConfirmation emails the applicant that their application was
// received.
func (n *AgencyNotifier) SendSubmissionConfirmation(ctx context.Context, email, firstName string) error {
	subject := "We received your application"
	body := fmt.Sprintf(
		"Hi %s,\n\nThank you for applying. A member of our intake team will review your application and reach out within five business days.\n\nWarm regards,\nThe Agency Intake Team",
		firstName,
	)
	if err := n.ses.SendText(ctx, n.cfg.EmailFrom, email, subject, body); err != nil {
		n.log.Error("confirmation email failed", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return apierrors.NewNotificationFailedError("email", err)
	}
	return nil
}

// PublishAssignment announces a caseworker assignment on the agency topic.
func (n *AgencyNotifier) PublishAssignment(ctx context.Context, accountID, caseworkerID string) error {
	event := map[string]string{
		"event":        "caseworker.assigned",
		"accountId":    accountID,
		"caseworkerId": caseworkerID,
	}
	if err := n.sns.PublishJSON(ctx, n.cfg.SNSTopicARN, "Caseworker Assigned", event); err != nil {
		n.log.Error("assignment event failed", map[string]interface{}{
			"accountId": accountID,
			"error":     err.Error(),
		})
		return apierrors.NewNotificationFailedError("sns", err)
	}
	return nil
}

package services

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/gestiloc/inventory-service/internal/models"
	"github.com/gestiloc/inventory-service/internal/utils"
)

// NotificationService sends the tenant a summary of the validated
// deductions and the deposit amount returned. A nil client disables
// mail entirely (dev environments).
type NotificationService struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

func NewNotificationService(client *sendgrid.Client, fromName, fromEmail string) *NotificationService {
	return &NotificationService{client: client, fromName: fromName, fromEmail: fromEmail}
}

func (s *NotificationService) SendRestitutionNotice(lease *models.Lease, ledger *models.DeductionLedger) error {
	if s.client == nil {
		utils.Logger.Debug("SendGrid disabled; skipping restitution notice")
		return nil
	}
	if lease.TenantEmail == "" {
		utils.Logger.Debugf("Lease %s has no tenant email; skipping restitution notice", lease.ID)
		return nil
	}

	body := fmt.Sprintf(
		"Bonjour %s,\n\nLe décompte de votre dépôt de garantie pour le lot %s a été validé.\n\n",
		lease.TenantName, lease.LotReference,
	)
	for _, line := range ledger.Lines {
		body += fmt.Sprintf("  - %s : %.2f €\n", line.Description, float64(line.AmountCents)/100)
	}
	body += fmt.Sprintf("\nTotal des retenues : %.2f €\n", float64(ledger.TotalCents)/100)
	if lease.DepositAmountCents != nil {
		returned := *lease.DepositAmountCents - ledger.TotalCents
		if returned < 0 {
			returned = 0
		}
		body += fmt.Sprintf("Montant restitué : %.2f €\n", float64(returned)/100)
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(lease.TenantName, lease.TenantEmail)
	subject := "Restitution de votre dépôt de garantie"
	message := mail.NewSingleEmail(from, subject, to, body, "")

	resp, err := s.client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	utils.Logger.Infof("Restitution notice sent to tenant of lease %s", lease.ID)
	return nil
}
